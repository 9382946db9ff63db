package engine

import "fmt"

// Annotation is the provenance and composition block of a Fragment.
// FragStart and FragEnd are 1-based and inclusive.
type Annotation struct {
	ParentID    string
	ParentName  string
	FragStart   int
	FragEnd     int
	Composition Composition
}

// Fragment is one window of a parent sequence, ready for serialization.
type Fragment struct {
	ID          string
	Description string
	Seq         []byte
	Annotation  Annotation
}

// Parent is the metadata a Fragment inherits from its source sequence.
type Parent struct {
	ID          string
	Description string
}

// FragmentID names the ordinal-th fragment (1-based) of parentID.
func FragmentID(ordinal int, parentID string) string {
	return fmt.Sprintf("frag_%d_%s", ordinal, parentID)
}

// FragmentDescription describes the ordinal-th fragment of a parent.
func FragmentDescription(ordinal int, parentDescription string) string {
	return fmt.Sprintf("Fragment %d of %s", ordinal, parentDescription)
}

// Annotate slices seq over w and packages it as the ordinal-th fragment of p.
// It has no side effects; the returned Seq does not alias seq.
func Annotate(seq []byte, w Window, ordinal int, p Parent) Fragment {
	frag := append([]byte(nil), seq[w.Start:w.End+1]...)
	return Fragment{
		ID:          FragmentID(ordinal, p.ID),
		Description: FragmentDescription(ordinal, p.Description),
		Seq:         frag,
		Annotation: Annotation{
			ParentID:    p.ID,
			ParentName:  p.Description,
			FragStart:   w.Start + 1,
			FragEnd:     w.End + 1,
			Composition: NewComposition(frag),
		},
	}
}
