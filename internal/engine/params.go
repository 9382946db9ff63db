package engine

import (
	"errors"
	"fmt"
)

// Configuration errors. Any of these aborts a run before a sequence is read.
var (
	ErrInvalidLength   = errors.New("length must be greater than 0")
	ErrNegativeOverlap = errors.New("overlap must not be negative")
	ErrOverlapTooLarge = errors.New("overlap cannot be greater than length")
)

// Params are the fragment length and overlap shared by every sequence of a run.
type Params struct {
	Length  int
	Overlap int
}

// Validate checks the run-wide preconditions.
func (p Params) Validate() error {
	switch {
	case p.Length <= 0:
		return fmt.Errorf("length %d: %w", p.Length, ErrInvalidLength)
	case p.Overlap < 0:
		return fmt.Errorf("overlap %d: %w", p.Overlap, ErrNegativeOverlap)
	case p.Overlap > p.Length:
		return fmt.Errorf("overlap %d, length %d: %w", p.Overlap, p.Length, ErrOverlapTooLarge)
	}
	return nil
}

// Step is the distance between the starts of consecutive windows.
func (p Params) Step() int { return p.Length - p.Overlap }

// MinOverlap is the smallest overlap admitted for a sequence of seqLen:
// 2*Length - seqLen.
func (p Params) MinOverlap(seqLen int) int { return 2*p.Length - seqLen }

// SkipReason says why a sequence produced no fragments.
type SkipReason string

const (
	SkipTooShort        SkipReason = "length_exceeds_sequence"
	SkipOverlapBelowMin SkipReason = "overlap_below_minimum"
	SkipZeroStep        SkipReason = "zero_step"
)

// Skip records a sequence that was passed over, with the values that decided it.
type Skip struct {
	Reason     SkipReason
	SeqID      string
	SeqLen     int
	Length     int
	Overlap    int
	MinOverlap int
}

func (s Skip) String() string {
	switch s.Reason {
	case SkipTooShort:
		return fmt.Sprintf(`length "%d" greater than sequence (%s) length (%d)`,
			s.Length, s.SeqID, s.SeqLen)
	case SkipOverlapBelowMin:
		return fmt.Sprintf(`overlap "%d" less than minimum overlap: %d (2*%d-%d=%d) for sequence (%s)`,
			s.Overlap, s.MinOverlap, s.Length, s.SeqLen, s.MinOverlap, s.SeqID)
	case SkipZeroStep:
		return fmt.Sprintf(`overlap "%d" equals length and sequence (%s) length (%d) is longer`,
			s.Overlap, s.SeqID, s.SeqLen)
	}
	return string(s.Reason)
}

// Check applies the per-sequence admission policy. It returns nil when the
// sequence can be fragmented.
func (p Params) Check(seqID string, seqLen int) *Skip {
	s := Skip{
		SeqID:      seqID,
		SeqLen:     seqLen,
		Length:     p.Length,
		Overlap:    p.Overlap,
		MinOverlap: p.MinOverlap(seqLen),
	}
	switch {
	case p.Length > seqLen:
		s.Reason = SkipTooShort
	case p.Overlap < s.MinOverlap:
		s.Reason = SkipOverlapBelowMin
	case p.Step() < 1 && p.Length < seqLen:
		s.Reason = SkipZeroStep
	default:
		return nil
	}
	return &s
}
