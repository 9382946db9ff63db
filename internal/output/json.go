package output

import (
	"chopper/internal/engine"
	"chopper/pkg/api"
)

// ToAPIFragment converts a domain Fragment to the stable wire schema (v1).
func ToAPIFragment(f engine.Fragment, sourceFile string) api.FragmentV1 {
	comp := make(map[string]float64, len(f.Annotation.Composition))
	for _, sym := range f.Annotation.Composition.Symbols() {
		comp[string(sym)] = f.Annotation.Composition[sym]
	}
	return api.FragmentV1{
		ID:          f.ID,
		Description: f.Description,
		ParentID:    f.Annotation.ParentID,
		ParentName:  f.Annotation.ParentName,
		FragStart:   f.Annotation.FragStart,
		FragEnd:     f.Annotation.FragEnd,
		Seq:         string(f.Seq),
		Composition: comp,
		SourceFile:  sourceFile,
	}
}
