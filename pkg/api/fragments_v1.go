// pkg/api/fragments_v1.go
package api

// FragmentV1 is the stable JSONL schema for one fragment.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type FragmentV1 struct {
	ID          string `json:"id"`
	Description string `json:"name"`
	ParentID    string `json:"parent_id"`
	ParentName  string `json:"parent_name"`
	FragStart   int    `json:"frag_start"` // 1-based, inclusive
	FragEnd     int    `json:"frag_end"`   // 1-based, inclusive
	Seq         string `json:"seq"`

	// Composition holds only the symbols present in Seq.
	Composition map[string]float64 `json:"composition"`
	SourceFile  string             `json:"source_file,omitempty"`
}
