// Package report collects per-file run statistics and writes them as YAML.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"chopper/internal/engine"
)

// Skip is one skipped sequence as it appears in the summary.
type Skip struct {
	SeqID      string `yaml:"seq_id"`
	Reason     string `yaml:"reason"`
	SeqLen     int    `yaml:"seq_len"`
	MinOverlap int    `yaml:"min_overlap"`
}

// File is the summary of one input file.
type File struct {
	Input     string   `yaml:"input"`
	Sequences int      `yaml:"sequences"`
	Skipped   int      `yaml:"skipped"`
	Fragments int      `yaml:"fragments"`
	Outputs   []string `yaml:"outputs,omitempty"`
	Skips     []Skip   `yaml:"skips,omitempty"`
	Error     string   `yaml:"error,omitempty"`
}

// Summary is the whole run. Files keep the order of the inputs.
type Summary struct {
	RunID   string `yaml:"run_id"`
	Length  int    `yaml:"length"`
	Overlap int    `yaml:"overlap"`
	Files   []File `yaml:"files"`

	mu sync.Mutex
}

// New starts a summary with a fresh run ID and one slot per input.
func New(p engine.Params, inputs []string) *Summary {
	s := &Summary{
		RunID:   uuid.NewString(),
		Length:  p.Length,
		Overlap: p.Overlap,
		Files:   make([]File, len(inputs)),
	}
	for i, in := range inputs {
		s.Files[i].Input = in
	}
	return s
}

// Update applies fn to the i-th file entry. Safe for concurrent use.
func (s *Summary) Update(i int, fn func(*File)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.Files[i])
}

// AddSkip records sk on the i-th file entry.
func (s *Summary) AddSkip(i int, sk engine.Skip) {
	s.Update(i, func(f *File) {
		f.Skips = append(f.Skips, Skip{
			SeqID:      sk.SeqID,
			Reason:     string(sk.Reason),
			SeqLen:     sk.SeqLen,
			MinOverlap: sk.MinOverlap,
		})
	})
}

// Totals sums fragments over all files.
func (s *Summary) Totals() (sequences, skipped, fragments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.Files {
		sequences += f.Sequences
		skipped += f.Skipped
		fragments += f.Fragments
	}
	return sequences, skipped, fragments
}

// Encode writes s as YAML.
func (s *Summary) Encode(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes s as YAML to path.
func (s *Summary) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if err := s.Encode(fh); err != nil {
		_ = fh.Close()
		return fmt.Errorf("summary %s: %w", path, err)
	}
	return fh.Close()
}
