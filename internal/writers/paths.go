package writers

import (
	"path/filepath"
	"strings"

	"chopper/internal/fasta"
)

// StdinBase is the output base name used for input read from stdin.
const StdinBase = "stdin"

// Paths are the output files derived from one input file.
type Paths struct {
	FASTA string
	TSV   string
	JSONL string // empty unless JSONL output is enabled
}

// Base strips the directory and the last extension of input
// ("data/genome.fa" -> "genome", "x.fa.gz" -> "x.fa").
func Base(input string) string {
	if input == fasta.StdinPath {
		return StdinBase
	}
	b := filepath.Base(input)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// PathsFor returns the output paths in outDir for input.
func PathsFor(outDir, input string, jsonl bool) Paths {
	base := filepath.Join(outDir, Base(input)+"_frags")
	p := Paths{FASTA: base + ".fasta", TSV: base + ".tsv"}
	if jsonl {
		p.JSONL = base + ".jsonl"
	}
	return p
}
