// internal/fasta/reader.go
package fasta

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Record is one parsed FASTA entry. Seq keeps the case of the input.
type Record struct {
	ID          string
	Description string
	Seq         []byte
}
