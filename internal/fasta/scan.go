// internal/fasta/scan.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Scan reads FASTA records from r and calls emit once per record, in file
// order. Text before the first header is ignored, as are blank lines.
// Cancellation via ctx is checked between lines.
//
// Return a non-nil error from emit (e.g. ctx.Err()) to stop early.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur    *Record
		seq    = make([]byte, 0, 1<<16)
		lineNo int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		cur.Seq = append([]byte(nil), seq...)
		rec := *cur
		cur = nil
		seq = seq[:0]
		return emit(rec)
	}

	for sc.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id, desc := ParseHeader(line[1:])
			cur = &Record{ID: id, Description: desc}
			continue
		}
		if cur == nil {
			continue
		}
		seq = appendResidues(seq, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan line %d: %w", lineNo+1, err)
	}
	return flush()
}

// ScanPath opens path (see Open) and scans it.
func ScanPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Scan(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ParseHeader splits a header line (without '>') into the record ID, the
// first whitespace-delimited token, and the description, the whole line.
func ParseHeader(h []byte) (id, desc string) {
	desc = string(bytes.TrimSpace(h))
	if f := bytes.Fields(h); len(f) > 0 {
		id = string(f[0])
	}
	return id, desc
}

// appendResidues appends line to dst without embedded spaces or tabs.
func appendResidues(dst, line []byte) []byte {
	if bytes.IndexAny(line, " \t") < 0 {
		return append(dst, line...)
	}
	for _, b := range line {
		if b != ' ' && b != '\t' {
			dst = append(dst, b)
		}
	}
	return dst
}
