package writers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"chopper/internal/engine"
	"chopper/internal/output"
)

// Reuse 64 KiB buffered writers across output files to avoid per-file mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Options control one file writer.
type Options struct {
	// Blank writes placeholder outputs when no fragment arrives.
	Blank bool
	// SourceFile is recorded in JSONL rows.
	SourceFile string
	BufSize    int
}

// Result reports what a file writer did once its input channel is closed.
type Result struct {
	Records int
	Written []string // paths created, in creation order
	Err     error
}

type outFile struct {
	path string
	fh   *os.File
	bw   *bufio.Writer
}

func create(path string) (*outFile, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(fh)
	return &outFile{path: path, fh: fh, bw: bw}, nil
}

func (o *outFile) Close() error {
	err := o.bw.Flush()
	o.bw.Reset(io.Discard)
	bwPool.Put(o.bw)
	if cerr := o.fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", o.path, err)
	}
	return nil
}

// fileSet holds the open outputs of one input file.
type fileSet struct {
	paths Paths
	files []*outFile
	fa    *outFile
	tsv   *outFile
	enc   *json.Encoder
}

func (s *fileSet) open() error {
	var err error
	if s.fa, err = s.add(s.paths.FASTA); err != nil {
		return err
	}
	if s.tsv, err = s.add(s.paths.TSV); err != nil {
		return err
	}
	if s.paths.JSONL != "" {
		jl, err := s.add(s.paths.JSONL)
		if err != nil {
			return err
		}
		s.enc = json.NewEncoder(jl.bw)
	}
	return nil
}

func (s *fileSet) add(path string) (*outFile, error) {
	f, err := create(path)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, f)
	return f, nil
}

func (s *fileSet) close() error {
	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

func (s *fileSet) written() []string {
	out := make([]string, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, f.path)
	}
	return out
}

// FileWriter writes the fragments of one input file from its own goroutine.
type FileWriter struct {
	in   chan engine.Fragment
	done chan Result

	// set before in is closed; read by the goroutine after its range ends
	inputFailed bool
}

// StartFileWriter spins up a writer goroutine for the fragments of one input
// file. Output files are created when the first fragment arrives; if none
// arrives they are created only with opt.Blank, holding a single empty line
// (the JSONL file stays empty).
func StartFileWriter(paths Paths, opt Options) *FileWriter {
	if opt.BufSize <= 0 {
		opt.BufSize = 64
	}
	w := &FileWriter{
		in:   make(chan engine.Fragment, opt.BufSize),
		done: make(chan Result, 1),
	}

	go func() {
		set := &fileSet{paths: paths}
		var res Result

		write := func(f engine.Fragment) error {
			if set.fa == nil {
				if err := set.open(); err != nil {
					return err
				}
				if err := output.WriteTSVHeader(set.tsv.bw); err != nil {
					return err
				}
			}
			if err := output.WriteFASTA(set.fa.bw, f); err != nil {
				return err
			}
			if err := output.WriteTSVRow(set.tsv.bw, f); err != nil {
				return err
			}
			if set.enc != nil {
				return set.enc.Encode(output.ToAPIFragment(f, opt.SourceFile))
			}
			return nil
		}

		for f := range w.in {
			if res.Err != nil {
				continue // drain so the producer never blocks
			}
			if err := write(f); err != nil {
				res.Err = err
				continue
			}
			res.Records++
		}

		if res.Err == nil && res.Records == 0 && opt.Blank && !w.inputFailed {
			res.Err = writeBlank(set)
		}
		res.Written = set.written()
		if err := set.close(); res.Err == nil {
			res.Err = err
		}
		w.done <- res
	}()

	return w
}

// Fragments is the input channel. Send only; call Close when done.
func (w *FileWriter) Fragments() chan<- engine.Fragment { return w.in }

// Close ends the input and waits for the writer. A non-nil inputErr means the
// input file failed, so no placeholder outputs are written for it.
func (w *FileWriter) Close(inputErr error) Result {
	w.inputFailed = inputErr != nil
	close(w.in)
	return <-w.done
}

func writeBlank(set *fileSet) error {
	if err := set.open(); err != nil {
		return err
	}
	if _, err := set.fa.bw.WriteString("\n"); err != nil {
		return err
	}
	_, err := set.tsv.bw.WriteString("\n")
	return err
}
