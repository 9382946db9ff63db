// internal/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes every closer in order when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" is stdin; gzip input is detected by
// magic number (1F 8B) or a .gz suffix. The input is never seeked, so pipes
// and FIFOs work.
func Open(path string) (io.ReadCloser, error) {
	var (
		src io.Reader
		c   io.Closer = io.NopCloser(nil)
	)
	if path == StdinPath {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src, c = fh, fh
	}

	br := bufio.NewReaderSize(src, 64*1024)
	sig, _ := br.Peek(2)
	gz := len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b
	if !gz && strings.HasSuffix(path, ".gz") {
		gz = true
	}
	if !gz {
		return &multiReadCloser{Reader: br, closers: []io.Closer{c}}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, c}}, nil
}
