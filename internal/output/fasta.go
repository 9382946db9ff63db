package output

import (
	"io"

	"chopper/internal/engine"
)

// WriteFASTA writes f as one FASTA entry: ">ID Description" then the sequence
// wrapped at FASTAWidth columns.
func WriteFASTA(w io.Writer, f engine.Fragment) error {
	buf := make([]byte, 0, len(f.ID)+len(f.Description)+len(f.Seq)+len(f.Seq)/FASTAWidth+4)
	buf = append(buf, '>')
	buf = append(buf, f.ID...)
	if f.Description != "" {
		buf = append(buf, ' ')
		buf = append(buf, f.Description...)
	}
	buf = append(buf, '\n')
	buf = appendWrapped(buf, f.Seq, FASTAWidth)
	_, err := w.Write(buf)
	return err
}

func appendWrapped(dst, seq []byte, width int) []byte {
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		dst = append(dst, seq[i:end]...)
		dst = append(dst, '\n')
	}
	return dst
}
