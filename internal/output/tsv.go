package output

import (
	"io"
	"strconv"

	"chopper/internal/engine"
)

// WriteTSVHeader writes TSVHeader and a newline.
func WriteTSVHeader(w io.Writer) error {
	_, err := io.WriteString(w, TSVHeader+"\n")
	return err
}

// WriteTSVRow writes one table row for f. Composition columns follow
// TableSymbols; a symbol absent from the fragment renders as 0.0.
func WriteTSVRow(w io.Writer, f engine.Fragment) error {
	a := f.Annotation
	row := make([]byte, 0, 128)
	row = appendField(row, f.ID)
	row = appendField(row, f.Description)
	row = appendField(row, a.ParentID)
	row = appendField(row, a.ParentName)
	row = appendField(row, strconv.Itoa(a.FragStart))
	row = appendField(row, strconv.Itoa(a.FragEnd))
	for _, sym := range TableSymbols {
		v, _ := a.Composition.Fraction(sym)
		row = appendField(row, FormatFraction(v))
	}
	row[len(row)-1] = '\n'
	_, err := w.Write(row)
	return err
}

func appendField(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, '\t')
}
