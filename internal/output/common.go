package output

import (
	"strconv"
	"strings"
)

// TSVHeader is the canonical header row for the fragment table.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "id\tname\tparent_id\tparent_name\tfrag_start\tfrag_end\ta_pct\tc_pct\tg_pct\tt_pct"

// TableSymbols are the composition columns of the table, in column order.
var TableSymbols = []byte("ACGT")

// FASTAWidth is the line width of sequence lines in FASTA output.
const FASTAWidth = 60

// FormatFraction renders f with the shortest round-trip digits and always a
// decimal point, so 1 prints as "1.0" and 0.1 as "0.1".
func FormatFraction(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
