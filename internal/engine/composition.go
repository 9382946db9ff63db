package engine

import "sort"

// Composition maps an uppercase symbol to its fraction of a fragment.
// A symbol that does not occur has no entry; there are no zero values.
type Composition map[byte]float64

// NewComposition counts the case-folded symbols of seq and divides each
// count by len(seq). An empty seq yields an empty Composition.
func NewComposition(seq []byte) Composition {
	c := Composition{}
	if len(seq) == 0 {
		return c
	}
	var counts [256]int
	for _, b := range seq {
		counts[upper(b)]++
	}
	n := float64(len(seq))
	for sym, k := range counts {
		if k > 0 {
			c[byte(sym)] = float64(k) / n
		}
	}
	return c
}

// Fraction reports the fraction for sym (case-folded) and whether it occurs.
func (c Composition) Fraction(sym byte) (float64, bool) {
	f, ok := c[upper(sym)]
	return f, ok
}

// Symbols returns the observed symbols in ascending byte order.
func (c Composition) Symbols() []byte {
	out := make([]byte, 0, len(c))
	for s := range c {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total sums every fraction; 1 for a non-empty fragment up to rounding.
func (c Composition) Total() float64 {
	var t float64
	for _, s := range c.Symbols() {
		t += c[s]
	}
	return t
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
