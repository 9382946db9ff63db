// internal/engine/window.go
package engine

import "fmt"

// Window is an inclusive, 0-based [Start, End] range into a sequence.
type Window struct {
	Start int
	End   int
}

// Len returns the number of positions covered by w.
func (w Window) Len() int { return w.End - w.Start + 1 }

func (w Window) String() string { return fmt.Sprintf("%d-%d", w.Start, w.End) }

// Generate returns the ordered windows of fragLen positions stepping by
// fragLen-overlap across a sequence of seqLen positions.
//
// The first window (0, fragLen-1) is always returned, even when it runs past
// the sequence; callers admit sequences with Params.Check first. A candidate
// window that would run past the end stops the walk and is dropped, so a
// trailing run of fewer than fragLen-overlap positions can stay uncovered.
// No shorter final window is ever produced.
//
// Generate panics if the walk needs to advance with a step below 1.
func Generate(seqLen, fragLen, overlap int) []Window {
	step := fragLen - overlap
	last := seqLen - 1

	out := []Window{{Start: 0, End: fragLen - 1}}
	for cur := out[0]; cur.End < last; {
		if step < 1 {
			panic(fmt.Sprintf("engine: window step %d (length %d, overlap %d) never advances", step, fragLen, overlap))
		}
		next := Window{Start: cur.Start + step}
		next.End = next.Start + fragLen - 1
		if next.End > last {
			break // overshoot: no partial tail
		}
		out = append(out, next)
		cur = next
	}
	return out
}

// Uncovered returns how many trailing positions of a seqLen sequence the
// windows leave out.
func Uncovered(seqLen int, ws []Window) int {
	if len(ws) == 0 {
		return seqLen
	}
	if n := seqLen - 1 - ws[len(ws)-1].End; n > 0 {
		return n
	}
	return 0
}
