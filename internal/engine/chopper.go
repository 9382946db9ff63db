package engine

// Result is the outcome of fragmenting one sequence: either the ordered
// fragments or the reason the sequence was skipped.
type Result struct {
	Parent    Parent
	Fragments []Fragment
	Skip      *Skip

	// Uncovered counts trailing positions no window reached.
	Uncovered int
}

// Chopper fragments sequences with one validated Params. It holds no mutable
// state and is safe for concurrent use.
type Chopper struct {
	p Params
}

// New validates p once for the whole run.
func New(p Params) (*Chopper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Chopper{p: p}, nil
}

// Params returns the run parameters.
func (c *Chopper) Params() Params { return c.p }

// Chop admits seq with Params.Check, then annotates every generated window in
// order. Ordinals start at 1.
func (c *Chopper) Chop(parent Parent, seq []byte) Result {
	res := Result{Parent: parent}
	if skip := c.p.Check(parent.ID, len(seq)); skip != nil {
		res.Skip = skip
		return res
	}
	ws := Generate(len(seq), c.p.Length, c.p.Overlap)
	res.Fragments = make([]Fragment, 0, len(ws))
	for i, w := range ws {
		res.Fragments = append(res.Fragments, Annotate(seq, w, i+1, parent))
	}
	res.Uncovered = Uncovered(len(seq), ws)
	return res
}
