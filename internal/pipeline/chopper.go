// internal/pipeline/chopper.go
package pipeline

import "chopper/internal/engine"

// Chopper is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Chopper interface {
	Chop(parent engine.Parent, seq []byte) engine.Result
}
