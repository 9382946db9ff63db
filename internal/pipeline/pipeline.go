// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"chopper/internal/engine"
	"chopper/internal/fasta"
)

// Config controls the per-file pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Stats counts what one file produced.
type Stats struct {
	Sequences int
	Skipped   int
	Fragments int
}

// ChopFile reads every record of path, fragments it on cfg.Threads workers,
// and calls visit once per record in file order. Fragments inside a Result
// are already in ordinal order, so output never depends on scheduling.
// It returns the first error encountered (including context cancellation).
func ChopFile(
	ctx context.Context,
	cfg Config,
	path string,
	ch Chopper,
	visit func(engine.Result) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		idx int
		rec fasta.Record
	}
	type done struct {
		idx int
		res engine.Result
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan done, cfg.Threads*2)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		idx := 0
		err := fasta.ScanPath(gctx, path, func(r fasta.Record) error {
			select {
			case jobs <- job{idx: idx, rec: r}:
				idx++
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		return nil
	})

	// Workers
	workers, wctx := errgroup.WithContext(gctx)
	for w := 0; w < cfg.Threads; w++ {
		workers.Go(func() error {
			for j := range jobs {
				res := ch.Chop(engine.Parent{ID: j.rec.ID, Description: j.rec.Description}, j.rec.Seq)
				select {
				case results <- done{idx: j.idx, res: res}:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Collector: re-sequence by record index before visiting.
	var st Stats
	g.Go(func() error {
		pending := make(map[int]engine.Result)
		next := 0
		for d := range results {
			pending[d.idx] = d.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				st.Sequences++
				if res.Skip != nil {
					st.Skipped++
				}
				st.Fragments += len(res.Fragments)
				if err := visit(res); err != nil {
					return err
				}
			}
		}
		return nil
	})

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return st, err
}
