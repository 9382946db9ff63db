// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chopper/internal/engine"
	"chopper/internal/pipeline"
	"chopper/internal/report"
	"chopper/internal/runutil"
	"chopper/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags or configuration; nothing processed
	ExitRuntime  = 3 // an input or output file failed
	ExitCanceled = 130
)

// Options are the resolved settings of one run.
type Options struct {
	Inputs  []string
	Params  engine.Params
	OutDir  string
	Blank   bool
	JSONL   bool
	Summary string
	Threads int
}

// Run fragments every input and writes per-file outputs under o.OutDir.
// Progress lines go to stdout, diagnostics to logger. It returns the exit code.
func Run(parent context.Context, stdout io.Writer, logger zerolog.Logger, o Options) int {
	chopper, err := engine.New(o.Params)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return ExitUsage
	}
	if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
		logger.Error().Err(err).Str("out_dir", o.OutDir).Msg("create output directory")
		return ExitRuntime
	}

	groups := outputGroups(o)
	thr := runutil.EffectiveThreads(o.Threads)
	fileLimit, workers := runutil.SplitThreads(thr, len(groups))

	sum := report.New(o.Params, o.Inputs)
	logger = logger.With().Str("run_id", sum.RunID).Logger()
	logger.Debug().
		Int("length", o.Params.Length).
		Int("overlap", o.Params.Overlap).
		Int("threads", thr).
		Int("workers_per_file", workers).
		Int("files", len(o.Inputs)).
		Msg("starting run")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var failed atomic.Bool
	g := new(errgroup.Group)
	g.SetLimit(fileLimit)
	for _, group := range groups {
		group := group
		if len(group) > 1 {
			shared := make([]string, 0, len(group))
			for _, i := range group {
				shared = append(shared, o.Inputs[i])
			}
			logger.Warn().
				Str("output", writers.PathsFor(o.OutDir, shared[0], o.JSONL).FASTA).
				Strs("inputs", shared).
				Msg("inputs share an output path; processing them in order, the last one wins")
		}
		g.Go(func() error {
			for _, i := range group {
				in := o.Inputs[i]
				if err := chopFile(ctx, logger, chopper, sum, i, in, o, workers); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					failed.Store(true)
					sum.Update(i, func(f *report.File) { f.Error = err.Error() })
					logger.Error().Err(err).Str("file", in).Msg("file failed")
				}
			}
			return nil
		})
	}
	gerr := g.Wait()

	outw := bufio.NewWriter(stdout)
	if werr := printProgress(outw, sum, o.Blank); writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		logger.Error().Err(werr).Msg("write stdout")
		return ExitRuntime
	}

	if o.Summary != "" {
		if err := sum.WriteFile(o.Summary); err != nil {
			logger.Error().Err(err).Msg("write summary")
			failed.Store(true)
		}
	}

	seqs, skipped, frags := sum.Totals()
	logger.Info().
		Int("files", len(o.Inputs)).
		Int("sequences", seqs).
		Int("skipped", skipped).
		Int("fragments", frags).
		Msg("run finished")

	switch {
	case gerr != nil || parent.Err() != nil:
		return ExitCanceled
	case failed.Load():
		return ExitRuntime
	}
	return ExitOK
}

// outputGroups partitions the input indexes by output path, keeping input
// order inside each group. Inputs of one group must not run concurrently.
func outputGroups(o Options) [][]int {
	seen := make(map[string]int, len(o.Inputs))
	var groups [][]int
	for i, in := range o.Inputs {
		key := writers.PathsFor(o.OutDir, in, o.JSONL).FASTA
		if g, ok := seen[key]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		seen[key] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}

// chopFile runs one input through the pipeline into its own writers.
func chopFile(
	ctx context.Context,
	logger zerolog.Logger,
	ch *engine.Chopper,
	sum *report.Summary,
	i int,
	in string,
	o Options,
	threads int,
) error {
	flog := logger.With().Str("file", in).Logger()
	paths := writers.PathsFor(o.OutDir, in, o.JSONL)
	fw := writers.StartFileWriter(paths, writers.Options{
		Blank:      o.Blank,
		SourceFile: in,
		BufSize:    threads * 4,
	})

	st, perr := pipeline.ChopFile(ctx, pipeline.Config{Threads: threads}, in, ch,
		func(r engine.Result) error {
			if r.Skip != nil {
				sum.AddSkip(i, *r.Skip)
				flog.Warn().
					Str("seq_id", r.Skip.SeqID).
					Int("seq_len", r.Skip.SeqLen).
					Int("length", r.Skip.Length).
					Int("overlap", r.Skip.Overlap).
					Int("min_overlap", r.Skip.MinOverlap).
					Str("reason", string(r.Skip.Reason)).
					Msg(r.Skip.String() + ". Skipping.")
				return nil
			}
			if r.Uncovered > 0 {
				flog.Debug().
					Str("seq_id", r.Parent.ID).
					Int("uncovered", r.Uncovered).
					Msg("trailing bases not covered by any fragment")
			}
			for _, f := range r.Fragments {
				select {
				case fw.Fragments() <- f:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		},
	)
	res := fw.Close(perr)

	sum.Update(i, func(f *report.File) {
		f.Sequences = st.Sequences
		f.Skipped = st.Skipped
		f.Fragments = res.Records
		f.Outputs = res.Written
	})
	if perr != nil {
		return perr
	}
	if res.Err != nil {
		return res.Err
	}
	flog.Info().
		Int("sequences", st.Sequences).
		Int("skipped", st.Skipped).
		Int("fragments", res.Records).
		Msg("file done")
	return nil
}

// printProgress writes the per-file "Wrote" lines in input order, then the
// closing "Done" line.
func printProgress(w *bufio.Writer, sum *report.Summary, blank bool) error {
	for _, f := range sum.Files {
		if f.Error != "" || len(f.Outputs) == 0 {
			continue
		}
		if f.Fragments == 0 && !blank {
			continue
		}
		if _, err := fmt.Fprintf(w, "Wrote %d records to \"%s\".\n", f.Fragments, f.Outputs[0]); err != nil {
			return err
		}
	}
	n := len(sum.Files)
	plural := "s"
	if n == 1 {
		plural = ""
	}
	if _, err := fmt.Fprintf(w, "Done. Processed %d file%s.\n", n, plural); err != nil {
		return err
	}
	return w.Flush()
}
