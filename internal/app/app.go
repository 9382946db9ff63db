// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chopper/internal/appcore"
	"chopper/internal/cli"
	"chopper/internal/config"
	"chopper/internal/log"
	"chopper/internal/version"
)

const long = `Chop genome(s) into simulated contigs.

Each FILE is a FASTA file (plain or gzip; '-' reads stdin). Every sequence is
cut into fragments of --length bases, consecutive fragments sharing --overlap
bases. For FILE "dir/genome.fa" the fragments are written to
<out_dir>/genome_frags.fasta and annotated in <out_dir>/genome_frags.tsv.
Inputs that map to the same output files are processed in order; the last
one wins.

A sequence is skipped with a warning when it is shorter than --length or when
--overlap is below its minimum overlap, 2 * length - sequence length.

Defaults can be set with CHOPPER_OUT_DIR, CHOPPER_LENGTH, CHOPPER_OVERLAP,
CHOPPER_BLANK, CHOPPER_THREADS, CHOPPER_LOG_LEVEL and CHOPPER_LOG_FORMAT, in the
environment or in a .env file. Flags override them.`

// newRootCmd builds the chopper command; *code receives the exit code of a
// run that got past flag parsing.
func newRootCmd(ctx context.Context, stdout, stderr io.Writer, code *int) *cobra.Command {
	var opts cli.Options

	cmd := &cobra.Command{
		Use:           "chopper [flags] FILE...",
		Short:         "Chop genome(s) into simulated contigs",
		Long:          long,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				*code = appcore.ExitOK
				return cmd.Help()
			}
			opts.Inputs = args

			env, err := config.Load(opts.EnvFile)
			if err != nil {
				return err
			}
			cli.Resolve(cmd.Flags(), &opts, env)
			if err := opts.Validate(); err != nil {
				return err
			}

			logger := log.New(stderr, opts.LogFormat, opts.LogLevel)
			*code = appcore.Run(ctx, stdout, logger, appcore.Options{
				Inputs:  opts.Inputs,
				Params:  opts.Params(),
				OutDir:  opts.OutDir,
				Blank:   opts.Blank,
				JSONL:   opts.JSONL,
				Summary: opts.Summary,
				Threads: opts.Threads,
			})
			return nil
		},
	}
	cmd.SetVersionTemplate("chopper version {{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cli.Bind(cmd.Flags(), &opts)
	return cmd
}

// RunContext parses argv, runs the command, and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{} // never fall back to os.Args
	}
	code := appcore.ExitOK
	cmd := newRootCmd(ctx, stdout, stderr, &code)
	cmd.SetArgs(argv)
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return appcore.ExitUsage
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
