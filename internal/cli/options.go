// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"chopper/internal/config"
	"chopper/internal/engine"
)

// Flag names. The short forms follow the original tool.
const (
	FlagOutDir    = "out_dir"
	FlagLength    = "length"
	FlagOverlap   = "overlap"
	FlagBlank     = "blank"
	FlagJSONL     = "jsonl"
	FlagSummary   = "summary"
	FlagThreads   = "threads"
	FlagEnvFile   = "env-file"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Inputs []string

	// Fragmenting
	Length  int
	Overlap int

	// Output
	OutDir  string
	Blank   bool
	JSONL   bool
	Summary string

	// Performance
	Threads int

	// Ambient
	EnvFile   string
	LogLevel  string
	LogFormat string
}

// Bind registers every flag on fs. Defaults shown in help are the built-in
// ones; Resolve replaces values of flags the user did not set.
func Bind(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.OutDir, FlagOutDir, "o", config.DefaultOutDir, "output directory")
	fs.IntVarP(&o.Length, FlagLength, "l", config.DefaultLength, "segment length (b)")
	fs.IntVarP(&o.Overlap, FlagOverlap, "v", config.DefaultOverlap, "overlap length (b)")
	fs.BoolVarP(&o.Blank, FlagBlank, "b", false, "write blank outputs when no fragment results")
	fs.BoolVar(&o.JSONL, FlagJSONL, false, "also write <base>_frags.jsonl")
	fs.StringVar(&o.Summary, FlagSummary, "", "write a YAML run summary to FILE")
	fs.IntVarP(&o.Threads, FlagThreads, "t", config.DefaultThreads, "worker threads (0 = all CPUs)")
	fs.StringVar(&o.EnvFile, FlagEnvFile, "", "path to .env file (default: .env in current directory)")
	fs.StringVar(&o.LogLevel, FlagLogLevel, config.DefaultLogLevel, "log level: DEBUG, INFO, WARN, ERROR")
	fs.StringVar(&o.LogFormat, FlagLogFormat, config.DefaultLogFormat, "log format: pretty, json")
}

// Resolve fills every flag the user left unset from env. Flags win.
func Resolve(fs *pflag.FlagSet, o *Options, env config.EnvConfig) {
	if !fs.Changed(FlagOutDir) {
		o.OutDir = env.OutDir
	}
	if !fs.Changed(FlagLength) {
		o.Length = env.Length
	}
	if !fs.Changed(FlagOverlap) {
		o.Overlap = env.Overlap
	}
	if !fs.Changed(FlagBlank) {
		o.Blank = env.Blank
	}
	if !fs.Changed(FlagThreads) {
		o.Threads = env.Threads
	}
	if !fs.Changed(FlagLogLevel) {
		o.LogLevel = env.LogLevel
	}
	if !fs.Changed(FlagLogFormat) {
		o.LogFormat = env.LogFormat
	}
}

// Params returns the engine parameters of o.
func (o Options) Params() engine.Params {
	return engine.Params{Length: o.Length, Overlap: o.Overlap}
}

// Validate checks usage errors. Fragment parameters are checked by the
// engine, which owns those rules.
func (o Options) Validate() error {
	if len(o.Inputs) == 0 {
		return errors.New("at least one input FILE is required")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if o.OutDir == "" {
		return errors.New("--out_dir must not be empty")
	}
	switch strings.ToLower(o.LogFormat) {
	case config.LogFormatPretty, config.LogFormatJSON:
	default:
		return fmt.Errorf("invalid --log-format %q", o.LogFormat)
	}
	stdin := 0
	for _, in := range o.Inputs {
		if in == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin ('-') may be given only once")
	}
	return nil
}
