// Package config provides run configuration defaults from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix (CHOPPER_LENGTH, ...).
const Prefix = "CHOPPER"

// Default configuration values.
const (
	DefaultOutDir    = "out"
	DefaultLength    = 100
	DefaultOverlap   = 10
	DefaultThreads   = 0
	DefaultLogLevel  = "INFO"
	DefaultLogFormat = LogFormatPretty
)

// LogFormat values.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// EnvConfig holds environment-based defaults for the chopper command.
// Command line flags override every field.
type EnvConfig struct {
	// OutDir is the output directory.
	// Env: CHOPPER_OUT_DIR (default: out)
	OutDir string `envconfig:"OUT_DIR" default:"out"`

	// Length is the fragment length in bases.
	// Env: CHOPPER_LENGTH (default: 100)
	Length int `envconfig:"LENGTH" default:"100"`

	// Overlap is the number of bases shared by consecutive fragments.
	// Env: CHOPPER_OVERLAP (default: 10)
	Overlap int `envconfig:"OVERLAP" default:"10"`

	// Blank writes placeholder outputs for inputs without fragments.
	// Env: CHOPPER_BLANK (default: false)
	Blank bool `envconfig:"BLANK" default:"false"`

	// Threads is the worker count per file (0 = all CPUs).
	// Env: CHOPPER_THREADS (default: 0)
	Threads int `envconfig:"THREADS" default:"0"`

	// LogLevel is the log verbosity level.
	// Env: CHOPPER_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: CHOPPER_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadFromEnv loads configuration from CHOPPER_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != LogFormatPretty && cfg.LogFormat != LogFormatJSON {
		return EnvConfig{}, fmt.Errorf("%s_LOG_FORMAT: invalid value %q", Prefix, cfg.LogFormat)
	}
	return cfg, nil
}

// Load reads envFile (see LoadDotEnv) and then the environment.
func Load(envFile string) (EnvConfig, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return EnvConfig{}, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := LoadFromEnv()
	if err != nil {
		return EnvConfig{}, fmt.Errorf("load environment: %w", err)
	}
	return cfg, nil
}
