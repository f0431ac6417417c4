// Package config loads the settings that size and place a running
// harmonydict process: table geometry, worker count, metrics exposure, and
// log level. It follows the cortex/dskit convention used throughout the
// teacher repo's cmd/frigg/app: a yaml-tagged struct with a RegisterFlags
// method, so the same fields can be set from a config file or overridden
// from the command line.
package config

import (
	"flag"

	"github.com/pkg/errors"
)

// Config is the root configuration for a harmonydict process.
type Config struct {
	// InitialSize is the starting bucket-array length for every intern
	// table the process constructs. Zero defaults to 256 in pkg/dict.
	InitialSize int `yaml:"initial_size"`

	// NumWorkers is the number of concurrent-phase workers. It must be
	// fixed for the lifetime of a table (see pkg/dict.Config.NumWorkers).
	NumWorkers int `yaml:"num_workers"`

	// MetricsAddr is the listen address for the Prometheus /metrics
	// endpoint, e.g. ":9090". Empty disables metrics serving.
	MetricsAddr string `yaml:"metrics_listen_address"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// RegisterFlags wires every field onto f, so a caller can do:
//
//	var cfg config.Config
//	cfg.RegisterFlags(flag.CommandLine)
//	flag.Parse()
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.IntVar(&c.InitialSize, "initial-size", 256, "starting bucket-array length for intern tables")
	f.IntVar(&c.NumWorkers, "num-workers", 1, "number of concurrent-phase workers")
	f.StringVar(&c.MetricsAddr, "metrics-addr", ":9090", "listen address for the /metrics endpoint, empty to disable")
	f.StringVar(&c.LogLevel, "log-level", "info", "one of debug, info, warn, error")
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate rejects configurations the rest of the process cannot act on:
// a non-positive worker count (the promotion matrix is sized by it), a
// negative initial size, and an unrecognized log level
// (pkg/util/log.SetLevel would otherwise silently fall back to "info").
func (c *Config) Validate() error {
	if c.NumWorkers <= 0 {
		return errors.Errorf("config: num_workers must be positive, got %d", c.NumWorkers)
	}
	if c.InitialSize < 0 {
		return errors.Errorf("config: initial_size must be non-negative, got %d", c.InitialSize)
	}
	if !validLogLevels[c.LogLevel] {
		return errors.Errorf("config: unrecognized log_level %q", c.LogLevel)
	}
	return nil
}
