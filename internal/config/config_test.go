package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterFlagsDefaults(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	require.Equal(t, 256, cfg.InitialSize)
	require.Equal(t, 1, cfg.NumWorkers)
	require.Equal(t, ":9090", cfg.MetricsAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestRegisterFlagsOverride(t *testing.T) {
	var cfg Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-num-workers", "8", "-log-level", "debug"}))

	require.Equal(t, 8, cfg.NumWorkers)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Config{NumWorkers: 0, InitialSize: 64, LogLevel: "info"}
	require.Error(t, cfg.Validate())

	cfg = Config{NumWorkers: 1, InitialSize: -1, LogLevel: "info"}
	require.Error(t, cfg.Validate())

	cfg = Config{NumWorkers: 1, InitialSize: 64, LogLevel: "verbose"}
	require.Error(t, cfg.Validate())

	cfg = Config{NumWorkers: 1, InitialSize: 64, LogLevel: "warn"}
	require.NoError(t, cfg.Validate())
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_workers: 4\nlog_level: warn\n"), 0o644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, path)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(nil))

	require.Equal(t, 4, cfg.NumWorkers)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, 256, cfg.InitialSize) // untouched by the file, keeps its flag default
}

func TestLoadWithoutPathUsesFlagDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.NoError(t, fs.Parse(nil))
	require.Equal(t, 256, cfg.InitialSize)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := Load(fs, "/nonexistent/config.yaml")
	require.Error(t, err)
}
