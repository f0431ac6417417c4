package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load builds a Config the way cmd/tempo's loadConfig does: defaults are
// registered onto fs first, then overlaid with configPath's contents (if
// non-empty), so a config file overlays flag defaults and the command
// line overlays both. fs is typically flag.CommandLine with the caller's
// own flags already registered; Load does not call fs.Parse itself, so
// the caller can add flags of its own before parsing.
func Load(fs *flag.FlagSet, configPath string) (*Config, error) {
	cfg := &Config{}
	cfg.RegisterFlags(fs)

	if configPath != "" {
		buf, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", configPath)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parsing %s", configPath)
		}
	}

	return cfg, nil
}
