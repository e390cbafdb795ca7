// Package config defines the fontsession configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/yndnr/fontsession/internal/infra/confloader"
)

// Load builds the effective configuration.
//
// path names the YAML file; an empty path uses DefaultConfigPath and
// tolerates its absence. flags holds dotted keys from the command line;
// nil values are ignored.
func Load(path string, flags map[string]any) (*AppConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	cfg := Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(flags) > 0 {
		if err := loader.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal flags: %w", err)
		}
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
