// Package config loads optional workspace configuration from
// VQL/config.yaml. A missing file means defaults; a malformed file is an
// error, not a silent fallback.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up inside the VQL directory.
const FileName = "config.yaml"

// Config holds workspace-level settings.
type Config struct {
	// StrictIdentifiers enforces the single-character convention for
	// principle and asset-type short names.
	StrictIdentifiers bool `yaml:"strict_identifiers"`

	// ExtractRatings enables deriving a rating from review text when
	// none is given explicitly.
	ExtractRatings bool `yaml:"extract_ratings"`

	// StaleCheck refuses saves that would overwrite an externally
	// modified document.
	StaleCheck bool `yaml:"stale_check"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		StrictIdentifiers: true,
		ExtractRatings:    true,
		StaleCheck:        true,
	}
}

// Load reads config.yaml from a VQL directory. A missing file returns
// Default() without error.
func Load(vqlDir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(vqlDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return cfg, nil
}
