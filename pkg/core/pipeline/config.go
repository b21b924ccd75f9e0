// Package pipeline wires ingestion, extraction, calculation, benchmarks and
// persistence into one analysis run.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"finsight/pkg/core/statement"
)

// =============================================================================
// CONFIGURATION - YAML-backed run settings
// =============================================================================

// Config carries the tunable behavior of an analysis run.
type Config struct {
	Extraction struct {
		// MatchPolicy decides which row wins on duplicate keyword matches:
		// "last" (default) or "first".
		MatchPolicy string `yaml:"match_policy"`
	} `yaml:"extraction"`

	Analysis struct {
		// Strict refuses to produce a result when any self-check fails.
		Strict bool `yaml:"strict"`
	} `yaml:"analysis"`

	Commentary struct {
		Model string `yaml:"model"`
	} `yaml:"commentary"`

	Benchmarks struct {
		// Path overrides the embedded benchmark dataset.
		Path string `yaml:"path"`
	} `yaml:"benchmarks"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	var c Config
	c.Extraction.MatchPolicy = string(statement.MatchLast)
	return c
}

// LoadConfig reads a YAML config file, filling omitted fields with defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	if c.Extraction.MatchPolicy == "" {
		c.Extraction.MatchPolicy = string(statement.MatchLast)
	}
	return c, nil
}

// MatchPolicy returns the configured extraction policy.
func (c Config) MatchPolicy() statement.MatchPolicy {
	if c.Extraction.MatchPolicy == string(statement.MatchFirst) {
		return statement.MatchFirst
	}
	return statement.MatchLast
}
