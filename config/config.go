// Package config provides configuration loading and management for
// semlint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semlint/linter"
)

// Config represents the complete semlint configuration.
type Config struct {
	Model   ModelConfig        `yaml:"model"`
	Lint    linter.TermsConfig `yaml:"lint"`
	Output  OutputConfig       `yaml:"output"`
	Watch   WatchConfig        `yaml:"watch"`
	Metrics MetricsConfig      `yaml:"metrics"`
}

// ModelConfig configures model document discovery.
type ModelConfig struct {
	// Paths are doublestar glob patterns for model JSON documents.
	Paths []string `yaml:"paths"`
}

// OutputConfig configures diagnostic rendering.
type OutputConfig struct {
	// Format selects the renderer: "text" or "json".
	Format string `yaml:"format"`
	// NoColor disables severity coloring for the text format.
	NoColor bool `yaml:"noColor"`
}

// WatchConfig configures the re-lint loop.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before
	// re-linting.
	DebounceDelay time.Duration `yaml:"debounceDelay"`
	// ExcludeDirs lists directory names to skip (e.g. ".git").
	ExcludeDirs []string `yaml:"excludeDirs"`
}

// MetricsConfig configures the prometheus endpoint served in watch
// mode.
type MetricsConfig struct {
	// Enabled turns the /metrics endpoint on.
	Enabled bool `yaml:"enabled"`
	// Listen is the address to serve metrics on.
	Listen string `yaml:"listen"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Paths: []string{"**/*.model.json"},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			DebounceDelay: 500 * time.Millisecond,
			ExcludeDirs:   []string{".git", "node_modules", "vendor"},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9437",
		},
	}
}

// Validate checks that the configuration is valid. Term-map mistakes
// are rejected here, before any model is loaded, in addition to the
// check at term-table construction.
func (c *Config) Validate() error {
	if len(c.Model.Paths) == 0 {
		return fmt.Errorf("model.paths is required")
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format)
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounceDelay must not be negative")
	}
	if len(c.Lint.AppendNoninclusiveTerms) > 0 && len(c.Lint.ReplaceNoninclusiveTerms) > 0 {
		return fmt.Errorf("lint: cannot specify both appendNoninclusiveTerms and replaceNoninclusiveTerms")
	}
	for term := range c.Lint.AppendNoninclusiveTerms {
		if term == "" {
			return fmt.Errorf("lint.appendNoninclusiveTerms: empty string is not a valid term")
		}
	}
	for term := range c.Lint.ReplaceNoninclusiveTerms {
		if term == "" {
			return fmt.Errorf("lint.replaceNoninclusiveTerms: empty string is not a valid term")
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file layered over the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Model
	if len(other.Model.Paths) > 0 {
		c.Model.Paths = other.Model.Paths
	}

	// Lint
	if len(other.Lint.AppendNoninclusiveTerms) > 0 {
		c.Lint.AppendNoninclusiveTerms = other.Lint.AppendNoninclusiveTerms
	}
	if len(other.Lint.ReplaceNoninclusiveTerms) > 0 {
		c.Lint.ReplaceNoninclusiveTerms = other.Lint.ReplaceNoninclusiveTerms
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.NoColor {
		c.Output.NoColor = true
	}

	// Watch
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}

	// Metrics
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}
	if other.Metrics.Listen != "" {
		c.Metrics.Listen = other.Metrics.Listen
	}
}
