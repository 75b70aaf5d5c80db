// Package file loads smd configuration from a TOML file in the user's
// config directory. Configuration covers viewer defaults (which
// metrics start on the axes, the model file glob) and user-defined
// metric descriptors, so recognising a new pipeline annotation is an
// edit to config.toml, not a code change.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// ConfigFile is the configuration file base name.
const ConfigFile = "config.toml"

// Config is the on-disk configuration.
type Config struct {
	// DefaultXMetric and DefaultYMetric pick the axes shown first.
	DefaultXMetric string `toml:"default_x_metric"`
	DefaultYMetric string `toml:"default_y_metric"`

	// ModelGlob selects model files within each directory.
	ModelGlob string `toml:"model_glob"`

	// Metrics are user-defined metric descriptors, appended to the
	// built-in registry.
	Metrics []MetricConfig `toml:"metric"`
}

// MetricConfig describes one user-defined metric.
type MetricConfig struct {
	// Name is the metric's column name.
	Name string `toml:"name"`

	// Prefixes are the line prefixes identifying the metric's line.
	Prefixes []string `toml:"prefixes"`

	// Column is the whitespace-delimited token index carrying the
	// value. Zero means the conventional index 1, the token right
	// after the prefix.
	Column int `toml:"column"`

	// Title is an optional display title.
	Title string `toml:"title"`

	// Guide is an optional reference-line value.
	Guide *float64 `toml:"guide"`

	// Limits names the axis-limits policy: "minmax" (default),
	// "upper_percentile" or "lower_fraction".
	Limits string `toml:"limits"`

	// LimitsArg parameterises the policy: the percentile for
	// "upper_percentile", the fraction for "lower_fraction".
	LimitsArg float64 `toml:"limits_arg"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultXMetric: "loop_rmsd",
		DefaultYMetric: domain.TotalScore,
		ModelGlob:      "*.pdb*",
	}
}

// Load reads the configuration from configDir, defaulting to ~/.smd.
// An absent file yields the defaults; a malformed one is an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		configDir = filepath.Join(home, ".smd")
	}

	path := filepath.Join(configDir, ConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.ModelGlob == "" {
		cfg.ModelGlob = DefaultConfig().ModelGlob
	}
	return cfg, nil
}

// BuildRegistry returns the built-in metric registry extended with the
// configuration's user-defined metrics.
func (c *Config) BuildRegistry() (*domain.Registry, error) {
	registry := domain.DefaultRegistry()
	for _, mc := range c.Metrics {
		metric, err := mc.descriptor()
		if err != nil {
			return nil, err
		}
		if err := registry.Register(metric); err != nil {
			return nil, fmt.Errorf("configured metric %q: %w", mc.Name, err)
		}
	}
	return registry, nil
}

// descriptor converts a metric config block into a domain descriptor.
func (mc MetricConfig) descriptor() (domain.Metric, error) {
	column := mc.Column
	if column == 0 {
		column = 1
	}

	var limits domain.LimitsFunc
	switch mc.Limits {
	case "", "minmax":
		limits = nil
	case "upper_percentile":
		limits = domain.UpperPercentileLimits(mc.LimitsArg)
	case "lower_fraction":
		limits = domain.LowerFractionLimits(mc.LimitsArg)
	default:
		return domain.Metric{}, fmt.Errorf(
			"configured metric %q: unknown limits policy %q", mc.Name, mc.Limits)
	}

	return domain.Metric{
		Name:     mc.Name,
		Prefixes: mc.Prefixes,
		Column:   column,
		Title:    mc.Title,
		Limits:   limits,
		Guide:    mc.Guide,
	}, nil
}
