// Package config loads marbles configuration.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/marbles/config.toml
//  3. MARBLES_* environment variables
//
// Example file:
//
//	viz_type = "marble"
//	formats = ["svg", "html"]
//	shapes = ["circle", "square"]
//	remap_marker = "Map"
//
//	[features]
//	error_signals = true
//	shape_alternation = true
//	structured_values = true
//
//	[descriptions]
//	FluxHandle = "Handles each value with a custom callback."
//
// Environment variables use the same names, upper-cased: MARBLES_FORMATS=svg,png,
// MARBLES_FEATURES_ERROR_SIGNALS=false, MARBLES_DESCRIPTIONS=FluxHandle:Handles values.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/marble"
	"github.com/matzehuels/marbles/pkg/pipeline"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MARBLES_"

// Config holds user-configurable settings.
type Config struct {
	VizType      string            `toml:"viz_type" env:"VIZ_TYPE"`
	Formats      []string          `toml:"formats" env:"FORMATS" envSeparator:","`
	Scale        float64           `toml:"scale" env:"SCALE"`
	Shapes       []string          `toml:"shapes" env:"SHAPES" envSeparator:","`
	RemapMarker  string            `toml:"remap_marker" env:"REMAP_MARKER"`
	LegacyKeys   bool              `toml:"legacy_keys" env:"LEGACY_KEYS"`
	Features     marble.Features   `toml:"features" envPrefix:"FEATURES_"`
	Descriptions map[string]string `toml:"descriptions,omitempty" env:"DESCRIPTIONS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		VizType:     pipeline.DefaultVizType,
		Formats:     []string{pipeline.FormatSVG},
		Scale:       pipeline.DefaultScale,
		Shapes:      marble.Strings(marble.DefaultShapes),
		RemapMarker: marble.DefaultRemapMarker,
		Features:    marble.AllFeatures(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "marbles", "config.toml"), nil
}

// Load builds the effective configuration. An explicit path must exist;
// with path == "" the default location is used when present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse environment")
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := pipeline.ValidateVizType(c.VizType); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", c.Scale)
	}
	if _, err := marble.ParseShapes(c.Shapes); err != nil {
		return err
	}
	return errors.ValidateMarker(c.RemapMarker)
}

// PipelineOptions converts the configuration into generation options.
// The configuration must have passed Validate.
func (c Config) PipelineOptions() pipeline.Options {
	shapes, _ := marble.ParseShapes(c.Shapes)
	features := c.Features
	return pipeline.Options{
		LegacyKeys:   c.LegacyKeys,
		VizType:      c.VizType,
		Shapes:       shapes,
		RemapMarker:  c.RemapMarker,
		Features:     &features,
		Descriptions: c.Descriptions,
		Formats:      slices.Clone(c.Formats),
		Scale:        c.Scale,
	}
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
