// Package config provides the YAML-backed defaults for geoio I/O behavior:
// shift handling policy, precision thresholds and log streaming.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/geom"
)

// ShiftConfig controls the coordinate shift negotiation defaults.
type ShiftConfig struct {
	// Mode is one of "none", "ask", "auto".
	Mode string `yaml:"mode"`
	// MaxCoordinateAbs is the magnitude threshold that triggers a shift.
	// Zero means the built-in default.
	MaxCoordinateAbs float64 `yaml:"max_coordinate_abs"`
	// PreserveOnSave restores negotiated shifts on re-save.
	PreserveOnSave bool `yaml:"preserve_on_save"`
}

// LoggingConfig controls local log level and optional remote streaming.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
	// NATSURL enables remote log streaming when non-empty.
	NATSURL string `yaml:"nats_url"`
}

// Config is the complete geoio configuration.
type Config struct {
	Shift   ShiftConfig   `yaml:"shift"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is supplied:
// automatic shift handling with the built-in threshold, shifts preserved
// on save, info-level local logging only.
func DefaultConfig() Config {
	return Config{
		Shift: ShiftConfig{
			Mode:             filter.ShiftModeAuto.String(),
			MaxCoordinateAbs: filter.DefaultMaxCoordinateAbs,
			PreserveOnSave:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapCoded(errors.CodeReading, err, "Config", "Load", "read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapCoded(errors.CodeMalformedFile, err, "Config", "Load", "parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := filter.ParseShiftMode(c.Shift.Mode); !ok {
		return errors.Newf(errors.CodeBadArgument,
			"Config.Validate: shift mode must be one of none, ask, auto (got %q)", c.Shift.Mode)
	}
	if c.Shift.MaxCoordinateAbs < 0 {
		return errors.New(errors.CodeBadArgument,
			"Config.Validate: max_coordinate_abs cannot be negative")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.CodeBadArgument,
			"Config.Validate: unknown log level %q", c.Logging.Level)
	}
	return nil
}

// ShiftMode returns the parsed shift handling mode.
func (c *Config) ShiftMode() filter.ShiftMode {
	mode, _ := filter.ParseShiftMode(c.Shift.Mode)
	return mode
}

// LoadParameters builds a fresh session-wide parameter bag from the
// configuration, with live shift slots and the non-interactive decision
// handler.
func (c *Config) LoadParameters(session *filter.Session) *filter.LoadParameters {
	enabled := false
	shift := geom.Vector3d{}
	return &filter.LoadParameters{
		CoordinatesShiftEnabled: &enabled,
		CoordinatesShift:        &shift,
		PreserveShiftOnSave:     c.Shift.PreserveOnSave,
		ShiftHandlingMode:       c.ShiftMode(),
		ShiftHandler: filter.AutoHandler{
			MaxCoordinateAbs: c.Shift.MaxCoordinateAbs,
			PreserveOnSave:   c.Shift.PreserveOnSave,
		},
		Session: session,
	}
}

// String renders the config back to YAML, for diagnostics.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config marshal failed: %v", err)
	}
	return string(out)
}
