// Package config loads pipenet settings and optional placement scenarios
// from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/pipenet/pkg/pipenet"
	"github.com/dd0wney/pipenet/pkg/pubsub"
	"github.com/dd0wney/pipenet/pkg/validation"
)

// MaxEventBuffer caps the per-subscription event buffer.
const MaxEventBuffer = 1 << 16

// Config is the top-level configuration file.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Segments SegmentsConfig `yaml:"segments"`
	Events   EventsConfig   `yaml:"events"`
	Scenario *Scenario      `yaml:"scenario,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SegmentsConfig holds segment defaults.
type SegmentsConfig struct {
	DefaultVolume float64 `yaml:"default_volume"`
}

// EventsConfig sizes the topology event bus.
type EventsConfig struct {
	Buffer int `yaml:"buffer"`
}

// Scenario is a named set of segments and the steps to apply to them.
type Scenario struct {
	Segments map[string]validation.PlaceRequest `yaml:"segments"`
	Anchored []string                           `yaml:"anchored"`
	Steps    []validation.StepRequest           `yaml:"steps"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Metrics: MetricsConfig{
			Addr: ":9464",
		},
		Segments: SegmentsConfig{
			DefaultVolume: pipenet.DefaultVolume,
		},
		Events: EventsConfig{
			Buffer: pubsub.DefaultBuffer,
		},
	}
}

// Load reads and validates a configuration file. Values missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field, reporting all problems at once.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("Config").
		OneOf("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "warning", "error"}).
		Volume("Segments.DefaultVolume", c.Segments.DefaultVolume).
		RangeInt("Events.Buffer", c.Events.Buffer, 1, MaxEventBuffer).
		When(c.Metrics.Enabled, func(cv *validation.ConfigValidator) {
			cv.Address("Metrics.Addr", c.Metrics.Addr)
		})

	if c.Scenario != nil {
		cv.Custom("Scenario", c.Scenario.Validate)
	}
	return cv.Validate()
}

// Validate checks that every segment is placeable and every step and
// anchored name refers to a declared segment.
func (s *Scenario) Validate() error {
	for name, req := range s.Segments {
		if err := validation.ValidatePlaceRequest(&req); err != nil {
			return fmt.Errorf("segment %q: %w", name, err)
		}
	}
	for _, name := range s.Anchored {
		if _, ok := s.Segments[name]; !ok {
			return fmt.Errorf("anchored: unknown segment %q", name)
		}
	}
	for i, step := range s.Steps {
		if err := validation.ValidateStepRequest(&step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if _, ok := s.Segments[step.Segment]; !ok {
			return fmt.Errorf("step %d: unknown segment %q", i, step.Segment)
		}
	}
	return nil
}
