// Package config loads and validates the benchmark configuration file.
// The core never hardcodes model or scenario identities; everything it
// runs against comes from here.
package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Default values for benchmark configuration. Load references them and
// no other code should duplicate them.
const (
	DefaultRepetitions   = 3
	DefaultTimeoutSec    = 90
	DefaultPacingMs      = 1500
	DefaultMaxConcurrent = 0 // unbounded
	DefaultOutputDir     = "results"

	DefaultBackendType = "openai"
	DefaultAPIKeyEnv   = "COURSEBENCH_API_KEY"
)

// BackendConfig selects and parameterizes the generation backend.
type BackendConfig struct {
	// Type is "openai" (any OpenAI-compatible endpoint) or "mock".
	Type string `yaml:"type,omitempty"`

	// BaseURL points at an OpenAI-compatible API; empty uses the
	// client library default.
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// Config is the full benchmark configuration.
type Config struct {
	Models    []models.ModelDescriptor `yaml:"models"`
	Scenarios []models.Scenario        `yaml:"scenarios"`

	// Repetitions is K: how many times each (model, scenario) pair runs.
	Repetitions int `yaml:"repetitions,omitempty"`

	// TimeoutSec is the per-call timeout; models may override it.
	TimeoutSec int `yaml:"timeout,omitempty"`

	// PacingMs is the minimum spacing between dispatches to the same
	// model. No pacing applies across different models.
	PacingMs int `yaml:"pacing_ms,omitempty"`

	// MaxConcurrent caps in-flight cells globally; 0 means full fan-out.
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`

	Weights   models.ScoreWeights `yaml:"weights,omitempty"`
	OutputDir string              `yaml:"output_dir,omitempty"`
	Backend   BackendConfig       `yaml:"backend,omitempty"`
}

// ConfigurationError is the only error kind that aborts a whole run.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Load reads a YAML benchmark config, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configErrorf("parsing %s: %v", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields with package defaults.
func (c *Config) ApplyDefaults() {
	if c.Repetitions <= 0 {
		c.Repetitions = DefaultRepetitions
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = DefaultTimeoutSec
	}
	if c.PacingMs <= 0 {
		c.PacingMs = DefaultPacingMs
	}
	if c.MaxConcurrent < 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Weights == (models.ScoreWeights{}) {
		c.Weights = models.DefaultScoreWeights()
	}
	if c.Backend.Type == "" {
		c.Backend.Type = DefaultBackendType
	}
	if c.Backend.APIKeyEnv == "" {
		c.Backend.APIKeyEnv = DefaultAPIKeyEnv
	}
}

// Validate checks the configuration for fatal problems. Any error it
// returns is a ConfigurationError.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return configErrorf("no models configured")
	}
	if len(c.Scenarios) == 0 {
		return configErrorf("no scenarios configured")
	}

	slugs := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.Slug == "" {
			return configErrorf("model with empty slug (backend %q)", m.Backend)
		}
		if m.Backend == "" {
			return configErrorf("model %q has no backend identifier", m.Slug)
		}
		if slugs[m.Slug] {
			return configErrorf("duplicate model slug %q", m.Slug)
		}
		slugs[m.Slug] = true
	}

	ids := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if s.ID == "" {
			return configErrorf("scenario with empty id")
		}
		if ids[s.ID] {
			return configErrorf("duplicate scenario id %q", s.ID)
		}
		ids[s.ID] = true

		switch s.Kind {
		case models.KindMetadata, models.KindLesson:
		default:
			return configErrorf("scenario %q has unknown kind %q", s.ID, s.Kind)
		}

		if s.Prompt == "" {
			return configErrorf("scenario %q has an empty prompt", s.ID)
		}
		if _, err := language.Parse(s.Language); err != nil {
			return configErrorf("scenario %q has invalid language tag %q: %v", s.ID, s.Language, err)
		}

		switch s.Shape.Naming {
		case "", models.NamingCamel, models.NamingSnake:
		default:
			return configErrorf("scenario %q has unknown naming style %q", s.ID, s.Shape.Naming)
		}

		ce := s.Content
		if ce.MinLessons < 0 || ce.MaxLessons < 0 || (ce.MaxLessons > 0 && ce.MinLessons > ce.MaxLessons) {
			return configErrorf("scenario %q has invalid lesson range [%d, %d]", s.ID, ce.MinLessons, ce.MaxLessons)
		}
	}

	if c.Repetitions < 1 {
		return configErrorf("repetitions must be >= 1, got %d", c.Repetitions)
	}

	switch c.Backend.Type {
	case "openai", "mock":
	default:
		return configErrorf("unknown backend type %q", c.Backend.Type)
	}

	return nil
}

// Model returns the descriptor for a slug.
func (c *Config) Model(slug string) (models.ModelDescriptor, bool) {
	for _, m := range c.Models {
		if m.Slug == slug {
			return m, true
		}
	}
	return models.ModelDescriptor{}, false
}

// Scenario returns the scenario for an id.
func (c *Config) Scenario(id string) (models.Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return models.Scenario{}, false
}
