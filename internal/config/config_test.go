package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

func validConfig() *Config {
	return &Config{
		Models: []models.ModelDescriptor{
			{Slug: "gpt-4o-mini", Backend: "gpt-4o-mini"},
		},
		Scenarios: []models.Scenario{
			{
				ID:       "metadata-en",
				Kind:     models.KindMetadata,
				Language: "en",
				Prompt:   "Generate course metadata.",
				Shape:    models.ShapeDescriptor{RequiredFields: []string{"title"}},
			},
		},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
models:
  - slug: gpt-4o-mini
    backend: gpt-4o-mini
scenarios:
  - id: metadata-en
    kind: metadata
    language: en
    prompt: Generate course metadata.
    shape:
      required_fields: [title]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRepetitions, cfg.Repetitions)
	assert.Equal(t, DefaultTimeoutSec, cfg.TimeoutSec)
	assert.Equal(t, DefaultPacingMs, cfg.PacingMs)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultBackendType, cfg.Backend.Type)
	assert.Equal(t, DefaultAPIKeyEnv, cfg.Backend.APIKeyEnv)
	assert.Equal(t, models.DefaultScoreWeights(), cfg.Weights)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.False(t, IsConfigurationError(err))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "models: [\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "no models",
			mutate:  func(c *Config) { c.Models = nil },
			wantErr: "no models",
		},
		{
			name:    "no scenarios",
			mutate:  func(c *Config) { c.Scenarios = nil },
			wantErr: "no scenarios",
		},
		{
			name: "duplicate model slug",
			mutate: func(c *Config) {
				c.Models = append(c.Models, c.Models[0])
			},
			wantErr: "duplicate model slug",
		},
		{
			name:    "model without backend",
			mutate:  func(c *Config) { c.Models[0].Backend = "" },
			wantErr: "no backend identifier",
		},
		{
			name: "duplicate scenario id",
			mutate: func(c *Config) {
				c.Scenarios = append(c.Scenarios, c.Scenarios[0])
			},
			wantErr: "duplicate scenario id",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *Config) { c.Scenarios[0].Kind = "quiz" },
			wantErr: "unknown kind",
		},
		{
			name:    "empty prompt",
			mutate:  func(c *Config) { c.Scenarios[0].Prompt = "" },
			wantErr: "empty prompt",
		},
		{
			name:    "bad language tag",
			mutate:  func(c *Config) { c.Scenarios[0].Language = "not a tag!" },
			wantErr: "invalid language tag",
		},
		{
			name:    "unknown naming style",
			mutate:  func(c *Config) { c.Scenarios[0].Shape.Naming = "kebab" },
			wantErr: "unknown naming style",
		},
		{
			name: "inverted lesson range",
			mutate: func(c *Config) {
				c.Scenarios[0].Content = models.ContentExpectations{MinLessons: 5, MaxLessons: 3}
			},
			wantErr: "invalid lesson range",
		},
		{
			name:    "zero repetitions",
			mutate:  func(c *Config) { c.Repetitions = 0 },
			wantErr: "repetitions must be",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend.Type = "grpc" },
			wantErr: "unknown backend type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLookups(t *testing.T) {
	cfg := validConfig()

	m, ok := cfg.Model("gpt-4o-mini")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", m.Backend)
	_, ok = cfg.Model("missing")
	assert.False(t, ok)

	s, ok := cfg.Scenario("metadata-en")
	assert.True(t, ok)
	assert.Equal(t, models.KindMetadata, s.Kind)
	_, ok = cfg.Scenario("missing")
	assert.False(t, ok)
}
