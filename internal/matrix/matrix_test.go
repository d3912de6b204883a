package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Models: []models.ModelDescriptor{
			{Slug: "model-a", Backend: "a"},
			{Slug: "model-b", Backend: "b"},
		},
		Scenarios: []models.Scenario{
			{ID: "s1", Kind: models.KindMetadata, Language: "en", Prompt: "p"},
			{ID: "s2", Kind: models.KindLesson, Language: "ru", Prompt: "p"},
		},
		Repetitions: 2,
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestBuild(t *testing.T) {
	cells, err := Build(testConfig())
	require.NoError(t, err)
	require.Len(t, cells, 8)

	// Model-major, then scenario, then repetition.
	assert.Equal(t, models.TestCell{Model: "model-a", Scenario: "s1", Repetition: 1}, cells[0])
	assert.Equal(t, models.TestCell{Model: "model-a", Scenario: "s1", Repetition: 2}, cells[1])
	assert.Equal(t, models.TestCell{Model: "model-a", Scenario: "s2", Repetition: 1}, cells[2])
	assert.Equal(t, models.TestCell{Model: "model-b", Scenario: "s1", Repetition: 1}, cells[4])
	assert.Equal(t, models.TestCell{Model: "model-b", Scenario: "s2", Repetition: 2}, cells[7])

	// Keys are unique across the grid.
	seen := make(map[string]bool, len(cells))
	for _, c := range cells {
		assert.False(t, seen[c.Key()], "duplicate key %s", c.Key())
		seen[c.Key()] = true
	}
}

func TestBuildInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Models = nil

	_, err := Build(cfg)
	require.Error(t, err)
	assert.True(t, config.IsConfigurationError(err))
}
