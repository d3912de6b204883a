package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

func ptr(v float64) *float64 { return &v }

func testScenarios() []models.Scenario {
	return []models.Scenario{
		{ID: "metadata-en", Kind: models.KindMetadata},
		{ID: "metadata-ru", Kind: models.KindMetadata},
		{ID: "lesson-en", Kind: models.KindLesson},
	}
}

func TestBuildCategories(t *testing.T) {
	aggs := []models.AggregateScore{
		{Model: "m1", Scenario: "metadata-en", MeanOverall: 0.9, Consistency: ptr(0.95)},
		{Model: "m1", Scenario: "metadata-ru", MeanOverall: 0.7, Consistency: ptr(0.9)},
		{Model: "m1", Scenario: "lesson-en", MeanOverall: 0.8, Consistency: ptr(0.85)},
		{Model: "m2", Scenario: "metadata-en", MeanOverall: 0.6, Consistency: ptr(0.99)},
		{Model: "m2", Scenario: "metadata-ru", MeanOverall: 0.6, Consistency: ptr(0.99)},
		{Model: "m2", Scenario: "lesson-en", MeanOverall: 0.6, Consistency: ptr(0.99)},
	}

	rankings := Build(aggs, testScenarios())

	var categories []string
	for _, r := range rankings {
		categories = append(categories, r.Category)
	}
	assert.Equal(t, []string{
		"kind:lesson",
		"kind:metadata",
		"scenario:lesson-en",
		"scenario:metadata-en",
		"scenario:metadata-ru",
		"overall",
	}, categories)

	byCat := make(map[string]models.CategoryRanking)
	for _, r := range rankings {
		byCat[r.Category] = r
	}

	// Per-scenario ranking uses that scenario's aggregate directly.
	metaEN := byCat["scenario:metadata-en"]
	require.Len(t, metaEN.Entries, 2)
	assert.Equal(t, "m1", metaEN.Entries[0].Model)
	assert.Equal(t, 1, metaEN.Entries[0].Rank)
	assert.InDelta(t, 0.9, metaEN.Entries[0].Score, 1e-9)
	assert.Equal(t, "m2", metaEN.Entries[1].Model)
	assert.Equal(t, 2, metaEN.Entries[1].Rank)

	// Kind ranking averages the kind's scenarios.
	kindMeta := byCat["kind:metadata"]
	require.Len(t, kindMeta.Entries, 2)
	assert.Equal(t, "m1", kindMeta.Entries[0].Model)
	assert.InDelta(t, 0.8, kindMeta.Entries[0].Score, 1e-9)

	// Overall averages everything.
	overall := byCat["overall"]
	assert.Equal(t, "m1", overall.Entries[0].Model)
	assert.InDelta(t, 0.8, overall.Entries[0].Score, 1e-9)
	assert.InDelta(t, 0.6, overall.Entries[1].Score, 1e-9)
	require.NotNil(t, overall.Entries[0].Consistency)
	assert.InDelta(t, 0.9, *overall.Entries[0].Consistency, 1e-9)
}

func TestRankTieBreaks(t *testing.T) {
	t.Run("consistency breaks score ties", func(t *testing.T) {
		aggs := []models.AggregateScore{
			{Model: "shaky", Scenario: "metadata-en", MeanOverall: 0.8, Consistency: ptr(0.7)},
			{Model: "steady", Scenario: "metadata-en", MeanOverall: 0.8, Consistency: ptr(0.95)},
		}
		rankings := Build(aggs, testScenarios())
		entries := rankings[len(rankings)-1].Entries
		assert.Equal(t, "steady", entries[0].Model)
		assert.Equal(t, "shaky", entries[1].Model)
	})

	t.Run("unknown consistency ranks below known", func(t *testing.T) {
		aggs := []models.AggregateScore{
			{Model: "unknown", Scenario: "metadata-en", MeanOverall: 0.8},
			{Model: "known", Scenario: "metadata-en", MeanOverall: 0.8, Consistency: ptr(0.5)},
		}
		rankings := Build(aggs, testScenarios())
		entries := rankings[len(rankings)-1].Entries
		assert.Equal(t, "known", entries[0].Model)
		assert.Equal(t, "unknown", entries[1].Model)
		assert.Nil(t, entries[1].Consistency)
	})

	t.Run("slug breaks full ties", func(t *testing.T) {
		aggs := []models.AggregateScore{
			{Model: "zeta", Scenario: "metadata-en", MeanOverall: 0.8, Consistency: ptr(0.9)},
			{Model: "alpha", Scenario: "metadata-en", MeanOverall: 0.8, Consistency: ptr(0.9)},
		}
		rankings := Build(aggs, testScenarios())
		entries := rankings[len(rankings)-1].Entries
		assert.Equal(t, "alpha", entries[0].Model)
		assert.Equal(t, "zeta", entries[1].Model)
	})
}

func TestBuildDeterministic(t *testing.T) {
	aggs := []models.AggregateScore{
		{Model: "m1", Scenario: "metadata-en", MeanOverall: 0.9},
		{Model: "m2", Scenario: "lesson-en", MeanOverall: 0.7},
	}
	a := Build(aggs, testScenarios())
	b := Build(aggs, testScenarios())
	assert.Equal(t, a, b)
}

func TestBuildEmpty(t *testing.T) {
	rankings := Build(nil, testScenarios())
	assert.Empty(t, rankings)
}
