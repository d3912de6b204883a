package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRunSummary(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	outcomes := []GenerationOutcome{
		{
			Cell:      TestCell{Model: "zeta", Scenario: "metadata-en", Repetition: 1},
			Success:   true,
			ElapsedMs: 100,
			Usage:     &TokenUsage{Total: 500},
		},
		{
			Cell:      TestCell{Model: "zeta", Scenario: "metadata-en", Repetition: 2},
			ErrorKind: ErrorTimeout,
			ElapsedMs: 300,
		},
		{
			Cell:      TestCell{Model: "alpha", Scenario: "metadata-en", Repetition: 1},
			Success:   true,
			ElapsedMs: 200,
			Usage:     &TokenUsage{Total: 700},
		},
	}

	summary := BuildRunSummary("run-1", ts, outcomes)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 3, summary.TotalCells)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, int64(200), summary.AvgElapsedMs)

	require.Len(t, summary.PerModel, 2)
	// Breakdown is ordered by slug regardless of arrival order.
	assert.Equal(t, "alpha", summary.PerModel[0].Model)
	assert.Equal(t, "zeta", summary.PerModel[1].Model)

	zeta := summary.PerModel[1]
	assert.Equal(t, 2, zeta.Cells)
	assert.Equal(t, 1, zeta.Succeeded)
	assert.InDelta(t, 0.5, zeta.SuccessRate, 1e-9)
	assert.Equal(t, 500, zeta.TokensTotal)
	assert.Equal(t, map[string]int{"timeout": 1}, zeta.ErrorKinds)

	alpha := summary.PerModel[0]
	assert.Nil(t, alpha.ErrorKinds)
	assert.InDelta(t, 1.0, alpha.SuccessRate, 1e-9)
}

func TestBuildRunSummaryEmpty(t *testing.T) {
	summary := BuildRunSummary("run-1", time.Now(), nil)
	assert.Zero(t, summary.TotalCells)
	assert.Zero(t, summary.AvgElapsedMs)
	assert.Empty(t, summary.PerModel)
}
