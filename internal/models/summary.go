package models

import (
	"sort"
	"time"
)

// CellMeta is the execution-metadata record persisted per cell.
type CellMeta struct {
	Model         string      `json:"model"`
	Scenario      string      `json:"scenario"`
	Repetition    int         `json:"repetition"`
	ElapsedMs     int64       `json:"elapsed_ms"`
	Timestamp     time.Time   `json:"timestamp"`
	ContentLength int         `json:"content_length"`
	Success       bool        `json:"success"`
	ErrorKind     string      `json:"error_kind,omitempty"`
	ErrorDetail   string      `json:"error_detail,omitempty"`
	Usage         *TokenUsage `json:"usage,omitempty"`
}

// Cell reconstructs the cell key fields from a metadata record.
func (m CellMeta) Cell() TestCell {
	return TestCell{Model: m.Model, Scenario: m.Scenario, Repetition: m.Repetition}
}

// ModelBreakdown is the per-model slice of a run summary.
type ModelBreakdown struct {
	Model       string         `json:"model"`
	Cells       int            `json:"cells"`
	Succeeded   int            `json:"succeeded"`
	SuccessRate float64        `json:"success_rate"`
	ErrorKinds  map[string]int `json:"error_kinds,omitempty"`
	TokensTotal int            `json:"tokens_total"`
}

// RunSummary is the single per-run record produced after all cells
// resolve.
type RunSummary struct {
	RunID        string           `json:"run_id"`
	Timestamp    time.Time        `json:"timestamp"`
	TotalCells   int              `json:"total_cells"`
	Succeeded    int              `json:"succeeded"`
	Failed       int              `json:"failed"`
	AvgElapsedMs int64            `json:"avg_elapsed_ms"`
	PerModel     []ModelBreakdown `json:"per_model"`
}

// BuildRunSummary derives the run summary from the full outcome set.
// The per-model breakdown is ordered by model slug for determinism.
func BuildRunSummary(runID string, ts time.Time, outcomes []GenerationOutcome) RunSummary {
	summary := RunSummary{
		RunID:      runID,
		Timestamp:  ts,
		TotalCells: len(outcomes),
	}

	type acc struct {
		cells, succeeded, tokens int
		errorKinds               map[string]int
	}
	perModel := make(map[string]*acc)
	var order []string
	var totalElapsed int64

	for _, o := range outcomes {
		a, ok := perModel[o.Cell.Model]
		if !ok {
			a = &acc{errorKinds: make(map[string]int)}
			perModel[o.Cell.Model] = a
			order = append(order, o.Cell.Model)
		}
		a.cells++
		totalElapsed += o.ElapsedMs
		if o.Success {
			summary.Succeeded++
			a.succeeded++
			if o.Usage != nil {
				a.tokens += o.Usage.Total
			}
		} else {
			summary.Failed++
			a.errorKinds[string(o.ErrorKind)]++
		}
	}

	if len(outcomes) > 0 {
		summary.AvgElapsedMs = totalElapsed / int64(len(outcomes))
	}

	sort.Strings(order)
	for _, slug := range order {
		a := perModel[slug]
		rate := 0.0
		if a.cells > 0 {
			rate = float64(a.succeeded) / float64(a.cells)
		}
		kinds := a.errorKinds
		if len(kinds) == 0 {
			kinds = nil
		}
		summary.PerModel = append(summary.PerModel, ModelBreakdown{
			Model:       slug,
			Cells:       a.cells,
			Succeeded:   a.succeeded,
			SuccessRate: rate,
			ErrorKinds:  kinds,
			TokensTotal: a.tokens,
		})
	}

	return summary
}
