// Package bench is the run pipeline: it executes the benchmark grid,
// persists artifacts, scores them, aggregates, and ranks. The CLI layer
// is a thin shell over this package.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/executor"
	"github.com/maslennikov-ig/coursebench/internal/generation"
	"github.com/maslennikov-ig/coursebench/internal/matrix"
	"github.com/maslennikov-ig/coursebench/internal/models"
	"github.com/maslennikov-ig/coursebench/internal/normalize"
	"github.com/maslennikov-ig/coursebench/internal/ranking"
	"github.com/maslennikov-ig/coursebench/internal/scoring"
	"github.com/maslennikov-ig/coursebench/internal/store"
)

// Runner owns one benchmark run end to end.
type Runner struct {
	cfg    *config.Config
	client generation.Client
	logger *slog.Logger
}

// NewRunner builds a Runner with the backend selected by the config.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, client: client, logger: logger}, nil
}

// NewRunnerWithClient builds a Runner over an explicit client. Used by
// tests and dry runs.
func NewRunnerWithClient(cfg *config.Config, client generation.Client, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, client: client, logger: logger}
}

func newClient(cfg *config.Config) (generation.Client, error) {
	switch cfg.Backend.Type {
	case "mock":
		return generation.NewStaticMock("{}"), nil
	default:
		return generation.NewOpenAIClient(cfg.Backend.BaseURL, cfg.Backend.APIKeyEnv)
	}
}

// Run executes the full grid into a fresh run directory and scores it.
func (r *Runner) Run(ctx context.Context) (*store.Store, error) {
	cells, err := matrix.Build(r.cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.NewRun(r.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("preparing run directory: %w", err)
	}
	r.logger.Info("run started",
		"run_id", st.RunID(),
		"dir", st.Dir(),
		"models", len(r.cfg.Models),
		"scenarios", len(r.cfg.Scenarios),
		"repetitions", r.cfg.Repetitions,
		"cells", len(cells))

	outcomes, err := r.execute(ctx, st, cells)
	if err != nil {
		return nil, err
	}

	summary := models.BuildRunSummary(st.RunID(), time.Now().UTC(), outcomes)
	if err := st.SaveSummary(summary); err != nil {
		return nil, err
	}

	if err := r.score(st); err != nil {
		return nil, err
	}

	r.logger.Info("run complete",
		"run_id", st.RunID(),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)
	return st, nil
}

// Retry re-executes only the failed cells of an existing run, then
// rescores the whole run so every derived record reflects the new
// artifacts.
func (r *Runner) Retry(ctx context.Context, runDir string) (*store.Store, int, error) {
	st, err := store.Open(runDir)
	if err != nil {
		return nil, 0, err
	}

	metas, err := st.ReadMetas()
	if err != nil {
		return nil, 0, err
	}
	cells := executor.FailedCells(metas)
	if len(cells) == 0 {
		r.logger.Info("no failed cells to retry", "run_id", st.RunID())
		return st, 0, nil
	}
	r.logger.Info("retrying failed cells", "run_id", st.RunID(), "cells", len(cells))

	if _, err := r.execute(ctx, st, cells); err != nil {
		return nil, 0, err
	}

	// The summary is rebuilt from the merged metadata records, so cells
	// that succeeded the first time keep their original outcome.
	metas, err = st.ReadMetas()
	if err != nil {
		return nil, 0, err
	}
	outcomes := make([]models.GenerationOutcome, 0, len(metas))
	for _, m := range metas {
		outcomes = append(outcomes, models.GenerationOutcome{
			Cell:      m.Cell(),
			Success:   m.Success,
			ElapsedMs: m.ElapsedMs,
			Usage:     m.Usage,
			ErrorKind: models.ErrorKind(m.ErrorKind),
			ErrorMsg:  m.ErrorDetail,
		})
	}
	summary := models.BuildRunSummary(st.RunID(), time.Now().UTC(), outcomes)
	if err := st.SaveSummary(summary); err != nil {
		return nil, 0, err
	}

	if err := r.score(st); err != nil {
		return nil, 0, err
	}
	return st, len(cells), nil
}

// Rescore recomputes scores, aggregates, and rankings for a stored run
// without touching any backend. Scoring is deterministic, so this is
// always safe to repeat.
func Rescore(cfg *config.Config, runDir string) (*store.Store, error) {
	st, err := store.Open(runDir)
	if err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg}
	if err := r.score(st); err != nil {
		return nil, err
	}
	return st, nil
}

// execute runs the given cells and persists one outcome per cell.
func (r *Runner) execute(ctx context.Context, st *store.Store, cells []models.TestCell) ([]models.GenerationOutcome, error) {
	exec := executor.New(r.cfg, r.client)
	exec.OnProgress(r.logProgress)

	outcomes := exec.Run(ctx, cells)
	for _, o := range outcomes {
		if err := st.SaveOutcome(o); err != nil {
			return nil, err
		}
		if o.Success {
			artifact := normalize.Normalize(o.RawText)
			if err := st.SaveArtifact(o.Cell, artifact, o.RawText); err != nil {
				return nil, err
			}
		}
	}
	return outcomes, nil
}

// score derives every post-execution record from the stored artifacts.
func (r *Runner) score(st *store.Store) error {
	metas, err := st.ReadMetas()
	if err != nil {
		return err
	}

	scorer := scoring.New(r.cfg.Scenarios, r.cfg.Weights)
	scores := make([]models.QualityScore, 0, len(metas))
	for _, m := range metas {
		if !m.Success {
			continue
		}
		raw, err := st.ReadRaw(m.Cell())
		if err != nil {
			return err
		}
		scores = append(scores, scorer.ScoreCell(m.Cell(), raw))
	}
	if err := st.SaveScores(scores); err != nil {
		return err
	}

	aggs := scoring.Aggregate(scores, metas)
	if err := st.SaveAggregates(aggs); err != nil {
		return err
	}

	rankings := ranking.Build(aggs, r.cfg.Scenarios)
	return st.SaveRankings(rankings)
}

func (r *Runner) logProgress(event executor.ProgressEvent) {
	switch event.EventType {
	case executor.EventCellStart:
		r.logger.Debug("cell dispatched", "cell", event.Cell.String())
	case executor.EventCellComplete:
		if event.Success {
			r.logger.Info("cell complete",
				"cell", event.Cell.String(),
				"elapsed_ms", event.ElapsedMs,
				"done", event.Done,
				"total", event.Total)
		} else {
			r.logger.Warn("cell failed",
				"cell", event.Cell.String(),
				"error_kind", string(event.ErrorKind),
				"done", event.Done,
				"total", event.Total)
		}
	}
}
