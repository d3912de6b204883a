// Package executor drives concurrent execution of all benchmark cells.
//
// Cells fan out across both the model and scenario/repetition axes,
// bounded only by an optional global concurrency cap. Within one model,
// dispatches are paced and ordered; across models nothing is shared.
// One cell's failure never aborts or delays sibling cells: every failure
// is converted into a Failure outcome and the run continues.
package executor

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/generation"
	"github.com/maslennikov-ig/coursebench/internal/models"
)

// EventType represents the type of progress event.
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventCellStart    EventType = "cell_start"
	EventCellComplete EventType = "cell_complete"
	EventRunComplete  EventType = "run_complete"
)

// ProgressEvent is a progress update emitted during a run.
type ProgressEvent struct {
	EventType EventType
	Cell      models.TestCell
	Done      int
	Total     int
	Success   bool
	ErrorKind models.ErrorKind
	ElapsedMs int64
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Executor runs benchmark cells against a generation client.
type Executor struct {
	cfg    *config.Config
	client generation.Client

	progressMu sync.Mutex
	listeners  []ProgressListener
	done       int
}

// New creates an executor for the given configuration and client.
func New(cfg *config.Config, client generation.Client) *Executor {
	return &Executor{cfg: cfg, client: client}
}

// OnProgress registers a progress listener.
func (e *Executor) OnProgress(listener ProgressListener) {
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.listeners = append(e.listeners, listener)
}

func (e *Executor) notify(event ProgressEvent) {
	e.progressMu.Lock()
	if event.EventType == EventCellComplete {
		e.done++
	}
	event.Done = e.done
	listeners := make([]ProgressListener, len(e.listeners))
	copy(listeners, e.listeners)
	e.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes every cell and returns exactly one GenerationOutcome per
// cell, in the same order as the input. Results never carry an error:
// generation failures become Failure outcomes.
func (e *Executor) Run(ctx context.Context, cells []models.TestCell) []models.GenerationOutcome {
	results := make([]models.GenerationOutcome, len(cells))
	total := len(cells)

	e.progressMu.Lock()
	e.done = 0
	e.progressMu.Unlock()

	e.notify(ProgressEvent{EventType: EventRunStart, Total: total})

	// Group cell indices by model, preserving repetition order.
	perModel := make(map[string][]int)
	var modelOrder []string
	for i, c := range cells {
		if _, seen := perModel[c.Model]; !seen {
			modelOrder = append(modelOrder, c.Model)
		}
		perModel[c.Model] = append(perModel[c.Model], i)
	}

	var cellGroup errgroup.Group
	if e.cfg.MaxConcurrent > 0 {
		cellGroup.SetLimit(e.cfg.MaxConcurrent)
	}

	var dispatchGroup errgroup.Group
	for _, slug := range modelOrder {
		indices := perModel[slug]
		limiter := e.pacer(slug)

		dispatchGroup.Go(func() error {
			for _, idx := range indices {
				if err := limiter.Wait(ctx); err != nil {
					// Run cancelled: resolve the remaining cells for
					// this model without dispatching.
					results[idx] = cancelledOutcome(ctx, cells[idx], err)
					e.notify(ProgressEvent{
						EventType: EventCellComplete,
						Cell:      cells[idx],
						Total:     total,
						ErrorKind: results[idx].ErrorKind,
					})
					continue
				}

				e.notify(ProgressEvent{EventType: EventCellStart, Cell: cells[idx], Total: total})
				cellGroup.Go(func() error {
					results[idx] = e.executeCell(ctx, cells[idx])
					e.notify(ProgressEvent{
						EventType: EventCellComplete,
						Cell:      cells[idx],
						Total:     total,
						Success:   results[idx].Success,
						ErrorKind: results[idx].ErrorKind,
						ElapsedMs: results[idx].ElapsedMs,
					})
					return nil
				})
			}
			return nil
		})
	}

	// Neither group ever returns an error; cell failures are data.
	_ = dispatchGroup.Wait()
	_ = cellGroup.Wait()

	e.notify(ProgressEvent{EventType: EventRunComplete, Total: total})
	return results
}

// pacer returns the per-model dispatch limiter. The first dispatch goes
// out immediately; subsequent dispatches are spaced by the pacing
// interval.
func (e *Executor) pacer(slug string) *rate.Limiter {
	pacingMs := e.cfg.PacingMs
	if m, ok := e.cfg.Model(slug); ok && m.PacingMs > 0 {
		pacingMs = m.PacingMs
	}
	if pacingMs <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Duration(pacingMs)*time.Millisecond), 1)
}

func (e *Executor) executeCell(ctx context.Context, cell models.TestCell) models.GenerationOutcome {
	model, ok := e.cfg.Model(cell.Model)
	if !ok {
		return models.GenerationOutcome{
			Cell:      cell,
			ErrorKind: models.ErrorProvider,
			ErrorMsg:  "model " + cell.Model + " not present in configuration",
		}
	}
	scenario, ok := e.cfg.Scenario(cell.Scenario)
	if !ok {
		return models.GenerationOutcome{
			Cell:      cell,
			ErrorKind: models.ErrorProvider,
			ErrorMsg:  "scenario " + cell.Scenario + " not present in configuration",
		}
	}

	timeoutSec := e.cfg.TimeoutSec
	if model.TimeoutSec > 0 {
		timeoutSec = model.TimeoutSec
	}
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := e.client.Generate(callCtx, model, scenario.Prompt)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return models.GenerationOutcome{
			Cell:      cell,
			ElapsedMs: elapsed,
			ErrorKind: generation.Classify(err),
			ErrorMsg:  err.Error(),
		}
	}

	return models.GenerationOutcome{
		Cell:      cell,
		Success:   true,
		RawText:   resp.Text,
		ElapsedMs: elapsed,
		Usage:     resp.Usage,
	}
}

// cancelledOutcome resolves a cell the run was cancelled out of before
// dispatch. The limiter wraps deadline expiry in its own error value,
// so classification reads the context directly.
func cancelledOutcome(ctx context.Context, cell models.TestCell, err error) models.GenerationOutcome {
	kind := models.ErrorNetwork
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = models.ErrorTimeout
	}
	return models.GenerationOutcome{
		Cell:      cell,
		ErrorKind: kind,
		ErrorMsg:  "run cancelled before dispatch: " + err.Error(),
	}
}
