// Package store persists per-cell artifacts and run-level records as
// flat files. Every cell owns a disjoint key derived from
// (model, scenario, repetition), so concurrent writers never contend
// and re-running a cell overwrites only that cell's artifacts.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

const (
	cellsDir     = "cells"
	runFile      = "run.json"
	summaryFile  = "summary.json"
	scoresFile   = "scores.json"
	aggFile      = "aggregates.json"
	rankingsFile = "rankings.json"
)

// Store is a handle to one run directory.
type Store struct {
	dir   string
	runID string
}

type runMarker struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRun creates a fresh run directory under baseDir and points the
// `latest` symlink at it. The directory name carries a run-ID prefix
// after the timestamp so runs started within the same second never
// share a directory.
func NewRun(baseDir string) (*Store, error) {
	runID := uuid.NewString()
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir, err := filepath.Abs(filepath.Join(baseDir, "runs", stamp+"-"+runID[:8]))
	if err != nil {
		return nil, fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(runDir, cellsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating run dir: %w", err)
	}

	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return nil, fmt.Errorf("creating latest symlink: %w", err)
	}

	s := &Store{dir: runDir, runID: runID}
	marker := runMarker{RunID: s.runID, CreatedAt: time.Now().UTC()}
	if err := s.writeJSON(runFile, marker); err != nil {
		return nil, err
	}
	return s, nil
}

// Open attaches to an existing run directory.
func Open(runDir string) (*Store, error) {
	abs, err := filepath.Abs(runDir)
	if err != nil {
		return nil, fmt.Errorf("resolving run dir: %w", err)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("run directory %s does not exist", runDir)
	}

	s := &Store{dir: abs}
	var marker runMarker
	if err := s.readJSON(runFile, &marker); err == nil && marker.RunID != "" {
		s.runID = marker.RunID
	} else {
		s.runID = filepath.Base(abs)
	}
	return s, nil
}

// Dir returns the absolute run directory path.
func (s *Store) Dir() string { return s.dir }

// RunID returns the run identifier.
func (s *Store) RunID() string { return s.runID }

// SaveOutcome persists the raw text (for successes) and the execution
// metadata record for one cell.
func (s *Store) SaveOutcome(o models.GenerationOutcome) error {
	if o.Success {
		raw := filepath.Join(s.dir, cellsDir, o.Cell.Key()+".raw.txt")
		if err := os.WriteFile(raw, []byte(o.RawText), 0o644); err != nil {
			return fmt.Errorf("writing raw artifact for %s: %w", o.Cell, err)
		}
	}

	meta := models.CellMeta{
		Model:         o.Cell.Model,
		Scenario:      o.Cell.Scenario,
		Repetition:    o.Cell.Repetition,
		ElapsedMs:     o.ElapsedMs,
		Timestamp:     time.Now().UTC(),
		ContentLength: len(o.RawText),
		Success:       o.Success,
		ErrorKind:     string(o.ErrorKind),
		ErrorDetail:   o.ErrorMsg,
		Usage:         o.Usage,
	}
	return s.writeJSON(filepath.Join(cellsDir, o.Cell.Key()+".meta.json"), meta)
}

// SaveArtifact persists the derived structured artifact for one cell:
// the parsed value, or an error placeholder when parsing failed.
func (s *Store) SaveArtifact(cell models.TestCell, artifact *models.ParsedArtifact, raw string) error {
	name := filepath.Join(cellsDir, cell.Key()+".json")
	if artifact.Parsed() {
		return s.writeJSON(name, artifact.Value)
	}
	placeholder := map[string]any{
		"error":       "parse_failed",
		"parse_error": artifact.Reason,
		"raw_content": raw,
	}
	return s.writeJSON(name, placeholder)
}

// ReadRaw returns the raw text artifact for a cell.
func (s *Store) ReadRaw(cell models.TestCell) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, cellsDir, cell.Key()+".raw.txt"))
	if err != nil {
		return "", fmt.Errorf("reading raw artifact for %s: %w", cell, err)
	}
	return string(data), nil
}

// ReadMetas returns every cell metadata record in the run, sorted by
// key for determinism regardless of completion order.
func (s *Store) ReadMetas() ([]models.CellMeta, error) {
	pattern := filepath.Join(s.dir, cellsDir, "*.meta.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	metas := make([]models.CellMeta, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var meta models.CellMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// SaveSummary persists the run summary record.
func (s *Store) SaveSummary(summary models.RunSummary) error {
	return s.writeJSON(summaryFile, summary)
}

// ReadSummary loads the run summary record.
func (s *Store) ReadSummary() (models.RunSummary, error) {
	var summary models.RunSummary
	err := s.readJSON(summaryFile, &summary)
	return summary, err
}

// SaveScores persists the per-cell quality scores.
func (s *Store) SaveScores(scores []models.QualityScore) error {
	return s.writeJSON(scoresFile, scores)
}

// ReadScores loads the per-cell quality scores.
func (s *Store) ReadScores() ([]models.QualityScore, error) {
	var scores []models.QualityScore
	err := s.readJSON(scoresFile, &scores)
	return scores, err
}

// SaveAggregates persists the per-(model, scenario) aggregates.
func (s *Store) SaveAggregates(aggs []models.AggregateScore) error {
	return s.writeJSON(aggFile, aggs)
}

// ReadAggregates loads the per-(model, scenario) aggregates.
func (s *Store) ReadAggregates() ([]models.AggregateScore, error) {
	var aggs []models.AggregateScore
	err := s.readJSON(aggFile, &aggs)
	return aggs, err
}

// SaveRankings persists the ranking categories.
func (s *Store) SaveRankings(rankings []models.CategoryRanking) error {
	return s.writeJSON(rankingsFile, rankings)
}

// ReadRankings loads the ranking categories.
func (s *Store) ReadRankings() ([]models.CategoryRanking, error) {
	var rankings []models.CategoryRanking
	err := s.readJSON(rankingsFile, &rankings)
	return rankings, err
}

func (s *Store) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", rel, err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	path := filepath.Join(s.dir, rel)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func (s *Store) readJSON(rel string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, rel))
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", rel, err)
	}
	return nil
}
