// Package reporting renders stored run records for humans and CI:
// plain-text console output, a markdown report, and JUnit XML. Nothing
// here recomputes scores; it only formats what the store already holds.
package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// InterpretScore returns a plain-language label for a score in [0,1].
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretConsistency explains a consistency value, or its absence.
func InterpretConsistency(consistency *float64) string {
	if consistency == nil {
		return "Consistency unknown — fewer than 2 scored repetitions."
	}
	pct := *consistency * 100
	if pct >= 90 {
		return fmt.Sprintf("Scores are stable across repetitions (%.0f%%).", pct)
	}
	return fmt.Sprintf("Scores vary across repetitions (%.0f%%). Consider more repetitions before trusting the ranking.", pct)
}

// FormatConsoleReport produces the plain-text run report.
func FormatConsoleReport(summary models.RunSummary, aggs []models.AggregateScore, rankings []models.CategoryRanking) string {
	var b strings.Builder

	b.WriteString("=== Benchmark Run ===\n\n")
	b.WriteString(fmt.Sprintf("Run:      %s (%s)\n", summary.RunID, summary.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Cells:    %d total, %d succeeded, %d failed\n",
		summary.TotalCells, summary.Succeeded, summary.Failed))
	b.WriteString(fmt.Sprintf("Latency:  %dms average per call\n", summary.AvgElapsedMs))

	if len(summary.PerModel) > 0 {
		b.WriteString("\nPer-Model Execution:\n")
		for _, m := range summary.PerModel {
			b.WriteString(fmt.Sprintf("  %-24s %d/%d ok (%.0f%%), %d tokens\n",
				m.Model, m.Succeeded, m.Cells, m.SuccessRate*100, m.TokensTotal))
			kinds := make([]string, 0, len(m.ErrorKinds))
			for kind := range m.ErrorKinds {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				b.WriteString(fmt.Sprintf("    %s: %d\n", kind, m.ErrorKinds[kind]))
			}
		}
	}

	if len(aggs) > 0 {
		b.WriteString("\nScores by (model, scenario):\n")
		for _, a := range aggs {
			b.WriteString(fmt.Sprintf("  %-24s %-20s %.3f — %s\n",
				a.Model, a.Scenario, a.MeanOverall, InterpretScore(a.MeanOverall)))
			if a.Consistency != nil {
				b.WriteString(fmt.Sprintf("    consistency %.3f", *a.Consistency))
				if a.CI95 != nil {
					b.WriteString(fmt.Sprintf(", 95%% CI [%.3f, %.3f]", a.CI95.Lower, a.CI95.Upper))
				}
				b.WriteByte('\n')
			}
			if a.SuccessCount < a.Repetitions {
				b.WriteString(fmt.Sprintf("    %d of %d repetitions failed\n",
					a.Repetitions-a.SuccessCount, a.Repetitions))
			}
		}
	}

	for _, cat := range rankings {
		b.WriteString(fmt.Sprintf("\nRanking — %s:\n", cat.Category))
		for _, e := range cat.Entries {
			line := fmt.Sprintf("  %d. %-24s %.3f", e.Rank, e.Model, e.Score)
			if e.Consistency != nil {
				line += fmt.Sprintf(" (consistency %.3f)", *e.Consistency)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
