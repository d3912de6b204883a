package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// FormatMarkdown renders the run as a markdown report suitable for
// committing next to the run directory or posting on a PR.
func FormatMarkdown(summary models.RunSummary, aggs []models.AggregateScore, rankings []models.CategoryRanking) string {
	var b strings.Builder

	b.WriteString("# Benchmark Report\n\n")
	b.WriteString(fmt.Sprintf("- **Run:** `%s`\n", summary.RunID))
	b.WriteString(fmt.Sprintf("- **Date:** %s\n", summary.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("- **Cells:** %d total, %d succeeded, %d failed\n\n",
		summary.TotalCells, summary.Succeeded, summary.Failed))

	if len(summary.PerModel) > 0 {
		b.WriteString("## Execution\n\n")
		b.WriteString("| Model | Cells | Succeeded | Success Rate | Tokens |\n")
		b.WriteString("|---|---:|---:|---:|---:|\n")
		for _, m := range summary.PerModel {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %.0f%% | %d |\n",
				m.Model, m.Cells, m.Succeeded, m.SuccessRate*100, m.TokensTotal))
		}
		b.WriteByte('\n')
	}

	if len(aggs) > 0 {
		b.WriteString("## Scores\n\n")
		b.WriteString("| Model | Scenario | Overall | Schema | Content | Language | Consistency | Scored |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
		for _, a := range aggs {
			consistency := "n/a"
			if a.Consistency != nil {
				consistency = fmt.Sprintf("%.3f", *a.Consistency)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %.3f | %.3f | %.3f | %.3f | %s | %d/%d |\n",
				a.Model, a.Scenario, a.MeanOverall, a.MeanSchema, a.MeanContent, a.MeanLanguage,
				consistency, a.SuccessCount, a.Repetitions))
		}
		b.WriteByte('\n')
	}

	for _, cat := range rankings {
		b.WriteString(fmt.Sprintf("## Ranking: %s\n\n", cat.Category))
		b.WriteString("| Rank | Model | Score | Consistency |\n")
		b.WriteString("|---:|---|---:|---:|\n")
		for _, e := range cat.Entries {
			consistency := "n/a"
			if e.Consistency != nil {
				consistency = fmt.Sprintf("%.3f", *e.Consistency)
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %.3f | %s |\n", e.Rank, e.Model, e.Score, consistency))
		}
		b.WriteByte('\n')
	}

	return b.String()
}
