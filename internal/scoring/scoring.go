// Package scoring turns raw generation outcomes into per-cell quality
// scores and per-(model, scenario) aggregates. Scoring is fully
// deterministic: the same artifacts always produce the same scores, so
// a run can be re-scored offline without touching any backend.
package scoring

import (
	"sort"

	"github.com/maslennikov-ig/coursebench/internal/analyze"
	"github.com/maslennikov-ig/coursebench/internal/models"
	"github.com/maslennikov-ig/coursebench/internal/normalize"
	"github.com/maslennikov-ig/coursebench/internal/schema"
	"github.com/maslennikov-ig/coursebench/internal/statistics"
)

const confidenceLevel = 0.95

// Scorer evaluates artifacts for a fixed set of scenarios and weights.
type Scorer struct {
	validator *schema.Validator
	scenarios map[string]models.Scenario
	weights   models.ScoreWeights
}

// New creates a Scorer over the given scenarios.
func New(scenarios []models.Scenario, weights models.ScoreWeights) *Scorer {
	byID := make(map[string]models.Scenario, len(scenarios))
	for _, sc := range scenarios {
		byID[sc.ID] = sc
	}
	return &Scorer{
		validator: schema.New(),
		scenarios: byID,
		weights:   weights,
	}
}

// ScoreCell evaluates one cell's raw text. Failed or unparsable cells
// score zero on every dimension; the reason lands in Issues.
func (s *Scorer) ScoreCell(cell models.TestCell, rawText string) models.QualityScore {
	score := models.QualityScore{Cell: cell}

	scenario, ok := s.scenarios[cell.Scenario]
	if !ok {
		score.Issues = []string{"unknown scenario: " + cell.Scenario}
		return score
	}

	artifact := normalize.Normalize(rawText)
	if !artifact.Parsed() {
		score.Issues = []string{"unparsable output: " + artifact.Reason}
		return score
	}

	score.Parsed = true

	var issues []string
	score.SchemaScore, issues = s.validator.Score(artifact, scenario.Shape)
	score.Issues = append(score.Issues, issues...)

	score.ContentScore, issues = analyze.Content(artifact, scenario)
	score.Issues = append(score.Issues, issues...)

	score.LanguageScore, issues = analyze.Language(artifact, scenario.Language)
	score.Issues = append(score.Issues, issues...)

	score.OverallScore = s.weights.Overall(score.SchemaScore, score.ContentScore, score.LanguageScore)
	return score
}

// Aggregate rolls per-cell scores up to (model, scenario) pairs.
// Repetitions counts every attempted cell; SuccessCount, the means,
// consistency, and the confidence interval cover only cells whose
// output parsed. Output order is model then scenario, ascending.
func Aggregate(scores []models.QualityScore, metas []models.CellMeta) []models.AggregateScore {
	type pair struct{ model, scenario string }

	attempted := make(map[pair]int)
	for _, m := range metas {
		attempted[pair{m.Model, m.Scenario}]++
	}

	scored := make(map[pair][]models.QualityScore)
	seen := make(map[pair]int)
	for _, sc := range scores {
		p := pair{sc.Cell.Model, sc.Cell.Scenario}
		seen[p]++
		if attempted[p] < seen[p] {
			attempted[p] = seen[p]
		}
		if sc.Parsed {
			scored[p] = append(scored[p], sc)
		}
	}

	pairs := make([]pair, 0, len(attempted))
	for p := range attempted {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].model != pairs[j].model {
			return pairs[i].model < pairs[j].model
		}
		return pairs[i].scenario < pairs[j].scenario
	})

	aggs := make([]models.AggregateScore, 0, len(pairs))
	for _, p := range pairs {
		cells := scored[p]

		agg := models.AggregateScore{
			Model:        p.model,
			Scenario:     p.scenario,
			SuccessCount: len(cells),
			Repetitions:  attempted[p],
		}

		if len(cells) > 0 {
			overall := make([]float64, 0, len(cells))
			var sumSchema, sumContent, sumLanguage float64
			for _, c := range cells {
				overall = append(overall, c.OverallScore)
				sumSchema += c.SchemaScore
				sumContent += c.ContentScore
				sumLanguage += c.LanguageScore
			}
			n := float64(len(cells))
			agg.MeanOverall = statistics.Mean(overall)
			agg.MeanSchema = sumSchema / n
			agg.MeanContent = sumContent / n
			agg.MeanLanguage = sumLanguage / n

			if c, ok := statistics.Consistency(overall); ok {
				agg.Consistency = &c
				ci := statistics.BootstrapCI(overall, confidenceLevel)
				agg.CI95 = &models.ConfidenceInterval{
					Lower: ci.Lower,
					Upper: ci.Upper,
					Mean:  ci.Mean,
				}
			}
		}

		aggs = append(aggs, agg)
	}
	return aggs
}
