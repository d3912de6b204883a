package models

// ScoreWeights combines the three quality dimensions into an overall
// score. The defaults are heuristic and deliberately configurable.
type ScoreWeights struct {
	Schema   float64 `yaml:"schema" json:"schema"`
	Content  float64 `yaml:"content" json:"content"`
	Language float64 `yaml:"language" json:"language"`
}

// DefaultScoreWeights returns the stock 0.4/0.4/0.2 weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Schema: 0.4, Content: 0.4, Language: 0.2}
}

// Overall computes the weighted combination of the three sub-scores,
// normalized by the weight sum so misconfigured weights still land in
// [0,1].
func (w ScoreWeights) Overall(schema, content, language float64) float64 {
	total := w.Schema + w.Content + w.Language
	if total <= 0 {
		w = DefaultScoreWeights()
		total = w.Schema + w.Content + w.Language
	}
	return (schema*w.Schema + content*w.Content + language*w.Language) / total
}

// QualityScore is the per-cell evaluation result. All sub-scores are in
// [0,1] and OverallScore is always derived via ScoreWeights, never
// authored directly. Parsed is false when the raw text never reached a
// structured artifact; such records score zero everywhere and stay out
// of aggregate means.
type QualityScore struct {
	Cell          TestCell `json:"cell"`
	Parsed        bool     `json:"parsed"`
	SchemaScore   float64  `json:"schema_score"`
	ContentScore  float64  `json:"content_score"`
	LanguageScore float64  `json:"language_score"`
	OverallScore  float64  `json:"overall_score"`
	Issues        []string `json:"issues,omitempty"`
}

// AggregateScore summarizes one (model, scenario) pair across
// repetitions. Means cover only cells that reached the parsed state;
// generation failures and unparsable outputs reduce SuccessCount
// instead of dragging the means down.
type AggregateScore struct {
	Model    string `json:"model"`
	Scenario string `json:"scenario"`

	MeanOverall  float64 `json:"mean_overall"`
	MeanSchema   float64 `json:"mean_schema"`
	MeanContent  float64 `json:"mean_content"`
	MeanLanguage float64 `json:"mean_language"`

	SuccessCount int `json:"success_count"`
	Repetitions  int `json:"repetitions"`

	// Consistency is max(0, 1-stddev) of the overall scores across
	// repetitions. Nil means fewer than 2 scored cells were available,
	// which is distinct from a computed zero.
	Consistency *float64 `json:"consistency,omitempty"`

	// CI95 brackets the mean overall score when at least 2 scored cells
	// exist.
	CI95 *ConfidenceInterval `json:"ci95,omitempty"`
}

// ConfidenceInterval brackets an estimated mean.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Mean  float64 `json:"mean"`
}

// CategoryRanking is the ordered model list for one category: a single
// scenario, a scenario kind, or "overall".
type CategoryRanking struct {
	Category string         `json:"category"`
	Entries  []RankingEntry `json:"entries"`
}

// RankingEntry is one model's position within a ranking category.
type RankingEntry struct {
	Model       string   `json:"model"`
	Category    string   `json:"category"`
	Rank        int      `json:"rank"`
	Score       float64  `json:"score"`
	Consistency *float64 `json:"consistency,omitempty"`
}
