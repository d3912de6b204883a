// Package ranking orders models within scoring categories. Rankings are
// a pure function of the aggregates, so re-ranking a stored run is
// always safe and always reproducible.
package ranking

import (
	"sort"

	"github.com/maslennikov-ig/coursebench/internal/models"
	"github.com/maslennikov-ig/coursebench/internal/statistics"
)

// OverallCategory names the cross-scenario ranking category.
const OverallCategory = "overall"

// Build produces one ranking per scenario, per scenario kind, and one
// overall ranking. Category order is scenario categories ascending,
// then kind categories ascending, then overall.
func Build(aggs []models.AggregateScore, scenarios []models.Scenario) []models.CategoryRanking {
	kindOf := make(map[string]models.ScenarioKind, len(scenarios))
	for _, sc := range scenarios {
		kindOf[sc.ID] = sc.Kind
	}

	byCategory := make(map[string][]models.AggregateScore)
	for _, agg := range aggs {
		byCategory["scenario:"+agg.Scenario] = append(byCategory["scenario:"+agg.Scenario], agg)
		if kind, ok := kindOf[agg.Scenario]; ok {
			byCategory["kind:"+string(kind)] = append(byCategory["kind:"+string(kind)], agg)
		}
		byCategory[OverallCategory] = append(byCategory[OverallCategory], agg)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		if cat != OverallCategory {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)
	if _, ok := byCategory[OverallCategory]; ok {
		categories = append(categories, OverallCategory)
	}

	rankings := make([]models.CategoryRanking, 0, len(categories))
	for _, cat := range categories {
		rankings = append(rankings, models.CategoryRanking{
			Category: cat,
			Entries:  rank(cat, byCategory[cat]),
		})
	}
	return rankings
}

// rank collapses a category's aggregates per model and orders the
// result: score descending, then consistency descending with unknown
// consistency last, then model slug ascending.
func rank(category string, aggs []models.AggregateScore) []models.RankingEntry {
	type accum struct {
		scores        []float64
		consistencies []float64
	}
	perModel := make(map[string]*accum)
	for _, agg := range aggs {
		a := perModel[agg.Model]
		if a == nil {
			a = &accum{}
			perModel[agg.Model] = a
		}
		a.scores = append(a.scores, agg.MeanOverall)
		if agg.Consistency != nil {
			a.consistencies = append(a.consistencies, *agg.Consistency)
		}
	}

	entries := make([]models.RankingEntry, 0, len(perModel))
	for model, a := range perModel {
		entry := models.RankingEntry{
			Model:    model,
			Category: category,
			Score:    statistics.Mean(a.scores),
		}
		if len(a.consistencies) > 0 {
			c := statistics.Mean(a.consistencies)
			entry.Consistency = &c
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.Consistency != nil && b.Consistency != nil && *a.Consistency != *b.Consistency:
			return *a.Consistency > *b.Consistency
		case a.Consistency != nil && b.Consistency == nil:
			return true
		case a.Consistency == nil && b.Consistency != nil:
			return false
		}
		return a.Model < b.Model
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
