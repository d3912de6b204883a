// Package matrix enumerates the model × scenario × repetition grid.
package matrix

import (
	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Build produces one pending TestCell per (model, scenario, repetition),
// ordered by model, then scenario, then repetition. The order is the
// dispatch order within each model; completion order is unconstrained.
//
// Build has no side effects and fails only on malformed configuration.
func Build(cfg *config.Config) ([]models.TestCell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cells := make([]models.TestCell, 0, len(cfg.Models)*len(cfg.Scenarios)*cfg.Repetitions)
	for _, m := range cfg.Models {
		for _, s := range cfg.Scenarios {
			for k := 1; k <= cfg.Repetitions; k++ {
				cells = append(cells, models.TestCell{
					Model:      m.Slug,
					Scenario:   s.ID,
					Repetition: k,
				})
			}
		}
	}
	return cells, nil
}
