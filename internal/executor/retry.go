package executor

import (
	"sort"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// FailedCells selects the cells from a prior run whose metadata records
// a failure, ordered by model, scenario, repetition. Feeding the result
// back into Run re-executes only those cells; their artifact keys are
// unchanged, so the overwrite touches nothing else.
func FailedCells(metas []models.CellMeta) []models.TestCell {
	var cells []models.TestCell
	for _, m := range metas {
		if !m.Success {
			cells = append(cells, m.Cell())
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Model != cells[j].Model {
			return cells[i].Model < cells[j].Model
		}
		if cells[i].Scenario != cells[j].Scenario {
			return cells[i].Scenario < cells[j].Scenario
		}
		return cells[i].Repetition < cells[j].Repetition
	})
	return cells
}
