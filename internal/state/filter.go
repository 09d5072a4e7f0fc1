package state

import (
	"strings"

	"github.com/mrivas/gestor/internal/models"
)

// Visible returns the subset of tasks passing both the status filter and the
// search term, preserving the input order. Pure function: no state is read
// or written beyond the arguments.
//
// The search is a case-insensitive substring match against title or
// description; an empty term matches everything.
func Visible(tasks []models.Task, status models.StatusFilter, search string) []models.Task {
	term := strings.ToLower(search)

	var visible []models.Task
	for _, t := range tasks {
		if status == models.FilterActive && t.Completed {
			continue
		}
		if status == models.FilterCompleted && !t.Completed {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			continue
		}
		visible = append(visible, t)
	}
	return visible
}
