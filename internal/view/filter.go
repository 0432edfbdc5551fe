package view

import (
	"slices"
	"strings"

	"github.com/hiroki-koketsu/taskmate/internal/model"
)

// Matches reports whether the task satisfies the filter.
func (f Filter) Matches(t model.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

func matchesSearch(t model.Task, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// Visible derives the ordered visible task sequence from the full
// collection. A task is visible when it matches both the view's filter and
// the search term. Ordering is due date descending; in the all view,
// incomplete tasks sort before completed ones first. The sort is stable, so
// tasks with equal due dates keep their collection order.
func Visible(tasks []model.Task, v View, searchTerm string) []model.Task {
	f := v.Filter()
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) && matchesSearch(t, searchTerm) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Task) int {
		if v == All && a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return b.DueDate.Compare(a.DueDate)
	})
	return out
}
