package tui

import (
	"testing"
	"time"
)

func TestFormParse(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name        string
		title       string
		date        string
		time        string
		category    string
		wantProblem string
		wantDue     time.Time
		wantCat     string
	}{
		{
			name:     "valid input",
			title:    "  Write report  ",
			date:     "2026-03-14",
			time:     "09:30",
			category: "High",
			wantDue:  time.Date(2026, 3, 14, 9, 30, 0, 0, loc),
			wantCat:  "High",
		},
		{
			name:        "blank title",
			title:       "   ",
			date:        "2026-03-14",
			time:        "09:30",
			wantProblem: "Title is required",
		},
		{
			name:        "missing date",
			title:       "x",
			date:        "",
			time:        "09:30",
			wantProblem: "Due date and time are required",
		},
		{
			name:        "invalid calendar date",
			title:       "x",
			date:        "2026-02-30",
			time:        "09:30",
			wantProblem: "Invalid date or time",
		},
		{
			name:        "invalid time",
			title:       "x",
			date:        "2026-03-14",
			time:        "25:00",
			wantProblem: "Invalid date or time",
		},
		{
			name:    "category defaults to medium",
			title:   "x",
			date:    "2026-03-14",
			time:    "09:30",
			wantDue: time.Date(2026, 3, 14, 9, 30, 0, 0, loc),
			wantCat: "Medium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskForm()
			f.inputs[fieldTitle].SetValue(tt.title)
			f.inputs[fieldDate].SetValue(tt.date)
			f.inputs[fieldTime].SetValue(tt.time)
			f.inputs[fieldCategory].SetValue(tt.category)

			title, _, category, due, problem := f.parse(loc)
			if problem != tt.wantProblem {
				t.Fatalf("problem = %q, want %q", problem, tt.wantProblem)
			}
			if tt.wantProblem != "" {
				return
			}
			if title != "Write report" && title != "x" {
				t.Errorf("title = %q, want trimmed input", title)
			}
			if !due.Equal(tt.wantDue) {
				t.Errorf("due = %v, want %v", due, tt.wantDue)
			}
			if category != tt.wantCat {
				t.Errorf("category = %q, want %q", category, tt.wantCat)
			}
		})
	}
}
