// Package timeline positions tasks on a rolling 14-day, 24-hour grid
// anchored at the start of the current day. Placement is a pure function of
// the task and the anchor times; tasks never influence each other, and
// overlap resolution is left to the renderer.
package timeline

import (
	"math"
	"time"

	"github.com/hiroki-koketsu/taskmate/internal/model"
)

const (
	// DaysToShow is the width of the grid in day columns (two weeks).
	DaysToShow = 14
	// HoursPerDay is the height of the grid in hour rows.
	HoursPerDay = 24
)

// Mode selects how tasks are placed vertically.
type Mode int

const (
	// ModeGrid places tasks at their due time with minute-level precision.
	ModeGrid Mode = iota
	// ModeList ignores the hour row; the renderer stacks tasks per column
	// in the order they arrive. Day columns are computed the same way.
	ModeList
)

// Color is the visual category of a task card, independent of its position.
type Color int

const (
	ColorHigh Color = iota
	ColorMedium
	ColorLow
	ColorDefault
	ColorMuted
)

// Position locates a task on the grid. Left, Width and Top are fractions of
// the full grid width and height, scaled to display size by the renderer.
type Position struct {
	Day   int
	Left  float64
	Width float64
	Top   float64
}

// Entry pairs a task with its computed placement.
type Entry struct {
	Task    model.Task
	Pos     Position
	Color   Color
	Overdue bool
}

// DayHeader labels one column of the grid.
type DayHeader struct {
	Date    time.Time
	Weekday string
	Day     int
	IsToday bool
}

// Today returns now truncated to midnight in now's location. All day
// arithmetic anchors on this value rather than the host clock.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// DayColumn returns the grid column for a due date, clamped to the visible
// range. Overdue tasks land on column 0 and far-future tasks on the last
// column so they stay visible at the grid boundary.
func DayColumn(today, due time.Time) int {
	days := daysBetween(today, due)
	if days < 0 {
		return 0
	}
	if days > DaysToShow-1 {
		return DaysToShow - 1
	}
	return days
}

// daysBetween counts calendar days from today's midnight to the due date's
// midnight. Rounding absorbs the off-by-an-hour gap a DST transition leaves
// between two midnights.
func daysBetween(today, due time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	return int(math.Round(dueDay.Sub(today).Hours() / HoursPerDay))
}

// PositionFor computes the grid position of a single task. In list mode the
// vertical coordinate is left at zero.
func PositionFor(t model.Task, today time.Time, mode Mode) Position {
	day := DayColumn(today, t.DueDate)
	p := Position{
		Day:   day,
		Left:  float64(day) / DaysToShow,
		Width: 1.0 / DaysToShow,
	}
	if mode == ModeGrid {
		due := t.DueDate.In(today.Location())
		p.Top = (float64(due.Hour()) + float64(due.Minute())/60) / HoursPerDay
	}
	return p
}

// ColorFor derives the visual category: completed tasks are muted regardless
// of priority, unknown categories fall back to the default.
func ColorFor(t model.Task) Color {
	if t.Completed {
		return ColorMuted
	}
	switch t.Category {
	case model.CategoryHigh:
		return ColorHigh
	case model.CategoryMedium:
		return ColorMedium
	case model.CategoryLow:
		return ColorLow
	default:
		return ColorDefault
	}
}

// Overdue reports whether the task is pending and past due at now.
func Overdue(t model.Task, now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

// Layout places each task on the grid. A task without a due date is a data
// integrity problem upstream; it is skipped rather than failing the layout.
func Layout(tasks []model.Task, today, now time.Time, mode Mode) []Entry {
	entries := make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		entries = append(entries, Entry{
			Task:    t,
			Pos:     PositionFor(t, today, mode),
			Color:   ColorFor(t),
			Overdue: Overdue(t, now),
		})
	}
	return entries
}

// Headers returns the column labels for the two-week window starting at
// today.
func Headers(today time.Time) []DayHeader {
	hs := make([]DayHeader, DaysToShow)
	for i := range hs {
		d := today.AddDate(0, 0, i)
		hs[i] = DayHeader{
			Date:    d,
			Weekday: d.Format("Mon"),
			Day:     d.Day(),
			IsToday: i == 0,
		}
	}
	return hs
}
