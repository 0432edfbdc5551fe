package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/timeline"
	"github.com/hiroki-koketsu/taskmate/internal/view"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task Mate"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.notice != "" {
		style := noticeStyle
		if m.noticeIsErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice))
	}
	b.WriteString("\n")

	if m.focus == focusSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	if m.focus == focusForm {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter next/submit · tab/shift+tab move · esc cancel"))
		return b.String()
	}

	if m.loading {
		b.WriteString(emptyStyle.Render("Loading tasks..."))
		return b.String()
	}

	visible := m.session.Visible()
	if len(visible) == 0 {
		b.WriteString(emptyStyle.Render(m.session.EmptyMessage()))
	} else if m.session.View() == view.Timeline {
		b.WriteString(m.renderTimeline(visible))
	} else {
		b.WriteString(m.renderList(visible))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1/2/3 views · / search · a add · e edit · x toggle · d delete · t time slots · r reload · q quit"))
	return b.String()
}

func (m *Model) renderTabs() string {
	labels := []struct {
		v    view.View
		text string
	}{
		{view.All, "All Tasks"},
		{view.Timeline, "Timeline"},
		{view.Completed, "Completed"},
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if m.session.View() == l.v {
			parts[i] = activeTabStyle.Render(l.text)
		} else {
			parts[i] = tabStyle.Render(l.text)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderForm() string {
	labels := [fieldCount]string{"Title", "Description", "Due date", "Due time", "Category"}
	var b strings.Builder
	heading := "Add New Task"
	if m.form.editID != "" {
		heading = "Edit Task"
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if m.form.err != "" {
		b.WriteString(errorStyle.Render(m.form.err))
		b.WriteString("\n")
	}
	for i := range m.form.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", labels[i], m.form.inputs[i].View()))
	}
	return b.String()
}

// renderList shows task cards for the completed and all views.
func (m *Model) renderList(visible []model.Task) string {
	now := time.Now().In(m.loc)
	lines := make([]string, len(visible))
	for i, t := range visible {
		lines[i] = m.renderCard(t, now, i == m.cursor)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCard(t model.Task, now time.Time, selected bool) string {
	check := "○"
	if t.Completed {
		check = "✓"
	}

	style := colorStyles[timeline.ColorFor(t)]
	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	} else {
		title = style.Render(title)
	}

	line := fmt.Sprintf("%s %s", check, title)
	if t.Description != "" {
		line += helpStyle.Render(" — " + t.Description)
	}
	line += helpStyle.Render(fmt.Sprintf("  due %s", t.DueDate.In(m.loc).Format("Jan 2 15:04")))
	if t.Category != "" {
		line += " " + style.Render("["+t.Category+"]")
	}
	if timeline.Overdue(t, now) {
		line += " " + overdueStyle.Render("overdue")
	}
	if t.Completed {
		line += helpStyle.Render("  completed " + t.UpdatedAt.In(m.loc).Format("Jan 2 15:04"))
	}

	if selected {
		return selectedStyle.Render("▸ ") + line
	}
	return "  " + line
}

// renderTimeline draws the two-week grid. Each task occupies one cell; when
// two tasks land on the same cell the later one wins, which matches the
// layout contract of leaving overlap to the renderer.
func (m *Model) renderTimeline(visible []model.Task) string {
	now := time.Now().In(m.loc)
	today := timeline.Today(now)
	entries := timeline.Layout(visible, today, now, m.mode)
	headers := timeline.Headers(today)

	colWidth := 8
	if m.width > 0 {
		if w := (m.width - 4) / timeline.DaysToShow; w > colWidth {
			colWidth = w
		}
	}

	rows := timeline.HoursPerDay
	if m.mode == timeline.ModeList {
		rows = m.listRows(entries)
	}

	type cell struct {
		text  string
		style lipgloss.Style
	}
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, timeline.DaysToShow)
	}

	selectedID := ""
	if t, ok := m.selected(); ok {
		selectedID = t.ID
	}

	nextRow := make([]int, timeline.DaysToShow)
	for _, e := range entries {
		row := 0
		if m.mode == timeline.ModeGrid {
			row = int(e.Pos.Top * float64(rows))
		} else {
			row = nextRow[e.Pos.Day]
			nextRow[e.Pos.Day]++
		}
		if row >= rows {
			row = rows - 1
		}

		text := e.Task.Title
		if e.Overdue {
			text = "!" + text
		}
		style := colorStyles[e.Color]
		if e.Task.ID == selectedID {
			style = selectedStyle
		}
		grid[row][e.Pos.Day] = cell{text: text, style: style}
	}

	var b strings.Builder

	// Day header strip: weekday and day-of-month per column.
	for _, h := range headers {
		style := headerStyle
		if h.IsToday {
			style = todayHeaderStyle
		}
		b.WriteString(style.Width(colWidth).Render(h.Weekday + " " + fmt.Sprint(h.Day)))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", colWidth*timeline.DaysToShow))
	b.WriteString("\n")

	for row := 0; row < rows; row++ {
		if m.mode == timeline.ModeGrid {
			b.WriteString(helpStyle.Render(fmt.Sprintf("%02d ", row*timeline.HoursPerDay/rows)))
		} else {
			b.WriteString("   ")
		}
		for day := 0; day < timeline.DaysToShow; day++ {
			c := grid[row][day]
			b.WriteString(c.style.Render(pad(c.text, colWidth)))
		}
		b.WriteString("\n")
	}

	if t, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.renderCard(t, now, true))
	}
	return b.String()
}

// listRows sizes the compact timeline: tall enough for the busiest column.
func (m *Model) listRows(entries []timeline.Entry) int {
	counts := make([]int, timeline.DaysToShow)
	rows := 8
	for _, e := range entries {
		counts[e.Pos.Day]++
		if counts[e.Pos.Day] > rows {
			rows = counts[e.Pos.Day]
		}
	}
	return rows
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width-1]) + " "
	}
	return s + strings.Repeat(" ", width-len(r))
}
