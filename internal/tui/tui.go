// Package tui provides the terminal client for the task store.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/session"
	"github.com/hiroki-koketsu/taskmate/internal/timeline"
	"github.com/hiroki-koketsu/taskmate/internal/view"
)

type focus int

const (
	focusTasks focus = iota
	focusSearch
	focusForm
)

type loadedMsg struct{ err error }

type mutatedMsg struct {
	success string
	failure string
	err     error
}

type clearNoticeMsg struct{}

// Model is the Bubble Tea model for the client. All task state lives in the
// session; the model holds presentation concerns only.
type Model struct {
	session *session.Session
	loc     *time.Location

	mode   timeline.Mode
	focus  focus
	cursor int
	width  int
	height int

	search textinput.Model
	form   taskForm

	notice      string
	noticeIsErr bool
	loading     bool
}

// New creates the client model. loc pins the time zone used for "today" and
// the due-instant of new tasks.
func New(s *session.Session, loc *time.Location) *Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "

	return &Model{
		session: s,
		loc:     loc,
		mode:    timeline.ModeGrid,
		search:  search,
		form:    newTaskForm(),
		loading: true,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return loadedMsg{err: m.session.Load(ctx)}
	}
}

func mutateCmd(success, failure string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return mutatedMsg{success: success, failure: failure, err: fn(ctx)}
	}
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withNotice("Failed to fetch tasks", true)
		}
		m.clampCursor()
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			return m.withNotice(msg.failure, true)
		}
		m.clampCursor()
		return m.withNotice(msg.success, false)

	case clearNoticeMsg:
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusForm:
			return m.updateForm(msg)
		default:
			return m.updateTasks(msg)
		}
	}
	return m, nil
}

func (m *Model) withNotice(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeIsErr = isErr
	return m, clearNoticeCmd()
}

func (m *Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1":
		m.session.SetView(view.All)
		m.clampCursor()
	case "2":
		m.session.SetView(view.Timeline)
		m.clampCursor()
	case "3":
		m.session.SetView(view.Completed)
		m.clampCursor()
	case "tab":
		switch m.session.View() {
		case view.Timeline:
			m.session.SetView(view.Completed)
		case view.Completed:
			m.session.SetView(view.All)
		default:
			m.session.SetView(view.Timeline)
		}
		m.clampCursor()

	case "p":
		// Filter selector shortcut: pending filter maps back to timeline.
		m.session.SetFilter(view.FilterPending)
		m.clampCursor()

	case "t":
		if m.mode == timeline.ModeGrid {
			m.mode = timeline.ModeList
		} else {
			m.mode = timeline.ModeGrid
		}

	case "/":
		m.focus = focusSearch
		return m, m.search.Focus()

	case "a":
		m.focus = focusForm
		m.form.reset(time.Now().In(m.loc))
		return m, textinput.Blink

	case "e":
		if t, ok := m.selected(); ok {
			m.focus = focusForm
			m.form.load(t)
			return m, textinput.Blink
		}

	case "r":
		m.loading = true
		return m, m.loadCmd()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.session.Visible())-1 {
			m.cursor++
		}

	case "x", " ":
		if t, ok := m.selected(); ok {
			id, completed := t.ID, !t.Completed
			success := "Task marked as pending!"
			if completed {
				success = "Task completed!"
			}
			return m, mutateCmd(success, "Failed to update task status", func(ctx context.Context) error {
				_, err := m.session.ToggleComplete(ctx, id, completed)
				return err
			})
		}

	case "d":
		if t, ok := m.selected(); ok {
			id := t.ID
			return m, mutateCmd("Task deleted successfully!", "Failed to delete task", func(ctx context.Context) error {
				return m.session.Delete(ctx, id)
			})
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.session.SetSearchTerm("")
		m.search.Blur()
		m.focus = focusTasks
		m.clampCursor()
		return m, nil
	case "enter":
		m.search.Blur()
		m.focus = focusTasks
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.session.SetSearchTerm(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusTasks
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		if m.form.index < fieldCount-1 {
			return m, m.form.next()
		}
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	title, description, category, due, problem := m.form.parse(m.loc)
	if problem != "" {
		m.form.err = problem
		return m, nil
	}

	m.focus = focusTasks
	if id := m.form.editID; id != "" {
		req := &model.UpdateTaskRequest{
			Title:       &title,
			Description: &description,
			DueDate:     &due,
			Category:    &category,
		}
		return m, mutateCmd("Task updated successfully!", "Failed to update task", func(ctx context.Context) error {
			_, err := m.session.Update(ctx, id, req)
			return err
		})
	}

	req := &model.CreateTaskRequest{
		Title:       title,
		Description: description,
		DueDate:     due,
		Category:    category,
	}
	return m, mutateCmd("Task added successfully!", "Failed to add task", func(ctx context.Context) error {
		_, err := m.session.Add(ctx, req)
		return err
	})
}

func (m *Model) selected() (model.Task, bool) {
	visible := m.session.Visible()
	if len(visible) == 0 || m.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.session.Visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Run starts the client program.
func Run(ctx context.Context, s *session.Session) error {
	program := tea.NewProgram(New(s, time.Local), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
