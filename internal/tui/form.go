package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hiroki-koketsu/taskmate/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDate
	fieldTime
	fieldCategory
	fieldCount
)

// taskForm is the add/edit form. Input is validated locally before any
// network call: empty titles and unparseable date/time combinations never
// leave the client.
type taskForm struct {
	inputs [fieldCount]textinput.Model
	index  int
	editID string
	err    string
}

func newTaskForm() taskForm {
	f := taskForm{}

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 100
	f.inputs[fieldTitle] = title

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	f.inputs[fieldDescription] = desc

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	f.inputs[fieldDate] = date

	tm := textinput.New()
	tm.Placeholder = "HH:MM"
	tm.CharLimit = 5
	f.inputs[fieldTime] = tm

	cat := textinput.New()
	cat.Placeholder = "High / Medium / Low"
	f.inputs[fieldCategory] = cat

	return f
}

// reset prepares the form for a new task, defaulting the due date to now.
func (f *taskForm) reset(now time.Time) {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldDate].SetValue(now.Format("2006-01-02"))
	f.inputs[fieldTime].SetValue(now.Format("15:04"))
	f.inputs[fieldCategory].SetValue(model.CategoryMedium)
	f.index = fieldTitle
	f.editID = ""
	f.err = ""
	f.inputs[fieldTitle].Focus()
}

// load prefills the form from an existing task for editing.
func (f *taskForm) load(t model.Task) {
	f.reset(t.DueDate)
	f.editID = t.ID
	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldDescription].SetValue(t.Description)
	f.inputs[fieldDate].SetValue(t.DueDate.Format("2006-01-02"))
	f.inputs[fieldTime].SetValue(t.DueDate.Format("15:04"))
	f.inputs[fieldCategory].SetValue(t.Category)
}

func (f *taskForm) focusField(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.index = i
	return f.inputs[i].Focus()
}

func (f *taskForm) next() tea.Cmd {
	return f.focusField((f.index + 1) % fieldCount)
}

func (f *taskForm) prev() tea.Cmd {
	return f.focusField((f.index + fieldCount - 1) % fieldCount)
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return cmd
}

// parse validates the form and builds the due instant in loc. It returns a
// human-readable problem instead of an error value; the form stays open
// until the input is valid.
func (f *taskForm) parse(loc *time.Location) (title, description, category string, due time.Time, problem string) {
	title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return "", "", "", time.Time{}, "Title is required"
	}

	dateStr := strings.TrimSpace(f.inputs[fieldDate].Value())
	timeStr := strings.TrimSpace(f.inputs[fieldTime].Value())
	if dateStr == "" || timeStr == "" {
		return "", "", "", time.Time{}, "Due date and time are required"
	}

	due, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
	if err != nil {
		return "", "", "", time.Time{}, "Invalid date or time"
	}

	description = strings.TrimSpace(f.inputs[fieldDescription].Value())
	category = strings.TrimSpace(f.inputs[fieldCategory].Value())
	if category == "" {
		category = model.CategoryMedium
	}
	return title, description, category, due, ""
}
