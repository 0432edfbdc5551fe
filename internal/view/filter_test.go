package view

import (
	"testing"
	"time"

	"github.com/hiroki-koketsu/taskmate/internal/model"
)

var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func task(id, title, description string, due time.Time, completed bool) model.Task {
	return model.Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     due,
		Completed:   completed,
	}
}

func sampleTasks() []model.Task {
	return []model.Task{
		task("1", "Pay rent", "transfer before the 1st", base.AddDate(0, 0, 2), false),
		task("2", "Buy groceries", "milk and bread", base.AddDate(0, 0, 1), true),
		task("3", "Call plumber", "kitchen sink leaks", base.AddDate(0, 0, 3), false),
		task("4", "Return library books", "", base.AddDate(0, 0, -1), true),
	}
}

func TestSearchMatching(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{"empty term matches everything", "", []string{"3", "1", "2", "4"}},
		{"title match is case-insensitive", "PAY", []string{"1"}},
		{"description match", "milk", []string{"2"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(tasks, All, tt.term)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterSoundness(t *testing.T) {
	tasks := sampleTasks()
	for _, v := range []View{Timeline, Completed, All} {
		f := v.Filter()
		for _, got := range Visible(tasks, v, "") {
			if !f.Matches(got) {
				t.Errorf("view %v surfaced task %s which does not match filter %v", v, got.ID, f)
			}
		}
	}
}

func TestAllViewPartitionsCompleted(t *testing.T) {
	got := Visible(sampleTasks(), All, "")

	seenCompleted := false
	var prev *model.Task
	for i := range got {
		cur := got[i]
		if cur.Completed {
			seenCompleted = true
		} else if seenCompleted {
			t.Fatalf("incomplete task %s after a completed one", cur.ID)
		}
		if prev != nil && prev.Completed == cur.Completed && prev.DueDate.Before(cur.DueDate) {
			t.Errorf("due dates not non-increasing within partition: %s before %s", prev.ID, cur.ID)
		}
		prev = &got[i]
	}
}

func TestNonAllViewsSortByDueDateOnly(t *testing.T) {
	got := Visible(sampleTasks(), Timeline, "")
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "1" {
		ids := make([]string, len(got))
		for i, task := range got {
			ids[i] = task.ID
		}
		t.Errorf("timeline order = %v, want [3 1]", ids)
	}
}

func TestEqualDueDatesKeepCollectionOrder(t *testing.T) {
	due := base.AddDate(0, 0, 1)
	tasks := []model.Task{
		task("a", "first", "", due, false),
		task("b", "second", "", due, false),
		task("c", "third", "", due, false),
	}
	got := Visible(tasks, Timeline, "")
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %s, want %s (stable tie-break)", i, got[i].ID, id)
		}
	}
}

func TestAllViewScenario(t *testing.T) {
	// Pending A due tomorrow, completed B due yesterday: incomplete first.
	a := task("a", "A", "", base.AddDate(0, 0, 1), false)
	b := task("b", "B", "", base.AddDate(0, 0, -1), true)

	got := Visible([]model.Task{a, b}, All, "")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("visible order wrong: %+v", got)
	}
}
