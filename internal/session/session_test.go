package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hiroki-koketsu/taskmate/internal/client"
	"github.com/hiroki-koketsu/taskmate/internal/handler"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/repository"
	"github.com/hiroki-koketsu/taskmate/internal/telemetry"
	"github.com/hiroki-koketsu/taskmate/internal/view"
	"go.opentelemetry.io/otel"
)

// newSession wires a Session against a real in-process store: repository,
// handler, httptest server and HTTP client, end to end.
func newSession(t *testing.T) *Session {
	t.Helper()

	repo := repository.NewTaskRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics, err := telemetry.NewMetrics(otel.Meter("test"), repo.Count)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	h := handler.NewTaskHandler(repo, logger, metrics)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/tasks", h.Routes())
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(client.New(srv.URL))
}

func addTask(t *testing.T, s *Session, title string, due time.Time) *model.Task {
	t.Helper()
	task, err := s.Add(context.Background(), &model.CreateTaskRequest{
		Title:    title,
		DueDate:  due,
		Category: model.CategoryMedium,
	})
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	return task
}

func TestLoadEmpty(t *testing.T) {
	s := newSession(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Visible(); len(got) != 0 {
		t.Errorf("Visible = %+v, want empty", got)
	}
	if msg := s.EmptyMessage(); msg != "No pending tasks" {
		t.Errorf("EmptyMessage = %q on the timeline view", msg)
	}
}

func TestAddAppearsInViews(t *testing.T) {
	s := newSession(t)
	due := time.Now().Add(24 * time.Hour)

	created := addTask(t, s, "Write report", due)
	if created.Completed {
		t.Error("new task should be pending")
	}

	// Pending task: visible on the timeline and in all, absent from completed.
	if got := s.Visible(); len(got) != 1 || got[0].ID != created.ID {
		t.Errorf("timeline Visible = %+v", got)
	}
	s.SetView(view.All)
	if got := s.Visible(); len(got) != 1 {
		t.Errorf("all Visible = %+v", got)
	}
	s.SetView(view.Completed)
	if got := s.Visible(); len(got) != 0 {
		t.Errorf("completed Visible = %+v, want empty", got)
	}
}

func TestAddValidationSkipsNetwork(t *testing.T) {
	s := newSession(t)

	_, err := s.Add(context.Background(), &model.CreateTaskRequest{Title: "  "})
	if !errors.Is(err, model.ErrTitleRequired) {
		t.Fatalf("Add = %v, want ErrTitleRequired", err)
	}
	if got := s.Tasks(); len(got) != 0 {
		t.Errorf("cache changed on failed add: %+v", got)
	}
}

func TestToggleCompleteTransitionsView(t *testing.T) {
	s := newSession(t)
	task := addTask(t, s, "Write report", time.Now().Add(24*time.Hour))
	prevUpdated := task.UpdatedAt

	if s.View() != view.Timeline {
		t.Fatalf("start view = %v", s.View())
	}

	updated, err := s.ToggleComplete(context.Background(), task.ID, true)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !updated.Completed {
		t.Error("task not completed")
	}
	if updated.UpdatedAt.Before(prevUpdated) {
		t.Errorf("UpdatedAt = %v, want >= %v", updated.UpdatedAt, prevUpdated)
	}
	if s.View() != view.Completed {
		t.Errorf("view = %v after completing from timeline, want completed", s.View())
	}

	// Toggling back from the all view leaves the view alone.
	s.SetView(view.All)
	if _, err := s.ToggleComplete(context.Background(), task.ID, false); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if s.View() != view.All {
		t.Errorf("view = %v after toggling in all view, want all", s.View())
	}
}

func TestDeleteRemovesEverywhere(t *testing.T) {
	s := newSession(t)
	task := addTask(t, s, "Write report", time.Now().Add(24*time.Hour))

	if err := s.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, v := range []view.View{view.Timeline, view.Completed, view.All} {
		s.SetView(v)
		if got := s.Visible(); len(got) != 0 {
			t.Errorf("view %v still shows %+v after delete", v, got)
		}
	}
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	s := newSession(t)
	addTask(t, s, "Write report", time.Now().Add(24*time.Hour))
	before := s.Tasks()

	_, err := s.ToggleComplete(context.Background(), "missing", true)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.NotFound() {
		t.Fatalf("ToggleComplete unknown id = %v, want not-found APIError", err)
	}

	after := s.Tasks()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("cache changed after failed mutation: %+v -> %+v", before, after)
	}
	if s.View() != view.Timeline {
		t.Errorf("view transitioned on a failed toggle: %v", s.View())
	}
}

func TestSearchWithNoMatches(t *testing.T) {
	s := newSession(t)
	addTask(t, s, "Write report", time.Now().Add(24*time.Hour))

	s.SetSearchTerm("zzz")
	if got := s.Visible(); len(got) != 0 {
		t.Errorf("Visible = %+v, want empty for unmatched search", got)
	}
	if msg := s.EmptyMessage(); msg != "No pending tasks" {
		t.Errorf("EmptyMessage = %q", msg)
	}

	s.SetView(view.All)
	if msg := s.EmptyMessage(); msg != "No tasks found" {
		t.Errorf("EmptyMessage = %q on all view", msg)
	}
	s.SetView(view.Completed)
	if msg := s.EmptyMessage(); msg != "No completed tasks yet" {
		t.Errorf("EmptyMessage = %q on completed view", msg)
	}
}

func TestSetFilterMapsToView(t *testing.T) {
	s := newSession(t)
	s.SetFilter(view.FilterCompleted)
	if s.View() != view.Completed {
		t.Errorf("View = %v after FilterCompleted", s.View())
	}
	s.SetFilter(view.FilterPending)
	if s.View() != view.Timeline {
		t.Errorf("View = %v after FilterPending", s.View())
	}
	s.SetFilter(view.FilterAll)
	if s.View() != view.All {
		t.Errorf("View = %v after FilterAll", s.View())
	}
}
