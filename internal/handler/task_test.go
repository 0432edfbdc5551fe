package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/repository"
	"github.com/hiroki-koketsu/taskmate/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := repository.NewTaskRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// The default global meter provider is a no-op, which is all the
	// handler needs here.
	metrics, err := telemetry.NewMetrics(otel.Meter("test"), repo.Count)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	h := NewTaskHandler(repo, logger, metrics)
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/tasks", h.Routes())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func createTask(t *testing.T, srv *httptest.Server, title string, due time.Time) model.Task {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", model.CreateTaskRequest{
		Title:    title,
		DueDate:  due,
		Category: model.CategoryMedium,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %s", resp.StatusCode, body)
	}
	var task model.Task
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("decode created task: %v", err)
	}
	return task
}

func TestCreateAndList(t *testing.T) {
	srv := newTestServer(t)
	due := time.Now().Add(24 * time.Hour)

	task := createTask(t, srv, "Write report", due)
	if task.ID == "" {
		t.Error("created task has no id")
	}
	if task.Completed {
		t.Error("created task should be pending")
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned %d", resp.StatusCode)
	}
	var tasks []model.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("list = %+v, want the created task", tasks)
	}
}

func TestListOrder(t *testing.T) {
	srv := newTestServer(t)
	due := time.Now().Add(24 * time.Hour)

	first := createTask(t, srv, "first", due)
	second := createTask(t, srv, "second", due)

	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", nil)
	var tasks []model.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Errorf("list order = %v, want newest-created first", []string{tasks[0].Title, tasks[1].Title})
	}
}

func TestCreateValidationFailure(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  model.CreateTaskRequest
	}{
		{name: "missing title", req: model.CreateTaskRequest{DueDate: time.Now()}},
		{name: "missing due date", req: model.CreateTaskRequest{Title: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", tt.req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var payload map[string]string
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("decode error payload: %v", err)
			}
			if payload["message"] != "Error creating task" {
				t.Errorf("message = %q", payload["message"])
			}
			if payload["error"] == "" {
				t.Error("error detail missing from validation failure")
			}
		})
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	srv := newTestServer(t)
	task := createTask(t, srv, "Write report", time.Now().Add(24*time.Hour))

	stale := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	completed := true
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+task.ID, model.UpdateTaskRequest{
		Completed: &completed,
		UpdatedAt: &stale,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update returned %d: %s", resp.StatusCode, body)
	}
	var updated model.Task
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode updated task: %v", err)
	}
	if !updated.Completed {
		t.Error("Completed not applied")
	}
	if updated.UpdatedAt.Before(task.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want >= %v", updated.UpdatedAt, task.UpdatedAt)
	}
}

func TestUpdateNotFound(t *testing.T) {
	srv := newTestServer(t)
	completed := true
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/tasks/missing", model.UpdateTaskRequest{Completed: &completed})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["message"] != "Task not found" {
		t.Errorf("message = %q", payload["message"])
	}
	if _, ok := payload["error"]; ok {
		t.Error("not-found payload should carry message only")
	}
}

func TestDelete(t *testing.T) {
	srv := newTestServer(t)
	task := createTask(t, srv, "Write report", time.Now().Add(24*time.Hour))

	resp, body := doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+task.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete returned %d", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["message"] != "Task deleted successfully" {
		t.Errorf("message = %q", payload["message"])
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+task.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete returned %d, want 404", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %q", payload["status"])
	}
}
