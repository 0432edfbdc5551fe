package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/repository"
	"github.com/hiroki-koketsu/taskmate/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/hiroki-koketsu/taskmate/internal/handler")

// errorResponse is the error payload shape shared by all endpoints. The
// Error field is present for validation and server failures, absent for
// plain not-found responses.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// messageResponse is the success payload for deletes.
type messageResponse struct {
	Message string `json:"message"`
}

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	repo    *repository.TaskRepository
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(repo *repository.TaskRepository, logger *slog.Logger, metrics *telemetry.Metrics) *TaskHandler {
	return &TaskHandler{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

// Routes returns the chi router with task routes.
func (h *TaskHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// List returns all tasks, newest-created first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "TaskHandler.List")
	defer span.End()

	tasks, err := h.repo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks", slog.Any("error", err))
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error fetching tasks", Error: err.Error()})
		h.recordMetrics(ctx, "GET", "/api/tasks", http.StatusInternalServerError, start)
		return
	}

	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	h.logger.InfoContext(ctx, "tasks listed", slog.Int("count", len(tasks)))

	h.respondJSON(w, http.StatusOK, tasks)
	h.recordMetrics(ctx, "GET", "/api/tasks", http.StatusOK, start)
}

// Create adds a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "TaskHandler.Create")
	defer span.End()

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid request body", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error creating task", Error: err.Error()})
		h.recordMetrics(ctx, "POST", "/api/tasks", http.StatusBadRequest, start)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error creating task", Error: err.Error()})
		h.recordMetrics(ctx, "POST", "/api/tasks", http.StatusBadRequest, start)
		return
	}

	task, err := h.repo.Create(ctx, &req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create task", slog.Any("error", err))
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error creating task", Error: err.Error()})
		h.recordMetrics(ctx, "POST", "/api/tasks", http.StatusInternalServerError, start)
		return
	}

	span.SetAttributes(attribute.String("task.id", task.ID))
	h.logger.InfoContext(ctx, "task created", slog.String("id", task.ID), slog.String("title", task.Title))
	h.metrics.MutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("task.operation", "create")))

	h.respondJSON(w, http.StatusCreated, task)
	h.recordMetrics(ctx, "POST", "/api/tasks", http.StatusCreated, start)
}

// Update applies a partial update to an existing task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "TaskHandler.Update",
		trace.WithAttributes(attribute.String("task.id", id)),
	)
	defer span.End()

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid request body", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error updating task", Error: err.Error()})
		h.recordMetrics(ctx, "PUT", "/api/tasks/{id}", http.StatusBadRequest, start)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error updating task", Error: err.Error()})
		h.recordMetrics(ctx, "PUT", "/api/tasks/{id}", http.StatusBadRequest, start)
		return
	}

	task, err := h.repo.Update(ctx, id, &req)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			h.logger.WarnContext(ctx, "task not found", slog.String("id", id))
			h.respondJSON(w, http.StatusNotFound, errorResponse{Message: "Task not found"})
			h.recordMetrics(ctx, "PUT", "/api/tasks/{id}", http.StatusNotFound, start)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update task", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error updating task", Error: err.Error()})
		h.recordMetrics(ctx, "PUT", "/api/tasks/{id}", http.StatusBadRequest, start)
		return
	}

	h.logger.InfoContext(ctx, "task updated", slog.String("id", id))
	h.metrics.MutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("task.operation", "update")))

	h.respondJSON(w, http.StatusOK, task)
	h.recordMetrics(ctx, "PUT", "/api/tasks/{id}", http.StatusOK, start)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "TaskHandler.Delete",
		trace.WithAttributes(attribute.String("task.id", id)),
	)
	defer span.End()

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			h.logger.WarnContext(ctx, "task not found", slog.String("id", id))
			h.respondJSON(w, http.StatusNotFound, errorResponse{Message: "Task not found"})
			h.recordMetrics(ctx, "DELETE", "/api/tasks/{id}", http.StatusNotFound, start)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete task", slog.Any("error", err))
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Error deleting task", Error: err.Error()})
		h.recordMetrics(ctx, "DELETE", "/api/tasks/{id}", http.StatusBadRequest, start)
		return
	}

	h.logger.InfoContext(ctx, "task deleted", slog.String("id", id))
	h.metrics.MutationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("task.operation", "delete")))

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "Task deleted successfully"})
	h.recordMetrics(ctx, "DELETE", "/api/tasks/{id}", http.StatusOK, start)
}

// Health returns a health check response.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TaskHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *TaskHandler) recordMetrics(ctx context.Context, method, route string, status int, start time.Time) {
	duration := time.Since(start).Seconds()

	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)

	h.metrics.RequestCounter.Add(ctx, 1, attrs)
	h.metrics.RequestDuration.Record(ctx, duration, attrs)
}
