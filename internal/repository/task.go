package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/hiroki-koketsu/taskmate/internal/repository")

// record pairs a task with its insertion sequence so that listing order is
// deterministic even when two tasks share a creation timestamp.
type record struct {
	task model.Task
	seq  uint64
}

// TaskRepository provides an in-memory storage for tasks.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*record
	seq   uint64
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]*record),
	}
}

// Create adds a new task to the repository. Client-supplied timestamps are
// honored; missing ones default to now.
func (r *TaskRepository) Create(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.Create",
		trace.WithAttributes(attribute.String("task.title", req.Title)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task := model.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.CreatedAt != nil {
		task.CreatedAt = *req.CreatedAt
	}
	if req.UpdatedAt != nil {
		task.UpdatedAt = *req.UpdatedAt
	}

	r.seq++
	r.tasks[task.ID] = &record{task: task, seq: r.seq}

	span.SetAttributes(attribute.String("task.id", task.ID))
	return &task, nil
}

// List returns all tasks, newest-created first.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.List")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]*record, 0, len(r.tasks))
	for _, rec := range r.tasks {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]model.Task, len(recs))
	for i, rec := range recs {
		tasks[i] = rec.task
	}

	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	return tasks, nil
}

// Update applies a partial update to an existing task. UpdatedAt is always
// refreshed, regardless of any client-supplied value.
func (r *TaskRepository) Update(ctx context.Context, id string, req *model.UpdateTaskRequest) (*model.Task, error) {
	ctx, span := tracer.Start(ctx, "TaskRepository.Update",
		trace.WithAttributes(attribute.String("task.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tasks[id]
	if !ok {
		span.SetAttributes(attribute.Bool("task.found", false))
		return nil, model.ErrTaskNotFound
	}

	if req.Title != nil {
		rec.task.Title = *req.Title
	}
	if req.Description != nil {
		rec.task.Description = *req.Description
	}
	if req.DueDate != nil {
		rec.task.DueDate = *req.DueDate
	}
	if req.Category != nil {
		rec.task.Category = *req.Category
	}
	if req.Completed != nil {
		rec.task.Completed = *req.Completed
	}
	rec.task.UpdatedAt = time.Now()

	span.SetAttributes(attribute.Bool("task.found", true))
	task := rec.task
	return &task, nil
}

// Delete removes a task from the repository.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "TaskRepository.Delete",
		trace.WithAttributes(attribute.String("task.id", id)),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		span.SetAttributes(attribute.Bool("task.found", false))
		return model.ErrTaskNotFound
	}

	delete(r.tasks, id)
	span.SetAttributes(attribute.Bool("task.found", true))
	return nil
}

// Count returns the current number of tasks.
func (r *TaskRepository) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tasks))
}
