// Package session owns the client-side state: the cached task collection,
// the active view and the search term. All reads and mutations go through
// one Session value, never ambient globals.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/hiroki-koketsu/taskmate/internal/client"
	"github.com/hiroki-koketsu/taskmate/internal/model"
	"github.com/hiroki-koketsu/taskmate/internal/view"
)

// Session caches the store's task collection and applies deterministic
// patches to it as mutations succeed. A failed call leaves the cache
// untouched, so the view always reflects a previously-known-good state.
//
// The mutex exists because UI frameworks run I/O in command goroutines;
// logically there is still a single owner.
type Session struct {
	mu     sync.Mutex
	api    *client.Client
	state  *view.State
	tasks  []model.Task
	search string
}

// New creates a Session backed by the given store client.
func New(api *client.Client) *Session {
	return &Session{
		api:   api,
		state: view.NewState(),
	}
}

// Load replaces the cache wholesale with the store's collection.
func (s *Session) Load(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	return nil
}

// Tasks returns a copy of the cached collection.
func (s *Session) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Session) View() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View()
}

func (s *Session) SetView(v view.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetView(v)
}

func (s *Session) SetFilter(f view.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetFilter(f)
}

func (s *Session) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// Visible derives the ordered visible task sequence for the active view and
// search term.
func (s *Session) Visible() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Visible(s.tasks, s.state.View(), s.search)
}

// EmptyMessage is the empty-state text for the active view.
func (s *Session) EmptyMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.View() {
	case view.Completed:
		return "No completed tasks yet"
	case view.Timeline:
		return "No pending tasks"
	default:
		return "No tasks found"
	}
}

// Add validates the request locally, creates the task and inserts the
// store's record into the cache. Validation failures never reach the
// network; the round trip would be a guaranteed 400.
func (s *Session) Add(ctx context.Context, req *model.CreateTaskRequest) (*model.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	created, err := s.api.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, *created)
	return created, nil
}

// Update applies a partial update and replaces the cached record by id.
func (s *Session) Update(ctx context.Context, id string, req *model.UpdateTaskRequest) (*model.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateTask(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(*updated)
	return updated, nil
}

// Delete removes the task from the store, then from the cache.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleComplete flips the completion flag with a partial update of exactly
// {completed, updatedAt}, then applies the view-transition policy.
func (s *Session) ToggleComplete(ctx context.Context, id string, completed bool) (*model.Task, error) {
	now := time.Now()
	updated, err := s.api.UpdateTask(ctx, id, &model.UpdateTaskRequest{
		Completed: &completed,
		UpdatedAt: &now,
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(*updated)
	s.state.TaskToggled(completed)
	return updated, nil
}

func (s *Session) replaceLocked(task model.Task) {
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
}
