package model

import (
	"strings"
	"time"
)

// Priority categories that receive dedicated styling. The category field is
// free text; anything outside this set falls back to the default style.
const (
	CategoryHigh   = "High"
	CategoryMedium = "Medium"
	CategoryLow    = "Low"
)

// Task represents a todo item in the system.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskRequest represents the request body for creating a task.
// CreatedAt and UpdatedAt may be client-supplied; the store fills them in
// when absent.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Nil fields are left untouched. UpdatedAt is accepted for wire compatibility
// but the store always stamps its own value.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks if the CreateTaskRequest is valid.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if r.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	return nil
}

// Validate checks if the UpdateTaskRequest is valid. Only fields present in
// the request are checked.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return ErrTitleRequired
	}
	if r.DueDate != nil && r.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	return nil
}

// TaskError represents a domain error for tasks.
type TaskError struct {
	Message string
}

func (e TaskError) Error() string {
	return e.Message
}

var (
	ErrTaskNotFound    = TaskError{Message: "task not found"}
	ErrTitleRequired   = TaskError{Message: "title is required"}
	ErrDueDateRequired = TaskError{Message: "due date is required"}
)
