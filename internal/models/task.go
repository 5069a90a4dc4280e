package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav1337/Task-manager/internal/apperrors"
)

// Task represents a task owned by a single user
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskWithOwner is the admin view of a task with its owner resolved and
// embedded. When the owner reference cannot be resolved the row is still
// returned with OwnerError set instead of aborting the whole listing.
type TaskWithOwner struct {
	Task
	Owner      *UserSummary `json:"user,omitempty"`
	OwnerError string       `json:"user_error,omitempty"`
}

// UserTasks is the admin view of one user's tasks.
type UserTasks struct {
	User      *UserSummary `json:"user"`
	Tasks     []Task       `json:"tasks"`
	TaskCount int          `json:"task_count"`
}

// Stats holds the aggregate counters for the admin dashboard.
type Stats struct {
	TotalUsers     int `json:"total_users"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest represents a partial task update. Pointer fields
// distinguish "absent, leave unchanged" from an explicit value (including an
// explicit empty description).
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Validate checks the task creation input and returns field-level errors.
func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)

	// Bounds count characters, not bytes; multibyte titles fit the same limits
	var errs apperrors.ValidationErrors
	if r.Title == "" {
		errs = append(errs, apperrors.FieldError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(r.Title) > 255 {
		errs = append(errs, apperrors.FieldError{Field: "title", Message: "title must be between 1 and 255 characters"})
	}
	if utf8.RuneCountInString(r.Description) > 1000 {
		errs = append(errs, apperrors.FieldError{Field: "description", Message: "description cannot exceed 1000 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks only the fields present in the update request.
func (r *UpdateTaskRequest) Validate() error {
	var errs apperrors.ValidationErrors
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
		if trimmed == "" {
			errs = append(errs, apperrors.FieldError{Field: "title", Message: "title cannot be empty"})
		} else if utf8.RuneCountInString(trimmed) > 255 {
			errs = append(errs, apperrors.FieldError{Field: "title", Message: "title must be between 1 and 255 characters"})
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 1000 {
		errs = append(errs, apperrors.FieldError{Field: "description", Message: "description cannot exceed 1000 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
