// Package storage defines the persistence contracts for users and tasks.
package storage

import (
	"context"
	"time"

	"github.com/jmoran/taskboard/internal/platform/errors"
	"github.com/jmoran/taskboard/internal/task"
)

// ErrNotFound indicates a requested record is missing for the calling owner.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates a uniqueness violation on insert.
var ErrAlreadyExists = errors.New(errors.CodeDuplicateEmail, "record already exists")

// User is the stored identity record. PasswordHash never leaves the
// credential layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore persists identity records.
type UserStore interface {
	// PutUser inserts a user record. A duplicate email returns ErrAlreadyExists.
	PutUser(ctx context.Context, u User) error
	// GetUser returns a user by id or ErrNotFound.
	GetUser(ctx context.Context, userID string) (User, error)
	// GetUserByEmail returns a user by exact, case-sensitive email match or
	// ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// TaskStore persists task records. Every lookup is scoped to the owning user:
// a task that does not exist and a task owned by someone else are both
// ErrNotFound, so existence of other users' data never leaks.
type TaskStore interface {
	// PutTask inserts a task record.
	PutTask(ctx context.Context, t task.Task) error
	// GetTask returns one task scoped to ownerID.
	GetTask(ctx context.Context, ownerID, taskID string) (task.Task, error)
	// ListTasks returns all tasks owned by ownerID ordered by creation time
	// descending, most recent first. The slice is a snapshot at call time.
	ListTasks(ctx context.Context, ownerID string) ([]task.Task, error)
	// SetTaskCompleted overwrites the completed flag scoped to ownerID and
	// returns the updated record. Concurrent updates are last-write-wins.
	SetTaskCompleted(ctx context.Context, ownerID, taskID string, completed bool) (task.Task, error)
	// DeleteTask removes one task scoped to ownerID.
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}
