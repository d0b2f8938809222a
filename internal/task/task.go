// Package task provides the task domain type and its creation rules.
package task

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jmoran/taskboard/internal/platform/errors"
	"github.com/jmoran/taskboard/internal/platform/id"
)

var (
	// ErrMissingFields indicates a create request without its required fields.
	ErrMissingFields = apperrors.New(apperrors.CodeValidation, "Title, dateTime, and deadline are required")
	// ErrInvalidPriority indicates a priority outside the known set.
	ErrInvalidPriority = apperrors.New(apperrors.CodeValidation, "Priority must be low, medium, or high")
)

// Priority is the urgency bucket assigned to a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a raw priority value. The empty string selects the
// default, medium.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.TrimSpace(raw)) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Task is a time-boxed, prioritized unit of work owned by exactly one user.
// OwnerID is immutable after creation and every read or write is scoped to it.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DateTime    time.Time
	Deadline    time.Time
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
}

// CreateInput describes the fields accepted when creating a task.
type CreateInput struct {
	OwnerID     string
	Title       string
	Description string
	DateTime    time.Time
	Deadline    time.Time
	Priority    string
}

// New validates input, applies defaults, and produces a task ready to persist.
// Description defaults to empty, priority to medium, completed to false.
func New(input CreateInput, now func() time.Time, idGenerator func() (string, error)) (Task, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return Task{}, fmt.Errorf("owner id is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || input.DateTime.IsZero() || input.Deadline.IsZero() {
		return Task{}, ErrMissingFields
	}
	priority, err := ParsePriority(input.Priority)
	if err != nil {
		return Task{}, err
	}

	taskID, err := idGenerator()
	if err != nil {
		return Task{}, fmt.Errorf("generate task id: %w", err)
	}

	return Task{
		ID:          taskID,
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DateTime:    input.DateTime.UTC(),
		Deadline:    input.Deadline.UTC(),
		Priority:    priority,
		Completed:   false,
		CreatedAt:   now().UTC(),
	}, nil
}
