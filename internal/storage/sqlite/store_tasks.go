package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoran/taskboard/internal/storage"
	"github.com/jmoran/taskboard/internal/task"
)

const taskColumns = `id, owner_id, title, description, date_time, deadline, priority, completed, created_at`

// PutTask inserts one task record.
func (s *Store) PutTask(ctx context.Context, t task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	taskID := strings.TrimSpace(t.ID)
	ownerID := strings.TrimSpace(t.OwnerID)
	if taskID == "" {
		return fmt.Errorf("task id is required")
	}
	if ownerID == "" {
		return fmt.Errorf("owner id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		taskID,
		ownerID,
		t.Title,
		t.Description,
		toMillis(t.DateTime),
		toMillis(t.Deadline),
		string(t.Priority),
		boolToInt(t.Completed),
		toMillis(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put task: %w", err)
	}
	return nil
}

// GetTask returns one task scoped to its owner. A task that does not exist
// and a task owned by another user are both storage.ErrNotFound.
func (s *Store) GetTask(ctx context.Context, ownerID, taskID string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if s == nil || s.sqlDB == nil {
		return task.Task{}, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	taskID = strings.TrimSpace(taskID)
	if ownerID == "" || taskID == "" {
		return task.Task{}, storage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+`
		   FROM tasks
		  WHERE id = ? AND owner_id = ?`,
		taskID,
		ownerID,
	)
	return scanTask(row.Scan)
}

// ListTasks returns every task owned by ownerID, most recent first. Insertion
// order breaks creation-time ties so back-to-back creates list newest first.
func (s *Store) ListTasks(ctx context.Context, ownerID string) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+taskColumns+`
		   FROM tasks
		  WHERE owner_id = ?
		  ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// SetTaskCompleted overwrites the completed flag scoped to the owner and
// returns the updated record. The update is a single-row write, so concurrent
// requests resolve last-write-wins.
func (s *Store) SetTaskCompleted(ctx context.Context, ownerID, taskID string, completed bool) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if s == nil || s.sqlDB == nil {
		return task.Task{}, fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	taskID = strings.TrimSpace(taskID)
	if ownerID == "" || taskID == "" {
		return task.Task{}, storage.ErrNotFound
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE tasks
		    SET completed = ?
		  WHERE id = ? AND owner_id = ?`,
		boolToInt(completed),
		taskID,
		ownerID,
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("set task completed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return task.Task{}, fmt.Errorf("set task completed: %w", err)
	}
	if affected == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return s.GetTask(ctx, ownerID, taskID)
}

// DeleteTask removes one task scoped to its owner.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	ownerID = strings.TrimSpace(ownerID)
	taskID = strings.TrimSpace(taskID)
	if ownerID == "" || taskID == "" {
		return storage.ErrNotFound
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM tasks
		  WHERE id = ? AND owner_id = ?`,
		taskID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(scan func(dest ...any) error) (task.Task, error) {
	var t task.Task
	var priority string
	var completed int64
	var dateTime int64
	var deadline int64
	var createdAt int64
	err := scan(
		&t.ID,
		&t.OwnerID,
		&t.Title,
		&t.Description,
		&dateTime,
		&deadline,
		&priority,
		&completed,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, storage.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Priority = task.Priority(priority)
	t.Completed = completed != 0
	t.DateTime = fromMillis(dateTime)
	t.Deadline = fromMillis(deadline)
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

var _ storage.TaskStore = (*Store)(nil)
