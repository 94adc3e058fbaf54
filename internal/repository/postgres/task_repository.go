package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/task"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, workspace_id, title, description, assigned_to, created_by, status, priority, due_date, completed_at, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, t task.Task) (*task.Task, error) {
	t.ID = common.NewUUID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = task.StatusStarted
	}
	if t.Priority == "" {
		t.Priority = task.PriorityLow
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.WorkspaceID, t.Title, t.Description, t.AssignedTo, t.CreatedBy, t.Status, t.Priority, t.DueDate, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create task", err)
	}
	return &t, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id common.UUID) (*task.Task, error) {
	return scanTask(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *TaskRepository) Update(ctx context.Context, t task.Task) (*task.Task, error) {
	t.UpdatedAt = time.Now().UTC()
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE tasks SET title = $1, description = $2, assigned_to = $3,
		status = $4, priority = $5, due_date = $6, completed_at = $7, updated_at = $8 WHERE id = $9`,
		t.Title, t.Description, t.AssignedTo, t.Status, t.Priority, t.DueDate, t.CompletedAt, t.UpdatedAt, t.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update task", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "task not found", nil)
	}
	return &t, nil
}

func (r *TaskRepository) ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE workspace_id = $1 ORDER BY created_at DESC`, workspaceID)
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID common.UUID) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`, userID)
}

func (r *TaskRepository) ListOverdue(ctx context.Context, before time.Time) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks
		WHERE due_date < $1 AND status NOT IN ('COMPLETED', 'CANCELED', 'FAILED')
		ORDER BY due_date`, before)
}

func (r *TaskRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete task", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "task not found", nil)
	}
	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list tasks", err)
	}
	defer rows.Close()
	var items []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.Title, &t.Description, &t.AssignedTo, &t.CreatedBy, &t.Status, &t.Priority, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan task", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func scanTask(row *sql.Row) (*task.Task, error) {
	var t task.Task
	if err := row.Scan(&t.ID, &t.WorkspaceID, &t.Title, &t.Description, &t.AssignedTo, &t.CreatedBy, &t.Status, &t.Priority, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "task not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load task", err)
	}
	return &t, nil
}
