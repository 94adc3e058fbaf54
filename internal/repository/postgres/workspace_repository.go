package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type WorkspaceRepository struct {
	db *sql.DB
}

func NewWorkspaceRepository(db *sql.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

const workspaceColumns = `id, name, description, created_by, is_active, max_members, workspace_type, created_at, updated_at`

func (r *WorkspaceRepository) Create(ctx context.Context, ws workspace.Workspace) (*workspace.Workspace, error) {
	ws.ID = common.NewUUID()
	now := time.Now().UTC()
	ws.CreatedAt = now
	ws.UpdatedAt = now
	if ws.MaxMembers <= 0 {
		ws.MaxMembers = 50
	}
	if ws.Type == "" {
		ws.Type = workspace.TypeGeneral
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO workspaces (`+workspaceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ws.ID, ws.Name, ws.Description, ws.CreatedBy, ws.IsActive, ws.MaxMembers, ws.Type, ws.CreatedAt, ws.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create workspace", err)
	}
	return &ws, nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id common.UUID) (*workspace.Workspace, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id)
	return scanWorkspace(row)
}

func (r *WorkspaceRepository) ListByUser(ctx context.Context, userID common.UUID) ([]workspace.Workspace, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, `SELECT w.id, w.name, w.description, w.created_by, w.is_active, w.max_members, w.workspace_type, w.created_at, w.updated_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1 AND m.is_active
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list workspaces", err)
	}
	defer rows.Close()
	var items []workspace.Workspace
	for rows.Next() {
		var ws workspace.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedBy, &ws.IsActive, &ws.MaxMembers, &ws.Type, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan workspace", err)
		}
		items = append(items, ws)
	}
	return items, rows.Err()
}

func scanWorkspace(row *sql.Row) (*workspace.Workspace, error) {
	var ws workspace.Workspace
	if err := row.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedBy, &ws.IsActive, &ws.MaxMembers, &ws.Type, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "workspace not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load workspace", err)
	}
	return &ws, nil
}
