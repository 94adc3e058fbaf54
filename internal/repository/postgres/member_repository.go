package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberColumns = `id, workspace_id, user_id, role, is_active, hourly_rate_override, joined_at`

// GetOrCreate relies on ON CONFLICT DO NOTHING against the
// (workspace_id, user_id) unique constraint, so two concurrent
// acceptance attempts cannot both observe "created".
func (r *MemberRepository) GetOrCreate(ctx context.Context, m workspace.Member) (*workspace.Member, bool, error) {
	m.ID = common.NewUUID()
	m.JoinedAt = time.Now().UTC()
	q := querier(ctx, r.db)
	result, err := q.ExecContext(ctx, `INSERT INTO workspace_members (`+memberColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT unique_workspace_membership DO NOTHING`,
		m.ID, m.WorkspaceID, m.UserID, m.Role, m.IsActive, rateValue(m.HourlyRateOverride), m.JoinedAt)
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create membership", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, common.NewError(common.CodeInternal, "failed to create membership", err)
	}
	existing, findErr := r.Find(ctx, m.WorkspaceID, m.UserID)
	if findErr != nil {
		return nil, false, findErr
	}
	return existing, affected == 1, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id common.UUID) (*workspace.Member, error) {
	return scanMember(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+memberColumns+` FROM workspace_members WHERE id = $1`, id))
}

func (r *MemberRepository) Find(ctx context.Context, workspaceID, userID common.UUID) (*workspace.Member, error) {
	return scanMember(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+memberColumns+` FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2`, workspaceID, userID))
}

func (r *MemberRepository) ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]workspace.Member, error) {
	return r.list(ctx, `SELECT `+memberColumns+` FROM workspace_members WHERE workspace_id = $1 ORDER BY joined_at DESC`, workspaceID)
}

func (r *MemberRepository) ListActiveByUser(ctx context.Context, userID common.UUID) ([]workspace.Member, error) {
	return r.list(ctx, `SELECT `+memberColumns+` FROM workspace_members WHERE user_id = $1 AND is_active ORDER BY joined_at DESC`, userID)
}

func (r *MemberRepository) list(ctx context.Context, query string, args ...any) ([]workspace.Member, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list members", err)
	}
	defer rows.Close()
	var items []workspace.Member
	for rows.Next() {
		var m workspace.Member
		var rate sql.NullString
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.IsActive, &rate, &m.JoinedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan member", err)
		}
		m.HourlyRateOverride = rateFromNull(rate)
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MemberRepository) CountActive(ctx context.Context, workspaceID common.UUID) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM workspace_members WHERE workspace_id = $1 AND is_active`, workspaceID).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count members", err)
	}
	return count, nil
}

func (r *MemberRepository) CountActiveByRole(ctx context.Context, workspaceID common.UUID, role workspace.Role) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM workspace_members WHERE workspace_id = $1 AND role = $2 AND is_active`, workspaceID, role).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count members", err)
	}
	return count, nil
}

func (r *MemberRepository) UpdateRoleForUser(ctx context.Context, userID common.UUID, role workspace.Role) (int, error) {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE workspace_members SET role = $1
		WHERE user_id = $2 AND is_active AND role <> $1`, role, userID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to sync member roles", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to sync member roles", err)
	}
	return int(affected), nil
}

func (r *MemberRepository) UpdateRateOverride(ctx context.Context, memberID common.UUID, rate *decimal.Decimal) (*workspace.Member, error) {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE workspace_members SET hourly_rate_override = $1 WHERE id = $2`,
		rateValue(rate), memberID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update member rate", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "membership not found", nil)
	}
	return r.GetByID(ctx, memberID)
}

func (r *MemberRepository) Delete(ctx context.Context, memberID common.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM workspace_members WHERE id = $1`, memberID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to remove member", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "membership not found", nil)
	}
	return nil
}

func scanMember(row *sql.Row) (*workspace.Member, error) {
	var m workspace.Member
	var rate sql.NullString
	if err := row.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.IsActive, &rate, &m.JoinedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "membership not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load membership", err)
	}
	m.HourlyRateOverride = rateFromNull(rate)
	return &m, nil
}

func rateValue(rate *decimal.Decimal) any {
	if rate == nil {
		return nil
	}
	return rate.StringFixed(2)
}

func rateFromNull(value sql.NullString) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	parsed, err := decimal.NewFromString(value.String)
	if err != nil {
		return nil
	}
	return &parsed
}
