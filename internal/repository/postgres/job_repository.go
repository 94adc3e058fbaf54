package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, workspace_id, title, description, base_hourly_rate, created_by, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.WorkspaceID, j.Title, j.Description, j.BaseHourlyRate.StringFixed(2), j.CreatedBy, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "workspace already has a job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	return scanJob(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *JobRepository) GetByWorkspace(ctx context.Context, workspaceID common.UUID) (*job.Job, error) {
	return scanJob(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE workspace_id = $1`, workspaceID))
}

func (r *JobRepository) List(ctx context.Context, activeOnly bool) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'ACTIVE' ORDER BY created_at DESC`
	}
	rows, err := querier(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var j job.Job
		var rate string
		if err := rows.Scan(&j.ID, &j.WorkspaceID, &j.Title, &j.Description, &rate, &j.CreatedBy, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		j.BaseHourlyRate = decimalFromString(rate)
		items = append(items, j)
	}
	return items, rows.Err()
}

func scanJob(row *sql.Row) (*job.Job, error) {
	var j job.Job
	var rate string
	if err := row.Scan(&j.ID, &j.WorkspaceID, &j.Title, &j.Description, &rate, &j.CreatedBy, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	j.BaseHourlyRate = decimalFromString(rate)
	return &j, nil
}
