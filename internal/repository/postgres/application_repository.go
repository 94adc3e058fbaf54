package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, vacancy_id, applicant_id, cover_letter, notes, status, applied_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, a job.Application) (*job.Application, error) {
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.AppliedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = job.ApplicationPending
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO vacancy_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.VacancyID, a.ApplicantID, a.CoverLetter, a.Notes, a.Status, a.AppliedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "application already submitted", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*job.Application, error) {
	return scanApplication(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM vacancy_applications WHERE id = $1`, id))
}

func (r *ApplicationRepository) ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]job.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM vacancy_applications WHERE vacancy_id = $1 ORDER BY applied_at DESC`, vacancyID)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]job.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM vacancy_applications WHERE applicant_id = $1 ORDER BY applied_at DESC`, applicantID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]job.Application, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []job.Application
	for rows.Next() {
		var a job.Application
		if err := rows.Scan(&a.ID, &a.VacancyID, &a.ApplicantID, &a.CoverLetter, &a.Notes, &a.Status, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status job.ApplicationStatus, notes string) (*job.Application, error) {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE vacancy_applications SET status = $1, notes = $2, updated_at = $3 WHERE id = $4`,
		status, notes, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM vacancy_applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func scanApplication(row *sql.Row) (*job.Application, error) {
	var a job.Application
	if err := row.Scan(&a.ID, &a.VacancyID, &a.ApplicantID, &a.CoverLetter, &a.Notes, &a.Status, &a.AppliedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &a, nil
}
