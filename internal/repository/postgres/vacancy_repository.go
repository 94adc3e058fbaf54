package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
)

type VacancyRepository struct {
	db *sql.DB
}

func NewVacancyRepository(db *sql.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

const vacancyColumns = `id, job_id, title, description, requirements, slots_available, application_deadline, created_by, status, created_at`

func (r *VacancyRepository) Create(ctx context.Context, v job.Vacancy) (*job.Vacancy, error) {
	v.ID = common.NewUUID()
	v.CreatedAt = time.Now().UTC()
	if v.Status == "" {
		v.Status = job.VacancyOpen
	}
	if v.SlotsAvailable <= 0 {
		v.SlotsAvailable = 1
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO job_vacancies (`+vacancyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.JobID, v.Title, v.Description, v.Requirements, v.SlotsAvailable, v.Deadline, v.CreatedBy, v.Status, v.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create vacancy", err)
	}
	return &v, nil
}

func (r *VacancyRepository) GetByID(ctx context.Context, id common.UUID) (*job.Vacancy, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+vacancyColumns+` FROM job_vacancies WHERE id = $1`, id)
	var v job.Vacancy
	if err := row.Scan(&v.ID, &v.JobID, &v.Title, &v.Description, &v.Requirements, &v.SlotsAvailable, &v.Deadline, &v.CreatedBy, &v.Status, &v.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "vacancy not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load vacancy", err)
	}
	return &v, nil
}

func (r *VacancyRepository) List(ctx context.Context, openOnly bool) ([]job.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM job_vacancies ORDER BY created_at DESC`
	if openOnly {
		query = `SELECT ` + vacancyColumns + ` FROM job_vacancies WHERE status = 'OPEN' ORDER BY created_at DESC`
	}
	rows, err := querier(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list vacancies", err)
	}
	defer rows.Close()
	var items []job.Vacancy
	for rows.Next() {
		var v job.Vacancy
		if err := rows.Scan(&v.ID, &v.JobID, &v.Title, &v.Description, &v.Requirements, &v.SlotsAvailable, &v.Deadline, &v.CreatedBy, &v.Status, &v.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan vacancy", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *VacancyRepository) DecrementSlot(ctx context.Context, id common.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE job_vacancies
		SET slots_available = GREATEST(slots_available - 1, 0),
		    status = CASE WHEN slots_available <= 1 THEN 'CLOSED' ELSE status END
		WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to decrement vacancy slot", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "vacancy not found", nil)
	}
	return nil
}
