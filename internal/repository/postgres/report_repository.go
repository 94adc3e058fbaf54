package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
)

type DailyReportRepository struct {
	db *sql.DB
}

func NewDailyReportRepository(db *sql.DB) *DailyReportRepository {
	return &DailyReportRepository{db: db}
}

const dailyColumns = `id, student_id, workspace_id, report_date, hours_worked, work_description, created_at, updated_at`

func (r *DailyReportRepository) Create(ctx context.Context, d report.DailyReport) (*report.DailyReport, error) {
	d.ID = common.NewUUID()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO daily_reports (`+dailyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.StudentID, d.WorkspaceID, d.ReportDate, d.HoursWorked.StringFixed(2), d.WorkDescription, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "daily report already exists for this date", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create daily report", err)
	}
	return &d, nil
}

func (r *DailyReportRepository) GetByID(ctx context.Context, id common.UUID) (*report.DailyReport, error) {
	return scanDaily(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+dailyColumns+` FROM daily_reports WHERE id = $1`, id))
}

func (r *DailyReportRepository) Update(ctx context.Context, d report.DailyReport) (*report.DailyReport, error) {
	d.UpdatedAt = time.Now().UTC()
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE daily_reports SET hours_worked = $1, work_description = $2, updated_at = $3 WHERE id = $4`,
		d.HoursWorked.StringFixed(2), d.WorkDescription, d.UpdatedAt, d.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update daily report", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "daily report not found", nil)
	}
	return &d, nil
}

func (r *DailyReportRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.DailyReport, error) {
	return r.list(ctx, `SELECT `+dailyColumns+` FROM daily_reports WHERE student_id = $1 ORDER BY report_date DESC`, studentID)
}

func (r *DailyReportRepository) ListByPair(ctx context.Context, key report.PairKey, from, to time.Time) ([]report.DailyReport, error) {
	return r.list(ctx, `SELECT `+dailyColumns+` FROM daily_reports
		WHERE student_id = $1 AND workspace_id = $2 AND report_date >= $3 AND report_date < $4
		ORDER BY report_date`, key.StudentID, key.WorkspaceID, from, to)
}

func (r *DailyReportRepository) PairsWithReports(ctx context.Context, from, to time.Time) ([]report.PairKey, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, `SELECT DISTINCT student_id, workspace_id FROM daily_reports
		WHERE report_date >= $1 AND report_date < $2`, from, to)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list report pairs", err)
	}
	defer rows.Close()
	var keys []report.PairKey
	for rows.Next() {
		var key report.PairKey
		if err := rows.Scan(&key.StudentID, &key.WorkspaceID); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan report pair", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *DailyReportRepository) SumHours(ctx context.Context, key report.PairKey, from, to time.Time) (decimal.Decimal, error) {
	var total string
	err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT COALESCE(SUM(hours_worked), 0) FROM daily_reports
		WHERE student_id = $1 AND workspace_id = $2 AND report_date >= $3 AND report_date < $4`,
		key.StudentID, key.WorkspaceID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, common.NewError(common.CodeInternal, "failed to sum hours", err)
	}
	return decimalFromString(total), nil
}

func (r *DailyReportRepository) list(ctx context.Context, query string, args ...any) ([]report.DailyReport, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list daily reports", err)
	}
	defer rows.Close()
	var items []report.DailyReport
	for rows.Next() {
		var d report.DailyReport
		var hours string
		if err := rows.Scan(&d.ID, &d.StudentID, &d.WorkspaceID, &d.ReportDate, &hours, &d.WorkDescription, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan daily report", err)
		}
		d.HoursWorked = decimalFromString(hours)
		items = append(items, d)
	}
	return items, rows.Err()
}

func scanDaily(row *sql.Row) (*report.DailyReport, error) {
	var d report.DailyReport
	var hours string
	if err := row.Scan(&d.ID, &d.StudentID, &d.WorkspaceID, &d.ReportDate, &hours, &d.WorkDescription, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "daily report not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load daily report", err)
	}
	d.HoursWorked = decimalFromString(hours)
	return &d, nil
}
