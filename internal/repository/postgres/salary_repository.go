package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
)

type SalaryRepository struct {
	db *sql.DB
}

func NewSalaryRepository(db *sql.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

const salaryColumns = `id, student_id, workspace_id, year, month, total_hours, hourly_rate, gross_amount,
	deduction_percentage, deduction_amount, net_amount, status, approved_by, approved_at, paid_at, created_at`

func (r *SalaryRepository) Create(ctx context.Context, s report.SalaryRecord) (*report.SalaryRecord, error) {
	s.ID = common.NewUUID()
	s.CreatedAt = time.Now().UTC()
	if s.Status == "" {
		s.Status = report.SalaryPending
	}
	s.Recalculate()
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO salary_records (`+salaryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.StudentID, s.WorkspaceID, s.Year, s.Month,
		s.TotalHours.StringFixed(2), s.HourlyRate.StringFixed(2), s.GrossAmount.StringFixed(2),
		s.DeductionPercentage.StringFixed(2), s.DeductionAmount.StringFixed(2), s.NetAmount.StringFixed(2),
		s.Status, s.ApprovedBy, s.ApprovedAt, s.PaidAt, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "salary record already exists for this period", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create salary record", err)
	}
	return &s, nil
}

func (r *SalaryRepository) GetByID(ctx context.Context, id common.UUID) (*report.SalaryRecord, error) {
	return scanSalary(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+salaryColumns+` FROM salary_records WHERE id = $1`, id))
}

func (r *SalaryRepository) FindByPeriod(ctx context.Context, key report.PairKey, p report.Period) (*report.SalaryRecord, error) {
	return scanSalary(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+salaryColumns+` FROM salary_records
		WHERE student_id = $1 AND workspace_id = $2 AND year = $3 AND month = $4`,
		key.StudentID, key.WorkspaceID, p.Year, p.Month))
}

// Update recomputes the derived amounts before writing; stored derived
// values never come from the caller.
func (r *SalaryRepository) Update(ctx context.Context, s report.SalaryRecord) (*report.SalaryRecord, error) {
	s.Recalculate()
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE salary_records SET
		total_hours = $1, hourly_rate = $2, gross_amount = $3, deduction_percentage = $4,
		deduction_amount = $5, net_amount = $6, status = $7, approved_by = $8, approved_at = $9, paid_at = $10
		WHERE id = $11`,
		s.TotalHours.StringFixed(2), s.HourlyRate.StringFixed(2), s.GrossAmount.StringFixed(2),
		s.DeductionPercentage.StringFixed(2), s.DeductionAmount.StringFixed(2), s.NetAmount.StringFixed(2),
		s.Status, s.ApprovedBy, s.ApprovedAt, s.PaidAt, s.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update salary record", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "salary record not found", nil)
	}
	return &s, nil
}

func (r *SalaryRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.SalaryRecord, error) {
	return r.listQuery(ctx, `SELECT `+salaryColumns+` FROM salary_records WHERE student_id = $1 ORDER BY year DESC, month DESC`, studentID)
}

func (r *SalaryRepository) List(ctx context.Context) ([]report.SalaryRecord, error) {
	return r.listQuery(ctx, `SELECT ` + salaryColumns + ` FROM salary_records ORDER BY year DESC, month DESC`)
}

func (r *SalaryRepository) listQuery(ctx context.Context, query string, args ...any) ([]report.SalaryRecord, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list salary records", err)
	}
	defer rows.Close()
	var items []report.SalaryRecord
	for rows.Next() {
		s, err := scanSalaryRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalary(row *sql.Row) (*report.SalaryRecord, error) {
	s, err := scanSalaryRow(row)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanSalaryRow(row rowScanner) (*report.SalaryRecord, error) {
	var s report.SalaryRecord
	var totalHours, hourlyRate, gross, deductionPct, deduction, net string
	err := row.Scan(&s.ID, &s.StudentID, &s.WorkspaceID, &s.Year, &s.Month,
		&totalHours, &hourlyRate, &gross, &deductionPct, &deduction, &net,
		&s.Status, &s.ApprovedBy, &s.ApprovedAt, &s.PaidAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "salary record not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load salary record", err)
	}
	s.TotalHours = decimalFromString(totalHours)
	s.HourlyRate = decimalFromString(hourlyRate)
	s.GrossAmount = decimalFromString(gross)
	s.DeductionPercentage = decimalFromString(deductionPct)
	s.DeductionAmount = decimalFromString(deduction)
	s.NetAmount = decimalFromString(net)
	return &s, nil
}

type MonthlyReportRepository struct {
	db *sql.DB
}

func NewMonthlyReportRepository(db *sql.DB) *MonthlyReportRepository {
	return &MonthlyReportRepository{db: db}
}

const monthlyColumns = `id, student_id, workspace_id, salary_id, year, month, file_path, status, managed_by, rejection_reason, created_at`

func (r *MonthlyReportRepository) Create(ctx context.Context, m report.MonthlyReport) (*report.MonthlyReport, error) {
	m.ID = common.NewUUID()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = report.MonthlyGenerated
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO monthly_reports (`+monthlyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.StudentID, m.WorkspaceID, m.SalaryID, m.Year, m.Month, m.FilePath, m.Status, m.ManagedBy, m.RejectionReason, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "monthly report already exists for this period", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create monthly report", err)
	}
	return &m, nil
}

func (r *MonthlyReportRepository) GetByID(ctx context.Context, id common.UUID) (*report.MonthlyReport, error) {
	return scanMonthly(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+monthlyColumns+` FROM monthly_reports WHERE id = $1`, id))
}

func (r *MonthlyReportRepository) GetBySalary(ctx context.Context, salaryID common.UUID) (*report.MonthlyReport, error) {
	return scanMonthly(querier(ctx, r.db).QueryRowContext(ctx, `SELECT `+monthlyColumns+` FROM monthly_reports WHERE salary_id = $1`, salaryID))
}

func (r *MonthlyReportRepository) Update(ctx context.Context, m report.MonthlyReport) (*report.MonthlyReport, error) {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE monthly_reports SET file_path = $1, status = $2, managed_by = $3, rejection_reason = $4 WHERE id = $5`,
		m.FilePath, m.Status, m.ManagedBy, m.RejectionReason, m.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update monthly report", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "monthly report not found", nil)
	}
	return &m, nil
}

func (r *MonthlyReportRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]report.MonthlyReport, error) {
	return r.listQuery(ctx, `SELECT `+monthlyColumns+` FROM monthly_reports WHERE student_id = $1 ORDER BY year DESC, month DESC`, studentID)
}

func (r *MonthlyReportRepository) List(ctx context.Context) ([]report.MonthlyReport, error) {
	return r.listQuery(ctx, `SELECT ` + monthlyColumns + ` FROM monthly_reports ORDER BY year DESC, month DESC`)
}

func (r *MonthlyReportRepository) listQuery(ctx context.Context, query string, args ...any) ([]report.MonthlyReport, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list monthly reports", err)
	}
	defer rows.Close()
	var items []report.MonthlyReport
	for rows.Next() {
		var m report.MonthlyReport
		if err := rows.Scan(&m.ID, &m.StudentID, &m.WorkspaceID, &m.SalaryID, &m.Year, &m.Month, &m.FilePath, &m.Status, &m.ManagedBy, &m.RejectionReason, &m.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan monthly report", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func scanMonthly(row *sql.Row) (*report.MonthlyReport, error) {
	var m report.MonthlyReport
	if err := row.Scan(&m.ID, &m.StudentID, &m.WorkspaceID, &m.SalaryID, &m.Year, &m.Month, &m.FilePath, &m.Status, &m.ManagedBy, &m.RejectionReason, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "monthly report not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load monthly report", err)
	}
	return &m, nil
}
