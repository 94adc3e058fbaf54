package report

import (
	"context"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/shopspring/decimal"
)

// PairKey identifies one (student, workspace) pair inside a period.
type PairKey struct {
	StudentID   common.UUID
	WorkspaceID common.UUID
}

type DailyRepository interface {
	Create(ctx context.Context, r DailyReport) (*DailyReport, error)
	GetByID(ctx context.Context, id common.UUID) (*DailyReport, error)
	Update(ctx context.Context, r DailyReport) (*DailyReport, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]DailyReport, error)
	ListByPair(ctx context.Context, key PairKey, from, to time.Time) ([]DailyReport, error)
	// PairsWithReports returns every (student, workspace) pair that has at
	// least one entry with report_date in [from, to).
	PairsWithReports(ctx context.Context, from, to time.Time) ([]PairKey, error)
	SumHours(ctx context.Context, key PairKey, from, to time.Time) (decimal.Decimal, error)
}

type SalaryRepository interface {
	Create(ctx context.Context, s SalaryRecord) (*SalaryRecord, error)
	GetByID(ctx context.Context, id common.UUID) (*SalaryRecord, error)
	FindByPeriod(ctx context.Context, key PairKey, p Period) (*SalaryRecord, error)
	Update(ctx context.Context, s SalaryRecord) (*SalaryRecord, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]SalaryRecord, error)
	List(ctx context.Context) ([]SalaryRecord, error)
}

type MonthlyRepository interface {
	Create(ctx context.Context, m MonthlyReport) (*MonthlyReport, error)
	GetByID(ctx context.Context, id common.UUID) (*MonthlyReport, error)
	GetBySalary(ctx context.Context, salaryID common.UUID) (*MonthlyReport, error)
	Update(ctx context.Context, m MonthlyReport) (*MonthlyReport, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]MonthlyReport, error)
	List(ctx context.Context) ([]MonthlyReport, error)
}

// ArtifactRow is one line of the generated timesheet.
type ArtifactRow struct {
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// ArtifactGenerator renders a timesheet and returns an opaque handle to
// it. Failures must not block salary creation; the artifact can be
// regenerated later.
type ArtifactGenerator interface {
	Generate(ctx context.Context, key PairKey, p Period, rows []ArtifactRow) (string, error)
}
