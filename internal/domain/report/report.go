package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type SalaryStatus string

const (
	SalaryPending  SalaryStatus = "PENDING"
	SalaryApproved SalaryStatus = "APPROVED"
	SalaryRejected SalaryStatus = "REJECTED"
	SalaryPaid     SalaryStatus = "PAID"
)

type MonthlyStatus string

const (
	MonthlyGenerated MonthlyStatus = "GENERATED"
	MonthlyApproved  MonthlyStatus = "APPROVED"
	MonthlyRejected  MonthlyStatus = "REJECTED"
)

// Period is one aggregation window: a calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PreviousPeriod returns the calendar month immediately before now.
func PreviousPeriod(now time.Time) Period {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := firstOfMonth.AddDate(0, 0, -1)
	return Period{Year: last.Year(), Month: int(last.Month())}
}

// Bounds returns the inclusive start and exclusive end of the period in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

type DailyReport struct {
	ID              common.UUID     `json:"id"`
	StudentID       common.UUID     `json:"student_id"`
	WorkspaceID     common.UUID     `json:"workspace_id"`
	ReportDate      time.Time       `json:"report_date"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	WorkDescription string          `json:"work_description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SalaryRecord holds one student's pay for one (workspace, period). The
// derived amounts are always recomputed from TotalHours and HourlyRate,
// never taken from a caller.
type SalaryRecord struct {
	ID                  common.UUID     `json:"id"`
	StudentID           common.UUID     `json:"student_id"`
	WorkspaceID         common.UUID     `json:"workspace_id"`
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	TotalHours          decimal.Decimal `json:"total_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	GrossAmount         decimal.Decimal `json:"gross_amount"`
	DeductionPercentage decimal.Decimal `json:"deduction_percentage"`
	DeductionAmount     decimal.Decimal `json:"deduction_amount"`
	NetAmount           decimal.Decimal `json:"net_amount"`
	Status              SalaryStatus    `json:"status"`
	ApprovedBy          *common.UUID    `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time      `json:"approved_at,omitempty"`
	PaidAt              *time.Time      `json:"paid_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// Recalculate rewrites the derived money fields from the inputs.
func (s *SalaryRecord) Recalculate() {
	s.GrossAmount = s.TotalHours.Mul(s.HourlyRate).Round(2)
	s.DeductionAmount = s.GrossAmount.Mul(s.DeductionPercentage).Div(decimal.NewFromInt(100)).Round(2)
	s.NetAmount = s.GrossAmount.Sub(s.DeductionAmount)
}

// MonthlyReport is the reviewable artifact paired one-to-one with a
// SalaryRecord. The pair is created together and always written together.
type MonthlyReport struct {
	ID              common.UUID   `json:"id"`
	StudentID       common.UUID   `json:"student_id"`
	WorkspaceID     common.UUID   `json:"workspace_id"`
	SalaryID        common.UUID   `json:"salary_id"`
	Year            int           `json:"year"`
	Month           int           `json:"month"`
	FilePath        string        `json:"file_path,omitempty"`
	Status          MonthlyStatus `json:"status"`
	ManagedBy       *common.UUID  `json:"managed_by,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
