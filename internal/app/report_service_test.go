package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type payrollFixture struct {
	svc       *ReportService
	users     *fakeUserRepo
	members   *fakeMemberRepo
	jobs      *fakeJobRepo
	daily     *fakeDailyRepo
	salaries  *fakeSalaryRepo
	monthlies *fakeMonthlyRepo
	emitter   *fakeEmitter
	artifacts *fakeArtifacts

	studentID common.UUID
	staffID   common.UUID
	wsID      common.UUID
	memberID  common.UUID
}

// The fixture pins "now" to 2026-03-05, so the aggregation period is
// February 2026.
func newPayrollFixture(t *testing.T, baseRate string) *payrollFixture {
	t.Helper()
	users := newFakeUserRepo()
	members := newFakeMemberRepo()
	workspaces := newFakeWorkspaceRepo()
	jobs := newFakeJobRepo()
	daily := newFakeDailyRepo()
	salaries := newFakeSalaryRepo()
	monthlies := newFakeMonthlyRepo()
	emitter := &fakeEmitter{}
	artifacts := &fakeArtifacts{}

	studentID := users.add(user.TypeStudent)
	staffID := users.add(user.TypeStaff)
	wsID := workspaces.add(50)
	jobs.add(wsID, decimal.RequireFromString(baseRate))
	memberID := members.add(wsID, studentID, workspace.RoleStudent)

	svc := NewReportService(daily, salaries, monthlies, members, jobs, users, artifacts, fakeTx{}, emitter, testLogger(),
		decimal.RequireFromString("20.00"), time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC) }

	return &payrollFixture{
		svc:       svc,
		users:     users,
		members:   members,
		jobs:      jobs,
		daily:     daily,
		salaries:  salaries,
		monthlies: monthlies,
		emitter:   emitter,
		artifacts: artifacts,
		studentID: studentID,
		staffID:   staffID,
		wsID:      wsID,
		memberID:  memberID,
	}
}

func (f *payrollFixture) febDay(day int) time.Time {
	return time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC)
}

func TestPayrollDeterminism(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	f.daily.add(f.studentID, f.wsID, f.febDay(10), decimal.RequireFromString("6"))
	f.daily.add(f.studentID, f.wsID, f.febDay(11), decimal.RequireFromString("4"))

	created, err := f.svc.RunMonthlyAggregation(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if created != 1 {
		t.Fatalf("created %d records, want 1", created)
	}

	key := report.PairKey{StudentID: f.studentID, WorkspaceID: f.wsID}
	salary, err := f.salaries.FindByPeriod(context.Background(), key, report.Period{Year: 2026, Month: 2})
	if err != nil {
		t.Fatalf("salary record missing: %v", err)
	}
	assertDecimal := func(name string, got decimal.Decimal, want string) {
		t.Helper()
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("%s = %s, want %s", name, got, want)
		}
	}
	assertDecimal("total_hours", salary.TotalHours, "10")
	assertDecimal("hourly_rate", salary.HourlyRate, "12.00")
	assertDecimal("gross_amount", salary.GrossAmount, "120.00")
	assertDecimal("deduction_amount", salary.DeductionAmount, "24.00")
	assertDecimal("net_amount", salary.NetAmount, "96.00")
	if salary.Status != report.SalaryPending {
		t.Fatalf("salary status = %s, want PENDING", salary.Status)
	}

	monthly, err := f.monthlies.GetBySalary(context.Background(), salary.ID)
	if err != nil {
		t.Fatalf("monthly report missing: %v", err)
	}
	if monthly.Status != report.MonthlyGenerated {
		t.Fatalf("monthly status = %s, want GENERATED", monthly.Status)
	}
	if monthly.FilePath == "" {
		t.Fatal("monthly report has no artifact path")
	}
	if got := f.emitter.count("monthly_report_ready"); got != 1 {
		t.Fatalf("expected 1 report-ready event, got %d", got)
	}

	// Re-running is a no-op for already aggregated pairs.
	created, err = f.svc.RunMonthlyAggregation(context.Background())
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if created != 0 {
		t.Fatalf("second run created %d records, want 0", created)
	}
	all, _ := f.salaries.List(context.Background())
	if len(all) != 1 {
		t.Fatalf("found %d salary records, want 1", len(all))
	}
}

func TestPayrollPrefersRateOverride(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	f.members.setRate(f.memberID, decimal.RequireFromString("15.50"))
	f.daily.add(f.studentID, f.wsID, f.febDay(3), decimal.RequireFromString("2"))

	if _, err := f.svc.RunMonthlyAggregation(context.Background()); err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	key := report.PairKey{StudentID: f.studentID, WorkspaceID: f.wsID}
	salary, err := f.salaries.FindByPeriod(context.Background(), key, report.Period{Year: 2026, Month: 2})
	if err != nil {
		t.Fatalf("salary record missing: %v", err)
	}
	if !salary.HourlyRate.Equal(decimal.RequireFromString("15.50")) {
		t.Fatalf("hourly_rate = %s, want the member override 15.50", salary.HourlyRate)
	}
}

func TestArtifactFailureDoesNotBlockSalary(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	f.artifacts.fail = true
	f.daily.add(f.studentID, f.wsID, f.febDay(3), decimal.RequireFromString("8"))

	created, err := f.svc.RunMonthlyAggregation(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if created != 1 {
		t.Fatalf("created %d records, want 1", created)
	}
	key := report.PairKey{StudentID: f.studentID, WorkspaceID: f.wsID}
	salary, err := f.salaries.FindByPeriod(context.Background(), key, report.Period{Year: 2026, Month: 2})
	if err != nil {
		t.Fatalf("salary record missing despite artifact failure: %v", err)
	}
	monthly, _ := f.monthlies.GetBySalary(context.Background(), salary.ID)
	if monthly.FilePath != "" {
		t.Fatalf("expected empty artifact path, got %s", monthly.FilePath)
	}
}

func (f *payrollFixture) aggregateOne(t *testing.T) (*report.SalaryRecord, *report.MonthlyReport) {
	t.Helper()
	f.daily.add(f.studentID, f.wsID, f.febDay(10), decimal.RequireFromString("10"))
	if _, err := f.svc.RunMonthlyAggregation(context.Background()); err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	key := report.PairKey{StudentID: f.studentID, WorkspaceID: f.wsID}
	salary, err := f.salaries.FindByPeriod(context.Background(), key, report.Period{Year: 2026, Month: 2})
	if err != nil {
		t.Fatalf("salary record missing: %v", err)
	}
	monthly, err := f.monthlies.GetBySalary(context.Background(), salary.ID)
	if err != nil {
		t.Fatalf("monthly report missing: %v", err)
	}
	return salary, monthly
}

func TestManageReportApprovesPairTogether(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	salary, monthly := f.aggregateOne(t)

	updated, err := f.svc.ManageReport(context.Background(), f.staffID, monthly.ID, report.MonthlyApproved, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != report.MonthlyApproved {
		t.Fatalf("report status = %s, want APPROVED", updated.Status)
	}
	salary, _ = f.salaries.GetByID(context.Background(), salary.ID)
	if salary.Status != report.SalaryApproved {
		t.Fatalf("salary status = %s, want APPROVED", salary.Status)
	}
	if salary.ApprovedBy == nil || *salary.ApprovedBy != f.staffID || salary.ApprovedAt == nil {
		t.Fatal("approval stamp missing on salary")
	}
}

func TestManageReportRejectRequiresReason(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	salary, monthly := f.aggregateOne(t)

	if _, err := f.svc.ManageReport(context.Background(), f.staffID, monthly.ID, report.MonthlyRejected, "  "); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	updated, err := f.svc.ManageReport(context.Background(), f.staffID, monthly.ID, report.MonthlyRejected, "hours do not match the task log")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if updated.Status != report.MonthlyRejected || updated.RejectionReason == "" {
		t.Fatalf("report status = %s, reason = %q", updated.Status, updated.RejectionReason)
	}
	salary, _ = f.salaries.GetByID(context.Background(), salary.ID)
	if salary.Status != report.SalaryRejected {
		t.Fatalf("salary status = %s, want REJECTED", salary.Status)
	}
	if salary.ApprovedBy != nil || salary.ApprovedAt != nil {
		t.Fatal("approval stamp not cleared on rejection")
	}
}

func TestManageReportRequiresStaff(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	_, monthly := f.aggregateOne(t)

	if _, err := f.svc.ManageReport(context.Background(), f.studentID, monthly.ID, report.MonthlyApproved, ""); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMarkPaidRequiresApproved(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	salary, monthly := f.aggregateOne(t)

	if _, err := f.svc.MarkPaid(context.Background(), f.staffID, salary.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid state for PENDING salary, got %v", err)
	}

	if _, err := f.svc.ManageReport(context.Background(), f.staffID, monthly.ID, report.MonthlyApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	paid, err := f.svc.MarkPaid(context.Background(), f.staffID, salary.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != report.SalaryPaid || paid.PaidAt == nil {
		t.Fatalf("salary status = %s, paid_at = %v", paid.Status, paid.PaidAt)
	}

	// Paying twice is an invalid transition too.
	if _, err := f.svc.MarkPaid(context.Background(), f.staffID, salary.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid state for PAID salary, got %v", err)
	}
}

func TestEditBlockedAfterAggregation(t *testing.T) {
	f := newPayrollFixture(t, "12.00")
	entry, err := f.svc.RecordDailyHours(context.Background(), f.studentID, report.DailyReport{
		WorkspaceID: f.wsID,
		ReportDate:  f.febDay(10),
		HoursWorked: decimal.RequireFromString("10"),
	})
	if err != nil {
		t.Fatalf("record hours: %v", err)
	}
	if _, err := f.svc.RunMonthlyAggregation(context.Background()); err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	entry.HoursWorked = decimal.RequireFromString("12")
	if _, err := f.svc.UpdateDailyReport(context.Background(), f.studentID, *entry); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestRecordDailyHoursValidation(t *testing.T) {
	f := newPayrollFixture(t, "12.00")

	if _, err := f.svc.RecordDailyHours(context.Background(), f.studentID, report.DailyReport{
		WorkspaceID: f.wsID,
		ReportDate:  f.febDay(1),
		HoursWorked: decimal.RequireFromString("-1"),
	}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for negative hours, got %v", err)
	}

	if _, err := f.svc.RecordDailyHours(context.Background(), f.studentID, report.DailyReport{
		WorkspaceID: f.wsID,
		ReportDate:  f.febDay(1),
		HoursWorked: decimal.RequireFromString("8"),
	}); err != nil {
		t.Fatalf("record hours: %v", err)
	}

	// Same (student, workspace, date) twice hits the uniqueness guard.
	if _, err := f.svc.RecordDailyHours(context.Background(), f.studentID, report.DailyReport{
		WorkspaceID: f.wsID,
		ReportDate:  f.febDay(1),
		HoursWorked: decimal.RequireFromString("4"),
	}); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
