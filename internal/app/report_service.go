package app

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

var maxDailyHours = decimal.NewFromInt(24)

// ReportService owns the daily-hours ledger, the monthly payroll
// aggregation and the approval state machine over its output.
type ReportService struct {
	daily     report.DailyRepository
	salaries  report.SalaryRepository
	monthlies report.MonthlyRepository
	members   workspace.MemberRepository
	jobs      job.Repository
	users     user.Repository
	artifacts report.ArtifactGenerator
	tx        TxRunner
	emitter   notification.Emitter
	logger    *logrus.Logger

	deductionPercent decimal.Decimal
	location         *time.Location
	now              func() time.Time
}

func NewReportService(daily report.DailyRepository, salaries report.SalaryRepository, monthlies report.MonthlyRepository, members workspace.MemberRepository, jobs job.Repository, users user.Repository, artifacts report.ArtifactGenerator, tx TxRunner, emitter notification.Emitter, logger *logrus.Logger, deductionPercent decimal.Decimal, location *time.Location) *ReportService {
	return &ReportService{
		daily:            daily,
		salaries:         salaries,
		monthlies:        monthlies,
		members:          members,
		jobs:             jobs,
		users:            users,
		artifacts:        artifacts,
		tx:               tx,
		emitter:          emitter,
		logger:           logger,
		deductionPercent: deductionPercent,
		location:         location,
		now:              time.Now,
	}
}

// RecordDailyHours appends one ledger entry. The (student, workspace,
// date) triple is unique; the store constraint surfaces duplicates as a
// conflict.
func (s *ReportService) RecordDailyHours(ctx context.Context, studentID common.UUID, r report.DailyReport) (*report.DailyReport, error) {
	member, err := s.members.Find(ctx, r.WorkspaceID, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "student is not a member of the workspace", nil)
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, common.NewError(common.CodeForbidden, "membership is not active", nil)
	}
	if err := validateDailyHours(r); err != nil {
		return nil, err
	}
	r.StudentID = studentID
	created, err := s.daily.Create(ctx, r)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewError(common.CodeConflict, "hours already recorded for this date", err)
		}
		return nil, err
	}
	return created, nil
}

// UpdateDailyReport lets the owner correct an entry, but only while its
// period has not been aggregated into a salary record yet.
func (s *ReportService) UpdateDailyReport(ctx context.Context, actorID common.UUID, r report.DailyReport) (*report.DailyReport, error) {
	current, err := s.daily.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if current.StudentID != actorID {
		return nil, common.NewError(common.CodeForbidden, "report belongs to another student", nil)
	}
	r.StudentID = current.StudentID
	r.WorkspaceID = current.WorkspaceID
	r.ReportDate = current.ReportDate
	if err := validateDailyHours(r); err != nil {
		return nil, err
	}
	period := report.Period{Year: current.ReportDate.Year(), Month: int(current.ReportDate.Month())}
	key := report.PairKey{StudentID: current.StudentID, WorkspaceID: current.WorkspaceID}
	if _, err := s.salaries.FindByPeriod(ctx, key, period); err == nil {
		return nil, common.NewError(common.CodeInvalidState, "period has already been aggregated", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	return s.daily.Update(ctx, r)
}

func (s *ReportService) ListDailyByStudent(ctx context.Context, studentID common.UUID) ([]report.DailyReport, error) {
	return s.daily.ListByStudent(ctx, studentID)
}

// RunMonthlyAggregation folds the previous calendar month's ledger into
// one salary record and one monthly report per (student, workspace)
// pair. The job is safely re-runnable: pairs that already have a record
// for the period are skipped, and each pair commits in its own unit so
// one failure never aborts the rest of the batch. Returns how many
// pairs were aggregated.
func (s *ReportService) RunMonthlyAggregation(ctx context.Context) (int, error) {
	period := report.PreviousPeriod(s.now().In(s.location))
	from, to := period.Bounds(s.location)

	pairs, err := s.daily.PairsWithReports(ctx, from, to)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, key := range pairs {
		if err := s.aggregatePair(ctx, key, period, from, to); err != nil {
			if common.Is(err, common.CodeConflict) {
				// Another run got there first.
				continue
			}
			s.logger.WithError(err).WithFields(logrus.Fields{
				"student_id":   key.StudentID,
				"workspace_id": key.WorkspaceID,
				"year":         period.Year,
				"month":        period.Month,
			}).Error("payroll aggregation failed for pair")
			continue
		}
		created++
	}
	return created, nil
}

func (s *ReportService) aggregatePair(ctx context.Context, key report.PairKey, period report.Period, from, to time.Time) error {
	if _, err := s.salaries.FindByPeriod(ctx, key, period); err == nil {
		return common.NewError(common.CodeConflict, "salary record already exists for period", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return err
	}

	total, err := s.daily.SumHours(ctx, key, from, to)
	if err != nil {
		return err
	}
	rate, err := s.resolveRate(ctx, key)
	if err != nil {
		return err
	}

	// Artifact generation runs outside the unit: its failure must not
	// block salary creation, the file can be regenerated later.
	filePath := s.generateArtifact(ctx, key, period, from, to)

	var salary *report.SalaryRecord
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		salary, err = s.salaries.Create(ctx, report.SalaryRecord{
			StudentID:           key.StudentID,
			WorkspaceID:         key.WorkspaceID,
			Year:                period.Year,
			Month:               period.Month,
			TotalHours:          total,
			HourlyRate:          rate,
			DeductionPercentage: s.deductionPercent,
			Status:              report.SalaryPending,
		})
		if err != nil {
			return err
		}
		_, err = s.monthlies.Create(ctx, report.MonthlyReport{
			StudentID:   key.StudentID,
			WorkspaceID: key.WorkspaceID,
			SalaryID:    salary.ID,
			Year:        period.Year,
			Month:       period.Month,
			FilePath:    filePath,
			Status:      report.MonthlyGenerated,
		})
		return err
	})
	if err != nil {
		return err
	}
	s.emitter.Emit(ctx, key.StudentID, nil, "monthly_report_ready",
		"Your monthly report is ready for review.",
		notification.Ref{Kind: notification.RefSalaryRecord, ID: salary.ID},
		&notification.Ref{Kind: notification.RefWorkspace, ID: key.WorkspaceID})
	return nil
}

// resolveRate picks the member's override when set, else the job's base
// rate, else zero for workspaces with no job attached.
func (s *ReportService) resolveRate(ctx context.Context, key report.PairKey) (decimal.Decimal, error) {
	member, err := s.members.Find(ctx, key.WorkspaceID, key.StudentID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return decimal.Zero, err
	}
	if member != nil && member.HourlyRateOverride != nil {
		return *member.HourlyRateOverride, nil
	}
	j, err := s.jobs.GetByWorkspace(ctx, key.WorkspaceID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return j.BaseHourlyRate, nil
}

func (s *ReportService) generateArtifact(ctx context.Context, key report.PairKey, period report.Period, from, to time.Time) string {
	entries, err := s.daily.ListByPair(ctx, key, from, to)
	if err != nil {
		s.logger.WithError(err).Error("failed to load ledger entries for artifact")
		return ""
	}
	rows := make([]report.ArtifactRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, report.ArtifactRow{Date: e.ReportDate, Hours: e.HoursWorked, Description: e.WorkDescription})
	}
	filePath, err := s.artifacts.Generate(ctx, key, period, rows)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"student_id":   key.StudentID,
			"workspace_id": key.WorkspaceID,
		}).Error("artifact generation failed")
		return ""
	}
	return filePath
}

// ManageReport applies a staff decision to a monthly report and its
// salary record together; a reader must never observe one updated and
// not the other.
func (s *ReportService) ManageReport(ctx context.Context, actorID, reportID common.UUID, decision report.MonthlyStatus, reason string) (*report.MonthlyReport, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		return nil, common.NewError(common.CodeForbidden, "only staff may manage reports", nil)
	}
	if decision != report.MonthlyApproved && decision != report.MonthlyRejected {
		return nil, common.NewValidationError("invalid decision", map[string]string{"decision": "decision must be APPROVED or REJECTED"})
	}
	if decision == report.MonthlyRejected && strings.TrimSpace(reason) == "" {
		return nil, common.NewValidationError("rejection reason required", map[string]string{"reason": "a rejection reason is required"})
	}

	var updated *report.MonthlyReport
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		m, err := s.monthlies.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		salary, err := s.salaries.GetByID(ctx, m.SalaryID)
		if err != nil {
			return err
		}
		if salary.Status == report.SalaryPaid {
			return common.NewError(common.CodeInvalidState, "salary has already been paid", nil)
		}
		now := s.now()
		m.ManagedBy = &actorID
		if decision == report.MonthlyApproved {
			m.Status = report.MonthlyApproved
			m.RejectionReason = ""
			salary.Status = report.SalaryApproved
			salary.ApprovedBy = &actorID
			salary.ApprovedAt = &now
		} else {
			m.Status = report.MonthlyRejected
			m.RejectionReason = reason
			salary.Status = report.SalaryRejected
			salary.ApprovedBy = nil
			salary.ApprovedAt = nil
		}
		if _, err := s.salaries.Update(ctx, *salary); err != nil {
			return err
		}
		updated, err = s.monthlies.Update(ctx, *m)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, updated.StudentID, &actorID, "monthly_report_"+strings.ToLower(string(decision)),
		"Your monthly report was "+strings.ToLower(string(decision))+".",
		notification.Ref{Kind: notification.RefMonthlyReport, ID: updated.ID},
		&notification.Ref{Kind: notification.RefSalaryRecord, ID: updated.SalaryID})
	return updated, nil
}

// MarkPaid finalizes an approved salary. Any other starting status is
// an invalid transition.
func (s *ReportService) MarkPaid(ctx context.Context, actorID, salaryID common.UUID) (*report.SalaryRecord, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		return nil, common.NewError(common.CodeForbidden, "only staff may mark salaries paid", nil)
	}

	var updated *report.SalaryRecord
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		salary, err := s.salaries.GetByID(ctx, salaryID)
		if err != nil {
			return err
		}
		if salary.Status != report.SalaryApproved {
			return common.NewError(common.CodeInvalidState, "only an approved salary can be marked paid", nil)
		}
		now := s.now()
		salary.Status = report.SalaryPaid
		salary.PaidAt = &now
		updated, err = s.salaries.Update(ctx, *salary)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, updated.StudentID, &actorID, "salary_paid",
		"Your salary was marked as paid.",
		notification.Ref{Kind: notification.RefSalaryRecord, ID: updated.ID}, nil)
	return updated, nil
}

func (s *ReportService) GetSalary(ctx context.Context, id common.UUID) (*report.SalaryRecord, error) {
	return s.salaries.GetByID(ctx, id)
}

func (s *ReportService) ListSalariesByStudent(ctx context.Context, studentID common.UUID) ([]report.SalaryRecord, error) {
	return s.salaries.ListByStudent(ctx, studentID)
}

func (s *ReportService) ListSalaries(ctx context.Context) ([]report.SalaryRecord, error) {
	return s.salaries.List(ctx)
}

func (s *ReportService) GetMonthlyReport(ctx context.Context, id common.UUID) (*report.MonthlyReport, error) {
	return s.monthlies.GetByID(ctx, id)
}

func (s *ReportService) ListMonthlyByStudent(ctx context.Context, studentID common.UUID) ([]report.MonthlyReport, error) {
	return s.monthlies.ListByStudent(ctx, studentID)
}

func (s *ReportService) ListMonthly(ctx context.Context) ([]report.MonthlyReport, error) {
	return s.monthlies.List(ctx)
}

func validateDailyHours(r report.DailyReport) error {
	fields := map[string]string{}
	if r.HoursWorked.IsNegative() {
		fields["hours_worked"] = "hours must not be negative"
	}
	if r.HoursWorked.GreaterThan(maxDailyHours) {
		fields["hours_worked"] = "hours must not exceed 24"
	}
	if r.ReportDate.IsZero() {
		fields["report_date"] = "report date is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid daily report", fields)
	}
	return nil
}
