package app

import (
	"context"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

// VacancyService drives the application pipeline from submission to the
// acceptance that enrolls an applicant into the job's workspace.
type VacancyService struct {
	applications job.ApplicationRepository
	vacancies    job.VacancyRepository
	jobs         job.Repository
	members      workspace.MemberRepository
	users        user.Repository
	tx           TxRunner
	emitter      notification.Emitter

	now func() time.Time
}

func NewVacancyService(applications job.ApplicationRepository, vacancies job.VacancyRepository, jobs job.Repository, members workspace.MemberRepository, users user.Repository, tx TxRunner, emitter notification.Emitter) *VacancyService {
	return &VacancyService{
		applications: applications,
		vacancies:    vacancies,
		jobs:         jobs,
		members:      members,
		users:        users,
		tx:           tx,
		emitter:      emitter,
		now:          time.Now,
	}
}

func (s *VacancyService) SubmitApplication(ctx context.Context, applicantID, vacancyID common.UUID, coverLetter string) (*job.Application, error) {
	applicant, err := s.users.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if applicant.Type != user.TypeStudent {
		return nil, common.NewError(common.CodeForbidden, "only students may apply", nil)
	}
	vac, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if vac.Status != job.VacancyOpen {
		return nil, common.NewError(common.CodeCapacity, "vacancy is closed", nil)
	}
	// The deadline is a date and marks the last day to submit; the
	// deadline day itself is still open.
	if !s.now().Before(vac.Deadline.AddDate(0, 0, 1)) {
		return nil, common.NewError(common.CodeCapacity, "application deadline has passed", nil)
	}
	// The store's (vacancy, applicant) constraint is the real duplicate
	// guard; Create surfaces it as a conflict.
	created, err := s.applications.Create(ctx, job.Application{
		VacancyID:   vacancyID,
		ApplicantID: applicantID,
		CoverLetter: coverLetter,
		Status:      job.ApplicationPending,
	})
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewError(common.CodeConflict, "already applied to this vacancy", err)
		}
		return nil, err
	}
	s.emitter.Emit(ctx, vac.CreatedBy, &applicantID, "application_submitted",
		applicant.FullName()+" applied to "+vac.Title+".",
		notification.Ref{Kind: notification.RefApplication, ID: created.ID},
		&notification.Ref{Kind: notification.RefVacancy, ID: vac.ID})
	return created, nil
}

// WithdrawApplication removes the applicant's own application while it
// is still undecided.
func (s *VacancyService) WithdrawApplication(ctx context.Context, applicantID, applicationID common.UUID) error {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.ApplicantID != applicantID {
		return common.NewError(common.CodeForbidden, "application belongs to another user", nil)
	}
	if app.Status == job.ApplicationAccepted || app.Status == job.ApplicationRejected {
		return common.NewError(common.CodeInvalidState, "application has already been decided", nil)
	}
	return s.applications.Delete(ctx, applicationID)
}

// DecideApplication moves an application through its review lifecycle.
// Transitions run forward only, except REVIEWING and REJECTED may swap
// while staff reconsider. An ACCEPTED decision runs the enrollment as
// one atomic unit; membership creation is the single source of truth
// for whether the acceptance already took effect, so repeating the call
// never double-counts a slot.
func (s *VacancyService) DecideApplication(ctx context.Context, reviewerID, applicationID common.UUID, status job.ApplicationStatus, notes string) (*job.Application, error) {
	reviewer, err := s.users.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsStaffOrAdmin() && reviewer.Type != user.TypeRecruiter {
		return nil, common.NewError(common.CodeForbidden, "only staff or recruiters may decide applications", nil)
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !knownApplicationStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be PENDING, REVIEWING, ACCEPTED, or REJECTED"})
	}
	if status != app.Status && !allowedApplicationTransition(app.Status, status) {
		return nil, common.NewError(common.CodeInvalidState, "invalid application status transition", nil)
	}

	if status != job.ApplicationAccepted {
		updated, err := s.applications.UpdateStatus(ctx, applicationID, status, notes)
		if err != nil {
			return nil, err
		}
		if status != app.Status {
			s.emitter.Emit(ctx, app.ApplicantID, &reviewerID, "application_"+verbFor(status),
				"Your application was moved to "+string(status)+".",
				notification.Ref{Kind: notification.RefApplication, ID: app.ID},
				&notification.Ref{Kind: notification.RefVacancy, ID: app.VacancyID})
		}
		return updated, nil
	}

	var updated *job.Application
	var enrolled bool
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		vac, err := s.vacancies.GetByID(ctx, app.VacancyID)
		if err != nil {
			return err
		}
		parent, err := s.jobs.GetByID(ctx, vac.JobID)
		if err != nil {
			return err
		}
		updated, err = s.applications.UpdateStatus(ctx, applicationID, job.ApplicationAccepted, notes)
		if err != nil {
			return err
		}
		_, created, err := s.members.GetOrCreate(ctx, workspace.Member{
			WorkspaceID: parent.WorkspaceID,
			UserID:      app.ApplicantID,
			Role:        workspace.RoleStudent,
			IsActive:    true,
		})
		if err != nil {
			return err
		}
		if !created {
			// Re-acceptance: the membership already exists, so slot
			// accounting already ran. Nothing more to do.
			return nil
		}
		enrolled = true
		return s.vacancies.DecrementSlot(ctx, vac.ID)
	})
	if err != nil {
		return nil, err
	}
	if enrolled {
		s.emitter.Emit(ctx, app.ApplicantID, &reviewerID, "application_accepted",
			"Your application was accepted. Welcome to the workspace.",
			notification.Ref{Kind: notification.RefApplication, ID: app.ID},
			&notification.Ref{Kind: notification.RefVacancy, ID: app.VacancyID})
	}
	return updated, nil
}

func (s *VacancyService) ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]job.Application, error) {
	return s.applications.ListByVacancy(ctx, vacancyID)
}

func (s *VacancyService) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]job.Application, error) {
	return s.applications.ListByApplicant(ctx, applicantID)
}

func allowedApplicationTransition(from, to job.ApplicationStatus) bool {
	switch from {
	case job.ApplicationPending:
		return to == job.ApplicationReviewing || to == job.ApplicationAccepted || to == job.ApplicationRejected
	case job.ApplicationReviewing:
		return to == job.ApplicationAccepted || to == job.ApplicationRejected
	case job.ApplicationRejected:
		return to == job.ApplicationReviewing
	default:
		return false
	}
}

func knownApplicationStatus(status job.ApplicationStatus) bool {
	switch status {
	case job.ApplicationPending, job.ApplicationReviewing, job.ApplicationAccepted, job.ApplicationRejected:
		return true
	default:
		return false
	}
}

func verbFor(status job.ApplicationStatus) string {
	switch status {
	case job.ApplicationReviewing:
		return "reviewing"
	case job.ApplicationRejected:
		return "rejected"
	default:
		return "updated"
	}
}
