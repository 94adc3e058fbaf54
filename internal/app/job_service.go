package app

import (
	"context"
	"strings"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type JobService struct {
	jobs       job.Repository
	vacancies  job.VacancyRepository
	workspaces workspace.Repository
	members    workspace.MemberRepository
	users      user.Repository
	tx         TxRunner

	now func() time.Time
}

func NewJobService(jobs job.Repository, vacancies job.VacancyRepository, workspaces workspace.Repository, members workspace.MemberRepository, users user.Repository, tx TxRunner) *JobService {
	return &JobService{
		jobs:       jobs,
		vacancies:  vacancies,
		workspaces: workspaces,
		members:    members,
		users:      users,
		tx:         tx,
		now:        time.Now,
	}
}

// CreateJob creates a hiring project together with its dedicated
// workspace, in one unit. The creator joins the workspace immediately;
// accepted applicants join later through the vacancy pipeline.
func (s *JobService) CreateJob(ctx context.Context, actorID common.UUID, j job.Job) (*job.Job, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() && actor.Type != user.TypeRecruiter {
		return nil, common.NewError(common.CodeForbidden, "only staff or recruiters may create jobs", nil)
	}
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if j.BaseHourlyRate.IsNegative() {
		fields["base_hourly_rate"] = "base hourly rate must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid job", fields)
	}
	j.CreatedBy = actorID
	j.Status = job.StatusActive

	var created *job.Job
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		ws, err := s.workspaces.Create(ctx, workspace.Workspace{
			Name:        j.Title + " Project",
			Description: j.Description,
			CreatedBy:   actorID,
			IsActive:    true,
			Type:        workspace.TypeJobProject,
		})
		if err != nil {
			return err
		}
		if _, _, err := s.members.GetOrCreate(ctx, workspace.Member{
			WorkspaceID: ws.ID,
			UserID:      actorID,
			Role:        ResolveRole(actor.Type, ""),
			IsActive:    true,
		}); err != nil {
			return err
		}
		j.WorkspaceID = ws.ID
		created, err = s.jobs.Create(ctx, j)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *JobService) GetJob(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context, activeOnly bool) ([]job.Job, error) {
	return s.jobs.List(ctx, activeOnly)
}

func (s *JobService) CreateVacancy(ctx context.Context, actorID common.UUID, v job.Vacancy) (*job.Vacancy, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() && actor.Type != user.TypeRecruiter {
		return nil, common.NewError(common.CodeForbidden, "only staff or recruiters may open vacancies", nil)
	}
	parent, err := s.jobs.GetByID(ctx, v.JobID)
	if err != nil {
		return nil, err
	}
	if parent.Status != job.StatusActive {
		return nil, common.NewError(common.CodeInvalidState, "job is closed", nil)
	}
	fields := map[string]string{}
	if strings.TrimSpace(v.Title) == "" {
		fields["title"] = "title is required"
	}
	if v.SlotsAvailable < 1 {
		fields["slots_available"] = "at least one slot is required"
	}
	if v.Deadline.Before(s.now()) {
		fields["application_deadline"] = "deadline must be in the future"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid vacancy", fields)
	}
	v.CreatedBy = actorID
	v.Status = job.VacancyOpen
	return s.vacancies.Create(ctx, v)
}

func (s *JobService) GetVacancy(ctx context.Context, id common.UUID) (*job.Vacancy, error) {
	return s.vacancies.GetByID(ctx, id)
}

func (s *JobService) ListVacancies(ctx context.Context, openOnly bool) ([]job.Vacancy, error) {
	return s.vacancies.List(ctx, openOnly)
}
