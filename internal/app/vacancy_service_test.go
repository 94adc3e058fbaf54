package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
)

type pipelineFixture struct {
	svc          *VacancyService
	users        *fakeUserRepo
	members      *fakeMemberRepo
	vacancies    *fakeVacancyRepo
	applications *fakeApplicationRepo
	emitter      *fakeEmitter
	workspaceID  common.UUID
	vacancyID    common.UUID
	reviewerID   common.UUID
}

func newPipelineFixture(t *testing.T, slots int) *pipelineFixture {
	t.Helper()
	users := newFakeUserRepo()
	members := newFakeMemberRepo()
	workspaces := newFakeWorkspaceRepo()
	jobs := newFakeJobRepo()
	vacancies := newFakeVacancyRepo()
	applications := newFakeApplicationRepo()
	emitter := &fakeEmitter{}

	workspaceID := workspaces.add(50)
	jobID := jobs.add(workspaceID, decimal.RequireFromString("12.00"))
	vacancyID := vacancies.add(jobID, slots, time.Now().Add(24*time.Hour))
	reviewerID := users.add(user.TypeRecruiter)

	svc := NewVacancyService(applications, vacancies, jobs, members, users, fakeTx{}, emitter)
	return &pipelineFixture{
		svc:          svc,
		users:        users,
		members:      members,
		vacancies:    vacancies,
		applications: applications,
		emitter:      emitter,
		workspaceID:  workspaceID,
		vacancyID:    vacancyID,
		reviewerID:   reviewerID,
	}
}

func (f *pipelineFixture) apply(t *testing.T) (common.UUID, *job.Application) {
	t.Helper()
	applicantID := f.users.add(user.TypeStudent)
	app, err := f.svc.SubmitApplication(context.Background(), applicantID, f.vacancyID, "cover letter")
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	return applicantID, app
}

func TestAcceptanceIsIdempotent(t *testing.T) {
	f := newPipelineFixture(t, 3)
	applicantID, app := f.apply(t)

	for i := 0; i < 2; i++ {
		if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationAccepted, ""); err != nil {
			t.Fatalf("decide #%d: %v", i+1, err)
		}
	}

	memberships, _ := f.members.ListByWorkspace(context.Background(), f.workspaceID)
	count := 0
	for _, m := range memberships {
		if m.UserID == applicantID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one membership, got %d", count)
	}
	vac, _ := f.vacancies.GetByID(context.Background(), f.vacancyID)
	if vac.SlotsAvailable != 2 {
		t.Fatalf("slots decremented %d times, want 1", 3-vac.SlotsAvailable)
	}
	if got := f.emitter.count("application_accepted"); got != 1 {
		t.Fatalf("expected 1 acceptance event, got %d", got)
	}
}

func TestSlotExhaustionClosesVacancy(t *testing.T) {
	f := newPipelineFixture(t, 1)
	_, app := f.apply(t)

	if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationAccepted, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	vac, _ := f.vacancies.GetByID(context.Background(), f.vacancyID)
	if vac.SlotsAvailable != 0 {
		t.Fatalf("slots = %d, want 0", vac.SlotsAvailable)
	}
	if vac.Status != job.VacancyClosed {
		t.Fatalf("status = %s, want CLOSED", vac.Status)
	}

	lateApplicant := f.users.add(user.TypeStudent)
	_, err := f.svc.SubmitApplication(context.Background(), lateApplicant, f.vacancyID, "")
	if !common.Is(err, common.CodeCapacity) {
		t.Fatalf("expected capacity error for closed vacancy, got %v", err)
	}
}

func TestDuplicateApplicationRejected(t *testing.T) {
	f := newPipelineFixture(t, 2)
	applicantID, _ := f.apply(t)

	if _, err := f.svc.SubmitApplication(context.Background(), applicantID, f.vacancyID, ""); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitOnDeadlineDayAccepted(t *testing.T) {
	f := newPipelineFixture(t, 2)
	deadline := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	f.vacancies.setDeadline(f.vacancyID, deadline)
	f.svc.now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }

	applicantID := f.users.add(user.TypeStudent)
	if _, err := f.svc.SubmitApplication(context.Background(), applicantID, f.vacancyID, ""); err != nil {
		t.Fatalf("submit on the deadline day: %v", err)
	}

	f.svc.now = func() time.Time { return time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC) }
	lateApplicant := f.users.add(user.TypeStudent)
	if _, err := f.svc.SubmitApplication(context.Background(), lateApplicant, f.vacancyID, ""); !common.Is(err, common.CodeCapacity) {
		t.Fatalf("expected capacity error the day after the deadline, got %v", err)
	}
}

func TestConcurrentAcceptancesCloseVacancy(t *testing.T) {
	f := newPipelineFixture(t, 2)
	_, first := f.apply(t)
	_, second := f.apply(t)

	var wg sync.WaitGroup
	for _, id := range []common.UUID{first.ID, second.ID} {
		wg.Add(1)
		go func(id common.UUID) {
			defer wg.Done()
			if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, id, job.ApplicationAccepted, ""); err != nil {
				t.Errorf("decide %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	vac, _ := f.vacancies.GetByID(context.Background(), f.vacancyID)
	if vac.SlotsAvailable != 0 {
		t.Fatalf("slots = %d, want 0 after both acceptances", vac.SlotsAvailable)
	}
	if vac.Status != job.VacancyClosed {
		t.Fatalf("status = %s, want CLOSED", vac.Status)
	}
}

func TestSubmitAfterDeadlineRejected(t *testing.T) {
	f := newPipelineFixture(t, 2)
	f.svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	applicantID := f.users.add(user.TypeStudent)
	if _, err := f.svc.SubmitApplication(context.Background(), applicantID, f.vacancyID, ""); !common.Is(err, common.CodeCapacity) {
		t.Fatalf("expected capacity error after deadline, got %v", err)
	}
}

func TestRejectedCanReturnToReviewing(t *testing.T) {
	f := newPipelineFixture(t, 2)
	_, app := f.apply(t)

	if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationRejected, "not a fit"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	updated, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationReviewing, "reconsidering")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if updated.Status != job.ApplicationReviewing {
		t.Fatalf("status = %s, want REVIEWING", updated.Status)
	}
}

func TestAcceptedIsTerminal(t *testing.T) {
	f := newPipelineFixture(t, 2)
	_, app := f.apply(t)

	if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationAccepted, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationRejected, "changed my mind"); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestDecideRequiresReviewerRole(t *testing.T) {
	f := newPipelineFixture(t, 2)
	applicantID, app := f.apply(t)

	if _, err := f.svc.DecideApplication(context.Background(), applicantID, app.ID, job.ApplicationAccepted, ""); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestWithdrawOnlyWhileUndecided(t *testing.T) {
	f := newPipelineFixture(t, 2)
	applicantID, app := f.apply(t)

	if _, err := f.svc.DecideApplication(context.Background(), f.reviewerID, app.ID, job.ApplicationAccepted, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.WithdrawApplication(context.Background(), applicantID, app.ID); !common.Is(err, common.CodeInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}
