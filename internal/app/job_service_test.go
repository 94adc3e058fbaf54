package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

func TestCreateJobProvisionsWorkspace(t *testing.T) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo()
	workspaces := newFakeWorkspaceRepo()
	jobs := newFakeJobRepo()
	vacancies := newFakeVacancyRepo()
	staffID := users.add(user.TypeStaff)

	svc := NewJobService(jobs, vacancies, workspaces, members, users, fakeTx{})
	created, err := svc.CreateJob(context.Background(), staffID, job.Job{
		Title:          "Search Crawler",
		Description:    "crawler maintenance",
		BaseHourlyRate: decimal.RequireFromString("14.00"),
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	ws, err := workspaces.GetByID(context.Background(), created.WorkspaceID)
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	if ws.Name != "Search Crawler Project" {
		t.Fatalf("workspace name = %q, want %q", ws.Name, "Search Crawler Project")
	}
	if ws.Type != workspace.TypeJobProject {
		t.Fatalf("workspace type = %s, want %s", ws.Type, workspace.TypeJobProject)
	}

	member, err := members.Find(context.Background(), ws.ID, staffID)
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if member.Role != workspace.RoleStaff {
		t.Fatalf("creator role = %s, want %s", member.Role, workspace.RoleStaff)
	}
}

func TestCreateJobRequiresStaffOrRecruiter(t *testing.T) {
	users := newFakeUserRepo()
	studentID := users.add(user.TypeStudent)

	svc := NewJobService(newFakeJobRepo(), newFakeVacancyRepo(), newFakeWorkspaceRepo(), newFakeMemberRepo(), users, fakeTx{})
	_, err := svc.CreateJob(context.Background(), studentID, job.Job{
		Title:          "Search Crawler",
		BaseHourlyRate: decimal.RequireFromString("14.00"),
	})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
