package app

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type WorkspaceService struct {
	workspaces workspace.Repository
	members    workspace.MemberRepository
	users      user.Repository
	students   user.StudentRepository
	tx         TxRunner
	emitter    notification.Emitter
}

func NewWorkspaceService(workspaces workspace.Repository, members workspace.MemberRepository, users user.Repository, students user.StudentRepository, tx TxRunner, emitter notification.Emitter) *WorkspaceService {
	return &WorkspaceService{workspaces: workspaces, members: members, users: users, students: students, tx: tx, emitter: emitter}
}

func (s *WorkspaceService) Create(ctx context.Context, actorID common.UUID, ws workspace.Workspace) (*workspace.Workspace, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		return nil, common.NewError(common.CodeForbidden, "only staff may create workspaces", nil)
	}
	if strings.TrimSpace(ws.Name) == "" {
		return nil, common.NewValidationError("invalid workspace", map[string]string{"name": "name is required"})
	}
	if ws.MaxMembers < 0 {
		return nil, common.NewValidationError("invalid workspace", map[string]string{"max_members": "max members must not be negative"})
	}
	ws.CreatedBy = actorID
	ws.IsActive = true

	var created *workspace.Workspace
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err = s.workspaces.Create(ctx, ws)
		if err != nil {
			return err
		}
		role := ResolveRole(actor.Type, "")
		_, _, err = s.members.GetOrCreate(ctx, workspace.Member{
			WorkspaceID: created.ID,
			UserID:      actorID,
			Role:        role,
			IsActive:    true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id common.UUID) (*workspace.Workspace, error) {
	return s.workspaces.GetByID(ctx, id)
}

func (s *WorkspaceService) ListByUser(ctx context.Context, userID common.UUID) ([]workspace.Workspace, error) {
	return s.workspaces.ListByUser(ctx, userID)
}

func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID common.UUID) ([]workspace.Member, error) {
	if _, err := s.workspaces.GetByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.members.ListByWorkspace(ctx, workspaceID)
}

// AddMember enrolls a user directly, outside the vacancy pipeline. The
// role is resolved from the user's global type, never taken from the
// caller, and capacity is checked inside the same unit as the insert.
func (s *WorkspaceService) AddMember(ctx context.Context, actorID, workspaceID, userID common.UUID) (*workspace.Member, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		if m, err := s.members.Find(ctx, workspaceID, actorID); err != nil || m.Role != workspace.RoleAdmin || !m.IsActive {
			return nil, common.NewError(common.CodeForbidden, "only staff or a workspace admin may add members", nil)
		}
	}
	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role := ResolveRole(target.Type, s.levelOf(ctx, target))

	var member *workspace.Member
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		ws, err := s.workspaces.GetByID(ctx, workspaceID)
		if err != nil {
			return err
		}
		if !ws.IsActive {
			return common.NewError(common.CodeInvalidState, "workspace is not active", nil)
		}
		count, err := s.members.CountActive(ctx, workspaceID)
		if err != nil {
			return err
		}
		if ws.MaxMembers > 0 && count >= ws.MaxMembers {
			return common.NewError(common.CodeCapacity, "workspace is full", nil)
		}
		var created bool
		member, created, err = s.members.GetOrCreate(ctx, workspace.Member{
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        role,
			IsActive:    true,
		})
		if err != nil {
			return err
		}
		if !created {
			return common.NewError(common.CodeConflict, "user is already a member", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, userID, &actorID, "member_added",
		"You were added to a workspace.",
		notification.Ref{Kind: notification.RefWorkspace, ID: workspaceID}, nil)
	return member, nil
}

// RemoveMember deactivates a membership. The last active admin of a
// workspace cannot be removed; the workspace would become unmanageable.
func (s *WorkspaceService) RemoveMember(ctx context.Context, actorID, memberID common.UUID) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if !actor.IsStaffOrAdmin() {
		if m, err := s.members.Find(ctx, member.WorkspaceID, actorID); err != nil || m.Role != workspace.RoleAdmin || !m.IsActive {
			return common.NewError(common.CodeForbidden, "only staff or a workspace admin may remove members", nil)
		}
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if member.Role == workspace.RoleAdmin {
			admins, err := s.members.CountActiveByRole(ctx, member.WorkspaceID, workspace.RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return common.NewError(common.CodeInvalidState, "cannot remove the last admin of a workspace", nil)
			}
		}
		return s.members.Delete(ctx, memberID)
	})
}

// SetRateOverride pins a member-specific hourly rate used by payroll in
// place of the job's base rate. A nil rate clears the override.
func (s *WorkspaceService) SetRateOverride(ctx context.Context, actorID, memberID common.UUID, rate *decimal.Decimal) (*workspace.Member, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		return nil, common.NewError(common.CodeForbidden, "only staff may set rate overrides", nil)
	}
	if rate != nil && rate.IsNegative() {
		return nil, common.NewValidationError("invalid rate", map[string]string{"hourly_rate_override": "rate must not be negative"})
	}
	return s.members.UpdateRateOverride(ctx, memberID, rate)
}

func (s *WorkspaceService) levelOf(ctx context.Context, u *user.User) user.LevelStatus {
	if u.Type != user.TypeStudent {
		return ""
	}
	profile, err := s.students.GetByUserID(ctx, u.ID)
	if err != nil {
		return user.LevelSimple
	}
	return profile.LevelStatus
}
