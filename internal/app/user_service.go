package app

import (
	"context"
	"strings"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

type UserService struct {
	users    user.Repository
	students user.StudentRepository
	members  workspace.MemberRepository
	tx       TxRunner
	emitter  notification.Emitter
}

func NewUserService(users user.Repository, students user.StudentRepository, members workspace.MemberRepository, tx TxRunner, emitter notification.Emitter) *UserService {
	return &UserService{users: users, students: students, members: members, tx: tx, emitter: emitter}
}

func (s *UserService) Register(ctx context.Context, u user.User) (*user.User, error) {
	fields := map[string]string{}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if strings.TrimSpace(u.FirstName) == "" {
		fields["first_name"] = "first name is required"
	}
	if strings.TrimSpace(u.LastName) == "" {
		fields["last_name"] = "last name is required"
	}
	switch u.Type {
	case user.TypeStudent, user.TypeStaff, user.TypeRecruiter, user.TypeAdmin:
	default:
		fields["user_type"] = "user type must be STUDENT, STAFF, RECRUITER, or ADMIN"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid user", fields)
	}
	u.IsActive = true
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	if created.Type == user.TypeStudent {
		_, err = s.students.Upsert(ctx, user.Student{UserID: created.ID, LevelStatus: user.LevelSimple})
		if err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) GetStudent(ctx context.Context, userID common.UUID) (*user.Student, error) {
	return s.students.GetByUserID(ctx, userID)
}

func (s *UserService) UpsertStudentProfile(ctx context.Context, profile user.Student) (*user.Student, error) {
	owner, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	if owner.Type != user.TypeStudent {
		return nil, common.NewError(common.CodeValidation, "user is not a student", nil)
	}
	if profile.LevelStatus == "" {
		profile.LevelStatus = user.LevelSimple
	}
	if profile.LevelStatus != user.LevelSimple && profile.LevelStatus != user.LevelTeamLead {
		return nil, common.NewValidationError("invalid student profile", map[string]string{"level_status": "level status must be SIMPLE or TEAMLEAD"})
	}
	current, err := s.students.GetByUserID(ctx, profile.UserID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	// Level changes go through SetLevelStatus so memberships stay in
	// sync; a profile upsert never moves the level silently.
	if current != nil {
		profile.LevelStatus = current.LevelStatus
	}
	return s.students.Upsert(ctx, profile)
}

// SetLevelStatus moves a student between SIMPLE and TEAMLEAD and
// re-resolves the role on every active membership the student holds.
// The event fires only when at least one membership actually changed
// value, so repeating the same level is silent.
func (s *UserService) SetLevelStatus(ctx context.Context, actorID, studentID common.UUID, level user.LevelStatus) (*user.Student, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffOrAdmin() {
		return nil, common.NewError(common.CodeForbidden, "only staff may change a student's level", nil)
	}
	if level != user.LevelSimple && level != user.LevelTeamLead {
		return nil, common.NewValidationError("invalid level", map[string]string{"level_status": "level status must be SIMPLE or TEAMLEAD"})
	}
	target, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if target.Type != user.TypeStudent {
		return nil, common.NewError(common.CodeValidation, "user is not a student", nil)
	}

	var updated *user.Student
	var changed int
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		updated, err = s.students.UpdateLevelStatus(ctx, studentID, level)
		if err != nil {
			return err
		}
		role := ResolveRole(target.Type, level)
		changed, err = s.members.UpdateRoleForUser(ctx, studentID, role)
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed > 0 {
		s.emitter.Emit(ctx, studentID, &actorID, "role_updated",
			"Your workspace role was updated to match your new level.",
			notification.Ref{Kind: notification.RefUser, ID: studentID}, nil)
	}
	return updated, nil
}
