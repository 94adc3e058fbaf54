package app

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/task"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

// TaskService owns task state transitions. Two permission surfaces
// mutate status: the creator or a workspace lead may set anything,
// the assignee may only move between INPROGRESS and COMPLETED.
type TaskService struct {
	tasks   task.Repository
	members workspace.MemberRepository
	tx      TxRunner
	emitter notification.Emitter
	logger  *logrus.Logger

	now func() time.Time
}

func NewTaskService(tasks task.Repository, members workspace.MemberRepository, tx TxRunner, emitter notification.Emitter, logger *logrus.Logger) *TaskService {
	return &TaskService{
		tasks:   tasks,
		members: members,
		tx:      tx,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, actorID common.UUID, t task.Task) (*task.Task, error) {
	actorMember, err := s.members.Find(ctx, t.WorkspaceID, actorID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "actor is not a member of the workspace", nil)
		}
		return nil, err
	}
	if !leadRole(actorMember.Role) {
		return nil, common.NewError(common.CodeForbidden, "only a workspace lead may create tasks", nil)
	}
	fields := map[string]string{}
	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = "title is required"
	}
	if t.AssignedTo == actorID {
		fields["assigned_to"] = "a task cannot be assigned to its creator"
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	if !task.KnownPriority(t.Priority) {
		fields["priority"] = "priority must be LOW, MEDIUM, HIGH, or URGENT"
	}
	if t.DueDate.IsZero() {
		fields["due_date"] = "due date is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid task", fields)
	}
	assignee, err := s.members.Find(ctx, t.WorkspaceID, t.AssignedTo)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "assignee is not a member of the workspace", nil)
		}
		return nil, err
	}
	if !assignee.IsActive || (assignee.Role != workspace.RoleStudent && assignee.Role != workspace.RoleTeamLeader) {
		return nil, common.NewError(common.CodeValidation, "tasks can only be assigned to student members", nil)
	}
	t.CreatedBy = actorID
	t.Status = task.StatusStarted
	t.CompletedAt = nil
	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, created.AssignedTo, &actorID, "task_assigned",
		"You were assigned a new task: "+created.Title+".",
		notification.Ref{Kind: notification.RefTask, ID: created.ID},
		&notification.Ref{Kind: notification.RefWorkspace, ID: created.WorkspaceID})
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id common.UUID) (*task.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *TaskService) ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]task.Task, error) {
	return s.tasks.ListByWorkspace(ctx, workspaceID)
}

func (s *TaskService) ListByAssignee(ctx context.Context, userID common.UUID) ([]task.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

// UpdateStatus applies one status transition. completed_at is set
// exactly when the status enters COMPLETED and cleared when it leaves,
// no matter which actor drove the transition.
func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID common.UUID, status task.Status) (*task.Task, error) {
	if !task.KnownStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be STARTED, INPROGRESS, COMPLETED, FAILED, or CANCELED"})
	}
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	switch {
	case t.CreatedBy == actorID || s.isLead(ctx, t.WorkspaceID, actorID):
		// full control
	case t.AssignedTo == actorID:
		if status != task.StatusInProgress && status != task.StatusCompleted {
			return nil, common.NewError(common.CodeForbidden, "assignee may only move a task between INPROGRESS and COMPLETED", nil)
		}
	default:
		return nil, common.NewError(common.CodeForbidden, "actor may not modify this task", nil)
	}

	var updated *task.Task
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		t.Status = status
		applyCompletionStamp(t, s.now())
		updated, err = s.tasks.Update(ctx, *t)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifyCounterparty(ctx, updated, actorID, "task_status_changed",
		"Task "+updated.Title+" moved to "+string(status)+".")
	return updated, nil
}

// Update rewrites task fields. Only the creator or a workspace lead may
// do this; status changes still keep the completion stamp consistent.
func (s *TaskService) Update(ctx context.Context, actorID common.UUID, t task.Task) (*task.Task, error) {
	current, err := s.tasks.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if current.CreatedBy != actorID && !s.isLead(ctx, current.WorkspaceID, actorID) {
		return nil, common.NewError(common.CodeForbidden, "only the creator or a workspace lead may edit a task", nil)
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, common.NewValidationError("invalid task", map[string]string{"title": "title is required"})
	}
	if t.Status == "" {
		t.Status = current.Status
	}
	if !task.KnownStatus(t.Status) {
		return nil, common.NewValidationError("invalid task", map[string]string{"status": "unknown status"})
	}
	if !task.KnownPriority(t.Priority) {
		return nil, common.NewValidationError("invalid task", map[string]string{"priority": "unknown priority"})
	}
	t.WorkspaceID = current.WorkspaceID
	t.CreatedBy = current.CreatedBy
	t.CompletedAt = current.CompletedAt
	applyCompletionStamp(&t, s.now())

	var updated *task.Task
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		updated, err = s.tasks.Update(ctx, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifyCounterparty(ctx, updated, actorID, "task_updated",
		"Task "+updated.Title+" was updated.")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, taskID common.UUID) error {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t.CreatedBy != actorID && !s.isLead(ctx, t.WorkspaceID, actorID) {
		return common.NewError(common.CodeForbidden, "only the creator or a workspace lead may delete a task", nil)
	}
	return s.tasks.Delete(ctx, taskID)
}

// SweepOverdue force-fails every task whose due date is strictly before
// today and whose status is not terminal. One student's failure must
// not abort the batch, so each task is swept in its own unit and errors
// are logged and skipped. Returns how many tasks were flipped.
func (s *TaskService) SweepOverdue(ctx context.Context) (int, error) {
	today := startOfDay(s.now())
	overdue, err := s.tasks.ListOverdue(ctx, today)
	if err != nil {
		return 0, err
	}
	swept := 0
	for i := range overdue {
		t := overdue[i]
		err := s.tx.InTx(ctx, func(ctx context.Context) error {
			t.Status = task.StatusFailed
			applyCompletionStamp(&t, s.now())
			_, err := s.tasks.Update(ctx, t)
			return err
		})
		if err != nil {
			s.logger.WithError(err).WithField("task_id", t.ID).Error("overdue sweep failed for task")
			continue
		}
		swept++
		s.emitter.Emit(ctx, t.CreatedBy, nil, "task_overdue",
			"Task "+t.Title+" passed its due date and was marked FAILED.",
			notification.Ref{Kind: notification.RefTask, ID: t.ID},
			&notification.Ref{Kind: notification.RefWorkspace, ID: t.WorkspaceID})
	}
	return swept, nil
}

func (s *TaskService) isLead(ctx context.Context, workspaceID, userID common.UUID) bool {
	m, err := s.members.Find(ctx, workspaceID, userID)
	if err != nil {
		return false
	}
	return m.IsActive && leadRole(m.Role)
}

func leadRole(r workspace.Role) bool {
	switch r {
	case workspace.RoleAdmin, workspace.RoleStaff, workspace.RoleTeamLeader:
		return true
	default:
		return false
	}
}

// applyCompletionStamp keeps completed_at set iff the status is
// COMPLETED.
func applyCompletionStamp(t *task.Task, now time.Time) {
	if t.Status == task.StatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		return
	}
	t.CompletedAt = nil
}

func (s *TaskService) notifyCounterparty(ctx context.Context, t *task.Task, actorID common.UUID, verb, message string) {
	recipient := t.AssignedTo
	if actorID == t.AssignedTo {
		recipient = t.CreatedBy
	}
	s.emitter.Emit(ctx, recipient, &actorID, verb, message,
		notification.Ref{Kind: notification.RefTask, ID: t.ID},
		&notification.Ref{Kind: notification.RefWorkspace, ID: t.WorkspaceID})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
