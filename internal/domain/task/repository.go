package task

import (
	"context"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Repository interface {
	Create(ctx context.Context, t Task) (*Task, error)
	GetByID(ctx context.Context, id common.UUID) (*Task, error)
	Update(ctx context.Context, t Task) (*Task, error)
	ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]Task, error)
	ListByAssignee(ctx context.Context, userID common.UUID) ([]Task, error)
	// ListOverdue returns tasks with a due date strictly before the given
	// day whose status is not terminal.
	ListOverdue(ctx context.Context, before time.Time) ([]Task, error)
	Delete(ctx context.Context, id common.UUID) error
}
