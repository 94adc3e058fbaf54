package workspace

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Repository interface {
	Create(ctx context.Context, ws Workspace) (*Workspace, error)
	GetByID(ctx context.Context, id common.UUID) (*Workspace, error)
	ListByUser(ctx context.Context, userID common.UUID) ([]Workspace, error)
}

type MemberRepository interface {
	// GetOrCreate inserts the membership unless the (workspace, user) pair
	// already exists; created reports whether a row was inserted. Concurrent
	// callers race on the store's unique constraint, not an application check.
	GetOrCreate(ctx context.Context, m Member) (member *Member, created bool, err error)
	GetByID(ctx context.Context, id common.UUID) (*Member, error)
	Find(ctx context.Context, workspaceID, userID common.UUID) (*Member, error)
	ListByWorkspace(ctx context.Context, workspaceID common.UUID) ([]Member, error)
	ListActiveByUser(ctx context.Context, userID common.UUID) ([]Member, error)
	CountActive(ctx context.Context, workspaceID common.UUID) (int, error)
	CountActiveByRole(ctx context.Context, workspaceID common.UUID, role Role) (int, error)
	// UpdateRoleForUser rewrites the role on every active membership of the
	// user and returns how many rows actually changed value.
	UpdateRoleForUser(ctx context.Context, userID common.UUID, role Role) (int, error)
	UpdateRateOverride(ctx context.Context, memberID common.UUID, rate *decimal.Decimal) (*Member, error)
	Delete(ctx context.Context, memberID common.UUID) error
}
