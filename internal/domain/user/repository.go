package user

import (
	"context"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type StudentRepository interface {
	Upsert(ctx context.Context, s Student) (*Student, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*Student, error)
	UpdateLevelStatus(ctx context.Context, userID common.UUID, level LevelStatus) (*Student, error)
}
