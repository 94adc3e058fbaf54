package job

import (
	"context"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	GetByWorkspace(ctx context.Context, workspaceID common.UUID) (*Job, error)
	List(ctx context.Context, activeOnly bool) ([]Job, error)
}

type VacancyRepository interface {
	Create(ctx context.Context, v Vacancy) (*Vacancy, error)
	GetByID(ctx context.Context, id common.UUID) (*Vacancy, error)
	List(ctx context.Context, openOnly bool) ([]Vacancy, error)
	// DecrementSlot atomically consumes one slot, flooring at zero and
	// closing the vacancy when the last slot is taken. The store owns
	// the arithmetic so concurrent acceptances never lose a decrement.
	DecrementSlot(ctx context.Context, id common.UUID) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status ApplicationStatus, notes string) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
}
