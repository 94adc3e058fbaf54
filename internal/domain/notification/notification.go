package notification

import (
	"context"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

// RefKind tags what a notification reference points at. The closed set
// replaces a reflection-driven "attach to anything" link.
type RefKind string

const (
	RefUser          RefKind = "user"
	RefTask          RefKind = "task"
	RefWorkspace     RefKind = "workspace"
	RefMonthlyReport RefKind = "monthly_report"
	RefSalaryRecord  RefKind = "salary_record"
	RefApplication   RefKind = "vacancy_application"
	RefVacancy       RefKind = "job_vacancy"
)

// Ref points at one domain object by kind and id.
type Ref struct {
	Kind RefKind     `json:"kind"`
	ID   common.UUID `json:"id"`
}

// Label renders the human-readable name for the variant.
func (r Ref) Label() string {
	switch r.Kind {
	case RefUser:
		return "User"
	case RefTask:
		return "Task"
	case RefWorkspace:
		return "Workspace"
	case RefMonthlyReport:
		return "Monthly report"
	case RefSalaryRecord:
		return "Salary record"
	case RefApplication:
		return "Application"
	case RefVacancy:
		return "Vacancy"
	default:
		return string(r.Kind)
	}
}

func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID.IsZero()
}

type Notification struct {
	ID          common.UUID  `json:"id"`
	RecipientID common.UUID  `json:"recipient_id"`
	ActorID     *common.UUID `json:"actor_id,omitempty"`
	Verb        string       `json:"verb"`
	Message     string       `json:"message"`
	Subject     Ref          `json:"subject"`
	Target      *Ref         `json:"target,omitempty"`
	IsRead      bool         `json:"is_read"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID common.UUID) error
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
}

// Emitter is the one-way notification sink. Emit never returns an error
// to the caller: a failed emit must not roll back the state change that
// produced it. Emitting to the actor themselves is a silent no-op.
type Emitter interface {
	Emit(ctx context.Context, recipient common.UUID, actor *common.UUID, verb, message string, subject Ref, target *Ref)
}
