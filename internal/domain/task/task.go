package task

import (
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Status string

const (
	StatusStarted    Status = "STARTED"
	StatusInProgress Status = "INPROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusCanceled   Status = "CANCELED"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCanceled
}

func KnownStatus(s Status) bool {
	switch s {
	case StatusStarted, StatusInProgress, StatusCompleted, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func KnownPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Task is one unit of work inside a workspace. CompletedAt is non-nil
// exactly while Status is COMPLETED.
type Task struct {
	ID          common.UUID `json:"id"`
	WorkspaceID common.UUID `json:"workspace_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	AssignedTo  common.UUID `json:"assigned_to"`
	CreatedBy   common.UUID `json:"created_by"`
	Status      Status      `json:"status"`
	Priority    Priority    `json:"priority"`
	DueDate     time.Time   `json:"due_date"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
