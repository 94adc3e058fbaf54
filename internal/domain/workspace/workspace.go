package workspace

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Type string

const (
	TypeGeneral    Type = "GENERAL"
	TypeProject    Type = "PROJECT"
	TypeStudy      Type = "STUDY"
	TypeMeeting    Type = "MEETING"
	TypeJobProject Type = "JOB_PROJECT"
)

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleTeamLeader Role = "TEAMLEADER"
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
	RoleRecruiter  Role = "RECRUITER"
)

type Workspace struct {
	ID         common.UUID `json:"id"`
	Name       string      `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedBy  common.UUID `json:"created_by"`
	IsActive   bool        `json:"is_active"`
	MaxMembers int         `json:"max_members"`
	Type       Type        `json:"workspace_type"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Member binds one user to one workspace. The pair is unique; role is
// derived from the user's global type and never set directly by callers.
type Member struct {
	ID                 common.UUID      `json:"id"`
	WorkspaceID        common.UUID      `json:"workspace_id"`
	UserID             common.UUID      `json:"user_id"`
	Role               Role             `json:"role"`
	IsActive           bool             `json:"is_active"`
	HourlyRateOverride *decimal.Decimal `json:"hourly_rate_override,omitempty"`
	JoinedAt           time.Time        `json:"joined_at"`
}
