package user

import (
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Type string

const (
	TypeStudent   Type = "STUDENT"
	TypeStaff     Type = "STAFF"
	TypeRecruiter Type = "RECRUITER"
	TypeAdmin     Type = "ADMIN"
)

type LevelStatus string

const (
	LevelSimple   LevelStatus = "SIMPLE"
	LevelTeamLead LevelStatus = "TEAMLEAD"
)

type User struct {
	ID        common.UUID `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Type      Type        `json:"user_type"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) IsStaffOrAdmin() bool {
	return u.Type == TypeStaff || u.Type == TypeAdmin
}

// Student is the profile attached to users of type STUDENT. LevelStatus
// drives the workspace role every membership of the student carries.
type Student struct {
	UserID        common.UUID `json:"user_id"`
	StudentNumber string      `json:"student_number,omitempty"`
	ITSkills      []string    `json:"it_skills"`
	LevelStatus   LevelStatus `json:"level_status"`
	HireDate      *time.Time  `json:"hire_date,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
