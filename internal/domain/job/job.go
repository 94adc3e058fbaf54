package job

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

type VacancyStatus string

const (
	VacancyOpen   VacancyStatus = "OPEN"
	VacancyClosed VacancyStatus = "CLOSED"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationReviewing ApplicationStatus = "REVIEWING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
)

// Job is a hiring project. Each job owns exactly one workspace, created
// together with it.
type Job struct {
	ID             common.UUID     `json:"id"`
	WorkspaceID    common.UUID     `json:"workspace_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	BaseHourlyRate decimal.Decimal `json:"base_hourly_rate"`
	CreatedBy      common.UUID     `json:"created_by"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Vacancy struct {
	ID             common.UUID   `json:"id"`
	JobID          common.UUID   `json:"job_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Requirements   string        `json:"requirements,omitempty"`
	SlotsAvailable int           `json:"slots_available"`
	Deadline       time.Time     `json:"application_deadline"`
	CreatedBy      common.UUID   `json:"created_by"`
	Status         VacancyStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

type Application struct {
	ID          common.UUID       `json:"id"`
	VacancyID   common.UUID       `json:"vacancy_id"`
	ApplicantID common.UUID       `json:"applicant_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
