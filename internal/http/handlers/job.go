package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	BaseHourlyRate string `json:"base_hourly_rate"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	rate, err := decimal.NewFromString(req.BaseHourlyRate)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid job", map[string]string{"base_hourly_rate": "rate must be a decimal string"}))
		return
	}
	created, err := h.jobs.CreateJob(r.Context(), actorID, job.Job{
		Title:          req.Title,
		Description:    req.Description,
		BaseHourlyRate: rate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := h.jobs.ListJobs(r.Context(), activeOnly)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type vacancyRequest struct {
	JobID          string `json:"job_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	SlotsAvailable int    `json:"slots_available"`
	Deadline       string `json:"application_deadline"`
}

func (h *JobHandler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req vacancyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid vacancy", map[string]string{"job_id": "a valid job id is required"}))
		return
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid vacancy", map[string]string{"application_deadline": "deadline must be RFC3339"}))
		return
	}
	created, err := h.jobs.CreateVacancy(r.Context(), actorID, job.Vacancy{
		JobID:          jobID,
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		SlotsAvailable: req.SlotsAvailable,
		Deadline:       deadline,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) GetVacancy(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.GetVacancy(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) ListVacancies(w http.ResponseWriter, r *http.Request) {
	openOnly := r.URL.Query().Get("open") == "true"
	items, err := h.jobs.ListVacancies(r.Context(), openOnly)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
