package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/job"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type ApplicationHandler struct {
	pipeline *app.VacancyService
	limiter  middleware.Limiter
}

func NewApplicationHandler(pipeline *app.VacancyService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{pipeline: pipeline, limiter: limiter}
}

type applyRequest struct {
	VacancyID   string `json:"vacancy_id"`
	CoverLetter string `json:"cover_letter"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil && !h.limiter.Allow("apply:"+userID.String(), 5, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many applications", nil))
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	vacancyID, err := common.ParseUUID(req.VacancyID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"vacancy_id": "a valid vacancy id is required"}))
		return
	}
	created, err := h.pipeline.SubmitApplication(r.Context(), userID, vacancyID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.pipeline.WithdrawApplication(r.Context(), userID, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

type decideRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req decideRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	status := job.ApplicationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	updated, err := h.pipeline.DecideApplication(r.Context(), reviewerID, applicationID, status, req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.pipeline.ListByApplicant(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) ListByVacancy(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.pipeline.ListByVacancy(r.Context(), vacancyID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
