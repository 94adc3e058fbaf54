package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type ReportHandler struct {
	reports *app.ReportService
}

func NewReportHandler(reports *app.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type dailyReportRequest struct {
	WorkspaceID     string `json:"workspace_id"`
	ReportDate      string `json:"report_date"`
	HoursWorked     string `json:"hours_worked"`
	WorkDescription string `json:"work_description"`
}

func (h *ReportHandler) RecordDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req dailyReportRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	workspaceID, err := common.ParseUUID(req.WorkspaceID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid daily report", map[string]string{"workspace_id": "a valid workspace id is required"}))
		return
	}
	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		response.Error(w, errInvalidDate("report_date"))
		return
	}
	hours, err := decimal.NewFromString(req.HoursWorked)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid daily report", map[string]string{"hours_worked": "hours must be a decimal string"}))
		return
	}
	created, err := h.reports.RecordDailyHours(r.Context(), userID, report.DailyReport{
		WorkspaceID:     workspaceID,
		ReportDate:      reportDate,
		HoursWorked:     hours,
		WorkDescription: req.WorkDescription,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type dailyUpdateRequest struct {
	HoursWorked     string `json:"hours_worked"`
	WorkDescription string `json:"work_description"`
}

func (h *ReportHandler) UpdateDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	reportID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req dailyUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	hours, err := decimal.NewFromString(req.HoursWorked)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid daily report", map[string]string{"hours_worked": "hours must be a decimal string"}))
		return
	}
	updated, err := h.reports.UpdateDailyReport(r.Context(), userID, report.DailyReport{
		ID:              reportID,
		HoursWorked:     hours,
		WorkDescription: req.WorkDescription,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ReportHandler) ListMyDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.reports.ListDailyByStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// RunAggregation triggers the payroll batch manually, outside its cron
// schedule.
func (h *ReportHandler) RunAggregation(w http.ResponseWriter, r *http.Request) {
	created, err := h.reports.RunMonthlyAggregation(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"created": created})
}

func (h *ReportHandler) ListSalaries(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.ListSalaries(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ReportHandler) ListMySalaries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.reports.ListSalariesByStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ReportHandler) GetSalary(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.reports.GetSalary(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ReportHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	salaryID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.reports.MarkPaid(r.Context(), actorID, salaryID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ReportHandler) ListMonthly(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.ListMonthly(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ReportHandler) ListMyMonthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.reports.ListMonthlyByStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ReportHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.reports.GetMonthlyReport(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type manageRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

func (h *ReportHandler) Manage(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	reportID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req manageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	decision := report.MonthlyStatus(strings.ToUpper(strings.TrimSpace(req.Decision)))
	updated, err := h.reports.ManageReport(r.Context(), actorID, reportID, decision, req.Reason)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
