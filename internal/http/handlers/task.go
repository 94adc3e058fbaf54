package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/task"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type TaskHandler struct {
	tasks *app.TaskService
}

func NewTaskHandler(tasks *app.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	workspaceID, err := common.ParseUUID(req.WorkspaceID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid task", map[string]string{"workspace_id": "a valid workspace id is required"}))
		return
	}
	assignedTo, err := common.ParseUUID(req.AssignedTo)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid task", map[string]string{"assigned_to": "a valid user id is required"}))
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.Error(w, errInvalidDate("due_date"))
		return
	}
	created, err := h.tasks.Create(r.Context(), actorID, task.Task{
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  assignedTo,
		Priority:    task.Priority(strings.ToUpper(strings.TrimSpace(req.Priority))),
		DueDate:     dueDate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *TaskHandler) ListByWorkspace(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.tasks.ListByWorkspace(r.Context(), workspaceID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.tasks.ListByAssignee(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	taskID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req taskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.tasks.UpdateStatus(r.Context(), actorID, taskID, task.Status(strings.ToUpper(strings.TrimSpace(req.Status))))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type taskUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	taskID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req taskUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	assignedTo, err := common.ParseUUID(req.AssignedTo)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid task", map[string]string{"assigned_to": "a valid user id is required"}))
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.Error(w, errInvalidDate("due_date"))
		return
	}
	updated, err := h.tasks.Update(r.Context(), actorID, task.Task{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  assignedTo,
		Priority:    task.Priority(strings.ToUpper(strings.TrimSpace(req.Priority))),
		Status:      task.Status(strings.ToUpper(strings.TrimSpace(req.Status))),
		DueDate:     dueDate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	taskID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.tasks.Delete(r.Context(), actorID, taskID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
