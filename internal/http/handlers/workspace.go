package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type WorkspaceHandler struct {
	workspaces *app.WorkspaceService
}

func NewWorkspaceHandler(workspaces *app.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

type workspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
	Type        string `json:"workspace_type"`
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req workspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.workspaces.Create(r.Context(), actorID, workspace.Workspace{
		Name:        req.Name,
		Description: req.Description,
		MaxMembers:  req.MaxMembers,
		Type:        workspace.Type(req.Type),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	ws, err := h.workspaces.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ws)
}

func (h *WorkspaceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.workspaces.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	members, err := h.workspaces.ListMembers(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

func (h *WorkspaceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	workspaceID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	userID, err := common.ParseUUID(req.UserID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid member", map[string]string{"user_id": "a valid user id is required"}))
		return
	}
	member, err := h.workspaces.AddMember(r.Context(), actorID, workspaceID, userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, member)
}

func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	memberID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.workspaces.RemoveMember(r.Context(), actorID, memberID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

type rateOverrideRequest struct {
	HourlyRateOverride *string `json:"hourly_rate_override"`
}

func (h *WorkspaceHandler) SetRateOverride(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	memberID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req rateOverrideRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var rate *decimal.Decimal
	if req.HourlyRateOverride != nil {
		parsed, err := decimal.NewFromString(*req.HourlyRateOverride)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid rate", map[string]string{"hourly_rate_override": "rate must be a decimal string"}))
			return
		}
		rate = &parsed
	}
	member, err := h.workspaces.SetRateOverride(r.Context(), actorID, memberID, rate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, member)
}
