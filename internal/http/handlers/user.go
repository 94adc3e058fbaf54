package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	account, err := h.users.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

type studentProfileRequest struct {
	StudentNumber string   `json:"student_number"`
	ITSkills      []string `json:"it_skills"`
	HireDate      string   `json:"hire_date"`
}

func (h *UserHandler) GetStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	profile, err := h.users.GetStudent(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpsertStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req studentProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	profile := user.Student{
		UserID:        userID,
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		ITSkills:      req.ITSkills,
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			response.Error(w, errInvalidDate("hire_date"))
			return
		}
		profile.HireDate = &hireDate
	}
	updated, err := h.users.UpsertStudentProfile(r.Context(), profile)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type levelRequest struct {
	LevelStatus string `json:"level_status"`
}

// SetLevel moves a student between SIMPLE and TEAMLEAD; every active
// membership role is re-synced as part of the same call.
func (h *UserHandler) SetLevel(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	studentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req levelRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.users.SetLevelStatus(r.Context(), actorID, studentID, user.LevelStatus(strings.ToUpper(strings.TrimSpace(req.LevelStatus))))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
