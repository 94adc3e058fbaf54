package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/app"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/middleware"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/security"
)

// AuthHandler bridges the external identity source: registration
// creates the account, the token endpoint exchanges a verified email
// for an access token. Credential checks happen upstream.
type AuthHandler struct {
	users   *app.UserService
	jwt     *security.JWTProvider
	limiter middleware.Limiter
	ttl     time.Duration
}

func NewAuthHandler(users *app.UserService, jwt *security.JWTProvider, limiter middleware.Limiter, ttl time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt, limiter: limiter, ttl: ttl}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        user.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("register:"+middleware.ClientIP(r), 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many registration attempts", nil))
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.users.Register(r.Context(), user.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Type:      user.Type(strings.ToUpper(strings.TrimSpace(req.UserType))),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow("token:"+middleware.ClientIP(r), 20, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "too many token requests", nil))
		return
	}
	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			response.Error(w, common.NewError(common.CodeUnauthorized, "unknown account", nil))
			return
		}
		response.Error(w, err)
		return
	}
	if !account.IsActive {
		response.Error(w, common.NewError(common.CodeUnauthorized, "account is disabled", nil))
		return
	}
	token, expiresAt, err := h.jwt.Generate(account.ID, string(account.Type), h.ttl)
	if err != nil {
		response.Error(w, common.NewError(common.CodeInternal, "failed to issue token", err))
		return
	}
	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: token, ExpiresAt: expiresAt, User: *account})
}
