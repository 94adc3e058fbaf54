package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/http/response"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/security"
)

type contextKey string

const (
	ContextUserIDKey   contextKey = "user_id"
	ContextUserTypeKey contextKey = "user_type"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		userID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextUserTypeKey, user.Type(strings.ToUpper(strings.TrimSpace(claims.UserType))))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireType gates a handler on the caller's global user type. The
// per-workspace role checks stay inside the services; this is only the
// coarse outer gate.
func RequireType(types ...user.Type) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual, ok := r.Context().Value(ContextUserTypeKey).(user.Type)
			if !ok || actual == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "user type not found", nil))
				return
			}
			for _, t := range types {
				if actual == t {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewError(common.CodeForbidden, "insufficient permissions", nil))
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func UserTypeFromContext(ctx context.Context) (user.Type, bool) {
	t, ok := ctx.Value(ContextUserTypeKey).(user.Type)
	return t, ok
}
