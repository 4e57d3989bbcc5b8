package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/enterprise-service/admin-backend/services"
	"github.com/enterprise-service/admin-backend/utils"
)

// JWTAuthMiddleware verifies bearer tokens on protected routes and stores the
// verified claims on the request context.
type JWTAuthMiddleware struct {
	auth *services.AuthService
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(auth *services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{auth: auth}
}

// Authenticate wraps a handler with bearer token verification
func (m *JWTAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := utils.ExtractBearerToken(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := m.auth.VerifyToken(token)
		if err != nil {
			slog.Debug("Token verification failed", "path", r.URL.Path, "error", err)
			if errors.Is(err, models.ErrTokenExpired) {
				utils.RespondWithError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := utils.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
