package utils

import (
	"context"
	"net/http"
	"strings"

	"github.com/enterprise-service/admin-backend/models"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// ExtractBearerToken pulls the token out of an Authorization header. The
// second return is false when the header is missing or not a bearer scheme.
func ExtractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// WithClaims stores verified token claims on the request context
func WithClaims(ctx context.Context, claims *models.JWTClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves the claims stored by the auth middleware
func ClaimsFromContext(ctx context.Context) (*models.JWTClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*models.JWTClaims)
	return claims, ok
}
