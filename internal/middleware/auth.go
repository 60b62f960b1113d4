package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-market-backend/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	ValidateJWT(token string) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthMiddleware guards protected routes. It extracts the bearer token,
// verifies it and re-loads the user, so a token for a since-deleted account
// is rejected. Every failure mode is a 401 before any other work happens.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			userID, err := auth.ValidateJWT(strings.TrimSpace(parts[1]))
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			user, err := auth.GetByID(r.Context(), userID)
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from the context. Returns nil on
// routes that did not pass through AuthMiddleware.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
