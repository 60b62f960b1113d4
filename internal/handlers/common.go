package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-market-backend/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondServiceError maps the sentinel error set to HTTP statuses.
// Anything unrecognized becomes a generic 500; the detail goes to the log
// at the call site, never to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrDuplicateEmail):
		respondError(w, models.ErrDuplicateEmail.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, "Invalid credentials", http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthenticated):
		respondError(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		respondError(w, "Not authorized", http.StatusForbidden)
	case errors.Is(err, models.ErrNotFound):
		respondError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrDispatch):
		respondError(w, "Failed to notify seller", http.StatusBadGateway)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}
