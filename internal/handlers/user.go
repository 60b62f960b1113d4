package handlers

import (
	"encoding/json"
	"net/http"

	"pet-market-backend/internal/middleware"
	"pet-market-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles profile requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

// UpdateProfileRequest represents the request body for a profile update.
// Omitted or empty fields keep their previous values.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	About   string `json:"about"`
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, services.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		About:   req.About,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("Profile updated")

	respondJSON(w, http.StatusOK, updated)
}
