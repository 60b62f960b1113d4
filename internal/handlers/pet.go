package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"pet-market-backend/internal/middleware"
	"pet-market-backend/internal/models"
	"pet-market-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20 // 10 MiB

// Notifier dispatches interest notices to sellers.
type Notifier interface {
	NotifyInterest(ctx context.Context, pet *models.Pet, buyer *models.User) error
}

// PetHandler handles listing requests
type PetHandler struct {
	petService *services.PetService
	notifier   Notifier
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *services.PetService, notifier Notifier) *PetHandler {
	return &PetHandler{
		petService: petService,
		notifier:   notifier,
	}
}

// GetPets handles GET /api/pets
func (h *PetHandler) GetPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pets")
		respondServiceError(w, err)
		return
	}
	if pets == nil {
		pets = []*models.Pet{}
	}
	respondJSON(w, http.StatusOK, pets)
}

// GetUserPets handles GET /api/pets/user
func (h *PetHandler) GetUserPets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	pets, err := h.petService.ListBySeller(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list user pets")
		respondServiceError(w, err)
		return
	}
	if pets == nil {
		pets = []*models.Pet{}
	}
	respondJSON(w, http.StatusOK, pets)
}

// GetPet handles GET /api/pets/{pet_id}
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "pet_id")

	pet, err := h.petService.GetByID(r.Context(), petID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pet)
}

// CreatePet handles POST /api/pets. The body is a multipart form with
// name, category, weight, price, about and an optional image file. Any
// seller field the client sends is ignored.
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	weight, err := strconv.ParseFloat(r.FormValue("weight"), 64)
	if err != nil {
		respondError(w, "weight must be a number", http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		respondError(w, "price must be a number", http.StatusBadRequest)
		return
	}

	var (
		image     io.Reader
		imageName string
	)
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		image = file
		imageName = header.Filename
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		respondError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	pet, err := h.petService.Create(r.Context(), user.ID, services.CreatePetInput{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Weight:   weight,
		Price:    price,
		About:    r.FormValue("about"),
	}, image, imageName)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create pet")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("pet_id", pet.ID).
		Str("category", pet.Category).
		Msg("Pet listing created")

	respondJSON(w, http.StatusCreated, pet)
}

// DeletePet handles DELETE /api/pets/{pet_id}
func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	petID := chi.URLParam(r, "pet_id")

	if err := h.petService.Delete(r.Context(), petID, user.ID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("pet_id", petID).
			Msg("Failed to delete pet")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("pet_id", petID).
		Msg("Pet listing deleted")

	respondJSON(w, http.StatusOK, map[string]string{"message": "Pet listing deleted"})
}

// ExpressInterest handles POST /api/pets/{pet_id}/interest. The notice is
// a best-effort side channel: a dispatch failure is reported as 502 but
// changes nothing about the listing.
func (h *PetHandler) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	petID := chi.URLParam(r, "pet_id")

	pet, err := h.petService.GetByID(r.Context(), petID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.notifier.NotifyInterest(r.Context(), pet, user); err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("pet_id", petID).
			Msg("Failed to dispatch interest notice")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("pet_id", petID).
		Msg("Interest sent to seller")

	respondJSON(w, http.StatusOK, map[string]string{"message": "Interest sent to seller"})
}
