package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"pet-market-backend/internal/models"
	"pet-market-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PetStore is the persistence contract the pet service depends on.
type PetStore interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id string) (*models.Pet, error)
	GetAll(ctx context.Context) ([]*models.Pet, error)
	GetBySeller(ctx context.Context, sellerID string) ([]*models.Pet, error)
	DeleteOwned(ctx context.Context, id, sellerID string) (bool, error)
}

// PetService handles the listing lifecycle. Media storage is an injected
// capability, not ambient filesystem access.
type PetService struct {
	petRepo PetStore
	media   storage.MediaStore
}

// NewPetService creates a new pet service
func NewPetService(petRepo PetStore, media storage.MediaStore) *PetService {
	return &PetService{
		petRepo: petRepo,
		media:   media,
	}
}

// CreatePetInput carries the listing fields supplied by the client.
// The seller is never part of it; it always comes from the authenticated
// context.
type CreatePetInput struct {
	Name     string
	Category string
	Weight   float64
	Price    float64
	About    string
}

// Create validates the input, stores the optional image and persists the
// listing with sellerID stamped as the owner.
func (s *PetService) Create(ctx context.Context, sellerID string, in CreatePetInput, image io.Reader, imageName string) (*models.Pet, error) {
	if err := validatePet(in); err != nil {
		return nil, err
	}

	pet := &models.Pet{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Weight:    in.Weight,
		Price:     in.Price,
		About:     in.About,
		SellerID:  sellerID,
		CreatedAt: time.Now(),
	}

	if image != nil {
		ref, err := s.media.Save(ctx, imageName, image)
		if err != nil {
			return nil, fmt.Errorf("failed to store listing image: %w", err)
		}
		pet.Image = ref
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		if pet.Image != "" {
			if mErr := s.media.Delete(ctx, pet.Image); mErr != nil {
				log.Warn().Err(mErr).Str("image", pet.Image).Msg("Failed to clean up orphaned image")
			}
		}
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return pet, nil
}

// List returns every listing. Visibility is deliberately unscoped beyond
// authentication: every authenticated user sees all listings.
func (s *PetService) List(ctx context.Context) ([]*models.Pet, error) {
	return s.petRepo.GetAll(ctx)
}

// ListBySeller returns the listings owned by one user.
func (s *PetService) ListBySeller(ctx context.Context, sellerID string) ([]*models.Pet, error) {
	return s.petRepo.GetBySeller(ctx, sellerID)
}

// GetByID returns one listing or models.ErrNotFound.
func (s *PetService) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	return s.petRepo.GetByID(ctx, id)
}

// Delete removes a listing. Only the owner may delete; the ownership check
// gates the removal, and the final compare-and-delete keyed on (id, seller)
// means a concurrent second delete observes NotFound rather than success.
// The image is removed best-effort before the record.
func (s *PetService) Delete(ctx context.Context, id, requesterID string) error {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pet.SellerID != requesterID {
		return models.ErrForbidden
	}

	if pet.Image != "" {
		if err := s.media.Delete(ctx, pet.Image); err != nil {
			log.Warn().Err(err).Str("pet_id", id).Str("image", pet.Image).Msg("Failed to remove listing image")
		}
	}

	deleted, err := s.petRepo.DeleteOwned(ctx, id, requesterID)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	if !deleted {
		// Lost a race with a concurrent delete of the same listing.
		return models.ErrNotFound
	}

	return nil
}

func validatePet(in CreatePetInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if !models.ValidCategory(in.Category) {
		return fmt.Errorf("%w: category must be one of %v", models.ErrValidation, models.PetCategories)
	}
	if in.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", models.ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", models.ErrValidation)
	}
	if in.About == "" {
		return fmt.Errorf("%w: about is required", models.ErrValidation)
	}
	return nil
}
