package memory

import (
	"context"
	"sort"
	"sync"

	"pet-market-backend/internal/models"
)

// PetRepo is an in-memory pet listing store. It resolves seller summaries
// from the user store, like the postgres repository's join.
type PetRepo struct {
	mu    sync.RWMutex
	byID  map[string]models.Pet
	users *UserRepo
}

// NewPetRepo creates an empty pet store backed by the given user store.
func NewPetRepo(users *UserRepo) *PetRepo {
	return &PetRepo{
		byID:  make(map[string]models.Pet),
		users: users,
	}
}

// Create inserts a listing.
func (r *PetRepo) Create(ctx context.Context, pet *models.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[pet.ID] = *pet
	return nil
}

// GetByID retrieves a listing with its seller summary.
func (r *PetRepo) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	r.mu.RLock()
	pet, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return nil, models.ErrNotFound
	}
	return r.withSeller(ctx, pet)
}

// GetAll retrieves every listing, newest first.
func (r *PetRepo) GetAll(ctx context.Context) ([]*models.Pet, error) {
	return r.list(ctx, func(models.Pet) bool { return true })
}

// GetBySeller retrieves the listings owned by one seller, newest first.
func (r *PetRepo) GetBySeller(ctx context.Context, sellerID string) ([]*models.Pet, error) {
	return r.list(ctx, func(p models.Pet) bool { return p.SellerID == sellerID })
}

// DeleteOwned removes a listing only if it still belongs to sellerID.
func (r *PetRepo) DeleteOwned(ctx context.Context, id, sellerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.byID[id]
	if !ok || pet.SellerID != sellerID {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *PetRepo) list(ctx context.Context, keep func(models.Pet) bool) ([]*models.Pet, error) {
	r.mu.RLock()
	matched := make([]models.Pet, 0)
	for _, pet := range r.byID {
		if keep(pet) {
			matched = append(matched, pet)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := make([]*models.Pet, 0, len(matched))
	for _, pet := range matched {
		resolved, err := r.withSeller(ctx, pet)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *PetRepo) withSeller(ctx context.Context, pet models.Pet) (*models.Pet, error) {
	seller, err := r.users.GetByID(ctx, pet.SellerID)
	if err == nil {
		pet.Seller = &models.SellerSummary{
			ID:      seller.ID,
			Name:    seller.Name,
			Email:   seller.Email,
			Phone:   seller.Phone,
			Address: seller.Address,
		}
	}
	return &pet, nil
}
