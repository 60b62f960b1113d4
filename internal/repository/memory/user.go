// Package memory provides mutex-over-map repositories with the same
// contracts as the postgres ones. They back the unit tests and can run
// the server without a database.
package memory

import (
	"context"
	"strings"
	"sync"

	"pet-market-backend/internal/models"
)

// UserRepo is an in-memory user store.
type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]models.User
}

// NewUserRepo creates an empty user store.
func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]models.User)}
}

// Create inserts a user, enforcing case-insensitive email uniqueness.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, existing := range r.byID {
		if strings.ToLower(existing.Email) == email {
			return models.ErrDuplicateEmail
		}
	}
	r.byID[user.ID] = *user
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.byID {
		if strings.ToLower(user.Email) == email {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

// UpdateProfile stores the mutable profile fields of an existing user.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[user.ID]
	if !ok {
		return models.ErrNotFound
	}
	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.Address = user.Address
	existing.About = user.About
	r.byID[user.ID] = existing
	return nil
}

// Delete removes a user. Only tests use this, to simulate an account that
// vanished after its token was issued.
func (r *UserRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}
