package repository

import (
	"context"
	"errors"
	"fmt"

	"pet-market-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PetRepository handles database operations for pet listings
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

const petSelect = `
	SELECT p.id, p.name, p.category, p.weight, p.price, p.about, p.image,
	       p.seller_id, p.created_at,
	       u.id, u.name, u.email, u.phone, u.address
	FROM pets p
	JOIN users u ON u.id = p.seller_id
`

// Create inserts a new listing
func (r *PetRepository) Create(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, name, category, weight, price, about, image, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		pet.ID, pet.Name, pet.Category, pet.Weight, pet.Price,
		pet.About, pet.Image, pet.SellerID, pet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// GetByID retrieves a listing with its seller summary
func (r *PetRepository) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	row := r.db.QueryRow(ctx, petSelect+` WHERE p.id = $1`, id)
	pet, err := scanPet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return pet, nil
}

// GetAll retrieves every listing, newest first
func (r *PetRepository) GetAll(ctx context.Context) ([]*models.Pet, error) {
	return r.queryPets(ctx, petSelect+` ORDER BY p.created_at DESC`)
}

// GetBySeller retrieves the listings owned by one seller, newest first
func (r *PetRepository) GetBySeller(ctx context.Context, sellerID string) ([]*models.Pet, error) {
	return r.queryPets(ctx, petSelect+` WHERE p.seller_id = $1 ORDER BY p.created_at DESC`, sellerID)
}

// DeleteOwned removes a listing only if it still belongs to sellerID.
// The single conditional DELETE makes the ownership check and the removal
// atomic: of two concurrent owner deletes, exactly one observes true.
func (r *PetRepository) DeleteOwned(ctx context.Context, id, sellerID string) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM pets WHERE id = $1 AND seller_id = $2`, id, sellerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete pet: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *PetRepository) queryPets(ctx context.Context, query string, args ...any) ([]*models.Pet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, pet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets: %w", err)
	}

	return pets, nil
}

func scanPet(row pgx.Row) (*models.Pet, error) {
	var (
		pet    models.Pet
		seller models.SellerSummary
	)
	err := row.Scan(
		&pet.ID, &pet.Name, &pet.Category, &pet.Weight, &pet.Price,
		&pet.About, &pet.Image, &pet.SellerID, &pet.CreatedAt,
		&seller.ID, &seller.Name, &seller.Email, &seller.Phone, &seller.Address,
	)
	if err != nil {
		return nil, err
	}
	pet.Seller = &seller
	return &pet, nil
}
