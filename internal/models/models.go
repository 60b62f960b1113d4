package models

import "time"

// User represents a registered account. The password hash never serializes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	About        string    `json:"about"`
	CreatedAt    time.Time `json:"created_at"`
}

// SellerSummary is the public subset of a seller's profile attached to listings.
type SellerSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Pet represents a pet-for-sale listing owned by exactly one user.
// SellerID is fixed at creation and never changes.
type Pet struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Weight    float64        `json:"weight"`
	Price     float64        `json:"price"`
	About     string         `json:"about"`
	Image     string         `json:"image,omitempty"`
	SellerID  string         `json:"seller_id"`
	Seller    *SellerSummary `json:"seller,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// PetCategories is the closed set of accepted listing categories.
var PetCategories = []string{"dog", "cat", "bird", "fish", "other"}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, known := range PetCategories {
		if c == known {
			return true
		}
	}
	return false
}
