package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"pet-market-backend/internal/models"
	"pet-market-backend/internal/repository/memory"
	"pet-market-backend/internal/services"
)

// fakeMedia records saves and deletes instead of touching any backend.
type fakeMedia struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeMedia) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}
	ref := fmt.Sprintf("/uploads/fake-%d.jpg", len(f.saved))
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeMedia) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func newTestPetService(t *testing.T) (*services.PetService, *services.UserService, *fakeMedia) {
	t.Helper()
	userRepo := memory.NewUserRepo()
	petRepo := memory.NewPetRepo(userRepo)
	media := &fakeMedia{}
	return services.NewPetService(petRepo, media),
		services.NewUserService(userRepo, testJWTSecret, 0, testBcryptCost),
		media
}

func validPetInput() services.CreatePetInput {
	return services.CreatePetInput{
		Name:     "Rex",
		Category: "dog",
		Weight:   12,
		Price:    50,
		About:    "Friendly and house-trained.",
	}
}

func TestPetService_Create_StampsSeller(t *testing.T) {
	pets, users, _ := newTestPetService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice@example.com")

	pet, err := pets.Create(ctx, alice.ID, validPetInput(), nil, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if pet.SellerID != alice.ID {
		t.Fatalf("expected seller %s, got %s", alice.ID, pet.SellerID)
	}
	if pet.ID == "" {
		t.Fatal("expected pet ID to be set")
	}

	got, err := pets.GetByID(ctx, pet.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Seller == nil || got.Seller.Email != "alice@example.com" {
		t.Fatalf("expected seller summary to be resolved, got %+v", got.Seller)
	}
}

func TestPetService_Create_Validation(t *testing.T) {
	pets, users, _ := newTestPetService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice@example.com")

	tests := []struct {
		name   string
		mutate func(*services.CreatePetInput)
	}{
		{"empty name", func(in *services.CreatePetInput) { in.Name = "" }},
		{"unknown category", func(in *services.CreatePetInput) { in.Category = "dragon" }},
		{"empty category", func(in *services.CreatePetInput) { in.Category = "" }},
		{"zero weight", func(in *services.CreatePetInput) { in.Weight = 0 }},
		{"negative weight", func(in *services.CreatePetInput) { in.Weight = -3 }},
		{"zero price", func(in *services.CreatePetInput) { in.Price = 0 }},
		{"negative price", func(in *services.CreatePetInput) { in.Price = -1 }},
		{"empty about", func(in *services.CreatePetInput) { in.About = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validPetInput()
			tc.mutate(&in)
			if _, err := pets.Create(ctx, alice.ID, in, nil, ""); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPetService_Create_WithImage(t *testing.T) {
	pets, users, media := newTestPetService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice@example.com")

	pet, err := pets.Create(ctx, alice.ID, validPetInput(), strings.NewReader("image-bytes"), "rex.jpg")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if pet.Image == "" {
		t.Fatal("expected image reference to be set")
	}
	if len(media.saved) != 1 || media.saved[0] != pet.Image {
		t.Fatalf("expected one saved image %q, got %v", pet.Image, media.saved)
	}
}

func TestPetService_Create_ImageStoreFailure(t *testing.T) {
	pets, users, media := newTestPetService(t)
	media.saveErr = errors.New("disk full")

	alice := registerTestUser(t, users, "alice@example.com")

	_, err := pets.Create(context.Background(), alice.ID, validPetInput(), strings.NewReader("x"), "rex.jpg")
	if err == nil {
		t.Fatal("expected error when media store fails")
	}
}

func TestPetService_Delete_OwnerOnly(t *testing.T) {
	pets, users, media := newTestPetService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice@example.com")
	bob := registerTestUser(t, users, "bob@example.com")

	pet, err := pets.Create(ctx, alice.ID, validPetInput(), strings.NewReader("image"), "rex.jpg")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A non-owner delete fails and leaves the listing retrievable.
	if err := pets.Delete(ctx, pet.ID, bob.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := pets.GetByID(ctx, pet.ID); err != nil {
		t.Fatalf("listing should survive a forbidden delete: %v", err)
	}
	if len(media.deleted) != 0 {
		t.Fatalf("media must not be touched on a forbidden delete, got %v", media.deleted)
	}

	// The owner delete succeeds and removes the image.
	if err := pets.Delete(ctx, pet.ID, alice.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := pets.GetByID(ctx, pet.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if len(media.deleted) != 1 || media.deleted[0] != pet.Image {
		t.Fatalf("expected image %q deleted, got %v", pet.Image, media.deleted)
	}

	// A second delete of the same listing observes NotFound.
	if err := pets.Delete(ctx, pet.ID, alice.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestPetService_Delete_Missing(t *testing.T) {
	pets, users, _ := newTestPetService(t)

	alice := registerTestUser(t, users, "alice@example.com")

	if err := pets.Delete(context.Background(), "no-such-pet", alice.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPetService_ListBySeller(t *testing.T) {
	pets, users, _ := newTestPetService(t)
	ctx := context.Background()

	alice := registerTestUser(t, users, "alice@example.com")
	bob := registerTestUser(t, users, "bob@example.com")

	if _, err := pets.Create(ctx, alice.ID, validPetInput(), nil, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	in := validPetInput()
	in.Name = "Whiskers"
	in.Category = "cat"
	if _, err := pets.Create(ctx, bob.ID, in, nil, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := pets.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 listings visible to everyone, got %d", len(all))
	}

	mine, err := pets.ListBySeller(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListBySeller: %v", err)
	}
	if len(mine) != 1 || mine[0].SellerID != alice.ID {
		t.Fatalf("expected exactly alice's listing, got %+v", mine)
	}
}
