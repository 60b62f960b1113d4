package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-market-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenLifetime = 7 * 24 * time.Hour

// UserStore is the persistence contract the user service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

// UserService handles registration, credentials and session tokens.
//
// Tokens are stateless: there is no revocation list, and a token stays
// valid until its expiry. Logout is a client-side credential discard.
type UserService struct {
	userRepo      UserStore
	jwtSecret     []byte
	tokenLifetime time.Duration
	bcryptCost    int
}

// NewUserService creates a new user service. A zero tokenLifetime falls
// back to 7 days, a zero bcryptCost to the bcrypt default.
func NewUserService(userRepo UserStore, jwtSecret string, tokenLifetime time.Duration, bcryptCost int) *UserService {
	if tokenLifetime == 0 {
		tokenLifetime = defaultTokenLifetime
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: tokenLifetime,
		bcryptCost:    bcryptCost,
	}
}

// RegisterInput carries the registration fields. Phone, address and about
// are optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	About    string
}

// Register creates a new account. The email is normalized to lower case and
// must be unused; the password is stored only as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", models.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		About:        in.About,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token. The error is the same
// whether the email is unknown or the password is wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// GenerateJWT issues a signed token bound to a user ID.
func (s *UserService) GenerateJWT(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateJWT verifies a token and returns the user ID it is bound to.
// A bad signature, malformed token or past expiry all fail the same way.
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", models.ErrUnauthenticated
	}

	return userID, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ProfileUpdate carries the mutable profile fields. An empty field means
// "no change", not "clear".
type ProfileUpdate struct {
	Name    string
	Phone   string
	Address string
	About   string
}

// UpdateProfile applies a partial profile update and returns the result.
// Email and password are not mutable this way.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.About != "" {
		user.About = in.About
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
