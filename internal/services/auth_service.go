package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a bad email or password. The two
	// cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailRegistered is returned when registering an existing email.
	ErrEmailRegistered = errors.New("email already registered")
)

// AuthService handles user registration and login. It returns stored user
// objects directly; there is no token scheme.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// The returned user carries an empty password.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s': %w", user.Username, ErrUsernameTaken)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s': %w", user.Email, ErrEmailRegistered)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	user.Password = ""
	return nil
}

// LoginUser authenticates a user by email and returns the stored user object
// with the password blanked.
func (s *AuthService) LoginUser(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}
