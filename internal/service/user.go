package service

import (
	"errors" // Error classification
	"fmt"    // Error wrapping

	"expense_sharing/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// UserPatch carries the updatable fields of a user
type UserPatch struct {
	Name  string `json:"name" binding:"required"`        // Display name
	Email string `json:"email" binding:"required,email"` // Login identity
	Role  string `json:"role"`                           // Role: user or admin
}

// UserService owns identity, credentials and user lifecycle
type UserService struct {
	db *gorm.DB // Ledger store
}

// NewUserService creates a UserService on top of the given database
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register hashes the password and creates a new user with a zero balance.
// A duplicate email fails with a validation error.
func (s *UserService) Register(name, email, password string) (*domain.User, error) {
	// Hash the password before anything touches the store
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Name:     name,         // Display name
		Email:    email,        // Unique login identity
		Password: string(hash), // Bcrypt hash, never the plaintext
		Role:     "user",       // Default role
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique email constraint violations surface as validation errors
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	return &user, nil
}

// ValidateCredentials checks email and password, returning the user on
// success and ErrUnauthorized on any mismatch
func (s *UserService) ValidateCredentials(email, password string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		// Unknown email and bad password are indistinguishable to the caller
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// GetByEmail returns one user by email or ErrNotFound
func (s *UserService) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

// GetAll returns every user
func (s *UserService) GetAll() ([]domain.User, error) {
	var users []domain.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns one user or ErrNotFound
func (s *UserService) GetByID(id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// Update replaces the patchable fields of a user; an unknown id is ErrNotFound
func (s *UserService) Update(id string, patch *UserPatch) error {
	var user domain.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return err
	}
	user.Name = patch.Name   // Display name
	user.Email = patch.Email // Login identity
	if patch.Role != "" {
		user.Role = patch.Role // Role, only when provided
	}
	return s.db.Save(&user).Error
}

// Delete removes a user; an unknown id is ErrNotFound
func (s *UserService) Delete(id string) error {
	result := s.db.Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return nil
}

// LedgerEntries returns the user's settlement history, newest first
func (s *UserService) LedgerEntries(userID string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
