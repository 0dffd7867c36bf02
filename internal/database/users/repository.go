// Package users provides database operations for user accounts.
package users

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrNameExists   = errors.New("name already taken")
	ErrAlreadyAdmin = errors.New("user is already an admin")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new user. The password must already be hashed by the caller.
func (r *Repository) Create(name, email, passwordHash string, role entities.UserRole) (*entities.User, error) {
	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return ErrEmailExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				if strings.Contains(err.Error(), "users.name") {
					return ErrNameExists
				}
				return ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation reports whether err came from a unique index, so a
// write racing past the existence check still maps to a conflict.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Promote grants the admin role to the user with the given email.
// Fails if the user is missing or already holds the role.
func (r *Repository) Promote(email string) (*entities.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.Role == entities.UserRoleAdmin {
		return nil, ErrAlreadyAdmin
	}
	if err := r.db.Model(user).Update("role", entities.UserRoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	user.Role = entities.UserRoleAdmin
	return user, nil
}

// Count returns the number of registered users.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
