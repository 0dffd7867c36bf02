package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Validation patterns
var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z0-9_. -]{2,100}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameInvalid        = errors.New("name must be 2-100 characters")
	ErrEmailInvalid       = errors.New("invalid email format")
)

// Service handles registration, authentication and role management.
type Service struct {
	users      *users.Repository
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, bcryptCost int) *Service {
	return &Service{
		users:      repo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account with the default role.
func (s *Service) Register(name, email, password string) (*entities.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if !namePattern.MatchString(name) {
		return nil, ErrNameInvalid
	}

	// RFC 5321 limits addresses to 254 characters
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	passwordHash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(name, email, passwordHash, entities.UserRoleUser)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate validates credentials and returns the user. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// Promote grants the admin role to the user with the given email.
func (s *Service) Promote(email string) (*entities.User, error) {
	return s.users.Promote(email)
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(id uint) (*entities.User, error) {
	return s.users.GetByID(id)
}
