package userRepo

import (
	"context"
	"errors"

	"homeserve/models"
)

// ErrDuplicateEmail is returned when an email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines methods for account data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDAndRole retrieves a user whose role is one of roles.
	GetByIDAndRole(ctx context.Context, id string, roles []models.Role) (*models.User, error)
	// ListByRole retrieves users whose role is one of roles.
	ListByRole(ctx context.Context, roles []models.Role, activeOnly bool) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// SetActive enables or disables an account.
	SetActive(ctx context.Context, id string, active bool) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
