package user

import (
	"context"

	userRepo "homeserve/database/repository/user"
	"homeserve/models"

	"github.com/go-playground/validator/v10"
)

// UserService manages accounts and issues access tokens.
type UserService interface {
	// Registration and authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)

	// User management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	CreateAccount(ctx context.Context, actor models.Actor, req CreateAccountRequest) (*models.User, error)
	ListUsers(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error)
	SetActive(ctx context.Context, actor models.Actor, userID string, active bool) error
	DeleteUser(ctx context.Context, actor models.Actor, userID string) error
}

// ActiveBookingCounter reports a provider's open bookings; used to block deleting busy workers.
type ActiveBookingCounter interface {
	CountByProviderAndStatus(ctx context.Context, providerID string, statuses []models.BookingStatus) (int64, error)
}

// SessionInvalidator drops cached credentials of an account.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Bookings ActiveBookingCounter
	// Sessions may be nil.
	Sessions SessionInvalidator

	validate *validator.Validate
}

func NewUserService(repo userRepo.UserRepository, bookings ActiveBookingCounter) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Bookings: bookings, validate: validator.New()}
}

// RegisterRequest is a customer self-registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// CreateAccountRequest is an account created by staff, typically a worker.
type CreateAccountRequest struct {
	RegisterRequest
	Role models.Role `json:"role" validate:"required"`
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  models.Role `json:"role"`
}
