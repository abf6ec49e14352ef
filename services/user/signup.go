package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homeserve/models"
	"homeserve/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) validateRequest(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return validationErrorf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}
	return validationErrorf("invalid request")
}

// normalize trims the request and lowercases the email before validation.
func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

// newUser hashes the password and stores a fresh account with role.
func (s *DefaultUserService) newUser(ctx context.Context, req RegisterRequest, role models.Role) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a customer account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.normalize()
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	user, err := s.newUser(ctx, req, models.RoleUser)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("user registered", zap.String("userID", user.ID))
	return issueToken(user)
}

// CreateAccount lets staff open accounts. Managers may only create workers.
func (s *DefaultUserService) CreateAccount(ctx context.Context, actor models.Actor, req CreateAccountRequest) (*models.User, error) {
	req.normalize()
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, validationErrorf("unknown role %q", req.Role)
	}
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleManager:
		if req.Role != models.RoleWorker && req.Role != models.RoleProvider {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	user, err := s.newUser(ctx, req.RegisterRequest, req.Role)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("account created",
		zap.String("userID", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("createdBy", actor.ID))
	return user, nil
}
