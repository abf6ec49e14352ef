package user

import (
	"context"
	"errors"
	"time"

	"homeserve/config"
	"homeserve/models"
	"homeserve/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func tokenTTL() time.Duration {
	hours := config.AppConfig.JWTTTLHours
	if hours <= 0 {
		hours = 720
	}
	return time.Duration(hours) * time.Hour
}

func issueToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), tokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:    user.ID,
		Token: token,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Login checks the password and returns a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !userRec.IsActive {
		return nil, ErrAccountDisabled
	}
	return issueToken(userRec)
}
