package user

import (
	"context"

	"homeserve/models"
	"homeserve/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// ListUsers lists accounts of one role, or every role when role is empty.
func (s *DefaultUserService) ListUsers(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	roles := []models.Role{models.RoleAdmin, models.RoleManager, models.RoleUser, models.RoleWorker, models.RoleProvider}
	if role != "" {
		if !role.IsValid() {
			return nil, validationErrorf("unknown role %q", role)
		}
		roles = []models.Role{role}
	}
	return s.Repo.ListByRole(ctx, roles, false)
}

func (s *DefaultUserService) SetActive(ctx context.Context, actor models.Actor, userID string, active bool) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	if actor.ID == userID && !active {
		return validationErrorf("you cannot deactivate your own account")
	}
	if err := s.Repo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *DefaultUserService) invalidate(ctx context.Context, userID string) {
	if s.Sessions != nil {
		s.Sessions.Invalidate(ctx, userID)
	}
}

// DeleteUser removes an account. Workers with active bookings are kept.
func (s *DefaultUserService) DeleteUser(ctx context.Context, actor models.Actor, userID string) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	target, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if (target.Role == models.RoleWorker || target.Role == models.RoleProvider) && s.Bookings != nil {
		open, err := s.Bookings.CountByProviderAndStatus(ctx, target.ID, models.ActiveStatuses)
		if err != nil {
			return err
		}
		if open > 0 {
			return ErrHasActiveBookings
		}
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	utils.GetLogger().Info("account deleted", zap.String("userID", userID), zap.String("deletedBy", actor.ID))
	return nil
}
