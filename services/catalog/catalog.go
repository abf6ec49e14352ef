package catalog

import (
	"context"
	"errors"
	"strings"

	catalogRepo "homeserve/database/repository/catalog"
	"homeserve/models"
	"homeserve/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden = errors.New("only admins and managers can change the catalog")
	ErrAdminOnly = errors.New("only admins can delete catalog entries")
)

// ValidationError describes rejected catalog input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// CatalogService exposes services and add-ons.
type CatalogService interface {
	ListServices(ctx context.Context, actor models.Actor) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, actor models.Actor, req ServiceRequest) (*models.Service, error)
	SetServiceActive(ctx context.Context, actor models.Actor, id string, active bool) error
	UpdateService(ctx context.Context, actor models.Actor, id string, patch ServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, actor models.Actor, id string) error

	ListAddons(ctx context.Context, actor models.Actor) ([]models.Addon, error)
	GetAddon(ctx context.Context, id string) (*models.Addon, error)
	CreateAddon(ctx context.Context, actor models.Actor, req AddonRequest) (*models.Addon, error)
	SetAddonActive(ctx context.Context, actor models.Actor, id string, active bool) error
	UpdateAddon(ctx context.Context, actor models.Actor, id string, patch AddonPatch) (*models.Addon, error)
	DeleteAddon(ctx context.Context, actor models.Actor, id string) error
}

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"required,gte=15,lte=1440"` // models.MaxDurationMinutes
}

type AddonRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"gte=0"`
}

// ServicePatch changes a service. Nil fields are left as they are.
type ServicePatch struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description" validate:"omitnil,max=1000"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Duration    *int     `json:"duration" validate:"omitnil,gte=15,lte=1440"`
}

// AddonPatch changes an add-on. Nil fields are left as they are.
type AddonPatch struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description" validate:"omitnil,max=500"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Duration    *int     `json:"duration" validate:"omitnil,gte=0"`
}

type DefaultCatalogService struct {
	Repo     catalogRepo.CatalogRepository
	validate *validator.Validate
}

func NewCatalogService(repo catalogRepo.CatalogRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, validate: validator.New()}
}

func (s *DefaultCatalogService) check(actor models.Actor, req interface{}) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	if req == nil {
		return nil
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return ValidationError{Message: strings.ToLower(verrs[0].Field()) + " is invalid (" + verrs[0].Tag() + ")"}
		}
		return ValidationError{Message: "invalid request"}
	}
	return nil
}

// ListServices returns active services, or all of them for staff.
func (s *DefaultCatalogService) ListServices(ctx context.Context, actor models.Actor) ([]models.Service, error) {
	return s.Repo.ListServices(ctx, !actor.IsStaff())
}

func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetServiceByID(ctx, id)
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, actor models.Actor, req ServiceRequest) (*models.Service, error) {
	if err := s.check(actor, req); err != nil {
		return nil, err
	}
	service := &models.Service{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Duration:    req.Duration,
		Active:      true,
		CreatedBy:   actor.ID,
	}
	if err := s.Repo.CreateService(ctx, service); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("service created", zap.String("serviceID", service.ID), zap.String("createdBy", actor.ID))
	return service, nil
}

func (s *DefaultCatalogService) SetServiceActive(ctx context.Context, actor models.Actor, id string, active bool) error {
	if err := s.check(actor, nil); err != nil {
		return err
	}
	return s.Repo.SetServiceActive(ctx, id, active)
}

// ListAddons returns active add-ons, or all of them for staff.
func (s *DefaultCatalogService) ListAddons(ctx context.Context, actor models.Actor) ([]models.Addon, error) {
	return s.Repo.ListAddons(ctx, !actor.IsStaff())
}

func (s *DefaultCatalogService) GetAddon(ctx context.Context, id string) (*models.Addon, error) {
	return s.Repo.GetAddonByID(ctx, id)
}

func (s *DefaultCatalogService) CreateAddon(ctx context.Context, actor models.Actor, req AddonRequest) (*models.Addon, error) {
	if err := s.check(actor, req); err != nil {
		return nil, err
	}
	addon := &models.Addon{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Duration:    req.Duration,
		Active:      true,
	}
	if err := s.Repo.CreateAddon(ctx, addon); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("addon created", zap.String("addonID", addon.ID))
	return addon, nil
}

// SetAddonActive toggles whether an add-on can be priced into new bookings.
func (s *DefaultCatalogService) SetAddonActive(ctx context.Context, actor models.Actor, id string, active bool) error {
	if err := s.check(actor, nil); err != nil {
		return err
	}
	return s.Repo.SetAddonActive(ctx, id, active)
}

func applyText(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// UpdateService applies patch to a service. Existing bookings keep the
// price and window they were created with.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, actor models.Actor, id string, patch ServicePatch) (*models.Service, error) {
	if err := s.check(actor, patch); err != nil {
		return nil, err
	}
	service, err := s.Repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyText(&service.Name, patch.Name)
	applyText(&service.Description, patch.Description)
	if service.Name == "" {
		return nil, ValidationError{Message: "name is invalid (required)"}
	}
	if patch.Price != nil {
		service.Price = *patch.Price
	}
	if patch.Duration != nil {
		service.Duration = *patch.Duration
	}
	if err := s.Repo.UpdateService(ctx, service); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("service updated", zap.String("serviceID", id), zap.String("updatedBy", actor.ID))
	return service, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, actor models.Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return ErrAdminOnly
	}
	if err := s.Repo.DeleteService(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("service deleted", zap.String("serviceID", id), zap.String("deletedBy", actor.ID))
	return nil
}

func (s *DefaultCatalogService) UpdateAddon(ctx context.Context, actor models.Actor, id string, patch AddonPatch) (*models.Addon, error) {
	if err := s.check(actor, patch); err != nil {
		return nil, err
	}
	addon, err := s.Repo.GetAddonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyText(&addon.Name, patch.Name)
	applyText(&addon.Description, patch.Description)
	if addon.Name == "" {
		return nil, ValidationError{Message: "name is invalid (required)"}
	}
	if patch.Price != nil {
		addon.Price = *patch.Price
	}
	if patch.Duration != nil {
		addon.Duration = *patch.Duration
	}
	if err := s.Repo.UpdateAddon(ctx, addon); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("addon updated", zap.String("addonID", id))
	return addon, nil
}

func (s *DefaultCatalogService) DeleteAddon(ctx context.Context, actor models.Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return ErrAdminOnly
	}
	if err := s.Repo.DeleteAddon(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("addon deleted", zap.String("addonID", id), zap.String("deletedBy", actor.ID))
	return nil
}
