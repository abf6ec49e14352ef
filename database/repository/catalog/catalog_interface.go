package catalogRepo

import (
	"context"

	"homeserve/models"
)

// CatalogRepository stores bookable services and their add-ons.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, service *models.Service) error
	SetServiceActive(ctx context.Context, id string, active bool) error
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id string) error
	SetServiceRating(ctx context.Context, id string, rating models.Rating) error

	GetAddonByID(ctx context.Context, id string) (*models.Addon, error)
	ListAddons(ctx context.Context, activeOnly bool) ([]models.Addon, error)
	CreateAddon(ctx context.Context, addon *models.Addon) error
	SetAddonActive(ctx context.Context, id string, active bool) error
	UpdateAddon(ctx context.Context, addon *models.Addon) error
	DeleteAddon(ctx context.Context, id string) error
}
