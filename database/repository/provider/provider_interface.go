package providerRepo

import (
	"context"

	"homeserve/models"
)

// ProviderRepository reads worker accounts that can be assigned bookings.
type ProviderRepository interface {
	// GetByID retrieves a provider by ID; non-provider accounts are reported as not found.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// ListActive returns every active provider sorted by name.
	ListActive(ctx context.Context) ([]models.User, error)
}
