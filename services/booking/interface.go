package booking

import (
	"context"
	"time"

	"homeserve/models"
)

// ServiceLookup resolves bookable services.
type ServiceLookup interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
}

// AddonLookup resolves add-ons priced into a booking.
type AddonLookup interface {
	GetAddonByID(ctx context.Context, id string) (*models.Addon, error)
}

// Catalog combines the service and add-on lookups.
type Catalog interface {
	ServiceLookup
	AddonLookup
}

// ProviderLookup resolves accounts that may be assigned bookings.
type ProviderLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListActive(ctx context.Context) ([]models.User, error)
}

// CustomerLookup resolves the customer a staff member books on behalf of.
type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// BookingService is the booking lifecycle exposed to the HTTP layer.
type BookingService interface {
	Create(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	Transition(ctx context.Context, actor models.Actor, bookingID string, input TransitionInput) (*models.Booking, error)
	HasConflict(ctx context.Context, providerID string, windowStart time.Time, durationMinutes int, excludeBookingID string) (bool, error)
	ComputeTotal(ctx context.Context, basePrice float64, selections []AddonSelection) (*PriceQuote, error)

	Get(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	ListForCustomer(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error)
	ListForProvider(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error)
	ListAll(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error)
	Stats(ctx context.Context, actor models.Actor) (*models.BookingStats, error)
	AvailableProviders(ctx context.Context, serviceID string, at time.Time) ([]models.User, error)

	Update(ctx context.Context, actor models.Actor, bookingID string, patch BookingPatch) (*models.Booking, error)
	SetPaymentStatus(ctx context.Context, actor models.Actor, bookingID string, status models.PaymentStatus) (*models.Booking, error)
	Delete(ctx context.Context, actor models.Actor, bookingID string) error
}
