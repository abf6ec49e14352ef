package booking

import (
	"context"
	"time"

	"homeserve/models"
)

// DefaultAvailabilityWindow is used by AvailableProviders when no service is given.
const DefaultAvailabilityWindow = 120

// ListQuery selects one page of bookings. Status is optional.
type ListQuery struct {
	Status     models.BookingStatus `form:"status"`
	CustomerID string               `form:"customerId"`
	ProviderID string               `form:"providerId"`
	Page       int                  `form:"page"`
	Limit      int                  `form:"limit"`
}

// BookingPage is a page of bookings, newest first.
type BookingPage struct {
	Bookings   []models.Booking  `json:"bookings"`
	Pagination models.Pagination `json:"pagination"`
}

// Get returns a booking visible to actor.
func (s *DefaultBookingService) Get(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageError(err, "booking %s not found", bookingID)
	}
	switch {
	case actor.IsStaff():
	case actor.IsProvider() && booking.ProviderID == actor.ID:
	case actor.IsCustomer() && booking.CustomerID == actor.ID:
	default:
		return nil, newError(ErrForbidden, "booking %s is not visible to you", bookingID)
	}
	return booking, nil
}

func (s *DefaultBookingService) list(ctx context.Context, filter models.BookingFilter) (*BookingPage, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, newError(ErrValidation, "unknown status %q", filter.Status)
	}
	filter.Page, filter.Limit = models.NormalizePage(filter.Page, filter.Limit)

	bookings, total, err := s.Repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, &BookingError{Kind: ErrStorage, Message: "failed to list bookings", Err: err}
	}
	return &BookingPage{
		Bookings:   bookings,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// ListForCustomer lists the actor's own bookings as a customer.
func (s *DefaultBookingService) ListForCustomer(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error) {
	if !actor.IsCustomer() {
		return nil, newError(ErrForbidden, "only customers have customer bookings")
	}
	return s.list(ctx, models.BookingFilter{CustomerID: actor.ID, Status: query.Status, Page: query.Page, Limit: query.Limit})
}

// ListForProvider lists bookings assigned to the actor.
func (s *DefaultBookingService) ListForProvider(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error) {
	if !actor.IsProvider() {
		return nil, newError(ErrForbidden, "only workers have assigned bookings")
	}
	return s.list(ctx, models.BookingFilter{ProviderID: actor.ID, Status: query.Status, Page: query.Page, Limit: query.Limit})
}

// ListAll lists every booking, optionally narrowed by customer or provider.
func (s *DefaultBookingService) ListAll(ctx context.Context, actor models.Actor, query ListQuery) (*BookingPage, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.list(ctx, models.BookingFilter{
		CustomerID: query.CustomerID,
		ProviderID: query.ProviderID,
		Status:     query.Status,
		Page:       query.Page,
		Limit:      query.Limit,
	})
}

// Stats aggregates booking counts and amounts per status.
func (s *DefaultBookingService) Stats(ctx context.Context, actor models.Actor) (*models.BookingStats, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	stats, err := s.Repo.BookingStats(ctx)
	if err != nil {
		return nil, &BookingError{Kind: ErrStorage, Message: "failed to compute booking stats", Err: err}
	}
	return stats, nil
}

// AvailableProviders returns active providers free for the service's duration
// starting at at.
func (s *DefaultBookingService) AvailableProviders(ctx context.Context, serviceID string, at time.Time) ([]models.User, error) {
	if at.IsZero() {
		return nil, newError(ErrValidation, "a start time is required")
	}
	duration := DefaultAvailabilityWindow
	if serviceID != "" {
		service, err := s.Catalog.GetServiceByID(ctx, serviceID)
		if err != nil {
			return nil, storageError(err, "service %s not found", serviceID)
		}
		duration = service.Duration
	}

	providers, err := s.Providers.ListActive(ctx)
	if err != nil {
		return nil, &BookingError{Kind: ErrStorage, Message: "failed to list providers", Err: err}
	}

	available := make([]models.User, 0, len(providers))
	for _, p := range providers {
		conflict, err := s.HasConflict(ctx, p.ID, at, duration, "")
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, p)
		}
	}
	return available, nil
}
