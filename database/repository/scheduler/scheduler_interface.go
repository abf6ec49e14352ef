package schedulerRepo

import (
	"context"
	"errors"
	"time"

	"homeserve/models"
)

// ErrStaleStatus is returned when a status update finds the booking no longer
// in the expected source status.
var ErrStaleStatus = errors.New("booking status changed concurrently")

// SchedulerRepository defines the booking persistence used by the scheduling core.
type SchedulerRepository interface {
	// CreateBooking persists a new booking record.
	CreateBooking(ctx context.Context, booking *models.Booking) error
	// GetBookingByID retrieves a booking by its ID.
	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// FindByProviderAndStatus returns a provider's bookings in any of statuses
	// that intersect [windowStart, windowEnd).
	FindByProviderAndStatus(ctx context.Context, providerID string, statuses []models.BookingStatus, windowStart, windowEnd time.Time) ([]models.Booking, error)
	// UpdateBookingStatus moves a booking from update.From to update.To.
	UpdateBookingStatus(ctx context.Context, bookingID string, update models.BookingStatusUpdate) (*models.Booking, error)
	// UpdateBookingFields applies an administrative patch.
	UpdateBookingFields(ctx context.Context, bookingID string, update models.BookingFieldUpdate) (*models.Booking, error)
	// UpdatePaymentStatus sets the payment state of a booking.
	UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) (*models.Booking, error)
	// ListBookings returns one page of bookings and the total match count.
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	// BookingStats aggregates counts and amounts per status.
	BookingStats(ctx context.Context) (*models.BookingStats, error)
	// CountByProviderAndStatus counts a provider's bookings in any of statuses.
	CountByProviderAndStatus(ctx context.Context, providerID string, statuses []models.BookingStatus) (int64, error)
	// DeleteBooking removes a booking record.
	DeleteBooking(ctx context.Context, bookingID string) error
}
