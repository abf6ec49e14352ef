package booking

import (
	"context"
	"strings"
	"time"

	"homeserve/models"
	"homeserve/utils"

	"go.uber.org/zap"
)

// BookingPatch is an administrative edit. Nil fields are left untouched; a
// pointer to an empty string clears the text field. Status and price are
// never patched.
type BookingPatch struct {
	ScheduledAt         *time.Time      `json:"scheduledAt,omitempty"`
	Address             *models.Address `json:"address,omitempty"`
	SpecialInstructions *string         `json:"specialInstructions,omitempty"`
	ProviderNotes       *string         `json:"providerNotes,omitempty"`
	CustomerNotes       *string         `json:"customerNotes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BookingPatch) IsEmpty() bool {
	return p.ScheduledAt == nil && p.Address == nil && p.SpecialInstructions == nil &&
		p.ProviderNotes == nil && p.CustomerNotes == nil
}

func trimmed(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if err := checkLength(field, v, max); err != nil {
		return nil, err
	}
	return &v, nil
}

func requireStaff(actor models.Actor) error {
	if !actor.IsStaff() {
		return newError(ErrForbidden, "only admins and managers can do this")
	}
	return nil
}

// Update applies an administrative patch. Rescheduling re-checks the
// provider's availability, excluding the booking itself, under the provider lock.
func (s *DefaultBookingService) Update(ctx context.Context, actor models.Actor, bookingID string, patch BookingPatch) (*models.Booking, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	booking, err := s.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageError(err, "booking %s not found", bookingID)
	}
	if patch.IsEmpty() {
		return booking, nil
	}

	update := models.BookingFieldUpdate{UpdatedAt: s.now()}
	if update.SpecialInstructions, err = trimmed("specialInstructions", patch.SpecialInstructions, models.MaxSpecialInstructionsLength); err != nil {
		return nil, err
	}
	if update.ProviderNotes, err = trimmed("providerNotes", patch.ProviderNotes, models.MaxNotesLength); err != nil {
		return nil, err
	}
	if update.CustomerNotes, err = trimmed("customerNotes", patch.CustomerNotes, models.MaxNotesLength); err != nil {
		return nil, err
	}
	if patch.Address != nil {
		if err := s.validate.Struct(patch.Address); err != nil {
			return nil, validationError(err)
		}
		update.Address = patch.Address
	}

	if patch.ScheduledAt == nil {
		return s.applyFieldUpdate(ctx, booking.ID, update)
	}

	if !booking.Status.IsActive() {
		return nil, newError(ErrValidation, "only active bookings can be rescheduled, booking is %s", booking.Status)
	}
	unlock, err := s.Locker.Lock(ctx, booking.ProviderID)
	if err != nil {
		return nil, &BookingError{Kind: ErrStorage, Message: "provider schedule busy", Err: err}
	}
	defer unlock()

	start := patch.ScheduledAt.UTC()
	conflict, err := s.HasConflict(ctx, booking.ProviderID, start, booking.DurationMinutes, booking.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		s.countConflict()
		return nil, newError(ErrSchedulingConflict, "provider %s is already booked at %s", booking.ProviderID, start.Format(time.RFC3339))
	}
	end := start.Add(time.Duration(booking.DurationMinutes) * time.Minute)
	update.ScheduledAt = &start
	update.EndsAt = &end

	return s.applyFieldUpdate(ctx, booking.ID, update)
}

func (s *DefaultBookingService) applyFieldUpdate(ctx context.Context, bookingID string, update models.BookingFieldUpdate) (*models.Booking, error) {
	updated, err := s.Repo.UpdateBookingFields(ctx, bookingID, update)
	if err != nil {
		return nil, storageError(err, "failed to update booking %s", bookingID)
	}
	utils.GetLogger().Info("booking updated", zap.String("bookingID", bookingID))
	return updated, nil
}

// SetPaymentStatus records the payment state reported by the payment collaborator.
func (s *DefaultBookingService) SetPaymentStatus(ctx context.Context, actor models.Actor, bookingID string, status models.PaymentStatus) (*models.Booking, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, newError(ErrValidation, "unknown payment status %q", status)
	}
	updated, err := s.Repo.UpdatePaymentStatus(ctx, bookingID, status)
	if err != nil {
		return nil, storageError(err, "failed to update payment status of booking %s", bookingID)
	}
	return updated, nil
}

// Delete removes a booking record. Admin only.
func (s *DefaultBookingService) Delete(ctx context.Context, actor models.Actor, bookingID string) error {
	if actor.Role != models.RoleAdmin {
		return newError(ErrForbidden, "only admins can delete bookings")
	}
	if err := s.Repo.DeleteBooking(ctx, bookingID); err != nil {
		return storageError(err, "failed to delete booking %s", bookingID)
	}
	utils.GetLogger().Info("booking deleted", zap.String("bookingID", bookingID), zap.String("actorID", actor.ID))
	return nil
}
