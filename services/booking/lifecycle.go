package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	schedulerRepo "homeserve/database/repository/scheduler"
	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingInput is a booking request. CustomerID is only honoured for staff.
type CreateBookingInput struct {
	CustomerID          string           `json:"customerId"`
	ServiceID           string           `json:"serviceId" validate:"required"`
	ProviderID          string           `json:"providerId" validate:"required"`
	ScheduledAt         time.Time        `json:"scheduledAt" validate:"required"`
	Address             models.Address   `json:"address"`
	Addons              []AddonSelection `json:"addons" validate:"dive"`
	SpecialInstructions string           `json:"specialInstructions" validate:"max=500"`
	PriceOverride       *float64         `json:"priceOverride,omitempty" validate:"omitempty,gte=0"`
}

// TransitionInput requests a status change. Notes land in providerNotes for
// staff and providers and in customerNotes for customers.
type TransitionInput struct {
	Status             models.BookingStatus `json:"status"`
	CancellationReason string               `json:"cancellationReason"`
	Notes              *string              `json:"notes,omitempty"`
}

// resolveCustomer decides whose booking is being created.
func (s *DefaultBookingService) resolveCustomer(ctx context.Context, actor models.Actor, requested string) (string, error) {
	switch {
	case actor.IsCustomer():
		if requested != "" && requested != actor.ID {
			return "", newError(ErrForbidden, "customers can only book for themselves")
		}
		return actor.ID, nil
	case actor.IsStaff():
		if requested == "" {
			return "", newError(ErrValidation, "customerId is required when booking on behalf of a customer")
		}
		if s.Customers != nil {
			account, err := s.Customers.GetByID(ctx, requested)
			if err != nil {
				return "", storageError(err, "customer %s not found", requested)
			}
			if account.Role != models.RoleUser || !account.IsActive {
				return "", newError(ErrNotFound, "customer %s not found", requested)
			}
		}
		return requested, nil
	default:
		return "", newError(ErrForbidden, "role %q cannot create bookings", actor.Role)
	}
}

// Create validates, checks availability and prices a booking, then stores it
// as pending. The availability check and the insert run under the
// provider's lock.
func (s *DefaultBookingService) Create(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	customerID, err := s.resolveCustomer(ctx, actor, input.CustomerID)
	if err != nil {
		return nil, err
	}

	service, err := s.Catalog.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		return nil, storageError(err, "service %s not found", input.ServiceID)
	}
	if !service.Active {
		return nil, newError(ErrNotFound, "service %s is not available", input.ServiceID)
	}

	provider, err := s.Providers.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, storageError(err, "provider %s not found", input.ProviderID)
	}
	if !provider.IsActive {
		return nil, newError(ErrNotFound, "provider %s is not available", input.ProviderID)
	}

	unlock, err := s.Locker.Lock(ctx, provider.ID)
	if err != nil {
		return nil, &BookingError{Kind: ErrStorage, Message: "provider schedule busy", Err: err}
	}
	defer unlock()

	conflict, err := s.HasConflict(ctx, provider.ID, input.ScheduledAt, service.Duration, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		s.countConflict()
		return nil, newError(ErrSchedulingConflict, "provider %s is already booked at %s", provider.ID, input.ScheduledAt.Format(time.RFC3339))
	}

	basePrice := service.Price
	if input.PriceOverride != nil {
		basePrice = *input.PriceOverride
	}
	quote, err := s.ComputeTotal(ctx, basePrice, input.Addons)
	if err != nil {
		return nil, err
	}

	now := s.now()
	scheduledAt := input.ScheduledAt.UTC()
	booking := &models.Booking{
		ID:                  uuid.New().String(),
		ServiceID:           service.ID,
		CustomerID:          customerID,
		ProviderID:          provider.ID,
		ScheduledAt:         scheduledAt,
		DurationMinutes:     service.Duration,
		EndsAt:              scheduledAt.Add(time.Duration(service.Duration) * time.Minute),
		Status:              models.StatusPending,
		Addons:              quote.Lines,
		Price:               quote.Total,
		PaymentStatus:       models.PaymentPending,
		Address:             input.Address,
		SpecialInstructions: strings.TrimSpace(input.SpecialInstructions),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Repo.CreateBooking(ctx, booking); err != nil {
		logger.Error("failed to persist booking", zap.String("providerID", provider.ID), zap.Error(err))
		return nil, &BookingError{Kind: ErrStorage, Message: "failed to save booking", Err: err}
	}

	s.countCreated()
	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("customerID", customerID),
		zap.String("providerID", provider.ID),
		zap.Float64("price", booking.Price))
	return booking, nil
}

// authorizeTransition returns who is cancelling should the target be cancelled.
func authorizeTransition(actor models.Actor, booking *models.Booking, target models.BookingStatus) (models.CancellationBy, error) {
	switch {
	case actor.IsStaff():
		return models.CancelledByAdmin, nil
	case actor.IsProvider():
		if booking.ProviderID != actor.ID {
			return "", newError(ErrForbidden, "booking %s is not assigned to you", booking.ID)
		}
		return models.CancelledByProvider, nil
	case actor.IsCustomer():
		if booking.CustomerID != actor.ID {
			return "", newError(ErrForbidden, "booking %s does not belong to you", booking.ID)
		}
		if target != models.StatusCancelled {
			return "", newError(ErrForbidden, "customers can only cancel bookings")
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusAccepted {
			return "", newError(ErrForbidden, "bookings can only be cancelled by the customer while pending or accepted")
		}
		return models.CancelledByUser, nil
	default:
		return "", newError(ErrForbidden, "role %q cannot change bookings", actor.Role)
	}
}

// Transition moves a booking to input.Status. Terminal bookings are refused
// before authorization and before anything is written.
func (s *DefaultBookingService) Transition(ctx context.Context, actor models.Actor, bookingID string, input TransitionInput) (*models.Booking, error) {
	booking, err := s.Repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, storageError(err, "booking %s not found", bookingID)
	}

	target := input.Status
	if !target.IsValid() {
		return nil, newError(ErrValidation, "unknown status %q", target)
	}
	if booking.Status.IsTerminal() {
		return nil, newError(ErrInvalidTransition, "booking %s is already %s", booking.ID, booking.Status)
	}

	by, err := authorizeTransition(actor, booking, target)
	if err != nil {
		return nil, err
	}
	if !CanTransition(booking.Status, target) {
		return nil, newError(ErrInvalidTransition, "cannot move booking from %s to %s", booking.Status, target)
	}

	now := s.now()
	update := models.BookingStatusUpdate{From: booking.Status, To: target, UpdatedAt: now}

	switch target {
	case models.StatusCompleted:
		update.CompletedAt = &now
	case models.StatusCancelled:
		reason := strings.TrimSpace(input.CancellationReason)
		if reason == "" {
			return nil, newError(ErrValidation, "cancellationReason is required to cancel a booking")
		}
		if err := checkLength("cancellationReason", reason, models.MaxCancellationReasonLength); err != nil {
			return nil, err
		}
		update.CancellationReason = reason
		update.CancellationBy = by
		update.CancellationTime = &now
	}

	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		if err := checkLength("notes", notes, models.MaxNotesLength); err != nil {
			return nil, err
		}
		if actor.IsCustomer() {
			update.CustomerNotes = &notes
		} else {
			update.ProviderNotes = &notes
		}
	}

	updated, err := s.Repo.UpdateBookingStatus(ctx, booking.ID, update)
	if err != nil {
		if errors.Is(err, schedulerRepo.ErrStaleStatus) {
			return nil, &BookingError{Kind: ErrInvalidTransition, Message: "booking status changed, reload and retry", Err: err}
		}
		return nil, storageError(err, "failed to update booking %s", booking.ID)
	}

	s.countTransition(string(update.From), string(target))
	utils.GetLogger().Info("booking status changed",
		zap.String("bookingID", booking.ID),
		zap.String("from", string(update.From)),
		zap.String("to", string(target)),
		zap.String("actorID", actor.ID),
		zap.String("actorRole", string(actor.Role)))
	return updated, nil
}
