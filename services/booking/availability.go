package booking

import (
	"context"
	"time"

	"homeserve/models"
)

// overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict reports whether the provider has an active booking overlapping
// [windowStart, windowStart+durationMinutes). excludeBookingID is skipped so a
// booking can be rescheduled against its own slot.
func (s *DefaultBookingService) HasConflict(
	ctx context.Context,
	providerID string,
	windowStart time.Time,
	durationMinutes int,
	excludeBookingID string,
) (bool, error) {
	if durationMinutes <= 0 {
		return false, newError(ErrValidation, "duration must be positive, got %d minutes", durationMinutes)
	}
	if durationMinutes > models.MaxDurationMinutes {
		return false, newError(ErrValidation, "duration must be at most %d minutes, got %d", models.MaxDurationMinutes, durationMinutes)
	}
	windowEnd := windowStart.Add(time.Duration(durationMinutes) * time.Minute)

	bookings, err := s.Repo.FindByProviderAndStatus(ctx, providerID, models.ActiveStatuses, windowStart, windowEnd)
	if err != nil {
		return false, &BookingError{Kind: ErrStorage, Message: "failed to load provider bookings", Err: err}
	}

	for i := range bookings {
		b := &bookings[i]
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		start, end := b.Window()
		if overlaps(start, end, windowStart, windowEnd) {
			return true, nil
		}
	}
	return false, nil
}
