package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindByProviderAndStatus returns the bookings of providerID whose status is
// one of statuses and whose [scheduledAt, endsAt) intersects [windowStart, windowEnd).
func (repo *MongoSchedulerRepo) FindByProviderAndStatus(
	ctx context.Context,
	providerID string,
	statuses []models.BookingStatus,
	windowStart, windowEnd time.Time,
) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId":  providerID,
		"status":      bson.M{"$in": statuses},
		"scheduledAt": bson.M{"$lt": windowEnd},
		"endsAt":      bson.M{"$gt": windowStart},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding provider bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding provider bookings: %w", err)
	}
	return bookings, nil
}

// CountByProviderAndStatus counts a provider's bookings in any of statuses.
func (repo *MongoSchedulerRepo) CountByProviderAndStatus(ctx context.Context, providerID string, statuses []models.BookingStatus) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.bookingColl.CountDocuments(ctx, bson.M{
		"providerId": providerID,
		"status":     bson.M{"$in": statuses},
	})
	if err != nil {
		return 0, fmt.Errorf("error counting provider bookings: %w", err)
	}
	return n, nil
}

// ListBookings returns one page of bookings matching filter, newest first.
func (repo *MongoSchedulerRepo) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customerId"] = filter.CustomerID
	}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := repo.bookingColl.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	page, limit := models.NormalizePage(filter.Page, filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := repo.bookingColl.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}
