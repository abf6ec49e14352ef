package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBooking inserts a new booking document.
func (repo *MongoSchedulerRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by its ID.
func (repo *MongoSchedulerRepo) GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// DeleteBooking removes a booking record from the database.
func (repo *MongoSchedulerRepo) DeleteBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.bookingColl.DeleteOne(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", bookingID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	return nil
}
