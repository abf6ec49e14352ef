package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateBookingStatus applies a transition only while the stored status still
// equals update.From, so two racing transitions cannot both land.
func (repo *MongoSchedulerRepo) UpdateBookingStatus(ctx context.Context, bookingID string, update models.BookingStatusUpdate) (*models.Booking, error) {
	set := bson.M{
		"status":    update.To,
		"updatedAt": update.UpdatedAt,
	}
	if update.ProviderNotes != nil {
		set["providerNotes"] = *update.ProviderNotes
	}
	if update.CustomerNotes != nil {
		set["customerNotes"] = *update.CustomerNotes
	}
	if update.CompletedAt != nil {
		set["completedAt"] = *update.CompletedAt
	}
	if update.CancellationTime != nil {
		set["cancellationReason"] = update.CancellationReason
		set["cancellationBy"] = update.CancellationBy
		set["cancellationTime"] = *update.CancellationTime
	}

	filter := bson.M{"id": bookingID, "status": update.From}
	booking, err := repo.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s is no longer %s: %w", bookingID, update.From, ErrStaleStatus)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	return booking, nil
}

// UpdateBookingFields patches the non-status fields of a booking.
func (repo *MongoSchedulerRepo) UpdateBookingFields(ctx context.Context, bookingID string, update models.BookingFieldUpdate) (*models.Booking, error) {
	set := bson.M{"updatedAt": update.UpdatedAt}
	unset := bson.M{}

	if update.ScheduledAt != nil {
		set["scheduledAt"] = *update.ScheduledAt
	}
	if update.EndsAt != nil {
		set["endsAt"] = *update.EndsAt
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	setOrUnset(set, unset, "specialInstructions", update.SpecialInstructions)
	setOrUnset(set, unset, "providerNotes", update.ProviderNotes)
	setOrUnset(set, unset, "customerNotes", update.CustomerNotes)

	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}

	booking, err := repo.findOneAndUpdate(ctx, bson.M{"id": bookingID}, doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return booking, nil
}

// UpdatePaymentStatus sets paymentStatus on a booking.
func (repo *MongoSchedulerRepo) UpdatePaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) (*models.Booking, error) {
	update := bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now().UTC()}}
	booking, err := repo.findOneAndUpdate(ctx, bson.M{"id": bookingID}, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s payment status: %w", bookingID, err)
	}
	return booking, nil
}

func (repo *MongoSchedulerRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	if err := repo.bookingColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// setOrUnset writes value under key, or removes the key when value is empty.
func setOrUnset(set, unset bson.M, key string, value *string) {
	if value == nil {
		return
	}
	if *value == "" {
		unset[key] = ""
		return
	}
	set[key] = *value
}
