package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	review.CreatedAt, review.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &review, nil
}

// Update rewrites the rating, comment and moderation fields. Booking,
// reviewer, provider and service never change after creation.
func (r *MongoReviewRepo) Update(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	review.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"rating":        review.Rating,
		"comment":       review.Comment,
		"isVerified":    review.IsVerified,
		"isReported":    review.IsReported,
		"reportReason":  review.ReportReason,
		"adminResponse": review.AdminResponse,
		"updatedAt":     review.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": review.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", review.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review %s: %w", review.ID, models.ErrNotFound)
	}
	return nil
}

func (r *MongoReviewRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review %s: %w", id, models.ErrNotFound)
	}
	return nil
}
