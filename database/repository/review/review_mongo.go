package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoReviewRepo implements ReviewRepository using the reviews collection.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		zap.L().Warn("failed to create review indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// one review per booking
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "reviewerId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, idx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
