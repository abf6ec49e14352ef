package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func matchFilter(filter models.ReviewFilter, withRating bool) bson.M {
	query := bson.M{}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	if filter.ServiceID != "" {
		query["serviceId"] = filter.ServiceID
	}
	if withRating && filter.Rating != 0 {
		query["rating"] = filter.Rating
	}
	if filter.PublicOnly {
		query["isVerified"] = true
		query["isReported"] = false
	}
	return query
}

// List returns one page of reviews, newest first.
func (r *MongoReviewRepo) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := matchFilter(filter, true)
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting reviews: %w", err)
	}

	page, limit := models.NormalizePage(filter.Page, filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, total, nil
}

// Summary averages every matching rating regardless of the star filter, so
// a page of 5-star reviews still reports the overall score.
func (r *MongoReviewRepo) Summary(ctx context.Context, filter models.ReviewFilter) (models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: matchFilter(filter, false)}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Rating{}, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.Rating
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Rating{}, fmt.Errorf("error decoding review summary: %w", err)
	}
	if len(rows) == 0 {
		return models.Rating{}, nil
	}
	rows[0].Average = models.RoundRating(rows[0].Average)
	return rows[0], nil
}
