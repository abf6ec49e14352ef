package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingStats groups all bookings by status with their count and summed price.
func (repo *MongoSchedulerRepo) BookingStats(ctx context.Context) (*models.BookingStats, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$status",
			"count":       bson.M{"$sum": 1},
			"totalAmount": bson.M{"$sum": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := repo.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &models.BookingStats{ByStatus: []models.StatusStat{}}
	if err := cursor.All(ctx, &stats.ByStatus); err != nil {
		return nil, fmt.Errorf("error decoding aggregation result: %w", err)
	}
	for _, s := range stats.ByStatus {
		stats.Total += s.Count
	}
	return stats, nil
}
