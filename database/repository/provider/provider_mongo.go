package providerRepo

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

// MongoProviderRepo implements ProviderRepository over the users collection.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a ProviderRepository. Indexes are owned by the user repository.
func NewMongoProviderRepo(db *mongo.Database) ProviderRepository {
	return &MongoProviderRepo{coll: db.Collection("users")}
}

func providerFilter() bson.M {
	return bson.M{"role": bson.M{"$in": models.ProviderRoles}}
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := providerFilter()
	filter["id"] = id

	var provider models.User
	err := r.coll.FindOne(ctx, filter).Decode(&provider)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("provider %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) ListActive(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := providerFilter()
	filter["isActive"] = true
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.User{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}
