package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCatalogRepo implements CatalogRepository using the services and addons collections.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	addonColl   *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	repo := &MongoCatalogRepo{
		serviceColl: db.Collection("services"),
		addonColl:   db.Collection("addons"),
	}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		zap.L().Warn("failed to create catalog indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "name", Value: 1}}},
	}
	if _, err := r.serviceColl.Indexes().CreateMany(ctx, idx); err != nil {
		return fmt.Errorf("services: %w", err)
	}
	if _, err := r.addonColl.Indexes().CreateMany(ctx, idx); err != nil {
		return fmt.Errorf("addons: %w", err)
	}
	return nil
}
