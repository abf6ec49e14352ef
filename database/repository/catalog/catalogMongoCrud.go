package catalogRepo

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

func findByID(ctx context.Context, coll *mongo.Collection, kind, id string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := coll.FindOne(ctx, bson.M{"id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", kind, id, err)
	}
	return nil
}

func list(ctx context.Context, coll *mongo.Collection, activeOnly bool, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func setActive(ctx context.Context, coll *mongo.Collection, kind, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now().UTC()}}
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

func (r *MongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := findByID(ctx, r.serviceColl, "service", id, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *MongoCatalogRepo) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	if err := list(ctx, r.serviceColl, activeOnly, &services); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	service.CreatedAt, service.UpdatedAt = now, now
	if _, err := r.serviceColl.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) SetServiceActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.serviceColl, "service", id, active)
}

func (r *MongoCatalogRepo) GetAddonByID(ctx context.Context, id string) (*models.Addon, error) {
	var addon models.Addon
	if err := findByID(ctx, r.addonColl, "addon", id, &addon); err != nil {
		return nil, err
	}
	return &addon, nil
}

func (r *MongoCatalogRepo) ListAddons(ctx context.Context, activeOnly bool) ([]models.Addon, error) {
	addons := []models.Addon{}
	if err := list(ctx, r.addonColl, activeOnly, &addons); err != nil {
		return nil, fmt.Errorf("failed to list addons: %w", err)
	}
	return addons, nil
}

func (r *MongoCatalogRepo) CreateAddon(ctx context.Context, addon *models.Addon) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	addon.CreatedAt, addon.UpdatedAt = now, now
	if _, err := r.addonColl.InsertOne(ctx, addon); err != nil {
		return fmt.Errorf("failed to create addon: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) SetAddonActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.addonColl, "addon", id, active)
}

func setFields(ctx context.Context, coll *mongo.Collection, kind, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

// UpdateService writes the editable fields only, leaving the rating and
// active flag to their own writers.
func (r *MongoCatalogRepo) UpdateService(ctx context.Context, service *models.Service) error {
	return setFields(ctx, r.serviceColl, "service", service.ID, bson.M{
		"name":        service.Name,
		"description": service.Description,
		"price":       service.Price,
		"duration":    service.Duration,
	})
}

func (r *MongoCatalogRepo) DeleteService(ctx context.Context, id string) error {
	return deleteByID(ctx, r.serviceColl, "service", id)
}

func (r *MongoCatalogRepo) SetServiceRating(ctx context.Context, id string, rating models.Rating) error {
	return setFields(ctx, r.serviceColl, "service", id, bson.M{"rating": rating})
}

func (r *MongoCatalogRepo) UpdateAddon(ctx context.Context, addon *models.Addon) error {
	return setFields(ctx, r.addonColl, "addon", addon.ID, bson.M{
		"name":        addon.Name,
		"description": addon.Description,
		"price":       addon.Price,
		"duration":    addon.Duration,
	})
}

func (r *MongoCatalogRepo) DeleteAddon(ctx context.Context, id string) error {
	return deleteByID(ctx, r.addonColl, "addon", id)
}
