package userRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M, what string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", what, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", what, err)
	}
	return &user, nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id}, id)
}

// GetByEmail retrieves a user by its email address, compared lower-cased.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email}, email)
}

// GetByIDAndRole retrieves a user by ID restricted to roles.
func (r *MongoUserRepo) GetByIDAndRole(ctx context.Context, id string, roles []models.Role) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id, "role": bson.M{"$in": roles}}, id)
}

// ListByRole retrieves users with any of roles, sorted by name.
func (r *MongoUserRepo) ListByRole(ctx context.Context, roles []models.Role, activeOnly bool) ([]models.User, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"role": bson.M{"$in": roles}}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
