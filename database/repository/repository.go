package repository

import (
	catalogRepo "homeserve/database/repository/catalog"
	providerRepo "homeserve/database/repository/provider"
	reviewRepo "homeserve/database/repository/review"
	schedulerRepo "homeserve/database/repository/scheduler"
	userRepo "homeserve/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the ProviderRepository interface and constructor.
type ProviderRepository = providerRepo.ProviderRepository

var NewMongoProviderRepo = providerRepo.NewMongoProviderRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the SchedulerRepository interface and constructor.
type SchedulerRepository = schedulerRepo.SchedulerRepository

var NewMongoSchedulerRepo = schedulerRepo.NewMongoSchedulerRepo

// Re-export the CatalogRepository interface and constructor.
type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo

// Re-export the ReviewRepository interface and constructor.
type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

// Repositories groups every Mongo-backed repository.
type Repositories struct {
	Users     UserRepository
	Providers ProviderRepository
	Bookings  SchedulerRepository
	Catalog   CatalogRepository
	Reviews   ReviewRepository
}

// NewRepositories wires all repositories against db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:     NewMongoUserRepository(db),
		Providers: NewMongoProviderRepo(db),
		Bookings:  NewMongoSchedulerRepo(db),
		Catalog:   NewMongoCatalogRepo(db),
		Reviews:   NewMongoReviewRepo(db),
	}
}
