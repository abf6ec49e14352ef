// Seed loads a sample catalog and accounts into the configured database.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"homeserve/config"
	"homeserve/database"
	"homeserve/database/repository"
	userRepo "homeserve/database/repository/user"
	"homeserve/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const samplePassword = "password123"

type sampleAccount struct {
	name  string
	email string
	phone string
	role  models.Role
}

var accounts = []sampleAccount{
	{"Site Admin", "admin@homeserve.test", "9000000001", models.RoleAdmin},
	{"Ops Manager", "manager@homeserve.test", "9000000002", models.RoleManager},
	{"Grace Hopper", "grace@homeserve.test", "9000000010", models.RoleUser},
	{"Alan Turing", "alan@homeserve.test", "9000000011", models.RoleUser},
	{"Ada Byron", "ada@homeserve.test", "9000000020", models.RoleWorker},
	{"Linus Pauling", "linus@homeserve.test", "9000000021", models.RoleWorker},
	{"Rosa Franklin", "rosa@homeserve.test", "9000000022", models.RoleWorker},
}

var services = []models.Service{
	{Name: "Professional Home Cleaning", Description: "Full home cleaning by a trained team", Price: 1500, Duration: 120},
	{Name: "Emergency Plumbing Repair", Description: "Leaks, blockages and fixture repairs", Price: 800, Duration: 60},
	{Name: "Electrical Installation & Repair", Description: "Wiring, fittings and appliance installs", Price: 1200, Duration: 90},
}

var addons = []models.Addon{
	{Name: "Deep Cleaning", Description: "Behind appliances and furniture", Price: 200, Duration: 45},
	{Name: "Window Cleaning", Description: "Inside and outside glass", Price: 150, Duration: 30},
	{Name: "Carpet Cleaning", Description: "Shampoo and dry", Price: 300, Duration: 60},
	{Name: "Kitchen Deep Clean", Description: "Degreasing cabinets, hob and chimney", Price: 250, Duration: 90},
}

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.Database()
	repos := repository.NewRepositories(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(samplePassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash sample password: %v", err)
	}

	var adminID string
	for _, a := range accounts {
		u := &models.User{
			ID:           uuid.New().String(),
			Name:         a.name,
			Email:        a.email,
			PasswordHash: string(hash),
			Phone:        a.phone,
			Role:         a.role,
			IsActive:     true,
		}
		err := repos.Users.Create(ctx, u)
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			existing, getErr := repos.Users.GetByEmail(ctx, a.email)
			if getErr != nil {
				log.Fatalf("Failed to load existing %s: %v", a.email, getErr)
			}
			u = existing
			log.Printf("Account %s already exists, skipping", a.email)
		} else if err != nil {
			log.Fatalf("Failed to create %s: %v", a.email, err)
		} else {
			log.Printf("Created %s account %s", a.role, a.email)
		}
		if a.role == models.RoleAdmin && adminID == "" {
			adminID = u.ID
		}
	}

	// The catalog is replaced on every run.
	if _, err := db.Collection("services").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear services: %v", err)
	}
	if _, err := db.Collection("addons").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear addons: %v", err)
	}

	for _, s := range services {
		s.ID = uuid.New().String()
		s.Active = true
		s.CreatedBy = adminID
		if err := repos.Catalog.CreateService(ctx, &s); err != nil {
			log.Fatalf("Failed to create service %s: %v", s.Name, err)
		}
	}
	for _, a := range addons {
		a.ID = uuid.New().String()
		a.Active = true
		if err := repos.Catalog.CreateAddon(ctx, &a); err != nil {
			log.Fatalf("Failed to create addon %s: %v", a.Name, err)
		}
	}

	log.Printf("Seeded %d accounts, %d services and %d addons (password %q)", len(accounts), len(services), len(addons), samplePassword)
	if err := database.CloseDB(ctx); err != nil {
		log.Printf("Failed to disconnect: %v", err)
	}
}
