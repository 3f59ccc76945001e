// seed inserts development sample data: an admin, a customer and ten vehicles.
// Idempotent: existing users (by email) and vehicles (by fixed id) are left alone.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dealership-backoffice/internal/config"
	"dealership-backoffice/internal/security"
	"dealership-backoffice/internal/store"
	userdomain "dealership-backoffice/internal/user/domain"
	vehicledomain "dealership-backoffice/internal/vehicle/domain"
)

// seedNamespace derives stable vehicle ids so reruns find the rows they created.
var seedNamespace = uuid.MustParse("6f1f8a52-3c0e-4c57-9d1e-5b8f0c2a7e11")

type seedUser struct {
	email, fullName, password string
	role                      userdomain.Role
}

var users = []seedUser{
	{"admin@dealership.com", "Admin User", "admin123", userdomain.RoleAdmin},
	{"customer@dealership.com", "Customer User", "customer123", userdomain.RoleCustomer},
}

type seedVehicle struct {
	make, model string
	year        int
	price       string
	color       string
	mileage     int
	description string
}

var vehicles = []seedVehicle{
	{"Toyota", "Camry", 2022, "25000.00", "Silver", 15000, "Well-maintained sedan with low mileage"},
	{"Honda", "CR-V", 2021, "28000.00", "Blue", 22000, "Reliable SUV with great fuel economy"},
	{"Ford", "Mustang", 2023, "35000.00", "Red", 5000, "Sporty coupe, low mileage"},
	{"Chevrolet", "Malibu", 2020, "18000.00", "White", 30000, "Reliable sedan, one owner"},
	{"Tesla", "Model 3", 2022, "42000.00", "Black", 12000, "Electric, autopilot included"},
	{"BMW", "X5", 2019, "39000.00", "Gray", 35000, "Luxury SUV, well maintained"},
	{"Audi", "A4", 2021, "32000.00", "Blue", 18000, "Premium sedan, great condition"},
	{"Hyundai", "Elantra", 2020, "16000.00", "Silver", 25000, "Fuel efficient, compact sedan"},
	{"Kia", "Sorento", 2018, "21000.00", "White", 40000, "Spacious SUV, family friendly"},
	{"Mercedes-Benz", "C-Class", 2022, "45000.00", "Black", 9000, "Luxury sedan, almost new"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	if cfg.IsProduction() {
		log.Fatal("seed: refusing to run with APP_ENV=production")
	}

	backend, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	hasher := security.NewHasher(cfg.BcryptCost)
	now := time.Now().UTC()

	for _, su := range users {
		existing, err := backend.Users.GetByEmail(ctx, su.email)
		if err != nil {
			log.Fatalf("seed check %s: %v", su.email, err)
		}
		if existing != nil {
			log.Printf("user %s exists, skipping", su.email)
			continue
		}
		hash, err := hasher.Hash([]byte(su.password))
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u := &userdomain.User{
			ID:           uuid.NewString(),
			Email:        su.email,
			FullName:     su.fullName,
			PasswordHash: hash,
			Role:         su.role,
			Status:       userdomain.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := backend.Users.Create(ctx, u); err != nil {
			log.Fatalf("create user %s: %v", su.email, err)
		}
		log.Printf("created %s %s", su.role, su.email)
	}

	created := 0
	for i, sv := range vehicles {
		id := uuid.NewSHA1(seedNamespace, []byte{byte(i + 1)}).String()
		existing, err := backend.Vehicles.GetByID(ctx, id)
		if err != nil {
			log.Fatalf("seed check vehicle %d: %v", i+1, err)
		}
		if existing != nil {
			continue
		}
		mileage := sv.mileage
		v := &vehicledomain.Vehicle{
			ID:          id,
			Make:        sv.make,
			Model:       sv.model,
			Year:        sv.year,
			Price:       decimal.RequireFromString(sv.price),
			Color:       sv.color,
			Mileage:     &mileage,
			Description: sv.description,
			IsAvailable: true,
			CreatedAt:   now,
		}
		if err := v.Validate(); err != nil {
			log.Fatalf("vehicle %d: %v", i+1, err)
		}
		if err := backend.Vehicles.Create(ctx, v); err != nil {
			log.Fatalf("create vehicle %d: %v", i+1, err)
		}
		created++
	}
	log.Printf("seed complete: %d vehicles created", created)
}
