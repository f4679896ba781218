package main

import (
	"context"
	"log"
	"time"

	"gymkaana-be/internal/config"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/database"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Ids are derived from names so the seed can run more than once.
var seedNamespace = uuid.MustParse("6f1c8a52-0d7e-4c1b-9b1e-3f2a8d5c7e90")

type demoAccount struct {
	Name  string
	Email string
	Role  entity.Role
}

var accounts = []demoAccount{
	{Name: "Gymkaana Admin", Email: "admin@gymkaana.com", Role: entity.RoleAdmin},
	{Name: "John Owner", Email: "owner@gymkaana.com", Role: entity.RoleOwner},
	{Name: "Sarah User", Email: "user@gymkaana.com", Role: entity.RoleUser},
}

func accountId(email string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(email))
}

func demoGyms(ownerId uuid.UUID) []*entity.Gym {
	return []*entity.Gym{
		{
			OwnerId:          ownerId,
			Name:             "PowerHouse Fitness - Main Branch",
			Address:          "Koramangala, Bangalore",
			Location:         "Koramangala, Bangalore",
			Status:           entity.GymStatusActive,
			Description:      "Premium fitness facility with state-of-the-art equipment and experienced trainers.",
			Phone:            "+91 98765 43210",
			Email:            "powerhouse@gym.com",
			Timings:          "6:00 AM - 10:00 PM",
			BaseDayPassPrice: 199,
			Facilities:       []string{"Cardio Equipment", "Free WiFi", "Showers", "Personal Trainer", "Lockers", "Parking"},
		},
		{
			OwnerId:          ownerId,
			Name:             "Elite Sports Club - Indiranagar",
			Address:          "Indiranagar, Bangalore",
			Location:         "Indiranagar, Bangalore",
			Status:           entity.GymStatusActive,
			Description:      "Exclusive sports club with premium amenities and specialized training programs.",
			Phone:            "+91 98765 55555",
			Email:            "elite@sports.com",
			Timings:          "5:00 AM - 11:00 PM",
			BaseDayPassPrice: 299,
			Facilities:       []string{"AC", "Showers", "Swimming Pool", "Steam Room", "Cardio"},
		},
	}
}

func demoPlans(gym *entity.Gym) []*entity.Plan {
	return []*entity.Plan{
		{GymId: gym.Id, Name: "Day Pass", Price: gym.BaseDayPassPrice, Duration: "1 Day", Sessions: 1, Enabled: true},
		{GymId: gym.Id, Name: "Monthly Membership", Price: gym.BaseDayPassPrice * 12, Duration: "1 Month", Sessions: 30, Discount: 10, Enabled: true},
		{GymId: gym.Id, Name: "Quarterly Membership", Price: gym.BaseDayPassPrice * 30, Duration: "3 Months", Sessions: 90, Discount: 15, Enabled: true},
	}
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, "silent")
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	now := time.Now()

	color.Cyan("Seeding demo gyms and plans...")

	ownerId := accountId("owner@gymkaana.com")
	for _, gym := range demoGyms(ownerId) {
		gym.Id = uuid.NewSHA1(seedNamespace, []byte(gym.Name))
		gym.CreatedAt = now

		existing, err := uow.GymRepository().FindOne(ctx, specification.ByID{ID: gym.Id})
		if err != nil {
			color.Red("Error checking gym '%s': %v", gym.Name, err)
			continue
		}
		if existing != nil {
			color.Yellow("Gym '%s' already exists, skipping...", gym.Name)
			continue
		}

		if err := seedGym(ctx, uow, gym, now); err != nil {
			color.Red("Error creating gym '%s': %v", gym.Name, err)
			continue
		}
		color.Green("Created gym: %s", gym.Name)
	}

	color.Cyan("\n--- Demo Accounts ---")
	if cfg.Auth.JWTSecret == "" {
		color.Yellow("JWT_SECRET is not set, skipping token generation")
	}
	for _, acc := range accounts {
		id := accountId(acc.Email)
		color.White("%-6s %s (%s) id=%s", acc.Role, acc.Name, acc.Email, id)
		if cfg.Auth.JWTSecret == "" {
			continue
		}
		token, err := signToken(cfg.Auth.JWTSecret, id, acc.Role, now)
		if err != nil {
			color.Red("Error signing token for %s: %v", acc.Email, err)
			continue
		}
		color.HiBlack("       Bearer %s", token)
	}

	color.Green("\nSeeding completed!")
}

func seedGym(ctx context.Context, uow unitofwork.UnitOfWork, gym *entity.Gym, now time.Time) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.GymRepository().Create(ctx, gym); err != nil {
		return err
	}
	for _, plan := range demoPlans(gym) {
		plan.Id = uuid.NewSHA1(seedNamespace, []byte(gym.Name+"/"+plan.Name))
		plan.CreatedAt = now
		if err := uow.PlanRepository().Create(ctx, plan); err != nil {
			return err
		}
	}
	return uow.Commit()
}

func signToken(secret string, userId uuid.UUID, role entity.Role, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"role":    string(role),
		"exp":     now.Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}
