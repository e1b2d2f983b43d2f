package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/internal/seed"
	"github.com/stayfinder/stayfinder-api/internal/service"
	"github.com/stayfinder/stayfinder-api/pkg/config"
	"github.com/stayfinder/stayfinder-api/pkg/database"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	hostRepo := postgres.NewHostRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	credentialService := service.NewCredentialService(userRepo, cfg)
	seeder := seed.New(userRepo, hostRepo, propertyRepo, bookingRepo, reviewRepo, credentialService)

	if err := seeder.Run(ctx, dir); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Seeding complete", "dir", dir)
}
