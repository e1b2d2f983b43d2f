package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/stayfinder/stayfinder-api/internal/handlers"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/internal/service"
	"github.com/stayfinder/stayfinder-api/pkg/config"
	"github.com/stayfinder/stayfinder-api/pkg/database"
	"github.com/stayfinder/stayfinder-api/pkg/events"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
	mw "github.com/stayfinder/stayfinder-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Error("Failed to initialize Sentry", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The API stays up without a broker; events are then dropped.
	var bus events.Publisher
	if natsBus, err := events.NewNATSEventBus(cfg.NATS.URL); err != nil {
		logger.Warn("NATS unavailable, events disabled", "error", err)
		bus = events.Noop{}
	} else {
		bus = natsBus
	}
	defer bus.Close()

	userRepo := postgres.NewUserRepository(pool)
	hostRepo := postgres.NewHostRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	identityRepo := postgres.NewIdentityRepository(pool)

	credentialService := service.NewCredentialService(userRepo, cfg)
	bookingService := service.NewBookingService(bookingRepo, identityRepo, bus)
	cascade := service.NewCascadeCoordinator(userRepo, propertyRepo, bookingRepo, reviewRepo, bus)

	h := handlers.New(credentialService, bookingService, cascade,
		userRepo, hostRepo, propertyRepo, reviewRepo)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
