package main

import (
	"alcyxob/gym-tally/internal/api"
	"alcyxob/gym-tally/internal/config"
	"alcyxob/gym-tally/internal/repository"
	"alcyxob/gym-tally/internal/repository/mongo"
	"alcyxob/gym-tally/internal/repository/sqlite"
	"alcyxob/gym-tally/internal/service"
	"alcyxob/gym-tally/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// defaultAdminPassword matches the historical default operator login.
const defaultAdminPassword = "admin"

// repositories is one storage backend's set of repositories.
type repositories struct {
	plans        repository.TrainingPlanRepository
	categories   repository.WeightCategoryRepository
	athletes     repository.AthleteRepository
	sessions     repository.SessionRepository
	competitions repository.CompetitionRepository
	locker       repository.BookingLocker
	close        func()
}

func openSQLite(cfg config.DatabaseConfig) (*repositories, error) {
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Println("Applying database migrations...")
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return &repositories{
		plans:        sqlite.NewTrainingPlanRepository(store),
		categories:   sqlite.NewWeightCategoryRepository(store),
		athletes:     sqlite.NewAthleteRepository(store),
		sessions:     sqlite.NewSessionRepository(store),
		competitions: sqlite.NewCompetitionRepository(store),
		locker:       store,
		close: func() {
			log.Println("Closing SQLite database...")
			if err := store.Close(); err != nil {
				log.Printf("ERROR: Failed to close SQLite database: %v", err)
			}
		},
	}, nil
}

func openMongo(cfg config.DatabaseConfig) (*repositories, error) {
	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	appDB := dbClient.Database(cfg.Name)

	log.Println("Ensuring database indexes...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
		_ = mongo.DisconnectDB(dbClient)
		return nil, err
	}

	return &repositories{
		plans:        mongo.NewMongoTrainingPlanRepository(appDB),
		categories:   mongo.NewMongoWeightCategoryRepository(appDB),
		athletes:     mongo.NewMongoAthleteRepository(appDB),
		sessions:     mongo.NewMongoSessionRepository(appDB),
		competitions: mongo.NewMongoCompetitionRepository(appDB),
		locker:       mongo.NewBookingLocker(appDB, cfg.Transactions),
		close: func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		},
	}, nil
}

func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(cfg)
	case config.DriverMongo:
		return openMongo(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// adminCredentials falls back to a generated hash of the default password.
func adminCredentials(cfg config.AdminConfig) (service.AdminCredentials, error) {
	creds := service.AdminCredentials{Username: cfg.Username, PasswordHash: cfg.PasswordHash}
	if creds.PasswordHash != "" {
		return creds, nil
	}
	log.Printf("WARN: admin.password_hash is not set, using the default password for %q", creds.Username)
	hash, err := service.HashPassword(defaultAdminPassword)
	if err != nil {
		return creds, err
	}
	creds.PasswordHash = hash
	return creds, nil
}

// @title Gym Tally API
// @version 1.0
// @description Athlete bookings, competitions and billing for a single gym.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gym Tally Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database ---
	repos, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s database: %v", cfg.Database.Driver, err)
	}
	defer repos.close()
	log.Printf("Database connection established (%s).", cfg.Database.Driver)

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing file storage service...")
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: s3.bucket_name is not set, statement export disabled")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	admin, err := adminCredentials(cfg.Admin)
	if err != nil {
		log.Fatalf("FATAL: Could not hash default admin password: %v", err)
	}
	referenceService := service.NewReferenceService(repos.plans, repos.categories)
	billingService := service.NewBillingService(repos.athletes, repos.plans, repos.sessions, repos.competitions)
	services := api.Services{
		Auth:        service.NewAuthService(admin, cfg.JWT.Secret, cfg.JWT.Expiration),
		Reference:   referenceService,
		Dashboard:   service.NewDashboardService(repos.athletes, repos.sessions, repos.competitions),
		Athlete:     service.NewAthleteService(repos.athletes, repos.plans),
		Booking:     service.NewBookingService(repos.athletes, repos.plans, repos.sessions, repos.locker),
		Competition: service.NewCompetitionService(repos.athletes, repos.plans, repos.categories, repos.competitions),
		Billing:     billingService,
		Statement:   service.NewStatementService(billingService, fileStorage, cfg.S3.URLExpiry),
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = referenceService.Seed(seedCtx)
	cancelSeed()
	if err != nil {
		log.Fatalf("FATAL: Could not seed reference data: %v", err)
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// In-flight requests get 5 seconds to finish
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
