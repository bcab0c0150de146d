package main

import (
	"context"
	"errors"
	"log"
	"os"

	"valor-assist/internal/models"
	"valor-assist/internal/repository"
	"valor-assist/pkg/auth"
	"valor-assist/pkg/config"
	"valor-assist/pkg/logger"
	"valor-assist/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Applying migrations...")
	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	store := repository.NewStore(db, appLogger)
	if err := seedAdmin(ctx, store, appLogger); err != nil {
		appLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// seedAdmin creates the first admin account from ADMIN_USERNAME, ADMIN_EMAIL
// and ADMIN_PASSWORD. An existing account with that username is left untouched.
func seedAdmin(ctx context.Context, store *repository.Store, logger *zap.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Info("ADMIN_USERNAME or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = username + "@localhost"
	}

	if existing, err := store.Users.GetByUsername(ctx, username); err == nil {
		logger.Info("Admin user already exists, skipping", zap.Int64("user_id", existing.ID))
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	return store.WithTx(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, admin); err != nil {
			return err
		}
		if err := tx.Users.UpdateVerification(ctx, admin.ID, true); err != nil {
			return err
		}
		logger.Info("Admin user created", zap.Int64("user_id", admin.ID), zap.String("username", username))
		return nil
	})
}
