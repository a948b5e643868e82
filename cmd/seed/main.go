// Command seed creates the bootstrap admin account, or resets its password
// when the account already exists. Credentials come from ADMIN_USERNAME,
// ADMIN_EMAIL and ADMIN_PASSWORD.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/observability"
	"github.com/quickfix/booking-service/internal/persistence"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	adminRepo := repository.NewAdminRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, adminRepo)

	admin, created, err := authService.SeedAdmin(ctx)
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	if created {
		logger.Info("admin created",
			zap.String("username", admin.Username),
			zap.String("email", admin.Email))
	} else {
		logger.Info("admin password reset",
			zap.String("username", admin.Username),
			zap.String("email", admin.Email))
	}
}
