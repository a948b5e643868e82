package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/quickfix/booking-service/internal/api/http"
	"github.com/quickfix/booking-service/internal/api/http/handlers"
	"github.com/quickfix/booking-service/internal/auth"
	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/events"
	"github.com/quickfix/booking-service/internal/observability"
	"github.com/quickfix/booking-service/internal/persistence"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/service"
	"github.com/quickfix/booking-service/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	bookingRepo := repository.NewBookingRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	dispatcher := events.NewAsyncDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	bookingService := service.NewBookingService(bookingRepo, dispatcher)
	authService := service.NewAuthService(*cfg, adminRepo)
	adminService := service.NewAdminService(bookingRepo, dispatcher, redis.Client, logger)
	adminMiddleware := auth.NewAdminMiddleware(authService.TokenManager(), adminRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, *cfg)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Bookings:        handlers.NewBookingsHandler(bookingService),
		Admin:           handlers.NewAdminHandler(authService, adminService),
		Setup:           handlers.NewSetupHandler(authService),
		AdminMiddleware: adminMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	dispatcher.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
