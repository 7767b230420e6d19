package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/api/http/handlers"
	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/config"
	"github.com/junalkadhav/library-management/internal/observability"
	"github.com/junalkadhav/library-management/internal/persistence"
	"github.com/junalkadhav/library-management/internal/repository"
	"github.com/junalkadhav/library-management/internal/service"
	"github.com/junalkadhav/library-management/internal/upstream"

	httptransport "github.com/junalkadhav/library-management/internal/api/http"
)

func main() {
	cfg, err := config.Load("user-service", "3000", "migrations/user")
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	favouriteRepo := repository.NewFavouriteRepository(pool)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo)

	callClient := upstream.NewClient(cfg.Upstream.Timeout(), logger, metrics)
	bookClient := upstream.NewBookClient(cfg.Upstream.BookServiceURL, callClient)
	favouriteService := service.NewFavouriteService(favouriteRepo, bookClient, logger)

	authMiddleware := auth.NewMiddleware(auth.NewLocalResolver(authService.TokenManager()))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterUserRoutes(app, httptransport.UserRouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			map[string]handlers.Pinger{"postgres": pg}),
		Users:      handlers.NewUsersHandler(authService, userService),
		Favourites: handlers.NewFavouritesHandler(favouriteService),
		Auth:       authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
