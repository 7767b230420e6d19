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
	"github.com/junalkadhav/library-management/internal/cascade"
	"github.com/junalkadhav/library-management/internal/config"
	"github.com/junalkadhav/library-management/internal/events"
	"github.com/junalkadhav/library-management/internal/observability"
	"github.com/junalkadhav/library-management/internal/persistence"
	"github.com/junalkadhav/library-management/internal/repository"
	"github.com/junalkadhav/library-management/internal/service"
	"github.com/junalkadhav/library-management/internal/upstream"

	httptransport "github.com/junalkadhav/library-management/internal/api/http"
)

func main() {
	cfg, err := config.Load("book-service", "3001", "migrations/book")
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	bookRepo := repository.NewBookRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher(logger)
	bookService := service.NewBookService(bookRepo, dispatcher)

	callClient := upstream.NewClient(cfg.Upstream.Timeout(), logger, metrics)
	userClient := upstream.NewUserClient(cfg.Upstream.UserServiceURL, callClient)

	// Deleting a book must not wait for favourite cleanup. The deletion event
	// lands in a durable queue; the worker delivers it with retries, leaning
	// on the idempotence of the remote removal.
	var queue cascade.Queue
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, cascade queue is process-local", zap.Error(err))
		queue = cascade.NewMemoryQueue(0, logger)
	} else {
		queue = cascade.NewRedisQueue(redis.Client)
	}

	dispatcher.Subscribe(events.EventBookDeleted, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.BookDeletedPayload)
		if !ok {
			return nil
		}
		return queue.Enqueue(ctx, cascade.Intent{BookID: payload.BookID})
	})

	worker := cascade.NewWorker(queue, userClient, logger, metrics,
		cfg.Cascade.MaxAttempts, cfg.Cascade.InitialBackoff())
	go worker.Run(ctx)

	authMiddleware := auth.NewMiddleware(auth.NewDelegatedResolver(userClient))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterBookRoutes(app, httptransport.BookRouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			map[string]handlers.Pinger{"postgres": pg, "redis": redis}),
		Books: handlers.NewBooksHandler(bookService),
		Auth:  authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
