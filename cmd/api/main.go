package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/backoffice-api/internal/api/http"
	"github.com/spec-kit/backoffice-api/internal/api/http/handlers"
	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/config"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/events"
	"github.com/spec-kit/backoffice-api/internal/observability"
	"github.com/spec-kit/backoffice-api/internal/persistence"
	"github.com/spec-kit/backoffice-api/internal/repository"
	"github.com/spec-kit/backoffice-api/internal/service"
	"github.com/spec-kit/backoffice-api/internal/worker"
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

	collections, dependencies, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Accounts: collections.Accounts,
		Tokens:   tokens,
		Events:   dispatcher,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	if cfg.Auth.BootstrapUsername != "" {
		created, err := authService.EnsureBootstrapAccount(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword)
		if err != nil {
			logger.Fatal("failed to create bootstrap account", zap.Error(err))
		}
		if created {
			logger.Info("bootstrap account created", zap.String("username", domain.NormalizeUsername(cfg.Auth.BootstrapUsername)))
		}
	}

	orders := service.NewResourceService[domain.Order]("order", collections.Orders, dispatcher)
	products := service.NewResourceService[domain.Product]("product", collections.Products, dispatcher)
	employees := service.NewResourceService[domain.Employee]("employee", collections.Employees, dispatcher)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Orders:         handlers.NewResourceHandler(orders),
		Products:       handlers.NewResourceHandler(products),
		Employees:      handlers.NewResourceHandler(employees),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		Accounts:       collections.Accounts,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore connects the configured document store backend.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Collections, map[string]handlers.Pinger, func()) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		return repository.NewRedisCollections(redis.Client, cfg.Redis.KeyPrefix),
			map[string]handlers.Pinger{"redis": redis},
			redis.Close
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryCollections(), map[string]handlers.Pinger{}, func() {}
	default:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return repository.NewPostgresCollections(pg.PoolHandle()),
			map[string]handlers.Pinger{"postgres": pg},
			pg.Close
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
