package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/catalog"
	"github.com/example/fastbite/pkg/config"
	"github.com/example/fastbite/pkg/database"
	"github.com/example/fastbite/pkg/ordering"
	"github.com/example/fastbite/pkg/repository"
	"github.com/example/fastbite/server"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting FastBite API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	// MySQL
	db, err := database.Open(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if cfg.Seed.Enabled {
		if err := database.Seed(db); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// Redis, optional. The menu is served from MySQL when the cache is down.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	cache := repository.NewRedisRepository(&cfg.Redis)
	if err := cache.Ping(pingCtx); err != nil {
		logger.Warn("Failed to connect to Redis, continuing without menu cache", zap.Error(err))
		cache = nil
	}

	// MongoDB, optional. Audit logging is skipped when unavailable.
	audit, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Warn("Failed to connect to MongoDB, continuing without audit log", zap.Error(err))
		audit = nil
	}

	catalogStore := repository.NewCatalogStore(db)
	orderStore := repository.NewOrderStore(db)

	// A NumberGenerator serializes access to its own source only, so the
	// two generators must not share one rand.Rand.
	seed := time.Now().UnixNano()
	orderNumbers := ordering.NewNumberGenerator(ordering.OrderNumberPrefix, rand.New(rand.NewSource(seed)))
	invoiceNumbers := ordering.NewNumberGenerator(ordering.InvoiceNumberPrefix, rand.New(rand.NewSource(seed+1)))

	srv := server.NewServer(cfg, logger, server.Deps{
		Users:   repository.NewUserStore(db),
		Catalog: catalog.NewService(catalogStore, logger),
		Orders:  ordering.NewService(orderStore, catalogStore, orderNumbers, invoiceNumbers, logger),
		Tokens:  auth.NewTokenService(cfg.JWT),
		Google:  auth.NewGoogleVerifier(cfg.Google.ClientID),
		Cache:   cache,
		Audit:   audit,
	})
	srv.SetupRoutes()

	// Start server in goroutine
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			srvErr <- err
		}
	}()

	logger.Info("API started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-srvErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if cache != nil {
		cache.Close()
	}
	if audit != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		audit.Close(ctx)
		cancel()
	}

	logger.Info("API stopped")
}
