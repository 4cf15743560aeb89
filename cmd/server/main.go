package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/hausledger/internal/adapter/http"
	"github.com/iho/hausledger/internal/adapter/http/handler"
	"github.com/iho/hausledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/hausledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/hausledger/internal/adapter/repository/redis"
	"github.com/iho/hausledger/internal/infrastructure/config"
	"github.com/iho/hausledger/internal/infrastructure/logger"
	"github.com/iho/hausledger/internal/infrastructure/metrics"
	"github.com/iho/hausledger/internal/infrastructure/postgres"
	"github.com/iho/hausledger/internal/infrastructure/redis"
	"github.com/iho/hausledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	postingRepo := postgresRepo.NewPostingRepository(pool)
	allocationRepo := postgresRepo.NewAllocationRepository(pool)
	unitRepo := postgresRepo.NewUnitRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient, appMetrics)
	balanceCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, txManager, idGen, appMetrics)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, postingRepo, idGen, appMetrics).WithCache(balanceCache)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, journalRepo, postingRepo).WithCache(balanceCache, cfg.BalanceCacheTTL)
	trialBalanceUC := usecase.NewTrialBalanceUseCase(accountRepo, ledgerUC)
	allocationUC := usecase.NewAllocationUseCase(txManager, journalRepo, postingRepo, allocationRepo, idGen, appMetrics).WithCache(balanceCache)
	unitUC := usecase.NewUnitUseCase(unitRepo, idGen)

	// Seed the default chart of accounts when asked
	if cfg.SeedChart {
		created, err := accountUC.SeedChart(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed chart of accounts")
		}
		log.Info().Int("created", created).Msg("seeded chart of accounts")
	}

	// Rate limiter, flushed hourly so idle clients do not pin memory
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.Reset()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		JournalHandler:    handler.NewJournalHandler(journalUC),
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC, trialBalanceUC),
		AllocationHandler: handler.NewAllocationHandler(allocationUC, unitUC),
		UnitHandler:       handler.NewUnitHandler(unitUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		Logger:            appLogger,
		Metrics:           appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
