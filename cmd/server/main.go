package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gosplit/internal/adapter/http"
	"github.com/iho/gosplit/internal/adapter/http/handler"
	"github.com/iho/gosplit/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gosplit/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gosplit/internal/adapter/repository/redis"
	"github.com/iho/gosplit/internal/infrastructure/config"
	"github.com/iho/gosplit/internal/infrastructure/eventpublisher"
	"github.com/iho/gosplit/internal/infrastructure/logger"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/infrastructure/postgres"
	"github.com/iho/gosplit/internal/infrastructure/redis"
	"github.com/iho/gosplit/internal/usecase"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gosplit",
	})
	zlog.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	eventRepo := postgresRepo.NewEventRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	userCache := redisRepo.NewUserCache(redisClient, cfg.UserCacheTTL)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	eventUC := usecase.NewEventUseCase(eventRepo, idGen, log)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(txManager, eventRepo, userRepo, expenseRepo, outboxRepo, idGen, retrier, m, log)
	paymentUC := usecase.NewPaymentUseCase(txManager, eventRepo, userRepo, paymentRepo, outboxRepo, idGen, retrier, m, log)
	settlementUC := usecase.NewSettlementUseCase(txManager, eventRepo, userRepo, expenseRepo, paymentRepo, userCache, m, log)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
		go rateLimiter.RunCleanup(ctx, limiterCleanupInterval, limiterMaxIdle)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EventHandler:      handler.NewEventHandler(eventUC),
		UserHandler:       handler.NewUserHandler(userUC),
		ExpenseHandler:    handler.NewExpenseHandler(expenseUC),
		PaymentHandler:    handler.NewPaymentHandler(paymentUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		Metrics:           m,
		Logger:            log,
	})

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Metrics:    m,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()

	server := newHTTPServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}
