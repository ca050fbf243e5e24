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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/fxledger/internal/adapter/http"
	"github.com/iho/fxledger/internal/adapter/http/handler"
	"github.com/iho/fxledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/fxledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fxledger/internal/adapter/repository/redis"
	"github.com/iho/fxledger/internal/infrastructure/config"
	"github.com/iho/fxledger/internal/infrastructure/eventpublisher"
	"github.com/iho/fxledger/internal/infrastructure/logger"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
	"github.com/iho/fxledger/internal/infrastructure/postgres"
	"github.com/iho/fxledger/internal/infrastructure/redis"
	"github.com/iho/fxledger/internal/usecase"
)

const limiterIdleTimeout = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("REDIS_URL is empty: idempotency, rate cache and event pub/sub are disabled")
	}

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	periodRepo := postgresRepo.NewPeriodRepository(pool)
	fxRateRepo := postgresRepo.NewFxRateRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	lineRepo := postgresRepo.NewJournalLineRepository(pool)
	capitalRepo := postgresRepo.NewCapitalMovementRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	var (
		rateCache        usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if redisClient != nil {
		rateCache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Use cases
	periodUC := usecase.NewPeriodUseCase(txManager, periodRepo, journalRepo, fxRateRepo, outboxRepo, auditRepo, idGen, log)
	fxRateUC := usecase.NewFxRateUseCase(txManager, fxRateRepo, periodRepo, outboxRepo, rateCache, cfg.RateCacheTTL, auditRepo, idGen, log)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, lineRepo, periodRepo, fxRateRepo, accountRepo, outboxRepo, auditRepo, idGen, cfg.BaseCurrency, log)
	postingUC := usecase.NewPostingUseCase(txManager, journalRepo, lineRepo, periodRepo, outboxRepo, auditRepo, idGen, m, log)
	reportUC := usecase.NewReportUseCase(reportRepo, periodRepo, m, log)
	capitalUC := usecase.NewCapitalUseCase(txManager, capitalRepo, journalRepo, fxRateRepo, auditRepo, idGen, cfg.BaseCurrency, log)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, auditRepo, idGen, log)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PeriodHandler:    handler.NewPeriodHandler(periodUC, fxRateUC, retrier),
		FxRateHandler:    handler.NewFxRateHandler(fxRateUC, retrier),
		JournalHandler:   handler.NewJournalHandler(journalUC, postingUC, retrier),
		ReportHandler:    handler.NewReportHandler(reportUC),
		CapitalHandler:   handler.NewCapitalHandler(capitalUC, retrier),
		AccountHandler:   handler.NewAccountHandler(accountUC, retrier),
		HealthHandler:    handler.NewHealthHandler(pool, redisPinger(redisClient)),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}),
		Logger:           log,
	})

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  newEventSink(redisClient, cfg.EventsChannel, log),
		Recorder:   m,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	go cleanupLimiters(ctx, rateLimiter)

	server := newServer(cfg, router)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
}

// newEventSink publishes to Redis when a client is configured and logs the
// events otherwise.
func newEventSink(client *goredis.Client, channel string, log zerolog.Logger) eventpublisher.Publisher {
	if client == nil {
		return eventpublisher.NewLogPublisher(log)
	}
	return eventpublisher.NewRedisPublisher(client, channel)
}

func redisPinger(client *goredis.Client) handler.Pinger {
	if client == nil {
		return nil
	}
	return handler.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterIdleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(limiterIdleTimeout)
		}
	}
}
