package main

import (
	"context"
	"errors"
	"fmt"
	_ "loan-portal/docs"
	"loan-portal/internal/api"
	"loan-portal/internal/batch"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/event"
	"loan-portal/internal/gateway"
	"loan-portal/internal/infrastructure/database/postgres"
	"loan-portal/internal/infrastructure/logging"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultSnapshotSchedule = "*/15 * * * *"
	defaultRabbitMQPort     = 5672
)

// @title Loan Portal API
// @version 1.0
// @description Backend for the loan servicing portal: dashboard, customer list, add customer, payments and customer detail screens.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := initializeGateway(cfg, logger)

	dbPool, snapshots := initializeSnapshotStore(ctx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	redisClient := initializeRedisClient(cfg, logger)
	defer closeRedisClient(redisClient, logger)

	publisher, rabbitConn := initializePublisher(cfg, logger)
	defer closeRabbitMQ(rabbitConn, logger)

	snapshotJob := batch.NewPortfolioSnapshotJob(gw, snapshots, logger)
	cronScheduler := startBatchJobs(cfg, logger, snapshotJob)

	router := api.SetupRouter(ctx, api.Dependencies{
		Gateway:   gw,
		Publisher: publisher,
		Snapshots: snapshots,
		Redis:     redisClient,
	}, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, otelhttp.NewHandler(router, "loan-portal"), logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", cfg.Source())

	return cfg, logger
}

func initializeGateway(cfg *config.Config, logger *slog.Logger) gateway.Gateway {
	logger.Info("Initializing loan servicing gateway...", "backend", cfg.Gateway.Backend)
	gw, err := gateway.New(cfg.Gateway, logger)
	if err != nil {
		logger.Error("Failed to initialize gateway", "error", err)
		os.Exit(1)
	}
	return gw
}

// initializeSnapshotStore returns a nil pool and repository when no database
// is configured; snapshots are then computed but not persisted.
func initializeSnapshotStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, customer.SnapshotRepository) {
	if cfg.Database.URL == "" {
		logger.Info("Database URL not configured, portfolio snapshots will not be stored")
		return nil, nil
	}

	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewSnapshotRepository(dbPool, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to prepare snapshot schema", "error", err)
		dbPool.Close()
		os.Exit(1)
	}
	return dbPool, repo
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	if dbPool == nil {
		return
	}
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address not configured, skipping Redis client")
		return nil
	}

	logger.Info("Initializing Redis client...")
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

// initializePublisher never fails startup: without a reachable broker the
// portal runs with a no-op publisher.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, *amqp.Connection) {
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		logger.Info("RabbitMQ not configured, portal events are disabled", "reason", err)
		return event.NoopPublisher{}, nil
	}

	conn, err := connectRabbitMQ(uri, 5, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, portal events are disabled", slog.Any("error", err))
		return event.NoopPublisher{}, nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(event.WrapConnection(conn), cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up event publisher, portal events are disabled", slog.Any("error", err))
		_ = conn.Close()
		return event.NoopPublisher{}, nil
	}
	return publisher, conn
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", errors.New("RabbitMQ host is not configured")
	}

	uri := amqp.URI{
		Scheme:   "amqp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    "/",
	}
	if uri.Port == 0 {
		uri.Port = defaultRabbitMQPort
	}
	if uri.Username == "" || uri.Password == "" {
		uri.Username, uri.Password = "guest", "guest"
	}
	return uri.String(), nil
}

// connectRabbitMQ dials with a linearly growing pause between attempts.
func connectRabbitMQ(uri string, attempts int, logger *slog.Logger) (*amqp.Connection, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := amqp.Dial(uri)
		if err == nil {
			logger.Info("Connected to RabbitMQ", slog.Int("attempt", attempt))
			go watchRabbitMQ(conn, logger)
			return conn, nil
		}

		lastErr = err
		logger.Warn("RabbitMQ dial failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err))
		if attempt < attempts {
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}
	return nil, fmt.Errorf("RabbitMQ unreachable after %d attempts: %w", attempts, lastErr)
}

// watchRabbitMQ logs the first block or close notification of conn. A nil
// close error means the portal closed the connection itself.
func watchRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	blocked := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case b := <-blocked:
		logger.Warn("RabbitMQ connection blocked by broker", "reason", b.Reason)
	case e := <-closed:
		if e != nil {
			logger.Error("RabbitMQ connection lost", slog.Any("error", e))
		}
	}
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	if conn == nil || conn.IsClosed() {
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", "error", err)
	}
}

func startServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	// Receives nil after a clean Shutdown.
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()
	return srv, serveErr, signals
}

// handleShutdown blocks until a signal arrives or the server stops on its own,
// then stops the scheduler before draining HTTP connections.
func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, signals <-chan os.Signal, serveErr <-chan error, logger *slog.Logger) {
	select {
	case sig := <-signals:
		logger.Info("Shutdown requested", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
		logger.Info("HTTP server stopped before any signal")
	}

	select {
	case <-cronScheduler.Stop().Done():
	case <-time.After(15 * time.Second):
		logger.Warn("Timed out waiting for running batch jobs")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful HTTP shutdown failed, closing connections", "error", err)
		_ = srv.Close()
	}

	logger.Info("Shutdown complete")
}

type snapshotRunner interface {
	Run(ctx context.Context) error
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, job snapshotRunner) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.SnapshotSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultSnapshotSchedule
		logger.Warn("Snapshot schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := snapshotJobTimeout(cfg.Batch)

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PortfolioSnapshot")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Portfolio snapshot job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule portfolio snapshot job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled portfolio snapshot job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	return c
}

// snapshotJobTimeout reads the configured value as seconds.
func snapshotJobTimeout(cfg config.BatchConfig) time.Duration {
	if cfg.SnapshotTimeout <= 0 {
		return time.Minute
	}
	return cfg.SnapshotTimeout * time.Second
}
