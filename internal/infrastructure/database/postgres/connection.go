package postgres

import (
	"context"
	"errors"
	"fmt"
	"loan-portal/internal/config"
	"loan-portal/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxPoolConns      = 4
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = time.Minute
	pingTimeout       = 5 * time.Second
)

var errEmptyDatabaseURL = errors.New("database URL is empty in configuration")

type pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectionPool opens the snapshot store pool and pings it once. The pool
// stays small: the portal writes one row per scheduled run.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create connection pool: %w", apperrors.ErrDatabase, err)
	}
	if err := verifyConnection(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("PostgreSQL pool ready",
		"host", poolConfig.ConnConfig.Host,
		"db", poolConfig.ConnConfig.Database,
		"max_conns", poolConfig.MaxConns)
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDatabase, errEmptyDatabaseURL)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse database config from URL: %w", apperrors.ErrDatabase, err)
	}

	poolConfig.MaxConns = maxPoolConns
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	return poolConfig, nil
}

func verifyConnection(ctx context.Context, db pinger, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		logger.ErrorContext(ctx, "Database ping failed", slog.Any("error", err))
		return fmt.Errorf("%w: failed to ping database on connect: %w", apperrors.ErrDatabase, err)
	}
	return nil
}
