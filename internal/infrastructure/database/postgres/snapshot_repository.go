package postgres

import (
	"context"
	"fmt"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/pkg/apperrors"
	"log/slog"
)

const (
	createSnapshotTableSQL = `
	CREATE TABLE IF NOT EXISTS portfolio_snapshots (
		id BIGSERIAL PRIMARY KEY,
		taken_at TIMESTAMPTZ NOT NULL,
		customer_count INTEGER NOT NULL,
		total_outstanding NUMERIC(18, 2) NOT NULL,
		total_emi_due NUMERIC(18, 2) NOT NULL,
		average_interest_rate NUMERIC(9, 4) NOT NULL
	)`

	insertSnapshotSQL = `
	INSERT INTO portfolio_snapshots (taken_at, customer_count, total_outstanding, total_emi_due, average_interest_rate)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	listSnapshotsSQL = `
	SELECT id, taken_at, customer_count, total_outstanding, total_emi_due, average_interest_rate
	FROM portfolio_snapshots
	ORDER BY taken_at DESC, id DESC
	LIMIT $1`
)

const (
	DefaultSnapshotLimit = 20
	MaxSnapshotLimit     = 500
)

type SnapshotRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db DBPool, logger *slog.Logger) *SnapshotRepository {
	if db == nil {
		panic("DBPool cannot be nil for SnapshotRepository")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SnapshotRepository{
		db:     db,
		logger: logger.With("component", "SnapshotRepository"),
	}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSnapshotTableSQL); err != nil {
		r.logger.ErrorContext(ctx, "Failed to create portfolio_snapshots table", slog.Any("error", err))
		return fmt.Errorf("%w: failed to create portfolio_snapshots table: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *SnapshotRepository) Save(ctx context.Context, s customer.Snapshot) (customer.Snapshot, error) {
	p := s.Portfolio
	err := r.db.QueryRow(ctx, insertSnapshotSQL,
		s.TakenAt, p.Count, p.TotalOutstanding, p.TotalEMIDue, p.AverageInterestRate,
	).Scan(&s.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert portfolio snapshot", slog.Any("error", err))
		return customer.Snapshot{}, fmt.Errorf("%w: failed to insert portfolio snapshot: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Portfolio snapshot stored", slog.Int64("snapshotID", s.ID))
	return s, nil
}

// ListLatest returns the newest snapshots first. limit is clamped to
// [1, MaxSnapshotLimit]; zero or less means DefaultSnapshotLimit.
func (r *SnapshotRepository) ListLatest(ctx context.Context, limit int) ([]customer.Snapshot, error) {
	switch {
	case limit <= 0:
		limit = DefaultSnapshotLimit
	case limit > MaxSnapshotLimit:
		limit = MaxSnapshotLimit
	}

	rows, err := r.db.Query(ctx, listSnapshotsSQL, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query portfolio snapshots", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query portfolio snapshots: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	snapshots := make([]customer.Snapshot, 0)
	for rows.Next() {
		var s customer.Snapshot
		if err := rows.Scan(
			&s.ID,
			&s.TakenAt,
			&s.Portfolio.Count,
			&s.Portfolio.TotalOutstanding,
			&s.Portfolio.TotalEMIDue,
			&s.Portfolio.AverageInterestRate,
		); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan portfolio snapshot row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan portfolio snapshot row: %w", apperrors.ErrDatabase, err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating portfolio snapshot rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating portfolio snapshot rows: %w", apperrors.ErrDatabase, err)
	}

	return snapshots, nil
}
