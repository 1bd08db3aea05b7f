package batch

import (
	"context"
	"fmt"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/gateway"
	"loan-portal/internal/infrastructure/monitoring"
	"log/slog"
	"time"
)

// PortfolioSnapshotJob periodically summarizes the customer book. Storing the
// snapshot is optional; the gauges are always updated.
type PortfolioSnapshotJob struct {
	gw     gateway.Gateway
	repo   customer.SnapshotRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewPortfolioSnapshotJob accepts a nil repo when no database is configured.
func NewPortfolioSnapshotJob(gw gateway.Gateway, repo customer.SnapshotRepository, logger *slog.Logger) *PortfolioSnapshotJob {
	if gw == nil || logger == nil {
		panic("PortfolioSnapshotJob dependencies cannot be nil")
	}
	return &PortfolioSnapshotJob{
		gw:     gw,
		repo:   repo,
		logger: logger.With("job", "PortfolioSnapshot"),
		now:    time.Now,
	}
}

func (j *PortfolioSnapshotJob) Run(ctx context.Context) (err error) {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting portfolio snapshot job.")
	defer func() {
		monitoring.RecordSnapshotRun(err)
	}()

	customers, err := j.gw.ListCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	portfolio := customer.Summarize(customers)
	monitoring.RecordPortfolio(portfolio)

	summaryLog := j.logger.With(
		slog.Int("customers", portfolio.Count),
		slog.Float64("total_outstanding", portfolio.TotalOutstanding),
		slog.Float64("total_emi_due", portfolio.TotalEMIDue),
		slog.Float64("average_interest_rate", portfolio.AverageInterestRate),
	)

	if j.repo == nil {
		summaryLog.InfoContext(ctx, "Portfolio snapshot job finished, no repository configured.",
			slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	saved, err := j.repo.Save(ctx, customer.Snapshot{TakenAt: startTime.UTC(), Portfolio: portfolio})
	if err != nil {
		summaryLog.ErrorContext(ctx, "Failed to store portfolio snapshot.", slog.Any("error", err))
		return fmt.Errorf("failed to store portfolio snapshot: %w", err)
	}

	summaryLog.InfoContext(ctx, "Portfolio snapshot job finished successfully.",
		slog.Int64("snapshotID", saved.ID),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
