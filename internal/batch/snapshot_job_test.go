package batch_test

import (
	"context"
	"errors"
	"io"
	"loan-portal/internal/batch"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/gateway"
	"loan-portal/internal/infrastructure/monitoring"
	"loan-portal/internal/pkg/apperrors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot customer.Snapshot) (customer.Snapshot, error) {
	args := m.Called(ctx, snapshot)
	if saved, ok := args.Get(0).(customer.Snapshot); ok {
		return saved, args.Error(1)
	}
	return customer.Snapshot{}, args.Error(1)
}

func (m *MockSnapshotRepository) ListLatest(ctx context.Context, limit int) ([]customer.Snapshot, error) {
	args := m.Called(ctx, limit)
	if snapshots, ok := args.Get(0).([]customer.Snapshot); ok {
		return snapshots, args.Error(1)
	}
	return nil, args.Error(1)
}

type failingGateway struct {
	gateway.Gateway
}

func (failingGateway) ListCustomers(context.Context) ([]customer.Customer, error) {
	return nil, apperrors.WrapRequestFailure(gateway.OpListCustomers, errors.New("connection refused"))
}

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func bookOfThree() *gateway.MemoryGateway {
	return gateway.NewMemoryGateway([]customer.Customer{
		{ID: 1, AccountNumber: "ACC1", OutstandingBalance: "1000", EMIDueAmount: "100", InterestRate: "10"},
		{ID: 2, AccountNumber: "ACC2", OutstandingBalance: "2000", EMIDueAmount: "200", InterestRate: "12"},
		{ID: 3, AccountNumber: "ACC3", OutstandingBalance: "3000", EMIDueAmount: "300", InterestRate: "14"},
	}, nil)
}

func TestPortfolioSnapshotJobStoresSnapshot(t *testing.T) {
	repo := new(MockSnapshotRepository)
	want := customer.Portfolio{Count: 3, TotalOutstanding: 6000, TotalEMIDue: 600, AverageInterestRate: 12}

	repo.On("Save", mock.Anything, mock.MatchedBy(func(s customer.Snapshot) bool {
		return s.Portfolio == want && !s.TakenAt.IsZero()
	})).Return(customer.Snapshot{ID: 1, Portfolio: want}, nil).Once()

	job := batch.NewPortfolioSnapshotJob(bookOfThree(), repo, logger)
	err := job.Run(context.Background())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	assert.Equal(t, 6000.0, testutil.ToFloat64(monitoring.Portfolio.TotalOutstanding))
	assert.Equal(t, 3.0, testutil.ToFloat64(monitoring.Portfolio.Customers))
}

func TestPortfolioSnapshotJobWithoutRepository(t *testing.T) {
	job := batch.NewPortfolioSnapshotJob(bookOfThree(), nil, logger)
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 12.0, testutil.ToFloat64(monitoring.Portfolio.AverageInterestRate))
}

func TestPortfolioSnapshotJobGatewayFailure(t *testing.T) {
	repo := new(MockSnapshotRepository)

	before := testutil.ToFloat64(monitoring.Portfolio.SnapshotRunsTotal.WithLabelValues("error"))
	job := batch.NewPortfolioSnapshotJob(failingGateway{}, repo, logger)
	err := job.Run(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrRequestFailed)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, before+1, testutil.ToFloat64(monitoring.Portfolio.SnapshotRunsTotal.WithLabelValues("error")))
}

func TestPortfolioSnapshotJobRepositoryFailure(t *testing.T) {
	repo := new(MockSnapshotRepository)
	repo.On("Save", mock.Anything, mock.Anything).
		Return(nil, apperrors.WrapDatabaseError(errors.New("disk full"), "insert failed")).Once()

	job := batch.NewPortfolioSnapshotJob(bookOfThree(), repo, logger)
	err := job.Run(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestNewPortfolioSnapshotJobPanicsOnNilGateway(t *testing.T) {
	assert.Panics(t, func() {
		batch.NewPortfolioSnapshotJob(nil, nil, logger)
	})
}
