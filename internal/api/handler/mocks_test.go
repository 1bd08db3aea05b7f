package handler

import (
	"context"
	"io"
	"log/slog"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/event"
	"loan-portal/internal/gateway"
	"loan-portal/internal/pkg/apperrors"

	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishCustomerCreated(ctx context.Context, e event.CustomerCreatedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishPaymentSubmitted(ctx context.Context, e event.PaymentSubmittedEvent) error {
	return m.Called(ctx, e).Error(0)
}

// unreachableGateway fails every call the way a down upstream would.
type unreachableGateway struct{}

func (unreachableGateway) ListCustomers(context.Context) ([]customer.Customer, error) {
	return nil, apperrors.WrapRequestFailure(gateway.OpListCustomers, io.ErrUnexpectedEOF)
}

func (unreachableGateway) CreateCustomer(context.Context, customer.CreateRequest) (customer.Customer, error) {
	return customer.Customer{}, apperrors.WrapRequestFailure(gateway.OpCreateCustomer, io.ErrUnexpectedEOF)
}

func (unreachableGateway) MakePayment(context.Context, string, float64) (gateway.PaymentResult, error) {
	return gateway.PaymentResult{}, apperrors.WrapRequestFailure(gateway.OpMakePayment, io.ErrUnexpectedEOF)
}

func (unreachableGateway) ListPayments(context.Context, string) ([]payment.Payment, error) {
	return nil, apperrors.WrapRequestFailure(gateway.OpListPayments, io.ErrUnexpectedEOF)
}

type MockSnapshotLister struct {
	mock.Mock
}

func (m *MockSnapshotLister) ListLatest(ctx context.Context, limit int) ([]customer.Snapshot, error) {
	args := m.Called(ctx, limit)
	var snapshots []customer.Snapshot
	if args.Get(0) != nil {
		snapshots = args.Get(0).([]customer.Snapshot)
	}
	return snapshots, args.Error(1)
}
