package screen

import (
	"context"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/gateway"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

var _ gateway.Gateway = (*MockGateway)(nil)

func (_m *MockGateway) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockGateway) CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error) {
	ret := _m.Called(ctx, req)
	return ret.Get(0).(customer.Customer), ret.Error(1)
}

func (_m *MockGateway) MakePayment(ctx context.Context, accountNumber string, amount float64) (gateway.PaymentResult, error) {
	ret := _m.Called(ctx, accountNumber, amount)
	return ret.Get(0).(gateway.PaymentResult), ret.Error(1)
}

func (_m *MockGateway) ListPayments(ctx context.Context, accountNumber string) ([]payment.Payment, error) {
	ret := _m.Called(ctx, accountNumber)

	var r0 []payment.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]payment.Payment)
	}
	return r0, ret.Error(1)
}
