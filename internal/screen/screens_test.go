package screen

import (
	"context"
	"errors"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/gateway"
	"loan-portal/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errGatewayDown = apperrors.WrapRequestFailure(gateway.OpListCustomers, errors.New("connection refused"))

func threeCustomers() []customer.Customer {
	return []customer.Customer{
		{ID: 1, AccountNumber: "ACC001", Name: "Ravi", OutstandingBalance: "1000", EMIDueAmount: "100", InterestRate: "10"},
		{ID: 2, AccountNumber: "ACC123", Name: "Anita", OutstandingBalance: "2000", EMIDueAmount: "200", InterestRate: "12"},
		{ID: 3, AccountNumber: "ACC003", Name: "Zoya", OutstandingBalance: "3000", EMIDueAmount: "300", InterestRate: "14"},
	}
}

func TestDashboardTotalsGatewayBalances(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(threeCustomers(), nil).Once()

	d := NewDashboard(gw)
	require.NoError(t, d.Load(context.Background()))

	s := d.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, 6000.0, s.Data.Portfolio.TotalOutstanding)
	assert.Equal(t, 600.0, s.Data.Portfolio.TotalEMIDue)
	assert.Equal(t, 12.0, s.Data.Portfolio.AverageInterestRate)
	assert.Equal(t, DashboardDisplay{
		TotalOutstanding:    "₹0.1L",
		TotalEMIDue:         "₹0.6K",
		AverageInterestRate: "12.0%",
		TotalCustomers:      "3",
	}, s.Data.Display)
	gw.AssertExpectations(t)
}

func TestDashboardRecentCustomersCapped(t *testing.T) {
	customers := make([]customer.Customer, 8)
	for i := range customers {
		customers[i] = customer.Customer{ID: int64(i + 1)}
	}

	view := NewDashboardView(customers)
	require.Len(t, view.RecentCustomers, 5)
	assert.Equal(t, int64(1), view.RecentCustomers[0].ID)
	assert.Equal(t, int64(5), view.RecentCustomers[4].ID)

	empty := NewDashboardView(nil)
	assert.NotNil(t, empty.RecentCustomers)
	assert.Empty(t, empty.RecentCustomers)
	assert.Equal(t, 0.0, empty.Portfolio.AverageInterestRate)
}

func TestDashboardFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(nil, errGatewayDown).Once()

	d := NewDashboard(gw)
	err := d.Refresh(context.Background())

	require.ErrorIs(t, err, apperrors.ErrRequestFailed)
	s := d.State()
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, &Notification{Kind: KindError, Title: "Error", Message: "Failed to load customers"}, s.Notification)
}

func TestCustomerListViewAppliesSearchAndSort(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(threeCustomers(), nil).Once()

	l := NewCustomerList(gw)
	require.NoError(t, l.Load(context.Background()))

	view := l.View()
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, "Anita", view.Customers[0].Name)
	assert.Equal(t, 6000.0, view.TotalOutstanding)

	l.SortBy(customer.SortByBalance)
	view = l.View()
	assert.Equal(t, customer.Ascending, view.SortOrder)
	assert.Equal(t, "Ravi", view.Customers[0].Name)

	l.SortBy(customer.SortByBalance)
	view = l.View()
	assert.Equal(t, customer.Descending, view.SortOrder)
	assert.Equal(t, "Zoya", view.Customers[0].Name)

	l.Search("acc00")
	view = l.View()
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 4000.0, view.TotalOutstanding)
	assert.Equal(t, "₹0.0L", view.TotalOutstandingDisplay)

	gw.AssertNumberOfCalls(t, "ListCustomers", 1)
}

func TestCustomerListFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(nil, errGatewayDown).Once()

	l := NewCustomerList(gw)
	require.Error(t, l.Load(context.Background()))

	assert.Equal(t, "Failed to load customers", l.State().Notification.Message)
	view := l.View()
	assert.NotNil(t, view.Customers)
	assert.Equal(t, 0, view.Count)
}

func validCreateForm() customer.CreateForm {
	return customer.CreateForm{
		CustomerName:       "Meera",
		IssueDate:          "2024-01-15",
		InterestRate:       "12.5",
		TenureMonths:       "24",
		EMIDueAmount:       "4500",
		OutstandingBalance: "100000",
	}
}

func TestAddCustomerSuccess(t *testing.T) {
	gw := new(MockGateway)
	gw.On("CreateCustomer", mock.Anything, customer.CreateRequest{
		CustomerName:       "Meera",
		IssueDate:          "2024-01-15",
		InterestRate:       12.5,
		TenureMonths:       24,
		EMIDueAmount:       4500,
		OutstandingBalance: 100000,
	}).Return(customer.Customer{ID: 9, AccountNumber: "ACC100009", Name: "Meera"}, nil).Once()

	a := NewAddCustomer(gw)
	require.NoError(t, a.Submit(context.Background(), validCreateForm()))

	s := a.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "ACC100009", s.Data.AccountNumber)
	require.NotNil(t, s.Notification)
	assert.Equal(t, KindSuccess, s.Notification.Kind)
	assert.Equal(t, "Account created successfully!\n\nAccount Number: ACC100009\nCustomer: Meera", s.Notification.Message)
	gw.AssertExpectations(t)
}

func TestAddCustomerValidationBlocksRequest(t *testing.T) {
	gw := new(MockGateway)
	form := validCreateForm()
	form.InterestRate = "0"

	a := NewAddCustomer(gw)
	err := a.Submit(context.Background(), form)

	require.ErrorIs(t, err, apperrors.ErrValidation)
	s := a.State()
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, &Notification{
		Kind:    KindError,
		Title:   "Validation Error",
		Message: "Please enter a valid interest rate",
		Field:   customer.FieldInterestRate,
	}, s.Notification)
	gw.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestAddCustomerGatewayFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("CreateCustomer", mock.Anything, mock.Anything).
		Return(customer.Customer{}, apperrors.WrapRequestFailure(gateway.OpCreateCustomer, errors.New("503"))).Once()

	a := NewAddCustomer(gw)
	require.Error(t, a.Submit(context.Background(), validCreateForm()))

	assert.Equal(t, "Failed to create customer. Please try again.", a.State().Notification.Message)
}

func TestPaymentsSuccess(t *testing.T) {
	gw := new(MockGateway)
	gw.On("MakePayment", mock.Anything, "ACC123", 100.5).
		Return(gateway.PaymentResult{NewBalance: 95000}, nil).Once()

	p := NewPayments(gw)
	require.NoError(t, p.Submit(context.Background(), "ACC123", "100.50"))

	s := p.State()
	assert.Equal(t, PaymentView{
		AccountNumber:     "ACC123",
		Amount:            100.5,
		NewBalance:        95000,
		NewBalanceDisplay: "₹95,000",
	}, s.Data)
	assert.Equal(t, "Payment Successful", s.Notification.Title)
	assert.Equal(t, "Payment processed successfully!\n\nNew Balance: ₹95,000", s.Notification.Message)
}

func TestPaymentsValidation(t *testing.T) {
	for _, amount := range []string{"-5", "0", ""} {
		gw := new(MockGateway)
		p := NewPayments(gw)

		err := p.Submit(context.Background(), "ACC123", amount)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, &Notification{
			Kind:    KindError,
			Title:   "Error",
			Message: "Please enter a valid amount",
			Field:   payment.FieldAmount,
		}, p.State().Notification)
		gw.AssertNotCalled(t, "MakePayment", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestPaymentsGatewayFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("MakePayment", mock.Anything, "ACC123", 50.0).
		Return(gateway.PaymentResult{}, apperrors.WrapRequestFailure(gateway.OpMakePayment, errors.New("timeout"))).Once()

	p := NewPayments(gw)
	require.Error(t, p.Submit(context.Background(), "ACC123", "50"))

	assert.Equal(t, &Notification{
		Kind:    KindError,
		Title:   "Payment Failed",
		Message: "Unable to process payment. Please try again.",
	}, p.State().Notification)
}

func TestCustomerDetailFound(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(threeCustomers(), nil).Once()
	gw.On("ListPayments", mock.Anything, "ACC123").Return([]payment.Payment{
		{ID: 1, AmountPaid: "4500", PaymentDate: "2024-02-15", Status: payment.StatusSuccess},
		{ID: 2, AmountPaid: "4500", PaymentDate: "2024-03-15", Status: payment.StatusPending},
	}, nil).Once()

	d := NewCustomerDetail(gw, "ACC123")
	require.NoError(t, d.Load(context.Background()))

	s := d.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "Anita", s.Data.Customer.Name)
	assert.Equal(t, 2, s.Data.PaymentCount)
	assert.True(t, s.Data.Payments[0].Settled)
	assert.False(t, s.Data.Payments[1].Settled)
	assert.Equal(t, "₹4,500", s.Data.Payments[0].AmountDisplay)
	gw.AssertExpectations(t)
}

func TestCustomerDetailNotFound(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(threeCustomers(), nil).Once()

	d := NewCustomerDetail(gw, "ACC999")
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, PhaseNotFound, d.State().Phase)
	assert.Nil(t, d.State().Notification)
	gw.AssertNotCalled(t, "ListPayments", mock.Anything, mock.Anything)
}

func TestCustomerDetailPaymentsFailure(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListCustomers", mock.Anything).Return(threeCustomers(), nil).Once()
	gw.On("ListPayments", mock.Anything, "ACC123").
		Return(nil, apperrors.WrapRequestFailure(gateway.OpListPayments, errors.New("reset"))).Once()

	d := NewCustomerDetail(gw, "ACC123")
	require.Error(t, d.Refresh(context.Background()))

	assert.Equal(t, PhaseFailed, d.State().Phase)
	assert.Equal(t, "Failed to load customer data", d.State().Notification.Message)
}

func TestScreensDoNotShareState(t *testing.T) {
	gw := gateway.NewMemoryGateway(threeCustomers(), nil)

	dash := NewDashboard(gw)
	list := NewCustomerList(gw)
	require.NoError(t, dash.Load(context.Background()))
	require.NoError(t, list.Load(context.Background()))

	_, err := gw.MakePayment(context.Background(), "ACC123", 500)
	require.NoError(t, err)

	assert.Equal(t, 6000.0, dash.State().Data.Portfolio.TotalOutstanding)
	require.NoError(t, list.Refresh(context.Background()))
	assert.Equal(t, 5500.0, list.View().TotalOutstanding)
}
