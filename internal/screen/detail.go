package screen

import (
	"context"
	"fmt"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/gateway"
	"loan-portal/internal/pkg/apperrors"
)

type PaymentLine struct {
	payment.Payment
	AmountDisplay string `json:"amountDisplay"`
	Settled       bool   `json:"settled"`
}

type CustomerDetailView struct {
	Customer     customer.Customer `json:"customer"`
	Payments     []PaymentLine     `json:"payments"`
	PaymentCount int               `json:"paymentCount"`
}

// CustomerDetail resolves one account from the full customer list and then
// loads its payment history.
type CustomerDetail struct {
	*Controller[CustomerDetailView]
	gw            gateway.Gateway
	accountNumber string
}

func NewCustomerDetail(gw gateway.Gateway, accountNumber string) *CustomerDetail {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &CustomerDetail{
		Controller:    NewController[CustomerDetailView](),
		gw:            gw,
		accountNumber: accountNumber,
	}
}

func (d *CustomerDetail) AccountNumber() string {
	return d.accountNumber
}

func (d *CustomerDetail) Load(ctx context.Context) error {
	return d.run(ctx, false)
}

func (d *CustomerDetail) Refresh(ctx context.Context) error {
	return d.run(ctx, true)
}

func (d *CustomerDetail) run(ctx context.Context, refresh bool) error {
	return d.Run(ctx, Cycle[CustomerDetailView]{
		Refresh: refresh,
		Fetch:   d.fetch,
		Failure: errorNotification("Error", "Failed to load customer data"),
	})
}

func (d *CustomerDetail) fetch(ctx context.Context) (CustomerDetailView, error) {
	customers, err := d.gw.ListCustomers(ctx)
	if err != nil {
		return CustomerDetailView{}, err
	}

	found, ok := customer.FindByAccountNumber(customers, d.accountNumber)
	if !ok {
		return CustomerDetailView{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, d.accountNumber)
	}

	payments, err := d.gw.ListPayments(ctx, d.accountNumber)
	if err != nil {
		return CustomerDetailView{}, err
	}

	lines := make([]PaymentLine, len(payments))
	for i, p := range payments {
		lines[i] = PaymentLine{
			Payment:       p,
			AmountDisplay: customer.FormatRupees(p.Amount()),
			Settled:       p.Succeeded(),
		}
	}

	return CustomerDetailView{
		Customer:     found,
		Payments:     lines,
		PaymentCount: len(lines),
	}, nil
}
