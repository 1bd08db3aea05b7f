package screen

import (
	"context"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/gateway"
)

type PaymentView struct {
	AccountNumber     string  `json:"accountNumber"`
	Amount            float64 `json:"amount"`
	NewBalance        float64 `json:"newBalance"`
	NewBalanceDisplay string  `json:"newBalanceDisplay"`
}

type Payments struct {
	*Controller[PaymentView]
	gw gateway.Gateway
}

func NewPayments(gw gateway.Gateway) *Payments {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &Payments{Controller: NewController[PaymentView](), gw: gw}
}

func (p *Payments) Submit(ctx context.Context, accountNumber, amount string) error {
	req, err := payment.ValidatePaymentForm(accountNumber, amount)
	if err != nil {
		p.Reject(validationNotification("Error", err))
		return err
	}

	return p.Run(ctx, Cycle[PaymentView]{
		Fetch: func(ctx context.Context) (PaymentView, error) {
			result, err := p.gw.MakePayment(ctx, req.AccountNumber, req.Amount)
			if err != nil {
				return PaymentView{}, err
			}
			return PaymentView{
				AccountNumber:     req.AccountNumber,
				Amount:            req.Amount,
				NewBalance:        result.NewBalance,
				NewBalanceDisplay: customer.FormatRupees(result.NewBalance),
			}, nil
		},
		Failure: errorNotification("Payment Failed", "Unable to process payment. Please try again."),
		Success: func(v PaymentView) *Notification {
			return &Notification{
				Kind:    KindSuccess,
				Title:   "Payment Successful",
				Message: "Payment processed successfully!\n\nNew Balance: " + v.NewBalanceDisplay,
			}
		},
	})
}
