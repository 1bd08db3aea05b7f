package payment

import (
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/pkg/apperrors"
	"strings"
)

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
)

const (
	FieldAccountNumber = "account_number"
	FieldAmount        = "amount"
)

// Payment is one entry of an account's payment history as returned by the gateway.
type Payment struct {
	ID          int64  `json:"payment_id"`
	AmountPaid  string `json:"amount_paid"`
	PaymentDate string `json:"payment_date"`
	Status      Status `json:"status"`
}

func (p Payment) Amount() float64 {
	return customer.ParseAmount(p.AmountPaid)
}

// Succeeded reports whether the payment settled. Every other status renders as pending.
func (p Payment) Succeeded() bool {
	return p.Status == StatusSuccess
}

type Request struct {
	AccountNumber string  `json:"account_number"`
	Amount        float64 `json:"amount"`
}

// ValidatePaymentForm checks the account number first, then the amount.
func ValidatePaymentForm(accountNumber, amount string) (Request, error) {
	if strings.TrimSpace(accountNumber) == "" {
		return Request{}, apperrors.NewValidationError(FieldAccountNumber, "Please enter an account number")
	}

	value, ok := customer.PositiveAmount(amount)
	if !ok {
		return Request{}, apperrors.NewValidationError(FieldAmount, "Please enter a valid amount")
	}

	return Request{AccountNumber: accountNumber, Amount: value}, nil
}
