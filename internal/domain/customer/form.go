package customer

import (
	"strings"

	"loan-portal/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	FieldName               = "customer_name"
	FieldIssueDate          = "issue_date"
	FieldInterestRate       = "interest_rate"
	FieldTenureMonths       = "tenure_months"
	FieldEMIDueAmount       = "emi_due_amount"
	FieldOutstandingBalance = "outstanding_balance"
)

// CreateForm is the raw add-customer form, every field as typed by the user.
type CreateForm struct {
	CustomerName       string `json:"customer_name"`
	IssueDate          string `json:"issue_date"`
	InterestRate       string `json:"interest_rate"`
	TenureMonths       string `json:"tenure_months"`
	EMIDueAmount       string `json:"emi_due_amount"`
	OutstandingBalance string `json:"outstanding_balance"`
}

// CreateRequest is the normalized payload forwarded to the gateway.
type CreateRequest struct {
	CustomerName       string  `json:"customer_name"`
	IssueDate          string  `json:"issue_date"`
	InterestRate       float64 `json:"interest_rate"`
	TenureMonths       int     `json:"tenure_months"`
	EMIDueAmount       float64 `json:"emi_due_amount"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// ValidateCreateForm checks the form field by field and stops at the first
// invalid one. Name and issue date are forwarded as typed.
func ValidateCreateForm(f CreateForm) (CreateRequest, error) {
	if strings.TrimSpace(f.CustomerName) == "" {
		return CreateRequest{}, apperrors.NewValidationError(FieldName, "Please enter customer name")
	}
	if strings.TrimSpace(f.IssueDate) == "" {
		return CreateRequest{}, apperrors.NewValidationError(FieldIssueDate, "Please enter issue date")
	}

	rate, ok := positiveNumber(f.InterestRate)
	if !ok {
		return CreateRequest{}, apperrors.NewValidationError(FieldInterestRate, "Please enter a valid interest rate")
	}

	tenure, ok := positiveInteger(f.TenureMonths)
	if !ok {
		return CreateRequest{}, apperrors.NewValidationError(FieldTenureMonths, "Please enter a valid tenure in months")
	}

	emi, ok := positiveNumber(f.EMIDueAmount)
	if !ok {
		return CreateRequest{}, apperrors.NewValidationError(FieldEMIDueAmount, "Please enter a valid EMI amount")
	}

	outstanding, ok := positiveNumber(f.OutstandingBalance)
	if !ok {
		return CreateRequest{}, apperrors.NewValidationError(FieldOutstandingBalance, "Please enter a valid outstanding balance")
	}

	return CreateRequest{
		CustomerName:       f.CustomerName,
		IssueDate:          f.IssueDate,
		InterestRate:       rate,
		TenureMonths:       tenure,
		EMIDueAmount:       emi,
		OutstandingBalance: outstanding,
	}, nil
}

// PositiveAmount parses s as a decimal number and reports whether it is > 0.
func PositiveAmount(s string) (float64, bool) {
	return positiveNumber(s)
}

func positiveNumber(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// positiveInteger truncates toward zero, so "12.9" reads as 12 and "0.5" is rejected.
func positiveInteger(s string) (int, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	n := d.IntPart()
	if n <= 0 {
		return 0, false
	}
	return int(n), true
}
