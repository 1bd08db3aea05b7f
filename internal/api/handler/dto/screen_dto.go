package dto

import (
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/screen"
	"strings"
)

// ScreenResponse is the view state of one screen after a request cycle.
// Phases lists every transition the cycle went through.
type ScreenResponse[T any] struct {
	State        screen.Phase         `json:"state"`
	Phases       []screen.Phase       `json:"phases"`
	Data         T                    `json:"data"`
	Notification *screen.Notification `json:"notification,omitempty"`
}

func NewScreenResponse[T, S any](state screen.State[S], phases []screen.Phase, data T) ScreenResponse[T] {
	if phases == nil {
		phases = []screen.Phase{}
	}
	return ScreenResponse[T]{
		State:        state.Phase,
		Phases:       phases,
		Data:         data,
		Notification: state.Notification,
	}
}

type AddCustomerRequest struct {
	CustomerName       string `json:"customer_name" example:"Meera Iyer"`
	IssueDate          string `json:"issue_date" example:"2024-01-15"`
	InterestRate       string `json:"interest_rate" example:"12.5"`
	TenureMonths       string `json:"tenure_months" example:"24"`
	EMIDueAmount       string `json:"emi_due_amount" example:"4500"`
	OutstandingBalance string `json:"outstanding_balance" example:"100000"`
}

func (r AddCustomerRequest) ToForm() customer.CreateForm {
	return customer.CreateForm(r)
}

type PaymentRequest struct {
	AccountNumber string `json:"account_number" example:"ACC100001"`
	Amount        string `json:"amount" example:"4500.00"`
}

// Normalize trims the account number; the amount is validated as typed.
func (r PaymentRequest) Normalize() PaymentRequest {
	r.AccountNumber = strings.TrimSpace(r.AccountNumber)
	return r
}

type SnapshotListResponse struct {
	Snapshots []customer.Snapshot `json:"snapshots"`
	Count     int                 `json:"count"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Gateway string `json:"gateway"`
}
