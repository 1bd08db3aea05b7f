// Package gateway is the client side of the remote loan servicing API. All
// business rules (account numbers, balances, payment application) live behind it.
package gateway

import (
	"context"
	"fmt"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"log/slog"
	"strings"
)

const (
	BackendHTTP   = "http"
	BackendMemory = "memory"
)

const (
	OpListCustomers  = "list_customers"
	OpCreateCustomer = "create_customer"
	OpMakePayment    = "make_payment"
	OpListPayments   = "list_payments"
)

// PaymentResult is the gateway's answer to a submitted payment.
type PaymentResult struct {
	NewBalance float64 `json:"new_balance"`
}

// Gateway is the remote data contract every screen depends on. Every failure,
// whatever its cause, is reported as apperrors.ErrRequestFailed.
type Gateway interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
	CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error)
	MakePayment(ctx context.Context, accountNumber string, amount float64) (PaymentResult, error)
	ListPayments(ctx context.Context, accountNumber string) ([]payment.Payment, error)
}

// New builds the gateway selected by cfg.Backend.
func New(cfg config.GatewayConfig, logger *slog.Logger) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendHTTP:
		return NewHTTPClient(cfg, logger), nil
	case BackendMemory:
		if cfg.SeedFile == "" {
			logger.Info("Using empty in-memory gateway")
			return NewMemoryGateway(nil, nil), nil
		}
		logger.Info("Using in-memory gateway", "seedFile", cfg.SeedFile)
		return LoadMemoryGateway(cfg.SeedFile)
	default:
		return nil, fmt.Errorf("unknown gateway backend %q", cfg.Backend)
	}
}
