package event

import (
	"context"
	"loan-portal/internal/domain/customer"
	"time"
)

const (
	RoutingKeyCustomerCreated  = "customer.created"
	RoutingKeyPaymentSubmitted = "payment.submitted"
)

type CustomerCreatedEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Payload   customer.Customer `json:"payload"`
}

type PaymentPayload struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
	NewBalance    float64 `json:"newBalance"`
}

type PaymentSubmittedEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Payload   PaymentPayload `json:"payload"`
}

// EventPublisher announces successful portal actions. Callers log failures
// and never surface them to the user.
type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishPaymentSubmitted(ctx context.Context, event PaymentSubmittedEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishCustomerCreated(context.Context, CustomerCreatedEvent) error {
	return nil
}

func (NoopPublisher) PublishPaymentSubmitted(context.Context, PaymentSubmittedEvent) error {
	return nil
}
