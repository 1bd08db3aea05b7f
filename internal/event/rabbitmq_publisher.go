package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"loan-portal/internal/infrastructure/monitoring"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "loan-portal"

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Connection interface {
	Channel() (Channel, error)
}

type amqpConnection struct {
	conn *amqp.Connection
}

// WrapConnection adapts a live AMQP connection for the publisher.
func WrapConnection(conn *amqp.Connection) Connection {
	return amqpConnection{conn: conn}
}

func (c amqpConnection) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// RabbitMQEventPublisher reuses one channel across publishes. A failed publish
// drops the channel; the next publish opens a fresh one.
type RabbitMQEventPublisher struct {
	conn     Connection
	exchange string
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	channel Channel
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

// NewRabbitMQEventPublisher declares exchangeName as a durable topic exchange.
func NewRabbitMQEventPublisher(conn Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	switch {
	case conn == nil:
		return nil, errors.New("RabbitMQ connection cannot be nil")
	case exchangeName == "":
		return nil, errors.New("RabbitMQ exchange name cannot be empty")
	case logger == nil:
		panic("logger cannot be nil")
	}

	declareCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("opening temporary channel for exchange %q: %w", exchangeName, err)
	}
	defer declareCh.Close()

	if err := declareCh.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declaring exchange %q: %w", exchangeName, err)
	}

	logger = logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName)
	logger.Info("RabbitMQ exchange declared", "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:     conn,
		exchange: exchangeName,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerCreated, event)
}

func (p *RabbitMQEventPublisher) PublishPaymentSubmitted(ctx context.Context, event PaymentSubmittedEvent) error {
	return p.publish(ctx, RoutingKeyPaymentSubmitted, event)
}

// Close releases the cached channel. The connection is owned by the caller.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropChannel()
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, payload any) (err error) {
	defer func() {
		monitoring.RecordEventPublished(routingKey, err)
		if err != nil {
			p.logger.ErrorContext(ctx, "Event not published",
				slog.String("routingKey", routingKey), slog.Any("error", err))
		}
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open channel: %w", err)
		}
		p.channel = ch
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		AppId:        publisherAppID,
		Body:         body,
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		_ = p.dropChannel()
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.DebugContext(ctx, "Event published", slog.String("routingKey", routingKey), slog.Int("bytes", len(body)))
	return nil
}

// dropChannel must be called with mu held.
func (p *RabbitMQEventPublisher) dropChannel() error {
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}
