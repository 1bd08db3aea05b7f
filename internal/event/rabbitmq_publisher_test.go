package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"loan-portal/internal/domain/customer"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (_m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	ret := _m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return ret.Error(0)
}

func (_m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	ret := _m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return ret.Error(0)
}

func (_m *MockChannel) Close() error {
	return _m.Called().Error(0)
}

type MockConnection struct {
	mock.Mock
}

func (_m *MockConnection) Channel() (Channel, error) {
	ret := _m.Called()
	var r0 Channel
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(Channel)
	}
	return r0, ret.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPublisher(t *testing.T) (*RabbitMQEventPublisher, *MockChannel) {
	t.Helper()
	ch := new(MockChannel)
	conn := new(MockConnection)
	conn.On("Channel").Return(ch, nil)
	ch.On("ExchangeDeclare", "loan-portal", amqp.ExchangeTopic, true, false, false, false, amqp.Table(nil)).Return(nil).Once()
	ch.On("Close").Return(nil)

	p, err := NewRabbitMQEventPublisher(conn, "loan-portal", discardLogger())
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return p, ch
}

func TestPublishCustomerCreated(t *testing.T) {
	p, ch := newTestPublisher(t)

	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "loan-portal", RoutingKeyCustomerCreated, false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	err := p.PublishCustomerCreated(context.Background(), CustomerCreatedEvent{
		Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Payload:   customer.Customer{ID: 4, AccountNumber: "ACC100004", Name: "Meera"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "loan-portal", published.AppId)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "ACC100004", payload["account_number"])
	ch.AssertExpectations(t)
}

func TestPublishPaymentSubmittedFailure(t *testing.T) {
	p, ch := newTestPublisher(t)
	ch.On("PublishWithContext", mock.Anything, "loan-portal", RoutingKeyPaymentSubmitted, false, false, mock.Anything).
		Return(errors.New("channel closed")).Once()

	err := p.PublishPaymentSubmitted(context.Background(), PaymentSubmittedEvent{
		Payload: PaymentPayload{AccountNumber: "ACC1", Amount: 10, NewBalance: 90},
	})
	assert.ErrorContains(t, err, "failed to publish message")
}

func TestNewRabbitMQEventPublisherValidation(t *testing.T) {
	_, err := NewRabbitMQEventPublisher(nil, "x", discardLogger())
	assert.Error(t, err)

	_, err = NewRabbitMQEventPublisher(new(MockConnection), "", discardLogger())
	assert.Error(t, err)

	conn := new(MockConnection)
	conn.On("Channel").Return(nil, errors.New("refused")).Once()
	_, err = NewRabbitMQEventPublisher(conn, "loan-portal", discardLogger())
	assert.ErrorContains(t, err, "temporary channel")
}

func TestNoopPublisher(t *testing.T) {
	var p EventPublisher = NoopPublisher{}
	assert.NoError(t, p.PublishCustomerCreated(context.Background(), CustomerCreatedEvent{}))
	assert.NoError(t, p.PublishPaymentSubmitted(context.Background(), PaymentSubmittedEvent{}))
}

func TestPublisherReopensChannelAfterFailure(t *testing.T) {
	first := new(MockChannel)
	second := new(MockChannel)
	conn := new(MockConnection)

	declare := new(MockChannel)
	declare.On("ExchangeDeclare", "loan-portal", amqp.ExchangeTopic, true, false, false, false, amqp.Table(nil)).Return(nil).Once()
	declare.On("Close").Return(nil).Once()

	conn.On("Channel").Return(declare, nil).Once()
	conn.On("Channel").Return(first, nil).Once()
	conn.On("Channel").Return(second, nil).Once()

	p, err := NewRabbitMQEventPublisher(conn, "loan-portal", discardLogger())
	require.NoError(t, err)

	first.On("PublishWithContext", mock.Anything, "loan-portal", RoutingKeyPaymentSubmitted, false, false, mock.Anything).
		Return(errors.New("channel closed")).Once()
	first.On("Close").Return(nil).Once()
	second.On("PublishWithContext", mock.Anything, "loan-portal", RoutingKeyPaymentSubmitted, false, false, mock.Anything).
		Return(nil).Twice()
	second.On("Close").Return(nil).Once()

	event := PaymentSubmittedEvent{Payload: PaymentPayload{AccountNumber: "ACC1", Amount: 10, NewBalance: 90}}
	assert.Error(t, p.PublishPaymentSubmitted(context.Background(), event))
	assert.NoError(t, p.PublishPaymentSubmitted(context.Background(), event))
	assert.NoError(t, p.PublishPaymentSubmitted(context.Background(), event))
	assert.NoError(t, p.Close())

	conn.AssertExpectations(t)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	declare.AssertExpectations(t)
}
