package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/infrastructure/monitoring"
	"loan-portal/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient talks JSON to the loan servicing API. There are no retries.
type HTTPClient struct {
	baseURL  string
	apiToken string
	client   *http.Client
	logger   *slog.Logger
}

var _ Gateway = (*HTTPClient)(nil)

func NewHTTPClient(cfg config.GatewayConfig, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		logger: logger.With("component", "GatewayHTTPClient"),
	}
}

func (c *HTTPClient) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	var customers []customer.Customer
	if err := c.do(ctx, OpListCustomers, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []customer.Customer{}
	}
	return customers, nil
}

func (c *HTTPClient) CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error) {
	var created customer.Customer
	if err := c.do(ctx, OpCreateCustomer, http.MethodPost, "/customers", req, &created); err != nil {
		return customer.Customer{}, err
	}
	return created, nil
}

func (c *HTTPClient) MakePayment(ctx context.Context, accountNumber string, amount float64) (PaymentResult, error) {
	body := payment.Request{AccountNumber: accountNumber, Amount: amount}

	var result PaymentResult
	if err := c.do(ctx, OpMakePayment, http.MethodPost, "/payments", body, &result); err != nil {
		return PaymentResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) ListPayments(ctx context.Context, accountNumber string) ([]payment.Payment, error) {
	var payments []payment.Payment
	path := "/payments/" + url.PathEscape(accountNumber)
	if err := c.do(ctx, OpListPayments, http.MethodGet, path, nil, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return payments, nil
}

func (c *HTTPClient) do(ctx context.Context, operation, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		monitoring.RecordGatewayCall(operation, err, time.Since(start))
		if err != nil {
			c.logger.WarnContext(ctx, "Gateway call failed",
				slog.String("operation", operation),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err))
			err = apperrors.WrapRequestFailure(operation, err)
		}
	}()

	var body io.Reader
	if in != nil {
		payload, marshalErr := json.Marshal(in)
		if marshalErr != nil {
			return fmt.Errorf("encoding request: %w", marshalErr)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	c.logger.DebugContext(ctx, "Gateway call succeeded",
		slog.String("operation", operation),
		slog.Duration("duration", time.Since(start)))
	return nil
}
