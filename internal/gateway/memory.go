package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/payment"
	"loan-portal/internal/pkg/apperrors"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const accountNumberBase = 100000

var errUnknownAccount = errors.New("account not found")

// Seed is the on-disk layout accepted by LoadMemoryGateway.
type Seed struct {
	Customers []customer.Customer          `json:"customers"`
	Payments  map[string][]payment.Payment `json:"payments"`
}

// MemoryGateway is a process-local stand-in for the loan servicing API.
type MemoryGateway struct {
	mu             sync.Mutex
	customers      []customer.Customer
	payments       map[string][]payment.Payment
	nextCustomerID int64
	nextPaymentID  int64
	now            func() time.Time
}

var _ Gateway = (*MemoryGateway)(nil)

func NewMemoryGateway(customers []customer.Customer, payments map[string][]payment.Payment) *MemoryGateway {
	g := &MemoryGateway{
		customers: slices.Clone(customers),
		payments:  make(map[string][]payment.Payment, len(payments)),
		now:       time.Now,
	}
	for acct, list := range payments {
		g.payments[acct] = slices.Clone(list)
		for _, p := range list {
			g.nextPaymentID = max(g.nextPaymentID, p.ID)
		}
	}
	for _, c := range customers {
		g.nextCustomerID = max(g.nextCustomerID, c.ID)
	}
	return g
}

func LoadMemoryGateway(path string) (*MemoryGateway, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gateway seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parsing gateway seed file %s: %w", path, err)
	}
	return NewMemoryGateway(seed.Customers, seed.Payments), nil
}

func (g *MemoryGateway) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.WrapRequestFailure(OpListCustomers, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	out := slices.Clone(g.customers)
	if out == nil {
		out = []customer.Customer{}
	}
	return out, nil
}

func (g *MemoryGateway) CreateCustomer(ctx context.Context, req customer.CreateRequest) (customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return customer.Customer{}, apperrors.WrapRequestFailure(OpCreateCustomer, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextCustomerID++
	created := customer.Customer{
		ID:                 g.nextCustomerID,
		AccountNumber:      fmt.Sprintf("ACC%06d", accountNumberBase+g.nextCustomerID),
		Name:               req.CustomerName,
		IssueDate:          req.IssueDate,
		InterestRate:       decimal.NewFromFloat(req.InterestRate).String(),
		TenureMonths:       req.TenureMonths,
		EMIDueAmount:       decimal.NewFromFloat(req.EMIDueAmount).StringFixed(2),
		OutstandingBalance: decimal.NewFromFloat(req.OutstandingBalance).StringFixed(2),
	}
	g.customers = append(g.customers, created)
	return created, nil
}

func (g *MemoryGateway) MakePayment(ctx context.Context, accountNumber string, amount float64) (PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return PaymentResult{}, apperrors.WrapRequestFailure(OpMakePayment, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := slices.IndexFunc(g.customers, func(c customer.Customer) bool {
		return c.AccountNumber == accountNumber
	})
	if idx < 0 {
		return PaymentResult{}, apperrors.WrapRequestFailure(OpMakePayment, fmt.Errorf("%w: %s", errUnknownAccount, accountNumber))
	}

	paid := decimal.NewFromFloat(amount)
	balance, err := decimal.NewFromString(g.customers[idx].OutstandingBalance)
	if err != nil {
		balance = decimal.Zero
	}
	if paid.GreaterThan(balance) {
		return PaymentResult{}, apperrors.WrapRequestFailure(OpMakePayment,
			fmt.Errorf("amount %s exceeds outstanding balance %s", paid, balance))
	}

	newBalance := balance.Sub(paid)
	g.customers[idx].OutstandingBalance = newBalance.StringFixed(2)

	g.nextPaymentID++
	g.payments[accountNumber] = append(g.payments[accountNumber], payment.Payment{
		ID:          g.nextPaymentID,
		AmountPaid:  paid.StringFixed(2),
		PaymentDate: g.now().Format(time.DateOnly),
		Status:      payment.StatusSuccess,
	})

	f, _ := newBalance.Float64()
	return PaymentResult{NewBalance: f}, nil
}

func (g *MemoryGateway) ListPayments(ctx context.Context, accountNumber string) ([]payment.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.WrapRequestFailure(OpListPayments, err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	out := slices.Clone(g.payments[accountNumber])
	if out == nil {
		out = []payment.Payment{}
	}
	return out, nil
}
