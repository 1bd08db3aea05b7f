package screen

import (
	"context"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/gateway"
	"sync"
)

type CustomerListView struct {
	Customers               []customer.Customer `json:"customers"`
	Query                   string              `json:"query"`
	SortBy                  customer.SortKey    `json:"sortBy"`
	SortOrder               customer.Direction  `json:"sortOrder"`
	Count                   int                 `json:"count"`
	TotalOutstanding        float64             `json:"totalOutstanding"`
	TotalOutstandingDisplay string              `json:"totalOutstandingDisplay"`
}

// CustomerList holds the unfiltered customer list; search and sort are
// applied on read and never trigger a fetch.
type CustomerList struct {
	*Controller[[]customer.Customer]
	gw gateway.Gateway

	mu    sync.RWMutex
	query string
	key   customer.SortKey
	dir   customer.Direction
}

func NewCustomerList(gw gateway.Gateway) *CustomerList {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &CustomerList{
		Controller: NewController[[]customer.Customer](),
		gw:         gw,
		key:        customer.SortByName,
		dir:        customer.Ascending,
	}
}

func (l *CustomerList) Load(ctx context.Context) error {
	return l.run(ctx, false)
}

func (l *CustomerList) Refresh(ctx context.Context) error {
	return l.run(ctx, true)
}

func (l *CustomerList) run(ctx context.Context, refresh bool) error {
	return l.Run(ctx, Cycle[[]customer.Customer]{
		Refresh: refresh,
		Fetch:   l.gw.ListCustomers,
		Failure: loadCustomersFailed,
	})
}

func (l *CustomerList) Search(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = query
}

// SortBy flips the direction when key is already active, otherwise switches
// to key ascending.
func (l *CustomerList) SortBy(key customer.SortKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.key, l.dir = customer.ToggleSort(l.key, l.dir, key)
}

func (l *CustomerList) SetSort(key customer.SortKey, dir customer.Direction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.key, l.dir = key, dir
}

func (l *CustomerList) View() CustomerListView {
	l.mu.RLock()
	query, key, dir := l.query, l.key, l.dir
	l.mu.RUnlock()

	visible := customer.Transform(l.State().Data, query, key, dir)
	total := customer.TotalOutstanding(visible)

	return CustomerListView{
		Customers:               visible,
		Query:                   query,
		SortBy:                  key,
		SortOrder:               dir,
		Count:                   len(visible),
		TotalOutstanding:        total,
		TotalOutstandingDisplay: customer.FormatLakhs(total),
	}
}
