package screen

import (
	"context"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/gateway"
	"strconv"
)

const recentCustomerLimit = 5

var loadCustomersFailed = errorNotification("Error", "Failed to load customers")

type DashboardDisplay struct {
	TotalOutstanding    string `json:"totalOutstanding"`
	TotalEMIDue         string `json:"totalEmiDue"`
	AverageInterestRate string `json:"averageInterestRate"`
	TotalCustomers      string `json:"totalCustomers"`
}

type DashboardView struct {
	Portfolio       customer.Portfolio  `json:"portfolio"`
	Display         DashboardDisplay    `json:"display"`
	RecentCustomers []customer.Customer `json:"recentCustomers"`
}

func NewDashboardView(customers []customer.Customer) DashboardView {
	p := customer.Summarize(customers)

	recent := make([]customer.Customer, 0, recentCustomerLimit)
	recent = append(recent, customers[:min(recentCustomerLimit, len(customers))]...)

	return DashboardView{
		Portfolio: p,
		Display: DashboardDisplay{
			TotalOutstanding:    customer.FormatLakhs(p.TotalOutstanding),
			TotalEMIDue:         customer.FormatThousands(p.TotalEMIDue),
			AverageInterestRate: customer.FormatPercent(p.AverageInterestRate),
			TotalCustomers:      strconv.Itoa(p.Count),
		},
		RecentCustomers: recent,
	}
}

type Dashboard struct {
	*Controller[DashboardView]
	gw gateway.Gateway
}

func NewDashboard(gw gateway.Gateway) *Dashboard {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	return &Dashboard{Controller: NewController[DashboardView](), gw: gw}
}

func (d *Dashboard) Load(ctx context.Context) error {
	return d.run(ctx, false)
}

func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.run(ctx, true)
}

func (d *Dashboard) run(ctx context.Context, refresh bool) error {
	return d.Run(ctx, Cycle[DashboardView]{
		Refresh: refresh,
		Fetch: func(ctx context.Context) (DashboardView, error) {
			customers, err := d.gw.ListCustomers(ctx)
			if err != nil {
				return DashboardView{}, err
			}
			return NewDashboardView(customers), nil
		},
		Failure: loadCustomersFailed,
	})
}
