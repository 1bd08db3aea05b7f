package monitoring

import (
	"loan-portal/internal/domain/customer"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type GatewayMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type PortfolioMetrics struct {
	Customers           prometheus.Gauge
	TotalOutstanding    prometheus.Gauge
	TotalEMIDue         prometheus.Gauge
	AverageInterestRate prometheus.Gauge
	SnapshotRunsTotal   *prometheus.CounterVec
}

type EventMetrics struct {
	PublishedTotal *prometheus.CounterVec
}

var (
	Gateway = GatewayMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_portal_gateway_requests_total",
				Help: "Total number of calls made to the loan servicing API.",
			},
			[]string{"operation", "outcome"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_portal_gateway_request_duration_seconds",
				Help:    "Histogram of loan servicing API call latencies.",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
	}

	Portfolio = PortfolioMetrics{
		Customers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_portal_portfolio_customers",
			Help: "Number of customers in the last portfolio snapshot.",
		}),
		TotalOutstanding: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_portal_portfolio_outstanding_total",
			Help: "Sum of outstanding balances in the last portfolio snapshot.",
		}),
		TotalEMIDue: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_portal_portfolio_emi_due_total",
			Help: "Sum of EMI due amounts in the last portfolio snapshot.",
		}),
		AverageInterestRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_portal_portfolio_average_interest_rate",
			Help: "Mean interest rate in the last portfolio snapshot.",
		}),
		SnapshotRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_portal_portfolio_snapshot_runs_total",
				Help: "Total number of portfolio snapshot job runs.",
			},
			[]string{"outcome"},
		),
	}

	Events = EventMetrics{
		PublishedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_portal_events_published_total",
				Help: "Total number of domain events handed to the broker.",
			},
			[]string{"routing_key", "outcome"},
		),
	}
)

func RecordGatewayCall(operation string, err error, duration time.Duration) {
	Gateway.RequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	Gateway.RequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordPortfolio(p customer.Portfolio) {
	Portfolio.Customers.Set(float64(p.Count))
	Portfolio.TotalOutstanding.Set(p.TotalOutstanding)
	Portfolio.TotalEMIDue.Set(p.TotalEMIDue)
	Portfolio.AverageInterestRate.Set(p.AverageInterestRate)
}

func RecordSnapshotRun(err error) {
	Portfolio.SnapshotRunsTotal.WithLabelValues(outcome(err)).Inc()
}

func RecordEventPublished(routingKey string, err error) {
	Events.PublishedTotal.WithLabelValues(routingKey, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
