package handler

import (
	"context"
	"fmt"
	"loan-portal/internal/api/handler/dto"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/event"
	"loan-portal/internal/gateway"
	"loan-portal/internal/pkg/apperrors"
	"loan-portal/internal/screen"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// ScreenHandler serves one fresh screen controller per request, so screens
// never share state across requests.
type ScreenHandler struct {
	gateway   gateway.Gateway
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewScreenHandler(gw gateway.Gateway, publisher event.EventPublisher, l *slog.Logger) *ScreenHandler {
	if gw == nil {
		panic("gateway cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ScreenHandler{
		gateway:   gw,
		publisher: publisher,
		logger:    l.With("component", "ScreenHandler"),
		now:       time.Now,
	}
}

func refreshRequested(r *http.Request) bool {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return refresh
}

func trackPhases[T any](c *screen.Controller[T]) *[]screen.Phase {
	phases := &[]screen.Phase{}
	c.Subscribe(func(s screen.State[T]) {
		*phases = append(*phases, s.Phase)
	})
	return phases
}

// Dashboard handles GET /screens/dashboard
// @Summary Dashboard screen
// @Description Portfolio totals, display strings and the five most recent customers.
// @Tags Screens
// @Produce json
// @Param refresh query bool false "Pull-to-refresh cycle instead of an initial load"
// @Success 200 {object} dto.ScreenResponse[screen.DashboardView]
// @Failure 502 {object} dto.ErrorResponse "Failed to load customers"
// @Router /screens/dashboard [get]
// @Security BearerAuth
func (h *ScreenHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := screen.NewDashboard(h.gateway)
	phases := trackPhases(d.Controller)

	load := d.Load
	if refreshRequested(r) {
		load = d.Refresh
	}
	if err := load(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Dashboard load failed", slog.Any("error", err))
		respondScreenError(w, err, d.State().Notification)
		return
	}

	s := d.State()
	h.logger.InfoContext(r.Context(), "Dashboard served", slog.Int("customers", s.Data.Portfolio.Count))
	respondJSON(w, http.StatusOK, dto.NewScreenResponse(s, *phases, s.Data))
}

// CustomerList handles GET /screens/customers
// @Summary Customers screen
// @Description Filtered and sorted customer list with count and total outstanding of the visible rows.
// @Tags Screens
// @Produce json
// @Param q query string false "Case-insensitive match on name or account number"
// @Param sort query string false "name, balance, emi or rate" Enums(name, balance, emi, rate)
// @Param dir query string false "asc or desc" Enums(asc, desc)
// @Param refresh query bool false "Pull-to-refresh cycle instead of an initial load"
// @Success 200 {object} dto.ScreenResponse[screen.CustomerListView]
// @Failure 502 {object} dto.ErrorResponse "Failed to load customers"
// @Router /screens/customers [get]
// @Security BearerAuth
func (h *ScreenHandler) CustomerList(w http.ResponseWriter, r *http.Request) {
	l := screen.NewCustomerList(h.gateway)
	phases := trackPhases(l.Controller)

	load := l.Load
	if refreshRequested(r) {
		load = l.Refresh
	}
	if err := load(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Customer list load failed", slog.Any("error", err))
		respondScreenError(w, err, l.State().Notification)
		return
	}

	q := r.URL.Query()
	l.Search(q.Get("q"))
	l.SetSort(customer.ParseSortKey(q.Get("sort")), customer.ParseDirection(q.Get("dir")))

	view := l.View()
	h.logger.DebugContext(r.Context(), "Customer list served",
		slog.Int("visible", view.Count), slog.String("sortBy", string(view.SortBy)))
	respondJSON(w, http.StatusOK, dto.NewScreenResponse(l.State(), *phases, view))
}

// CreateCustomer handles POST /screens/customers
// @Summary Add customer screen
// @Description Validates the six form fields in order, stops at the first invalid one, then creates the customer.
// @Tags Screens
// @Accept json
// @Produce json
// @Param request body dto.AddCustomerRequest true "Add customer form, every field as typed"
// @Success 201 {object} dto.ScreenResponse[customer.Customer]
// @Failure 400 {object} dto.ErrorResponse "Validation Error"
// @Failure 502 {object} dto.ErrorResponse "Failed to create customer. Please try again."
// @Router /screens/customers [post]
// @Security BearerAuth
func (h *ScreenHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	a := screen.NewAddCustomer(h.gateway)
	phases := trackPhases(a.Controller)

	if err := a.Submit(r.Context(), req.ToForm()); err != nil {
		h.logger.WarnContext(r.Context(), "Add customer failed", slog.Any("error", err))
		respondScreenError(w, err, a.State().Notification)
		return
	}

	s := a.State()
	h.logger.InfoContext(r.Context(), "Customer created", slog.String("accountNumber", s.Data.AccountNumber))
	h.publish(r.Context(), event.RoutingKeyCustomerCreated, func(ctx context.Context) error {
		return h.publisher.PublishCustomerCreated(ctx, event.CustomerCreatedEvent{Timestamp: h.now().UTC(), Payload: s.Data})
	})
	respondJSON(w, http.StatusCreated, dto.NewScreenResponse(s, *phases, s.Data))
}

// SubmitPayment handles POST /screens/payments
// @Summary Payments screen
// @Description Validates account number and amount, then submits the payment and reports the new balance.
// @Tags Screens
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Payment form, every field as typed"
// @Success 200 {object} dto.ScreenResponse[screen.PaymentView]
// @Failure 400 {object} dto.ErrorResponse "Please enter an account number / Please enter a valid amount"
// @Failure 502 {object} dto.ErrorResponse "Unable to process payment. Please try again."
// @Router /screens/payments [post]
// @Security BearerAuth
func (h *ScreenHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	req = req.Normalize()

	p := screen.NewPayments(h.gateway)
	phases := trackPhases(p.Controller)

	if err := p.Submit(r.Context(), req.AccountNumber, req.Amount); err != nil {
		h.logger.WarnContext(r.Context(), "Payment failed", slog.Any("error", err))
		respondScreenError(w, err, p.State().Notification)
		return
	}

	s := p.State()
	h.logger.InfoContext(r.Context(), "Payment submitted",
		slog.String("accountNumber", s.Data.AccountNumber), slog.Float64("amount", s.Data.Amount))
	h.publish(r.Context(), event.RoutingKeyPaymentSubmitted, func(ctx context.Context) error {
		return h.publisher.PublishPaymentSubmitted(ctx, event.PaymentSubmittedEvent{
			Timestamp: h.now().UTC(),
			Payload: event.PaymentPayload{
				AccountNumber: s.Data.AccountNumber,
				Amount:        s.Data.Amount,
				NewBalance:    s.Data.NewBalance,
			},
		})
	})
	respondJSON(w, http.StatusOK, dto.NewScreenResponse(s, *phases, s.Data))
}

// CustomerDetail handles GET /screens/customers/{accountNumber}
// @Summary Customer detail screen
// @Description Resolves the account from the full customer list, then loads its payment history.
// @Tags Screens
// @Produce json
// @Param accountNumber path string true "Account number, matched exactly"
// @Param refresh query bool false "Pull-to-refresh cycle instead of an initial load"
// @Success 200 {object} dto.ScreenResponse[screen.CustomerDetailView]
// @Failure 404 {object} dto.ScreenResponse[screen.CustomerDetailView] "state is not_found"
// @Failure 502 {object} dto.ErrorResponse "Failed to load customer data"
// @Router /screens/customers/{accountNumber} [get]
// @Security BearerAuth
func (h *ScreenHandler) CustomerDetail(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	d := screen.NewCustomerDetail(h.gateway, accountNumber)
	phases := trackPhases(d.Controller)

	load := d.Load
	if refreshRequested(r) {
		load = d.Refresh
	}
	if err := load(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Customer detail load failed",
			slog.String("accountNumber", accountNumber), slog.Any("error", err))
		respondScreenError(w, err, d.State().Notification)
		return
	}

	s := d.State()
	status := http.StatusOK
	if s.Phase == screen.PhaseNotFound {
		h.logger.InfoContext(r.Context(), "Customer not found", slog.String("accountNumber", accountNumber))
		status = http.StatusNotFound
	}
	respondJSON(w, status, dto.NewScreenResponse(s, *phases, s.Data))
}

// publish hands the event to the broker without blocking the response on
// failure; errors are only logged.
func (h *ScreenHandler) publish(ctx context.Context, routingKey string, fn func(context.Context) error) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := fn(pubCtx); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("routingKey", routingKey), slog.Any("error", err))
	}
}
