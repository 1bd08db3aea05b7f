package api

import (
	"context"
	"loan-portal/internal/api/handler"
	mw "loan-portal/internal/api/middleware"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/event"
	"loan-portal/internal/gateway"
	"log/slog"
	"net/http"
	"time"

	_ "loan-portal/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Dependencies are the collaborators behind the routes. Snapshots and Redis
// are optional.
type Dependencies struct {
	Gateway   gateway.Gateway
	Publisher event.EventPublisher
	Snapshots customer.SnapshotRepository
	Redis     *redis.Client
}

// SetupRouter wires every route. ctx bounds background work owned by the
// middleware, such as limiter cleanup.
func SetupRouter(ctx context.Context, deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, deps.Redis, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupScreenRoutes(router, cfg, deps, logger)
	setupPortfolioRoutes(router, cfg, deps.Snapshots, logger)
	router.Get("/health", handler.NewHealthHandler(cfg.Gateway.Backend).Health)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiter(ctx, cfg.Server.RateLimit, redisClient, logger))
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupScreenRoutes(router *chi.Mux, cfg *config.Config, deps Dependencies, logger *slog.Logger) {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	h := handler.NewScreenHandler(deps.Gateway, publisher, logger)

	router.Route("/screens", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/dashboard", h.Dashboard)
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.CustomerList)
			r.Post("/", h.CreateCustomer)
			r.Get("/{accountNumber}", h.CustomerDetail)
		})
		r.Post("/payments", h.SubmitPayment)
	})
}

func setupPortfolioRoutes(router *chi.Mux, cfg *config.Config, snapshots customer.SnapshotRepository, logger *slog.Logger) {
	if snapshots == nil {
		logger.Info("No snapshot store configured; /portfolio/snapshots disabled")
		return
	}
	h := handler.NewSnapshotHandler(snapshots, logger)
	router.Route("/portfolio", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/snapshots", h.ListSnapshots)
	})
}
