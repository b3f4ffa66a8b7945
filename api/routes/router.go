package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printforge/configurator-backend/api/controllers"
	"github.com/printforge/configurator-backend/api/middleware"
	"github.com/printforge/configurator-backend/internal/configurator"
	"github.com/printforge/configurator-backend/pkg/config"
	"github.com/printforge/configurator-backend/pkg/db"
	"github.com/printforge/configurator-backend/pkg/logger"
	"github.com/printforge/configurator-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	configuratorService configurator.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/configurator", func(r chi.Router) {
		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ConfiguratorProductDetail(configuratorService, logg))
			r.Post("/quote", controllers.ConfiguratorQuote(configuratorService, logg))
		})
	})

	return r
}
