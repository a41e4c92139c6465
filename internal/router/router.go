package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	_ "github.com/FACorreiaa/go-city-radius/docs"

	"github.com/FACorreiaa/go-city-radius/app/observability/metrics"
	"github.com/FACorreiaa/go-city-radius/internal/api/area"
	"github.com/FACorreiaa/go-city-radius/internal/api/city"
)

// Endpoints lists the API routes in the order they are announced at startup.
var Endpoints = []string{
	"GET /",
	"GET /ping",
	"GET /cities-by-tag?tag=&isActive=",
	"GET /distance?from=&to=",
	"GET /area?from=&distance=",
	"GET " + area.ResultPath + "/{id}",
	"GET /all-cities",
	"GET /cities.geojson?tag=&isActive=",
	"GET /swagger/*",
}

// Config contains dependencies needed for the router setup
type Config struct {
	CityHandler            *city.Handler
	AreaHandler            *area.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	Metrics                *metrics.AppMetrics
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.Metrics != nil {
		r.Use(countRequests(cfg.Metrics))
	}

	// --- Public Routes ---
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Welcome to the server"))
	})
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Get("/cities-by-tag", cfg.CityHandler.GetCitiesByTag)
		r.Get("/distance", cfg.CityHandler.GetDistance)
		r.Get("/all-cities", cfg.CityHandler.GetAllCities)
		r.Get("/cities.geojson", cfg.CityHandler.GetCitiesGeoJSON)

		r.Get("/area", cfg.AreaHandler.SubmitArea)
		r.Get(area.ResultPath+"/{id}", cfg.AreaHandler.GetAreaResult)
	})

	return r
}

// countRequests increments city_requests_total labelled with the matched
// route pattern, so ids in paths do not explode cardinality.
func countRequests(m *metrics.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.RequestsTotal.Add(r.Context(), 1, metric.WithAttributes(attribute.String("route", route)))
		})
	}
}
