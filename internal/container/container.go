package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	appMiddleware "github.com/FACorreiaa/go-city-radius/app/middleware"
	"github.com/FACorreiaa/go-city-radius/app/observability/metrics"
	"github.com/FACorreiaa/go-city-radius/config"
	"github.com/FACorreiaa/go-city-radius/internal/api/area"
	"github.com/FACorreiaa/go-city-radius/internal/api/city"
	api "github.com/FACorreiaa/go-city-radius/internal/router"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.AppMetrics
	CityRepo    city.CityRepository
	CityService city.Service
	AreaService *area.ServiceImpl
	CityHandler *city.Handler
	AreaHandler *area.Handler
	Verifier    *appMiddleware.TokenVerifier
}

// NewContainer loads the cities file and wires repositories, services and
// handlers. appMetrics must already be initialized.
func NewContainer(cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, err
	}
	verifier, err := appMiddleware.NewTokenVerifier(token, cfg.Auth.TokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to build token verifier: %w", err)
	}

	cityRepo, err := city.NewJSONCityRepository(cfg.Data.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load cities: %w", err)
	}
	return newContainer(cfg, appMetrics, cityRepo, verifier, logger), nil
}

func newContainer(cfg *config.Config, appMetrics *metrics.AppMetrics, cityRepo city.CityRepository, verifier *appMiddleware.TokenVerifier, logger *slog.Logger) *Container {
	ctx := context.Background()
	appMetrics.CitiesLoaded.Add(ctx, int64(len(cityRepo.All(ctx))))

	cityService := city.NewServiceImpl(cityRepo, appMetrics, logger)
	cityHandler := city.NewCityHandler(cityService, logger)

	areaStore := area.NewStore(cfg.Area.ResultTTL, cfg.Area.CleanupInterval)
	areaService := area.NewServiceImpl(cityService, areaStore, cfg.Area.MaxPending, appMetrics, logger)
	areaHandler := area.NewAreaHandler(areaService, cfg.Server.PublicURL, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Metrics:     appMetrics,
		CityRepo:    cityRepo,
		CityService: cityService,
		AreaService: areaService,
		CityHandler: cityHandler,
		AreaHandler: areaHandler,
		Verifier:    verifier,
	}
}

// NewTestContainer wires an in-memory collection with a plain token.
func NewTestContainer(cfg *config.Config, cities []types.City, token string, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	verifier, err := appMiddleware.NewTokenVerifier(token, "")
	if err != nil {
		return nil, err
	}
	repo := city.NewInMemoryCityRepository(cities, logger)
	return newContainer(cfg, appMetrics, repo, verifier, logger), nil
}

// Router returns the API router with authentication applied to protected routes.
func (c *Container) Router() http.Handler {
	return api.SetupRouter(&api.Config{
		CityHandler:            c.CityHandler,
		AreaHandler:            c.AreaHandler,
		AuthenticateMiddleware: appMiddleware.Authenticate(c.Verifier),
		Metrics:                c.Metrics,
	})
}

// Close waits for in-flight area queries.
func (c *Container) Close(ctx context.Context) error {
	return c.AreaService.Close(ctx)
}
