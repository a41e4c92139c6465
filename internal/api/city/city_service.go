package city

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-city-radius/app/observability/metrics"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the queries the API runs over the city collection.
type Service interface {
	AllCities(ctx context.Context) []types.City
	FilterCities(ctx context.Context, filter types.CityFilter) ([]types.City, error)
	GetDistance(ctx context.Context, fromID, toID string) (*types.Distance, error)
	CitiesWithinRadius(ctx context.Context, fromID string, maxDistanceKm float64) ([]types.City, error)
	FeatureCollection(ctx context.Context, filter types.CityFilter) (*geojson.FeatureCollection, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    CityRepository
	metrics *metrics.AppMetrics
}

func NewServiceImpl(repo CityRepository, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		metrics: appMetrics,
	}
}

func (s *ServiceImpl) AllCities(ctx context.Context) []types.City {
	return s.repo.All(ctx)
}

func (s *ServiceImpl) FilterCities(ctx context.Context, filter types.CityFilter) ([]types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "FilterCities", trace.WithAttributes(
		attribute.String("filter.tag", filter.Tag),
		attribute.String("filter.is_active", filter.IsActive),
	))
	defer span.End()

	cities, err := FilterByTagOrActive(s.repo.All(ctx), filter.Tag, filter.IsActive)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid filter")
		return nil, err
	}

	s.logger.DebugContext(ctx, "Filtered cities", slog.Int("count", len(cities)))
	span.SetAttributes(attribute.Int("result.count", len(cities)))
	return cities, nil
}

func (s *ServiceImpl) GetDistance(ctx context.Context, fromID, toID string) (*types.Distance, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetDistance", trace.WithAttributes(
		attribute.String("city.from", fromID),
		attribute.String("city.to", toID),
	))
	defer span.End()

	d, err := DistanceBetween(s.repo.All(ctx), fromID, toID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "distance lookup failed")
		return nil, err
	}
	s.metrics.DistanceComputationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "pair")))

	span.SetAttributes(attribute.Float64("distance.km", d.Distance))
	return &d, nil
}

func (s *ServiceImpl) CitiesWithinRadius(ctx context.Context, fromID string, maxDistanceKm float64) ([]types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "CitiesWithinRadius", trace.WithAttributes(
		attribute.String("city.from", fromID),
		attribute.Float64("distance.max_km", maxDistanceKm),
	))
	defer span.End()

	all := s.repo.All(ctx)
	cities, err := CitiesWithinRadius(all, fromID, maxDistanceKm)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "radius query failed")
		return nil, err
	}
	s.metrics.DistanceComputationsTotal.Add(ctx, int64(len(all)-1), metric.WithAttributes(attribute.String("kind", "radius")))

	span.SetAttributes(attribute.Int("result.count", len(cities)))
	return cities, nil
}

// FeatureCollection exports cities as GeoJSON points. An empty filter exports
// the whole collection.
func (s *ServiceImpl) FeatureCollection(ctx context.Context, filter types.CityFilter) (*geojson.FeatureCollection, error) {
	cities := s.repo.All(ctx)
	if filter.Tag != "" || filter.IsActive != "" {
		var err error
		cities, err = s.FilterCities(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, c := range cities {
		f := geojson.NewFeature(c.Point())
		f.ID = c.GUID
		f.Properties["guid"] = c.GUID
		f.Properties["address"] = c.Address
		f.Properties["isActive"] = c.IsActive
		f.Properties["tags"] = c.Tags
		fc.Append(f)
	}
	return fc, nil
}

// FilterByTagOrActive keeps the cities matching tag and/or isActive. At least
// one of them must be set. isActive is compared against the textual form of
// the flag, so any value other than "true" or "false" matches nothing.
func FilterByTagOrActive(cities []types.City, tag, isActive string) ([]types.City, error) {
	if tag == "" && isActive == "" {
		return nil, fmt.Errorf("%w: missing parameter: either tag or isActive", types.ErrInvalidArgument)
	}

	out := make([]types.City, 0, len(cities))
	for _, c := range cities {
		if tag != "" && !c.HasTag(tag) {
			continue
		}
		if isActive != "" && strconv.FormatBool(c.IsActive) != isActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func DistanceBetween(cities []types.City, fromID, toID string) (types.Distance, error) {
	from, err := FindByGUID(cities, fromID)
	if err != nil {
		return types.Distance{}, err
	}
	to, err := FindByGUID(cities, toID)
	if err != nil {
		return types.Distance{}, err
	}
	return types.Distance{
		From:     from,
		To:       to,
		Unit:     types.DistanceUnitKm,
		Distance: Haversine(from.Point(), to.Point()),
	}, nil
}

// CitiesWithinRadius returns, in collection order, every city other than the
// origin whose distance to it is strictly below maxDistanceKm.
func CitiesWithinRadius(cities []types.City, fromID string, maxDistanceKm float64) ([]types.City, error) {
	from, err := FindByGUID(cities, fromID)
	if err != nil {
		return nil, err
	}

	origin := from.Point()
	out := make([]types.City, 0)
	for _, c := range cities {
		if c.GUID == from.GUID {
			continue
		}
		if Haversine(origin, c.Point()) < maxDistanceKm {
			out = append(out, c)
		}
	}
	return out, nil
}
