package city

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/golang/geo/s2"

	"github.com/FACorreiaa/go-city-radius/internal/types"
)

var _ CityRepository = (*JSONCityRepository)(nil)

type CityRepository interface {
	All(ctx context.Context) []types.City
	FindByGUID(ctx context.Context, guid string) (*types.City, error)
}

// JSONCityRepository serves the collection read from the data file at startup.
// The slice is never modified after NewJSONCityRepository returns.
type JSONCityRepository struct {
	logger *slog.Logger
	cities []types.City
}

func NewJSONCityRepository(path string, logger *slog.Logger) (*JSONCityRepository, error) {
	cities, err := Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded cities", slog.String("path", path), slog.Int("count", len(cities)))
	return &JSONCityRepository{
		logger: logger,
		cities: cities,
	}, nil
}

// NewInMemoryCityRepository wraps an already validated collection.
func NewInMemoryCityRepository(cities []types.City, logger *slog.Logger) *JSONCityRepository {
	return &JSONCityRepository{
		logger: logger,
		cities: cities,
	}
}

func (r *JSONCityRepository) All(_ context.Context) []types.City {
	return r.cities
}

func (r *JSONCityRepository) FindByGUID(_ context.Context, guid string) (*types.City, error) {
	c, err := FindByGUID(r.cities, guid)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a JSON array of cities from path.
func Load(path string) ([]types.City, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: cities file %s does not exist", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read cities file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates the contents of a cities file.
func Parse(raw []byte) ([]types.City, error) {
	var cities []types.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("%w: cities file is not a JSON array of cities: %v", types.ErrParse, err)
	}
	if cities == nil {
		cities = []types.City{}
	}

	seen := make(map[string]int, len(cities))
	for i, c := range cities {
		if c.GUID == "" {
			return nil, fmt.Errorf("%w: city at index %d has no guid", types.ErrParse, i)
		}
		if prev, ok := seen[c.GUID]; ok {
			return nil, fmt.Errorf("%w: duplicate guid %s at index %d and %d", types.ErrParse, c.GUID, prev, i)
		}
		seen[c.GUID] = i
		if c.Tags == nil {
			cities[i].Tags = []string{}
		}
		if !s2.LatLngFromDegrees(c.Latitude, c.Longitude).IsValid() {
			return nil, fmt.Errorf("%w: city %s has coordinates out of range (%f, %f)",
				types.ErrParse, c.GUID, c.Latitude, c.Longitude)
		}
	}
	return cities, nil
}

// FindByGUID does a linear scan of cities.
func FindByGUID(cities []types.City, guid string) (types.City, error) {
	for _, c := range cities {
		if c.GUID == guid {
			return c, nil
		}
	}
	return types.City{}, fmt.Errorf("%w: cannot find city from guid: %s", types.ErrNotFound, guid)
}
