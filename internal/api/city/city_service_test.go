package city

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-city-radius/app/observability/metrics"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

const (
	guidAtlantic  = "ed354fef-31d3-44a9-b92f-4a3bd7eb0408"
	guidIndian    = "9de4b4d8-0a6a-4ed4-a6e4-bd77f6a4c4b5"
	guidBattersea = "a5bd3a7a-3a43-4f2c-9e53-4d5a1e3b3a21"
	guidCity      = "b3e2c5f0-8f55-4b9b-8f2e-0c4d9ab7e6a1"
	guidParis     = "c7f1d2a4-6b3e-4c8d-9a1f-2e5b7c9d0f13"
)

// testCities has 3 active and 2 inactive cities. Battersea -> City is 8.25 km,
// Battersea -> Paris is 341.3 km.
func testCities() []types.City {
	return []types.City{
		{GUID: guidAtlantic, IsActive: true, Address: "914 Jackson Place", Latitude: -1.409358, Longitude: -37.257104, Tags: []string{"excepteur", "ex"}},
		{GUID: guidIndian, IsActive: false, Address: "346 Coleridge Street", Latitude: -16.564969, Longitude: 70.683811, Tags: []string{"ex", "ut"}},
		{GUID: guidBattersea, IsActive: true, Address: "528 Dewitt Avenue", Latitude: 51.463783, Longitude: -0.177541, Tags: []string{"excepteur", "anim"}},
		{GUID: guidCity, IsActive: true, Address: "121 Bridgewater Street", Latitude: 51.515462, Longitude: -0.091998, Tags: []string{"anim", "ut"}},
		{GUID: guidParis, IsActive: false, Address: "87 Remsen Street", Latitude: 48.856613, Longitude: 2.352222, Tags: []string{"ex"}},
	}
}

func guids(cities []types.City) []string {
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		out = append(out, c.GUID)
	}
	return out
}

func testMetrics(t *testing.T) *metrics.AppMetrics {
	t.Helper()
	m, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

func newTestService(t *testing.T) *ServiceImpl {
	t.Helper()
	repo := NewInMemoryCityRepository(testCities(), slog.Default())
	return NewServiceImpl(repo, testMetrics(t), slog.Default())
}

func TestFilterByTagOrActive(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		isActive string
		want     []string
	}{
		{"active only", "", "true", []string{guidAtlantic, guidBattersea, guidCity}},
		{"inactive only", "", "false", []string{guidIndian, guidParis}},
		{"tag only", "ex", "", []string{guidAtlantic, guidIndian, guidParis}},
		{"tag and active", "ex", "true", []string{guidAtlantic}},
		{"tag and inactive", "ex", "false", []string{guidIndian, guidParis}},
		{"unknown tag", "nope", "", []string{}},
		{"tag is exact match", "exc", "", []string{}},
		{"isActive is compared as text", "", "TRUE", []string{}},
		{"isActive not a bool", "", "yes", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterByTagOrActive(testCities(), tt.tag, tt.isActive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, guids(got))
		})
	}
}

func TestFilterByTagOrActiveRequiresAParameter(t *testing.T) {
	_, err := FilterByTagOrActive(testCities(), "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "either tag or isActive")
}

func TestFilterByTagOrActiveIsIdempotent(t *testing.T) {
	source := testCities()
	once, err := FilterByTagOrActive(source, "ex", "false")
	require.NoError(t, err)
	twice, err := FilterByTagOrActive(once, "ex", "false")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, testCities(), source, "source collection must not be modified")
}

func TestDistanceBetween(t *testing.T) {
	cities := testCities()

	t.Run("Known pair", func(t *testing.T) {
		d, err := DistanceBetween(cities, guidBattersea, guidParis)
		require.NoError(t, err)
		assert.Equal(t, guidBattersea, d.From.GUID)
		assert.Equal(t, guidParis, d.To.GUID)
		assert.Equal(t, types.DistanceUnitKm, d.Unit)
		assert.Equal(t, 341.3, d.Distance)
	})

	t.Run("Same city is zero", func(t *testing.T) {
		for _, c := range cities {
			d, err := DistanceBetween(cities, c.GUID, c.GUID)
			require.NoError(t, err)
			assert.Zero(t, d.Distance)
		}
	})

	t.Run("Identical coordinates is zero", func(t *testing.T) {
		twins := []types.City{
			{GUID: "a", Latitude: 12.34, Longitude: 56.78},
			{GUID: "b", Latitude: 12.34, Longitude: 56.78},
		}
		d, err := DistanceBetween(twins, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, 0.0, d.Distance)
	})

	t.Run("Symmetric", func(t *testing.T) {
		for _, a := range cities {
			for _, b := range cities {
				ab, err := DistanceBetween(cities, a.GUID, b.GUID)
				require.NoError(t, err)
				ba, err := DistanceBetween(cities, b.GUID, a.GUID)
				require.NoError(t, err)
				assert.Equal(t, ab.Distance, ba.Distance)
			}
		}
	})

	t.Run("Unknown from", func(t *testing.T) {
		_, err := DistanceBetween(cities, "unknown", guidParis)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "unknown")
	})

	t.Run("Unknown to", func(t *testing.T) {
		_, err := DistanceBetween(cities, guidParis, "unknown-to")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "unknown-to")
	})
}

func TestCitiesWithinRadius(t *testing.T) {
	cities := testCities()

	tests := []struct {
		name   string
		from   string
		radius float64
		want   []string
	}{
		{"nothing nearby", guidBattersea, 5, []string{}},
		{"boundary is exclusive", guidBattersea, 8.25, []string{}},
		{"just past boundary", guidBattersea, 8.26, []string{guidCity}},
		{"keeps collection order", guidBattersea, 400, []string{guidCity, guidParis}},
		{"zero radius", guidParis, 0, []string{}},
		{"whole world", guidParis, 20016, []string{guidAtlantic, guidIndian, guidBattersea, guidCity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CitiesWithinRadius(cities, tt.from, tt.radius)
			require.NoError(t, err)
			assert.Equal(t, tt.want, guids(got))
			assert.NotContains(t, guids(got), tt.from)
		})
	}

	t.Run("Excludes origin even with a twin", func(t *testing.T) {
		twins := []types.City{
			{GUID: "a", Latitude: 1, Longitude: 1},
			{GUID: "b", Latitude: 1, Longitude: 1},
		}
		got, err := CitiesWithinRadius(twins, "a", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, guids(got))
	})

	t.Run("Includes the antipode", func(t *testing.T) {
		antipodes := []types.City{
			{GUID: "here", Latitude: 0.0225, Longitude: 10},
			{GUID: "there", Latitude: -0.0225, Longitude: -170},
		}
		got, err := CitiesWithinRadius(antipodes, "here", 20016)
		require.NoError(t, err)
		assert.Equal(t, []string{"there"}, guids(got))

		d, err := DistanceBetween(antipodes, "here", "there")
		require.NoError(t, err)
		assert.Equal(t, 20015.09, d.Distance)
	})

	t.Run("Unknown origin", func(t *testing.T) {
		_, err := CitiesWithinRadius(cities, "unknown", 100)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestServiceImpl(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	t.Run("AllCities", func(t *testing.T) {
		assert.Len(t, s.AllCities(ctx), 5)
	})

	t.Run("FilterCities", func(t *testing.T) {
		got, err := s.FilterCities(ctx, types.CityFilter{IsActive: "true"})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		_, err = s.FilterCities(ctx, types.CityFilter{})
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("GetDistance", func(t *testing.T) {
		d, err := s.GetDistance(ctx, guidBattersea, guidCity)
		require.NoError(t, err)
		assert.Equal(t, 8.25, d.Distance)

		_, err = s.GetDistance(ctx, guidBattersea, "missing")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("CitiesWithinRadius", func(t *testing.T) {
		got, err := s.CitiesWithinRadius(ctx, guidCity, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{guidBattersea}, guids(got))
	})

	t.Run("FeatureCollection", func(t *testing.T) {
		fc, err := s.FeatureCollection(ctx, types.CityFilter{})
		require.NoError(t, err)
		require.Len(t, fc.Features, 5)

		f := fc.Features[4]
		assert.Equal(t, guidParis, f.ID)
		assert.Equal(t, orb.Point{2.352222, 48.856613}, f.Geometry)
		assert.Equal(t, "87 Remsen Street", f.Properties["address"])
		assert.Equal(t, false, f.Properties["isActive"])

		fc, err = s.FeatureCollection(ctx, types.CityFilter{Tag: "anim"})
		require.NoError(t, err)
		assert.Len(t, fc.Features, 2)
	})
}

func BenchmarkCitiesWithinRadius(b *testing.B) {
	cities := make([]types.City, 0, 10000)
	for i := 0; i < 10000; i++ {
		cities = append(cities, types.City{
			GUID:      fmt.Sprintf("city-%d", i),
			Latitude:  float64(i%180) - 90,
			Longitude: float64(i%360) - 180,
		})
	}
	origin := cities[0].GUID
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = CitiesWithinRadius(cities, origin, 1000)
	}
}
