package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RequestsTotal             metric.Int64Counter
	DistanceComputationsTotal metric.Int64Counter
	AreaTasksTotal            metric.Int64Counter
	AreaTaskDurationSeconds   metric.Float64Histogram
	CitiesLoaded              metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates the instruments on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.RequestsTotal, err = meter.Int64Counter(
		"city_requests_total",
		metric.WithDescription("Total number of API requests handled, by route"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create city_requests_total: %w", err)
	}

	m.DistanceComputationsTotal, err = meter.Int64Counter(
		"distance_computations_total",
		metric.WithDescription("Total number of haversine distances computed"),
		metric.WithUnit("{computation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create distance_computations_total: %w", err)
	}

	m.AreaTasksTotal, err = meter.Int64Counter(
		"area_tasks_total",
		metric.WithDescription("Total number of area queries finished, by status"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create area_tasks_total: %w", err)
	}

	m.AreaTaskDurationSeconds, err = meter.Float64Histogram(
		"area_task_duration_seconds",
		metric.WithDescription("Duration of area queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create area_task_duration_seconds: %w", err)
	}

	m.CitiesLoaded, err = meter.Int64UpDownCounter(
		"cities_loaded",
		metric.WithDescription("Number of cities held in memory"),
		metric.WithUnit("{city}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cities_loaded: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so call it
// after the tracer package has installed the prometheus provider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter("go-city-radius"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
