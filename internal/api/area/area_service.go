package area

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/FACorreiaa/go-city-radius/app/observability/metrics"
	"github.com/FACorreiaa/go-city-radius/internal/api"
	"github.com/FACorreiaa/go-city-radius/internal/api/city"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service runs radius queries in the background and hands out their results by id.
type Service interface {
	Submit(ctx context.Context, req types.AreaRequest) (*types.AreaTask, error)
	Get(ctx context.Context, id string) (*types.AreaTask, error)
	Wait(ctx context.Context, id string) (*types.AreaTask, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	cities  city.Service
	store   *Store
	sem     *semaphore.Weighted
	metrics *metrics.AppMetrics

	wg      sync.WaitGroup
	running sync.Map // task id -> chan struct{}, closed when the task settles
}

func NewServiceImpl(cities city.Service, store *Store, maxPending int64, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		cities:  cities,
		store:   store,
		sem:     semaphore.NewWeighted(maxPending),
		metrics: appMetrics,
	}
}

// Submit stores a pending task and computes it on its own goroutine. It fails
// with ErrInternal when maxPending tasks are already running.
func (s *ServiceImpl) Submit(ctx context.Context, req types.AreaRequest) (*types.AreaTask, error) {
	ctx, span := otel.Tracer("AreaService").Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("city.from", req.From),
		attribute.Float64("distance.max_km", req.Distance),
	))
	defer span.End()

	if err := api.ValidateStruct(req); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !s.sem.TryAcquire(1) {
		err := fmt.Errorf("%w: too many pending area queries", types.ErrInternal)
		span.RecordError(err)
		s.logger.WarnContext(ctx, "Rejected area query", slog.Any("error", err))
		return nil, err
	}

	task := types.AreaTask{
		ID:        uuid.New().String(),
		Status:    types.AreaTaskPending,
		From:      req.From,
		Distance:  req.Distance,
		CreatedAt: time.Now().UTC(),
	}
	done := make(chan struct{})
	s.running.Store(task.ID, done)
	s.store.Put(task)
	span.SetAttributes(attribute.String("area.task_id", task.ID))

	s.wg.Add(1)
	go s.run(context.WithoutCancel(ctx), task, done)

	return &task, nil
}

func (s *ServiceImpl) run(ctx context.Context, task types.AreaTask, done chan struct{}) {
	defer s.wg.Done()
	defer s.sem.Release(1)

	ctx, span := otel.Tracer("AreaService").Start(ctx, "RunAreaTask", trace.WithAttributes(
		attribute.String("area.task_id", task.ID),
	))
	defer span.End()

	l := s.logger.With(slog.String("task_id", task.ID))
	start := time.Now()

	cities, err := s.cities.CitiesWithinRadius(ctx, task.From, task.Distance)
	now := time.Now().UTC()
	task.CompletedAt = &now
	if err != nil {
		task.Status = types.AreaTaskError
		task.Error = err.Error()
		span.RecordError(err)
		l.WarnContext(ctx, "Area query failed", slog.Any("error", err))
	} else {
		task.Status = types.AreaTaskDone
		task.Cities = cities
		l.DebugContext(ctx, "Area query finished", slog.Int("count", len(cities)))
	}
	s.store.Put(task)

	s.running.Delete(task.ID)
	close(done)

	s.metrics.AreaTasksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(task.Status))))
	s.metrics.AreaTaskDurationSeconds.Record(ctx, time.Since(start).Seconds())
}

func (s *ServiceImpl) Get(_ context.Context, id string) (*types.AreaTask, error) {
	task, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrTaskNotFound, id)
	}
	return &task, nil
}

// Wait blocks until the task is no longer pending or ctx is done.
func (s *ServiceImpl) Wait(ctx context.Context, id string) (*types.AreaTask, error) {
	if v, ok := s.running.Load(id); ok {
		select {
		case <-v.(chan struct{}):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Get(ctx, id)
}

// Close waits for running tasks to settle or ctx to end.
func (s *ServiceImpl) Close(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
