package area

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-city-radius/internal/api"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

// ResultPath is the route of the result endpoint, mounted with an {id} param.
const ResultPath = "/area-result"

type Handler struct {
	logger    *slog.Logger
	service   Service
	publicURL string
}

// NewAreaHandler builds result urls from publicURL, or from the request host
// when publicURL is empty.
func NewAreaHandler(service Service, publicURL string, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// SubmitArea godoc
// @Summary      Start a radius query
// @Description  Schedules the search for every city closer than distance km to from. Poll resultsUrl for the outcome.
// @Tags         Area
// @Produce      json
// @Param        from      query  string  true  "Origin guid"
// @Param        distance  query  number  true  "Radius in km"
// @Success      202 {object} types.AreaAccepted
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Failure      500 {object} types.Response
// @Security     BearerAuth
// @Router       /area [get]
func (h *Handler) SubmitArea(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AreaHandler").Start(r.Context(), "SubmitArea")
	defer span.End()

	l := h.logger.With(slog.String("handler", "SubmitArea"))

	req, err := api.AreaRequestFromQuery(r)
	if err != nil {
		l.WarnContext(ctx, "Invalid area params", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorFromService(w, r, err)
		return
	}

	task, err := h.service.Submit(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to schedule area query", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "schedule failed")
		if api.StatusFromError(err) == http.StatusInternalServerError {
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Error while computing distance to cities")
			return
		}
		api.ErrorFromService(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusAccepted, types.AreaAccepted{
		ResultsURL: h.resultsURL(r, task.ID),
		ID:         task.ID,
		Status:     task.Status,
	})
}

// GetAreaResult godoc
// @Summary      Result of a radius query
// @Description  200 with the cities once done, 202 while pending, 200 with status error when the query failed.
// @Tags         Area
// @Produce      json
// @Param        id  path  string  true  "Task id returned by /area"
// @Success      200 {object} types.AreaResult
// @Success      202 {object} types.AreaAccepted
// @Failure      401 {object} types.Response
// @Failure      404 {object} types.Response
// @Security     BearerAuth
// @Router       /area-result/{id} [get]
func (h *Handler) GetAreaResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AreaHandler").Start(r.Context(), "GetAreaResult")
	defer span.End()

	id := chi.URLParam(r, "id")
	task, err := h.service.Get(ctx, id)
	if err != nil {
		h.logger.DebugContext(ctx, "Area result not found", slog.String("task_id", id))
		api.ErrorFromService(w, r, err)
		return
	}

	switch task.Status {
	case types.AreaTaskPending:
		api.WriteJSONResponse(w, r, http.StatusAccepted, types.AreaAccepted{
			ResultsURL: h.resultsURL(r, task.ID),
			ID:         task.ID,
			Status:     task.Status,
		})
	case types.AreaTaskDone:
		api.WriteJSONResponse(w, r, http.StatusOK, types.AreaResult{
			ID:     task.ID,
			Status: task.Status,
			Cities: task.Cities,
		})
	default:
		api.WriteJSONResponse(w, r, http.StatusOK, task)
	}
}

func (h *Handler) resultsURL(r *http.Request, id string) string {
	base := h.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s%s/%s", base, ResultPath, id)
}
