package city

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-city-radius/internal/api"
	"github.com/FACorreiaa/go-city-radius/internal/types"
)

// flushEvery is how many streamed cities are written between flushes.
const flushEvery = 100

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetCitiesByTag godoc
// @Summary      Filter cities
// @Description  Returns the cities carrying a tag and/or with the given active flag. At least one of tag and isActive is required.
// @Tags         Cities
// @Produce      json
// @Param        tag       query  string  false  "Exact tag"
// @Param        isActive  query  string  false  "true or false"
// @Success      200 {object} types.CitiesResponse
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /cities-by-tag [get]
func (h *Handler) GetCitiesByTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCitiesByTag")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetCitiesByTag"))

	filter := api.CityFilterFromQuery(r)
	cities, err := h.service.FilterCities(ctx, filter)
	if err != nil {
		l.WarnContext(ctx, "Failed to filter cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "filter failed")
		api.ErrorFromService(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.CitiesResponse{Cities: cities})
}

// GetDistance godoc
// @Summary      Distance between two cities
// @Description  Great-circle (haversine) distance in km, rounded to 2 decimals.
// @Tags         Cities
// @Produce      json
// @Param        from  query  string  true  "Origin guid"
// @Param        to    query  string  true  "Destination guid"
// @Success      200 {object} types.Distance
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /distance [get]
func (h *Handler) GetDistance(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetDistance")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetDistance"))

	req, err := api.DistanceRequestFromQuery(r)
	if err != nil {
		l.WarnContext(ctx, "Invalid distance params", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorFromService(w, r, err)
		return
	}

	distance, err := h.service.GetDistance(ctx, req.From, req.To)
	if err != nil {
		l.WarnContext(ctx, "Failed to compute distance", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "distance failed")
		api.ErrorFromService(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, distance)
}

// GetAllCities godoc
// @Summary      Stream every city
// @Description  Streams the whole collection as a JSON array.
// @Tags         Cities
// @Produce      json
// @Success      200 {array}  types.City
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /all-cities [get]
func (h *Handler) GetAllCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetAllCities")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetAllCities"))

	cities := h.service.AllCities(ctx)
	flusher, _ := w.(http.Flusher)

	started := false
	for i, c := range cities {
		js, err := json.Marshal(c)
		if err != nil {
			l.ErrorContext(ctx, "Failed to encode city", slog.String("guid", c.GUID), slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "encoding failed")
			if !started {
				api.ErrorResponse(w, r, http.StatusBadRequest, "Cannot write to client")
			}
			return
		}

		sep := []byte(",")
		if !started {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			sep = []byte("[")
			started = true
		}
		if _, err := w.Write(append(sep, js...)); err != nil {
			l.WarnContext(ctx, "Client went away while streaming", slog.Any("error", err))
			span.RecordError(err)
			return
		}
		if flusher != nil && (i+1)%flushEvery == 0 {
			flusher.Flush()
		}
	}

	if !started {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
		return
	}
	if _, err := w.Write([]byte("]")); err != nil {
		l.WarnContext(ctx, "Failed to terminate stream", slog.Any("error", err))
		return
	}
	span.SetAttributes(attribute.Int("result.count", len(cities)))
}

// GetCitiesGeoJSON godoc
// @Summary      Cities as GeoJSON
// @Description  Exports cities as a GeoJSON FeatureCollection of points. tag and isActive filter like /cities-by-tag but are optional.
// @Tags         Cities
// @Produce      json
// @Param        tag       query  string  false  "Exact tag"
// @Param        isActive  query  string  false  "true or false"
// @Success      200 {object} object
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /cities.geojson [get]
func (h *Handler) GetCitiesGeoJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetCitiesGeoJSON")
	defer span.End()

	fc, err := h.service.FeatureCollection(ctx, api.CityFilterFromQuery(r))
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to build feature collection", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorFromService(w, r, err)
		return
	}

	js, err := fc.MarshalJSON()
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode feature collection", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(js)
}
