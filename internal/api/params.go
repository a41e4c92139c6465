package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/FACorreiaa/go-city-radius/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the validate tags of s and turns failures into an
// ErrInvalidArgument naming the offending fields.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", types.ErrInvalidArgument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing parameter: %s", paramName(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("parameter %s must satisfy %s=%s", paramName(fe.Field()), fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("%w: %s", types.ErrInvalidArgument, strings.Join(msgs, ", "))
}

func paramName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// CityFilterFromQuery reads tag and isActive. It does not require either.
func CityFilterFromQuery(r *http.Request) types.CityFilter {
	q := r.URL.Query()
	return types.CityFilter{
		Tag:      q.Get("tag"),
		IsActive: q.Get("isActive"),
	}
}

func DistanceRequestFromQuery(r *http.Request) (types.DistanceRequest, error) {
	q := r.URL.Query()
	req := types.DistanceRequest{
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	return req, ValidateStruct(req)
}

func AreaRequestFromQuery(r *http.Request) (types.AreaRequest, error) {
	q := r.URL.Query()
	req := types.AreaRequest{From: q.Get("from")}

	raw := q.Get("distance")
	if raw == "" {
		return req, fmt.Errorf("%w: missing parameter: distance", types.ErrInvalidArgument)
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return req, fmt.Errorf("%w: parameter distance must be a number, got %q", types.ErrInvalidArgument, raw)
	}
	req.Distance = d
	return req, ValidateStruct(req)
}
