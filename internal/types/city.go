package types

import (
	"time"

	"github.com/paulmach/orb"
)

// City matches a single record of the cities data file.
type City struct {
	GUID      string   `json:"guid" example:"ed354fef-31d3-44a9-b92f-4a3bd7eb0408"`
	IsActive  bool     `json:"isActive" example:"true"`
	Address   string   `json:"address" example:"914 Jackson Place, Snowville, Alabama, 9633"`
	Latitude  float64  `json:"latitude" example:"-1.409358"`
	Longitude float64  `json:"longitude" example:"-37.257104"`
	Tags      []string `json:"tags" example:"excepteur,voluptate"`
}

// Point returns the city location as an orb point (lon, lat).
func (c City) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// HasTag reports whether the city carries the exact tag.
func (c City) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CitiesResponse is the envelope used by list endpoints.
type CitiesResponse struct {
	Cities []City `json:"cities"`
}

// DistanceUnitKm is the only unit the service reports.
const DistanceUnitKm = "km"

// Distance pairs two cities with the great-circle distance between them.
type Distance struct {
	From     City    `json:"from"`
	To       City    `json:"to"`
	Unit     string  `json:"unit" example:"km"`
	Distance float64 `json:"distance" example:"1833.96"`
}

// CityFilter holds the optional query parameters of /cities-by-tag.
type CityFilter struct {
	Tag      string `json:"tag,omitempty"`
	IsActive string `json:"isActive,omitempty"`
}

// DistanceRequest holds the query parameters of /distance.
type DistanceRequest struct {
	From string `validate:"required"`
	To   string `validate:"required"`
}

// AreaRequest holds the query parameters of /area.
type AreaRequest struct {
	From     string  `validate:"required"`
	Distance float64 `validate:"gte=0"`
}

type AreaTaskStatus string

const (
	AreaTaskPending AreaTaskStatus = "pending"
	AreaTaskDone    AreaTaskStatus = "done"
	AreaTaskError   AreaTaskStatus = "error"
)

// AreaTask is the handle of a radius query computed in the background.
type AreaTask struct {
	ID          string         `json:"id" example:"2152f96f-50c7-4d76-9e18-f7033bd14428"`
	Status      AreaTaskStatus `json:"status" example:"done"`
	From        string         `json:"from"`
	Distance    float64        `json:"distance"`
	Cities      []City         `json:"cities,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// AreaResult is the body of a finished area query.
type AreaResult struct {
	ID     string         `json:"id"`
	Status AreaTaskStatus `json:"status"`
	Cities []City         `json:"cities"`
}

// AreaAccepted is returned by /area while the query runs.
type AreaAccepted struct {
	ResultsURL string         `json:"resultsUrl" example:"http://127.0.0.1:8080/area-result/2152f96f-50c7-4d76-9e18-f7033bd14428"`
	ID         string         `json:"id"`
	Status     AreaTaskStatus `json:"status"`
}

// Response is the generic error body.
type Response struct {
	Error     string `json:"error,omitempty" example:"Unauthorized - Invalid token"`
	RequestID string `json:"request_id,omitempty"`
}
