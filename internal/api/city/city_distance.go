package city

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the sphere radius used for every distance the service reports.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in km between two orb points,
// rounded to 2 decimals.
func Haversine(from, to orb.Point) float64 {
	lat1 := degToRad(from.Lat())
	lon1 := degToRad(from.Lon())
	lat2 := degToRad(to.Lat())
	lon2 := degToRad(to.Lon())

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Pow(math.Sin(dLon/2), 2)
	// rounding can push a just outside [0, 1] for near-antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return roundTo2(EarthRadiusKm * c)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
