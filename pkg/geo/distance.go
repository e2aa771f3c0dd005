package geo

import "math"

// Earth radius constants used by the haversine formula.
const (
	EarthRadiusKm    = 6371.0
	EarthRadiusMiles = 3959.0
)

// Unit selects the distance unit for Haversine.
type Unit string

const (
	UnitKm    Unit = "km"
	UnitMiles Unit = "miles"
)

// Haversine returns the great-circle distance between two coordinates,
// rounded to one decimal place. Symmetric in its endpoints; zero for
// identical points.
func Haversine(aLat, aLng, bLat, bLng float64, unit Unit) float64 {
	lat1 := toRadians(aLat)
	lat2 := toRadians(bLat)
	deltaLat := toRadians(bLat - aLat)
	deltaLng := toRadians(bLng - aLng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	radius := EarthRadiusKm
	if unit == UnitMiles {
		radius = EarthRadiusMiles
	}

	return roundOneDecimal(radius * c)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
