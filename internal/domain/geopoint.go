package domain

import "math"

// Mean Earth radius in kilometers, used for great-circle distance.
const earthRadiusKm = 6371

// A single reported position sample. Immutable once recorded.
// JSON field names match the wire format the mobile shell produces.
type GeoPoint struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	AltitudeM   float64 `json:"alt"`
	SpeedKmh    float64 `json:"speed"`
	TimestampMs int64   `json:"time"`
}

// Haversine returns the great-circle distance between two fixes in kilometers.
func Haversine(from, to GeoPoint) float64 {
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Latitude*math.Pi/180)*math.Cos(to.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
