package dto

// FixRequest mirrors the wire format the mobile shell posts for each
// position sample.
type FixRequest struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Alt    float64 `json:"alt"`
	Speed  float64 `json:"speed"`
	TimeMs int64   `json:"time"`
}

type FixResponse struct {
	Queued bool `json:"queued"`
}

type StatusResponse struct {
	State       string  `json:"state"`
	DistanceKm  float64 `json:"distance_km"`
	Display     string  `json:"display"`
	PointCount  int     `json:"point_count"`
	MaxSpeedKmh float64 `json:"max_speed_kmh"`
	StartedAtMs int64   `json:"started_at_ms"`
}
