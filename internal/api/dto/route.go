package dto

import "time"

type RouteResponse struct {
	RouteID         string    `json:"route_id"`
	RecordedAt      time.Time `json:"recorded_at"`
	DurationSeconds int       `json:"duration_seconds"`
	DistanceKm      float64   `json:"distance_km"`
	MaxSpeedKmh     float64   `json:"max_speed_kmh"`
	AvgSpeedKmh     float64   `json:"avg_speed_kmh"`
	PointCount      int       `json:"point_count"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
