package domain

import "time"

// TrackingSession accumulates distance and the ordered point log for one
// recording. It is owned exclusively by the track recorder: the recorder is
// the only writer, observers read copies.
//
// AccumulatedKm is non-decreasing while a recording is active; it is reset
// exactly once, when the next recording starts.
type TrackingSession struct {
	AccumulatedKm float64
	Points        []GeoPoint
	LastFix       *GeoPoint
	StartedAtMs   int64
	MaxSpeedKmh   float64
}

// Reset clears all session values for a fresh recording.
func (s *TrackingSession) Reset(nowMs int64) {
	s.AccumulatedKm = 0
	s.Points = nil
	s.LastFix = nil
	s.StartedAtMs = nowMs
	s.MaxSpeedKmh = 0
}

// Append records a delivered fix. Every fix is retained in the point log and
// becomes the new anchor, whether or not it contributed distance; deltaKm is
// zero for rejected displacements.
func (s *TrackingSession) Append(fix GeoPoint, deltaKm float64) {
	s.AccumulatedKm += deltaKm
	s.Points = append(s.Points, fix)
	anchor := fix
	s.LastFix = &anchor
	if fix.SpeedKmh > s.MaxSpeedKmh {
		s.MaxSpeedKmh = fix.SpeedKmh
	}
}

// A finished recording, produced when tracking stops.
// Immutable result data; contains no behavior beyond derived stats.
type Route struct {
	ID              string
	RecordedAt      time.Time
	DurationSeconds int
	DistanceKm      float64
	MaxSpeedKmh     float64
	AvgSpeedKmh     float64
	Points          []GeoPoint
}

// Finalize builds a Route snapshot from the current session values without
// clearing them: the session stays queryable until the next Reset.
func (s *TrackingSession) Finalize(id string, now time.Time) *Route {
	duration := 0
	if s.StartedAtMs > 0 {
		duration = int((now.UnixMilli() - s.StartedAtMs) / 1000)
	}

	avg := 0.0
	if duration > 0 {
		avg = s.AccumulatedKm / (float64(duration) / 3600)
	}

	points := make([]GeoPoint, len(s.Points))
	copy(points, s.Points)

	return &Route{
		ID:              id,
		RecordedAt:      now,
		DurationSeconds: duration,
		DistanceKm:      s.AccumulatedKm,
		MaxSpeedKmh:     s.MaxSpeedKmh,
		AvgSpeedKmh:     avg,
		Points:          points,
	}
}
