package services

import "garage-tracker-service/internal/domain"

// Default displacement cutoff in kilometers. Tuned for a 2 s / 2 m sampling
// cadence: a jump of 200 m or more between consecutive fixes at that cadence
// is assumed to be GPS noise (glitch, multipath, provider switch), not travel.
const DefaultMaxJumpKm = 0.2

// GeoFilter decides whether the displacement between consecutive fixes is
// plausible and returns its distance contribution. This is outlier rejection,
// not a minimum-movement filter: small deltas pass, large ones are dropped.
type GeoFilter struct {
	MaxJumpKm float64
}

// NewGeoFilter builds a filter with the given cutoff; non-positive values
// fall back to DefaultMaxJumpKm.
func NewGeoFilter(maxJumpKm float64) *GeoFilter {
	if maxJumpKm <= 0 {
		maxJumpKm = DefaultMaxJumpKm
	}
	return &GeoFilter{MaxJumpKm: maxJumpKm}
}

// Accept evaluates the displacement from prev to cur.
// With no previous fix the current one is accepted as the new anchor with
// zero contribution. A displacement at or above the cutoff is rejected with
// zero contribution; the caller still re-anchors on the rejected fix.
func (f *GeoFilter) Accept(prev *domain.GeoPoint, cur domain.GeoPoint) (accepted bool, deltaKm float64) {
	if prev == nil {
		return true, 0
	}

	d := domain.Haversine(*prev, cur)
	if d >= f.MaxJumpKm {
		return false, 0
	}
	return true, d
}
