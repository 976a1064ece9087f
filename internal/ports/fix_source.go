package ports

import (
	"context"
	"garage-tracker-service/internal/domain"
)

// Port: a boundary for position-fix delivery.
// Fixes arrive sequentially on the returned channel, in delivery order (not
// necessarily timestamp order). The source stops delivering when ctx is
// cancelled; it may deliver nothing at all if access is unavailable.
type FixSource interface {
	// Watch begins fix delivery until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.GeoPoint, error)
}
