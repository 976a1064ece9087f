package ports

import (
	"context"
	"garage-tracker-service/internal/domain"
)

// Port: a boundary for persisting finished recordings.
type RouteRepository interface {
	// SaveRoute stores a finalized route, replacing any previous row with the same id.
	SaveRoute(ctx context.Context, route *domain.Route) error
	// ListRoutes returns stored routes newest-first, without their point logs.
	ListRoutes(ctx context.Context) ([]*domain.Route, error)
	// GetRoute returns one route with its full point log, or nil when absent.
	GetRoute(ctx context.Context, id string) (*domain.Route, error)
}
