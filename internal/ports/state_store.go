package ports

import (
	"context"
	"garage-tracker-service/internal/domain"
)

// Port: a boundary for the persisted application-state blob.
// The maintenance evaluator only loads; saving exists for seeding and for
// the UI layer that owns ledger writes.
type StateStore interface {
	// LoadAppState returns the persisted state.
	// A missing blob yields an empty state, not an error.
	LoadAppState(ctx context.Context) (domain.AppState, error)
	// SaveAppState replaces the persisted state blob.
	SaveAppState(ctx context.Context, state domain.AppState) error
}
