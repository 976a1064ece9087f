package ports

import (
	"context"
	"garage-tracker-service/internal/domain"
)

// Port: a boundary for user-visible maintenance alerts.
// Presentation and cross-invocation de-duplication belong to implementations;
// callers invoke Dispatch at most once per due item per evaluation pass and
// supply a stable identity through Alert.Key.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert domain.Alert) error
}
