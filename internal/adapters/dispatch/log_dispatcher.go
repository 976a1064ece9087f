package dispatch

import (
	"context"
	"log"

	"garage-tracker-service/internal/domain"
)

// LogDispatcher writes alerts to the process log. It is the fallback when no
// Redis is configured and carries no de-duplication of its own.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, alert domain.Alert) error {
	log.Printf("maintenance alert key=%s vehicle=%q msg=%q", alert.Key(), alert.VehicleName, alert.Message)
	return nil
}
