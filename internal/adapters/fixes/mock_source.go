package fixes

import (
	"context"

	"garage-tracker-service/internal/domain"
)

// MockFixSource replays a scripted fix sequence for tests. A non-nil Err is
// returned from Watch to exercise the recorder's degraded path.
type MockFixSource struct {
	Fixes []domain.GeoPoint
	Err   error
}

func (m *MockFixSource) Watch(ctx context.Context) (<-chan domain.GeoPoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	ch := make(chan domain.GeoPoint, len(m.Fixes))
	go func() {
		defer close(ch)
		for _, fix := range m.Fixes {
			select {
			case ch <- fix:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
