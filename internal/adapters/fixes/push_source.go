package fixes

import (
	"context"
	"sync"

	"garage-tracker-service/internal/domain"
)

// Buffered fixes per watch; delivery beyond this is dropped, never blocked.
const pushBuffer = 64

// PushSource is a FixSource fed by an external transport, typically the HTTP
// fix-ingest endpoint the mobile shell posts to. Pushes arrive on one logical
// callback context and are forwarded to the active watcher in delivery order.
type PushSource struct {
	mu sync.Mutex
	ch chan domain.GeoPoint
}

func NewPushSource() *PushSource {
	return &PushSource{}
}

// Watch attaches a new delivery channel, replacing any previous one, and
// detaches it when ctx is cancelled.
func (s *PushSource) Watch(ctx context.Context) (<-chan domain.GeoPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan domain.GeoPoint, pushBuffer)
	s.ch = ch

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if s.ch == ch {
			s.ch = nil
		}
		s.mu.Unlock()
	}()

	return ch, nil
}

// Push forwards a fix to the active watcher. It reports false when no watcher
// is attached or the watcher's buffer is full; pushing never blocks the caller.
func (s *PushSource) Push(fix domain.GeoPoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		return false
	}

	select {
	case s.ch <- fix:
		return true
	default:
		return false
	}
}
