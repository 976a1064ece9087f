package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"garage-tracker-service/internal/domain"
	"garage-tracker-service/internal/ports"

	"github.com/google/uuid"
)

// ErrNotTracking is returned by Stop when no recording is active.
var ErrNotTracking = errors.New("track recorder: not tracking")

// TrackerState is the recorder's lifecycle state.
type TrackerState int

const (
	StateIdle TrackerState = iota
	StateTracking
)

func (s TrackerState) String() string {
	if s == StateTracking {
		return "tracking"
	}
	return "idle"
}

// StatusSnapshot is what observers read while (or after) a recording runs.
// It is a copy: reading it never blocks fix handling beyond a mutex-scoped
// snapshot, and a late-attaching observer sees the current totals.
type StatusSnapshot struct {
	State       TrackerState
	DistanceKm  float64
	Display     string
	PointCount  int
	MaxSpeedKmh float64
	StartedAtMs int64
	LastFix     *domain.GeoPoint
}

// TrackRecorder runs the Idle/Tracking state machine around a TrackingSession.
// It is the session's only writer: fixes are consumed sequentially from one
// channel, so no two fixes are ever processed concurrently.
type TrackRecorder struct {
	source ports.FixSource
	filter *GeoFilter
	routes ports.RouteRepository
	now    func() time.Time

	mu      sync.Mutex
	state   TrackerState
	session domain.TrackingSession
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewTrackRecorder(source ports.FixSource, filter *GeoFilter, routes ports.RouteRepository) *TrackRecorder {
	if filter == nil {
		filter = NewGeoFilter(0)
	}
	return &TrackRecorder{
		source: source,
		filter: filter,
		routes: routes,
		now:    time.Now,
	}
}

// Start transitions to Tracking and always resets the session, discarding any
// prior values: callers that care about continuity must guard against a
// double start themselves. An unavailable fix source is non-fatal; the
// recorder enters Tracking and simply receives no updates until stopped.
func (t *TrackRecorder) Start() error {
	t.mu.Lock()
	if t.state == StateTracking {
		cancel, done := t.cancel, t.done
		t.mu.Unlock()
		cancel()
		<-done
		t.mu.Lock()
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	ch, err := t.source.Watch(watchCtx)
	if err != nil {
		log.Printf("track recorder: fix source unavailable: %v (tracking continues without updates)", err)
		ch = nil
	}

	t.session.Reset(t.now().UnixMilli())
	t.state = StateTracking
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(watchCtx, ch, t.done)

	t.mu.Unlock()
	return nil
}

// Stop halts fix delivery and transitions to Idle. Delivery is torn down
// before the session is finalized, so no fix is processed after Stop returns.
// Session values remain queryable until the next Start; the finalized route
// is persisted when a repository is configured.
func (t *TrackRecorder) Stop(ctx context.Context) (*domain.Route, error) {
	t.mu.Lock()
	if t.state != StateTracking {
		t.mu.Unlock()
		return nil, ErrNotTracking
	}
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	cancel()
	<-done

	t.mu.Lock()
	t.state = StateIdle
	t.cancel = nil
	t.done = nil
	route := t.session.Finalize(uuid.NewString(), t.now())
	t.mu.Unlock()

	if t.routes != nil {
		if err := t.routes.SaveRoute(ctx, route); err != nil {
			// Persistence failure does not lose the recording: the route is
			// still returned and the session stays readable.
			log.Printf("track recorder: save route failed: id=%s err=%v", route.ID, err)
		}
	}

	return route, nil
}

// Status returns a copy of the current recorder state and session totals.
func (t *TrackRecorder) Status() StatusSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := StatusSnapshot{
		State:       t.state,
		DistanceKm:  t.session.AccumulatedKm,
		Display:     fmt.Sprintf("%.2f km", t.session.AccumulatedKm),
		PointCount:  len(t.session.Points),
		MaxSpeedKmh: t.session.MaxSpeedKmh,
		StartedAtMs: t.session.StartedAtMs,
	}
	if t.session.LastFix != nil {
		fix := *t.session.LastFix
		snap.LastFix = &fix
	}
	return snap
}

// Points returns a copy of the session's point log for observers.
func (t *TrackRecorder) Points() []domain.GeoPoint {
	t.mu.Lock()
	defer t.mu.Unlock()

	points := make([]domain.GeoPoint, len(t.session.Points))
	copy(points, t.session.Points)
	return points
}

func (t *TrackRecorder) run(ctx context.Context, ch <-chan domain.GeoPoint, done chan struct{}) {
	defer close(done)

	if ch == nil {
		<-ctx.Done()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-ch:
			if !ok {
				// Source went away mid-recording: stay in Tracking with no
				// further updates until the owner stops the recorder.
				log.Printf("track recorder: fix stream closed, tracking continues without updates")
				<-ctx.Done()
				return
			}
			t.handleFix(fix)
		}
	}
}

func (t *TrackRecorder) handleFix(fix domain.GeoPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateTracking {
		return
	}

	_, deltaKm := t.filter.Accept(t.session.LastFix, fix)
	t.session.Append(fix, deltaKm)
}
