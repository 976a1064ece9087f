package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"garage-tracker-service/internal/domain"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteRouteRepositorySaveAndGet(t *testing.T) {
	repo := NewSqliteRouteRepository(openTestDB(t))
	ctx := context.Background()

	route := &domain.Route{
		ID:              "r-1",
		RecordedAt:      time.Date(2025, 5, 28, 17, 30, 0, 0, time.UTC),
		DurationSeconds: 1800,
		DistanceKm:      24.5,
		MaxSpeedKmh:     96,
		AvgSpeedKmh:     49,
		Points: []domain.GeoPoint{
			{Latitude: 45.0, Longitude: 9.0, AltitudeM: 120, SpeedKmh: 40, TimestampMs: 1748453400000},
			{Latitude: 45.0005, Longitude: 9.0, AltitudeM: 121, SpeedKmh: 42, TimestampMs: 1748453402000},
		},
	}

	if err := repo.SaveRoute(ctx, route); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetRoute(ctx, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("route not found after save")
	}
	if got.DistanceKm != 24.5 || got.DurationSeconds != 1800 {
		t.Fatalf("stats = %+v", got)
	}
	if !got.RecordedAt.Equal(route.RecordedAt) {
		t.Fatalf("recorded_at = %v, want %v", got.RecordedAt, route.RecordedAt)
	}
	if len(got.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(got.Points))
	}
	if got.Points[1].SpeedKmh != 42 {
		t.Fatalf("point decode = %+v", got.Points[1])
	}
}

func TestSqliteRouteRepositoryGetMissingReturnsNil(t *testing.T) {
	repo := NewSqliteRouteRepository(openTestDB(t))

	got, err := repo.GetRoute(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing route, got %+v", got)
	}
}

func TestSqliteRouteRepositoryListNewestFirst(t *testing.T) {
	repo := NewSqliteRouteRepository(openTestDB(t))
	ctx := context.Background()

	older := &domain.Route{ID: "r-old", RecordedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), Points: []domain.GeoPoint{}}
	newer := &domain.Route{ID: "r-new", RecordedAt: time.Date(2025, 5, 28, 8, 0, 0, 0, time.UTC), Points: []domain.GeoPoint{}}

	for _, r := range []*domain.Route{older, newer} {
		if err := repo.SaveRoute(ctx, r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	routes, err := repo.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].ID != "r-new" || routes[1].ID != "r-old" {
		t.Fatalf("order = %q, %q", routes[0].ID, routes[1].ID)
	}
	// Listing omits the point logs.
	if len(routes[0].Points) != 0 {
		t.Fatalf("list leaked %d points", len(routes[0].Points))
	}
}
