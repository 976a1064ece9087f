package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garage-tracker-service/internal/domain"
)

// SQLite-backed implementation of the RouteRepository port.
// Point logs are stored as a JSON column: routes are written once, read for
// export, and never queried by point.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

// SaveRoute stores a finalized route.
func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, route *domain.Route) error {
	if s.DB == nil {
		return errors.New("route repository: db is nil")
	}
	if route == nil {
		return errors.New("save route: route must be non-nil")
	}
	if route.ID == "" {
		return errors.New("save route: route id must be non-empty")
	}

	points, err := json.Marshal(route.Points)
	if err != nil {
		return fmt.Errorf("save route: encode points: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO routes (
		route_id,
		recorded_at,
		duration_seconds,
		distance_km,
		max_speed_kmh,
		avg_speed_kmh,
		points_json
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		route.ID,
		route.RecordedAt.UTC().Format(time.RFC3339),
		route.DurationSeconds,
		route.DistanceKm,
		route.MaxSpeedKmh,
		route.AvgSpeedKmh,
		string(points),
	)
	if err != nil {
		return fmt.Errorf("save route: insert routes table: %w", err)
	}

	return nil
}

// ListRoutes returns stored routes newest-first. Point logs are omitted;
// fetch a single route for the full track.
func (s *SqliteRouteRepository) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	query := `
	SELECT
		route_id,
		recorded_at,
		duration_seconds,
		distance_km,
		max_speed_kmh,
		avg_speed_kmh
	FROM routes
	ORDER BY recorded_at DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows.Scan, false)
		if err != nil {
			return nil, fmt.Errorf("list routes: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

// GetRoute returns one route with its full point log, or nil when absent.
func (s *SqliteRouteRepository) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	query := `
	SELECT
		route_id,
		recorded_at,
		duration_seconds,
		distance_km,
		max_speed_kmh,
		avg_speed_kmh,
		points_json
	FROM routes
	WHERE route_id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, id)

	route, err := scanRoute(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route %q: %w", id, err)
	}

	return route, nil
}

func scanRoute(scan func(dest ...any) error, withPoints bool) (*domain.Route, error) {
	var (
		route      domain.Route
		recordedAt string
		pointsJSON string
	)

	dest := []any{
		&route.ID,
		&recordedAt,
		&route.DurationSeconds,
		&route.DistanceKm,
		&route.MaxSpeedKmh,
		&route.AvgSpeedKmh,
	}
	if withPoints {
		dest = append(dest, &pointsJSON)
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("scan route: parse recorded_at %q: %w", recordedAt, err)
	}
	route.RecordedAt = ts

	if withPoints && pointsJSON != "" {
		if err := json.Unmarshal([]byte(pointsJSON), &route.Points); err != nil {
			return nil, fmt.Errorf("scan route: decode points: %w", err)
		}
	}

	return &route, nil
}
