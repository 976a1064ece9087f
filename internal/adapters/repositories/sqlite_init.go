package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"garage-tracker-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAppStateQuery := `
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		max_speed_kmh REAL NOT NULL,
		avg_speed_kmh REAL NOT NULL,
		points_json TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_routes_recorded_at
	ON routes(recorded_at);
	`

	statements := []string{
		createAppStateQuery,
		createRoutesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedStateFromJSON loads an app-state blob from a JSON file and stores it
// under the given key. The file must decode as a valid AppState; the stored
// text is the file's content re-encoded in the shared blob format.
func SeedStateFromJSON(db *sql.DB, jsonPath, key string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed app state: read %q: %w", jsonPath, err)
	}

	appState, err := domain.DecodeAppState(raw)
	if err != nil {
		return fmt.Errorf("seed app state: %w", err)
	}

	data, err := domain.EncodeAppState(appState)
	if err != nil {
		return fmt.Errorf("seed app state: %w", err)
	}

	query := `INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?);`
	if _, err := db.Exec(query, key, string(data)); err != nil {
		return fmt.Errorf("seed app state: upsert app_state table: %w", err)
	}

	return nil
}
