package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"garage-tracker-service/internal/domain"
	"garage-tracker-service/internal/platform/obs"
)

// Postgres-backed variant of the app-state store, used when the checker runs
// against a shared database instead of the on-device SQLite file.
type SQLStateStore struct {
	DB  *sql.DB
	Key string
}

func NewSQLStateStore(db *sql.DB, key string) *SQLStateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &SQLStateStore{DB: db, Key: key}
}

// LoadAppState reads and decodes the persisted blob.
func (s *SQLStateStore) LoadAppState(ctx context.Context) (_ domain.AppState, err error) {
	defer obs.Time(ctx, "state.LoadAppState")(&err)

	if s.DB == nil {
		return domain.AppState{}, errors.New("state store: db is nil")
	}

	var raw string
	query := `SELECT value FROM app_state WHERE key = $1;`
	err = s.DB.QueryRowContext(ctx, query, s.Key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AppState{}, nil
	}
	if err != nil {
		return domain.AppState{}, fmt.Errorf("load app state: query app_state table: %w", err)
	}

	appState, err := domain.DecodeAppState([]byte(raw))
	if err != nil {
		return domain.AppState{}, fmt.Errorf("load app state: %w", err)
	}
	return appState, nil
}

// SaveAppState replaces the persisted blob.
func (s *SQLStateStore) SaveAppState(ctx context.Context, appState domain.AppState) (err error) {
	defer obs.Time(ctx, "state.SaveAppState")(&err)

	if s.DB == nil {
		return errors.New("state store: db is nil")
	}

	data, err := domain.EncodeAppState(appState)
	if err != nil {
		return fmt.Errorf("save app state: %w", err)
	}

	query := `
	INSERT INTO app_state (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := s.DB.ExecContext(ctx, query, s.Key, string(data)); err != nil {
		return fmt.Errorf("save app state: upsert app_state table: %w", err)
	}

	return nil
}
