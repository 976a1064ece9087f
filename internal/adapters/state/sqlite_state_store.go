package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"garage-tracker-service/internal/domain"
)

// DefaultStateKey is the blob key the mobile shell has always written under.
const DefaultStateKey = "moto_app_v2"

// SQLite-backed store for the single app-state blob. The blob is opaque
// key/value text at the storage layer; structure only exists after decoding.
type SqliteStateStore struct {
	DB  *sql.DB
	Key string
}

func NewSqliteStateStore(db *sql.DB, key string) *SqliteStateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &SqliteStateStore{DB: db, Key: key}
}

// LoadAppState reads and decodes the persisted blob.
// A missing row is first-run steady state and yields an empty AppState.
func (s *SqliteStateStore) LoadAppState(ctx context.Context) (domain.AppState, error) {
	if s.DB == nil {
		return domain.AppState{}, errors.New("state store: db is nil")
	}

	var raw string
	query := `SELECT value FROM app_state WHERE key = ?;`
	err := s.DB.QueryRowContext(ctx, query, s.Key).Scan(&raw)
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
func (s *SqliteStateStore) SaveAppState(ctx context.Context, appState domain.AppState) error {
	if s.DB == nil {
		return errors.New("state store: db is nil")
	}

	data, err := domain.EncodeAppState(appState)
	if err != nil {
		return fmt.Errorf("save app state: %w", err)
	}

	query := `INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?);`
	if _, err := s.DB.ExecContext(ctx, query, s.Key, string(data)); err != nil {
		return fmt.Errorf("save app state: upsert app_state table: %w", err)
	}

	return nil
}
