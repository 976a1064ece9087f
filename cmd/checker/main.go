package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"garage-tracker-service/internal/adapters/dispatch"
	"garage-tracker-service/internal/adapters/repositories"
	"garage-tracker-service/internal/adapters/state"
	"garage-tracker-service/internal/config"
	"garage-tracker-service/internal/platform/db"
	"garage-tracker-service/internal/ports"
	"garage-tracker-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// checker is the periodic maintenance evaluator. A host scheduler (cron, a
// systemd timer) runs it once per wake; it loads the ledger, evaluates every
// item against today, dispatches the due-soon alerts and exits. Missing or
// empty state is steady-state on first run, not a failure.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stateStore, cleanup, err := buildStateStore(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	dispatcher, err := buildDispatcher(ctx)
	if err != nil {
		log.Fatal(err)
	}

	appState, err := stateStore.LoadAppState(ctx)
	if err != nil {
		// A corrupt blob degrades to "emit nothing"; the next UI save repairs it.
		log.Printf("checker: load app state failed, nothing to evaluate: %v", err)
		return
	}

	alerts := services.EvaluateMaintenance(appState, time.Now())
	if len(alerts) == 0 {
		log.Printf("checker: vehicles=%d alerts=0", len(appState.Bikes))
		return
	}

	dispatched := 0
	for _, alert := range alerts {
		if err := dispatcher.Dispatch(ctx, alert); err != nil {
			log.Printf("checker: dispatch failed key=%s err=%v", alert.Key(), err)
			continue
		}
		dispatched++
	}

	log.Printf("checker: vehicles=%d alerts=%d dispatched=%d", len(appState.Bikes), len(alerts), dispatched)
}

// buildStateStore selects Postgres when DATABASE_URL is set, falling back to
// the on-device SQLite file the server writes.
func buildStateStore(ctx context.Context) (ports.StateStore, func(), error) {
	stateKey := config.Get("STATE_KEY", state.DefaultStateKey)

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("build state store: %w", err)
		}
		return state.NewSQLStateStore(pg, stateKey), func() { pg.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/garage.db")
	sqlite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("build state store: open sqlite database %q: %w", dbPath, err)
	}
	if err := repositories.InitSchema(sqlite); err != nil {
		sqlite.Close()
		return nil, nil, fmt.Errorf("build state store: %w", err)
	}

	return state.NewSqliteStateStore(sqlite, stateKey), func() { sqlite.Close() }, nil
}

// buildDispatcher selects Redis-backed idempotent dispatch when REDIS_ADDR is
// set; otherwise alerts go to the process log.
func buildDispatcher(ctx context.Context) (ports.AlertDispatcher, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return dispatch.LogDispatcher{}, nil
	}

	client, err := dispatch.DialRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), config.GetInt("REDIS_DB", 0))
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	channel := config.Get("ALERT_CHANNEL", dispatch.DefaultAlertChannel)
	return dispatch.NewRedisDispatcher(client, channel, dispatch.DefaultDedupTTL), nil
}
