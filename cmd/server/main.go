package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"garage-tracker-service/internal/adapters/fixes"
	"garage-tracker-service/internal/adapters/repositories"
	"garage-tracker-service/internal/adapters/state"
	"garage-tracker-service/internal/api"
	"garage-tracker-service/internal/config"
	"garage-tracker-service/internal/services"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, push fix source) behind ports and
// starts the HTTP server hosting the track recorder.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/garage.db")
	seedPath := config.Get("SEED_PATH", "")
	stateKey := config.Get("STATE_KEY", state.DefaultStateKey)
	maxJumpKm := config.GetFloat("MAX_JUMP_KM", services.DefaultMaxJumpKm)
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := initAndSeed(db, seedPath, stateKey); err != nil {
		log.Fatal(err)
	}

	source := fixes.NewPushSource()
	filter := services.NewGeoFilter(maxJumpKm)
	routeRepo := repositories.NewSqliteRouteRepository(db)
	stateStore := state.NewSqliteStateStore(db, stateKey)
	recorder := services.NewTrackRecorder(source, filter, routeRepo)

	router := api.NewRouter(recorder, source, routeRepo, stateStore)

	log.Printf("Server listening addr=:%s max_jump_km=%.3f", port, filter.MaxJumpKm)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// Initialize schema on startup for local runs; seed the app-state blob only
// when a seed file is configured.
func initAndSeed(db *sql.DB, seedPath, stateKey string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); err != nil {
		log.Printf("Seed file %q not found, skipping", seedPath)
		return nil
	}

	if err := repositories.SeedStateFromJSON(db, seedPath, stateKey); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
