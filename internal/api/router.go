package api

import (
	"net/http"

	"garage-tracker-service/internal/adapters/fixes"
	"garage-tracker-service/internal/api/handlers"
	"garage-tracker-service/internal/ports"
	"garage-tracker-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters,
// except the push source that doubles as the fix-ingest transport).
func NewRouter(
	recorder *services.TrackRecorder,
	source *fixes.PushSource,
	routes ports.RouteRepository,
	store ports.StateStore,
) http.Handler {
	mux := http.NewServeMux()

	trackingHandler := &handlers.TrackingHandler{Recorder: recorder, Source: source}
	routesHandler := &handlers.RoutesHandler{Repo: routes}
	maintenanceHandler := &handlers.MaintenanceHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/tracking/start", trackingHandler.Start)
	mux.HandleFunc("/tracking/stop", trackingHandler.Stop)
	mux.HandleFunc("/tracking/status", trackingHandler.Status)
	mux.HandleFunc("/tracking/fix", trackingHandler.Fix)
	mux.HandleFunc("/routes", routesHandler.List)
	mux.HandleFunc("/routes/gpx", routesHandler.ExportGPX)
	mux.HandleFunc("/maintenance/alerts", maintenanceHandler.Alerts)

	return loggingMiddleware(mux)
}
