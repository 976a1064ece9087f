package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"garage-tracker-service/internal/api/dto"
	"garage-tracker-service/internal/ports"
	"garage-tracker-service/internal/services"
)

// MaintenanceHandler exposes a dry-run of the maintenance evaluation: the
// same rules the periodic checker applies, without dispatching anything.
type MaintenanceHandler struct {
	Store ports.StateStore
}

// Alerts evaluates the ledger against today (or an explicit ?today=YYYY-MM-DD)
// and returns the due-soon alerts as JSON.
func (h *MaintenanceHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	today := time.Now()
	if v := strings.TrimSpace(r.URL.Query().Get("today")); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "today must be YYYY-MM-DD")
			return
		}
		today = parsed
	}

	state, err := h.Store.LoadAppState(r.Context())
	if err != nil {
		log.Printf("load app state failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	alerts := services.EvaluateMaintenance(state, today)

	res := dto.ListAlertsResponse{Alerts: make([]dto.AlertResponse, 0, len(alerts))}
	for _, a := range alerts {
		res.Alerts = append(res.Alerts, dto.AlertResponse{
			Vehicle: a.VehicleName,
			Item:    a.ItemKey,
			Message: a.Message,
			Key:     a.Key(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
