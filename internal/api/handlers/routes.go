package handlers

import (
	"log"
	"net/http"
	"strings"

	"garage-tracker-service/internal/api/dto"
	"garage-tracker-service/internal/export"
	"garage-tracker-service/internal/ports"
)

// RoutesHandler serves the stored recordings.
type RoutesHandler struct {
	Repo ports.RouteRepository
}

// List returns stored route summaries, newest first.
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	routes, err := h.Repo.ListRoutes(r.Context())
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, routeResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ExportGPX renders one stored route as a GPX document.
func (h *RoutesHandler) ExportGPX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	route, err := h.Repo.GetRoute(r.Context(), id)
	if err != nil {
		log.Printf("get route failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if route == nil {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}

	body := export.GPX(route)
	if body == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "route has no points")
		return
	}

	writeXML(w, r, "application/gpx+xml", body)
}
