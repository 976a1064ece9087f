package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"garage-tracker-service/internal/adapters/fixes"
	"garage-tracker-service/internal/api/dto"
	"garage-tracker-service/internal/domain"
	"garage-tracker-service/internal/services"
)

// TrackingHandler exposes the recorder's start/stop control surface, the fix
// ingest endpoint, and the status snapshot the UI polls.
type TrackingHandler struct {
	Recorder *services.TrackRecorder
	Source   *fixes.PushSource
}

// Start begins a new recording. Starting again while tracking discards the
// in-flight session; the UI guards against accidental double starts.
func (h *TrackingHandler) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.Recorder.Start(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse(h.Recorder.Status()))
}

// Stop ends the recording and returns the finalized route summary.
func (h *TrackingHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	route, err := h.Recorder.Stop(r.Context())
	if errors.Is(err, services.ErrNotTracking) {
		writeError(w, r, http.StatusConflict, "not tracking")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(route))
}

// Status returns the current recorder snapshot. Works for late-attaching
// observers: the totals live with the recorder, not with any one client.
func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse(h.Recorder.Status()))
}

// Fix ingests one position sample from the fix-source transport.
// Fixes arriving while idle are dropped, not errors.
func (h *TrackingHandler) Fix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.FixRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	queued := h.Source.Push(domain.GeoPoint{
		Latitude:    req.Lat,
		Longitude:   req.Lng,
		AltitudeM:   req.Alt,
		SpeedKmh:    req.Speed,
		TimestampMs: req.TimeMs,
	})

	writeJSON(w, r, http.StatusOK, dto.FixResponse{Queued: queued})
}

func statusResponse(snap services.StatusSnapshot) dto.StatusResponse {
	return dto.StatusResponse{
		State:       snap.State.String(),
		DistanceKm:  snap.DistanceKm,
		Display:     snap.Display,
		PointCount:  snap.PointCount,
		MaxSpeedKmh: snap.MaxSpeedKmh,
		StartedAtMs: snap.StartedAtMs,
	}
}

func routeResponse(route *domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		RouteID:         route.ID,
		RecordedAt:      route.RecordedAt,
		DurationSeconds: route.DurationSeconds,
		DistanceKm:      route.DistanceKm,
		MaxSpeedKmh:     route.MaxSpeedKmh,
		AvgSpeedKmh:     route.AvgSpeedKmh,
		PointCount:      len(route.Points),
	}
}
