// Package api exposes the read-only status surface used in interval mode.
package api

import (
	"encoding/json"
	"net/http"

	"ratewatch/internal/monitor"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cycle *monitor.Cycle) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/setpoints", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cycle.Setpoints())
	})
	router.Get("/api/v1/observations/latest", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cycle.LatestObservations())
	})
	return router
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
