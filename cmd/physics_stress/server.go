package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"boxphys/internal/debugdraw"
	"boxphys/internal/world"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// runStatus is the simulation state the HTTP side may read.
type runStatus struct {
	mu        sync.RWMutex
	session   string
	ticks     uint64
	dropped   uint64
	colliders int
	bodies    int
}

func (s *runStatus) update(w *world.World) {
	s.mu.Lock()
	s.session = w.Physics.Session()
	s.ticks = w.Ticks()
	s.dropped = w.Dropped()
	s.colliders = w.Physics.ColliderCount()
	s.bodies = w.Physics.BodyCount()
	s.mu.Unlock()
}

func (s *runStatus) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	body := map[string]any{
		"status":        "ok",
		"session":       s.session,
		"ticks":         s.ticks,
		"dropped_ticks": s.dropped,
		"colliders":     s.colliders,
		"bodies":        s.bodies,
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func newRouter(reg *prometheus.Registry, hub *debugdraw.Hub, status *runStatus, origins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", status.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/debug/boxes", hub.ServeHTTP)
	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
