package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"boxphys/internal/config"
	"boxphys/internal/debugdraw"
	"boxphys/internal/metrics"
	"boxphys/internal/physics"
	"boxphys/internal/world"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSim(t *testing.T, workers int, reg prometheus.Registerer) *world.World {
	t.Helper()
	cfg := config.Default()
	cfg.Workers = workers
	logger := zaptest.NewLogger(t)
	var m *metrics.Physics
	if reg != nil {
		m = metrics.NewPhysics(reg)
	}
	pw := physics.NewWorld(cfg, logger, m)
	t.Cleanup(pw.Close)
	return world.New(pw, logger)
}

func TestDigestIndependentOfWorkers(t *testing.T) {
	run := func(workers int) uint64 {
		sim := newSim(t, workers, nil)
		crates := sim.BuildArena(40, 7)
		sim.Start()
		for i := 0; i < 90; i++ {
			sim.Step(sim.TickSeconds())
		}
		return digest(crates)
	}
	assert.Equal(t, run(1), run(4))
}

func TestDigestFollowsSeed(t *testing.T) {
	a := newSim(t, 1, nil).BuildArena(10, 3)
	b := newSim(t, 1, nil).BuildArena(10, 3)
	assert.Equal(t, digest(a), digest(b))

	c := newSim(t, 1, nil).BuildArena(10, 4)
	assert.NotEqual(t, digest(a), digest(c))
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	sim := newSim(t, 1, reg)
	sim.BuildArena(5, 1)
	sim.Start()
	sim.Step(sim.TickSeconds())

	status := &runStatus{}
	status.update(sim)

	srv := httptest.NewServer(newRouter(reg, debugdraw.NewHub(nil), status, []string{"http://localhost:*"}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.EqualValues(t, 1, health["ticks"])
	assert.EqualValues(t, 5, health["bodies"])
	assert.Equal(t, sim.Physics.Session(), health["session"])

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "physics_tick_duration_seconds")
	assert.Contains(t, string(body), "physics_bodies 5")
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins(" a, ,b "))
	assert.Nil(t, splitOrigins(""))
}
