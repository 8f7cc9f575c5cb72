package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/internal/metrics"
	"github.com/katalvlaran/antroute/internal/runner"
)

func setup(t *testing.T) (*runner.Runner, http.Handler) {
	t.Helper()
	opts := aco.DefaultOptions()
	opts.NumAnts = 4
	vs := []aco.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	e, err := aco.New(vs, opts)
	require.NoError(t, err)

	rec := metrics.New()
	r := runner.New(e, runner.Config{}, runner.WithMetrics(rec))

	return r, NewHandler(r, Options{Metrics: rec.Handler(), RemoveRadius: 2})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())

	return v
}

func TestHealth(t *testing.T) {
	_, h := setup(t)
	rr := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rr)["status"])
}

func TestStatsAndBest_BeforeFirstIteration(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Nil(t, raw["best_length"])
	assert.Nil(t, raw["min_length"])
	assert.Equal(t, "IDLE", raw["phase"])

	rr = do(t, h, http.MethodGet, "/best", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"path":null,"length":null}`, rr.Body.String())
}

func TestStatsBestPaths_AfterIteration(t *testing.T) {
	r, h := setup(t)
	st, err := r.Step()
	require.NoError(t, err)

	stats := decode[statsResponse](t, do(t, h, http.MethodGet, "/stats", ""))
	require.NotNil(t, stats.BestLength)
	assert.Equal(t, st.BestLength, *stats.BestLength)
	assert.Equal(t, 4, stats.PathsCount)
	assert.Equal(t, 1, stats.Iteration)

	best := decode[tourResponse](t, do(t, h, http.MethodGet, "/best", ""))
	require.NoError(t, aco.ValidateTour(best.Path, 4))

	paths := decode[[]tourResponse](t, do(t, h, http.MethodGet, "/paths", ""))
	assert.Len(t, paths, 4)

	ph := decode[pheromoneResponse](t, do(t, h, http.MethodGet, "/pheromones", ""))
	assert.Equal(t, 4, ph.Size)
	require.Len(t, ph.Levels, 4)
	assert.Zero(t, ph.Levels[2][2])
}

func TestPatchConfig(t *testing.T) {
	r, h := setup(t)

	rr := do(t, h, http.MethodPatch, "/config", `{"alpha":2,"ants":9,"evaporation_rate":0.25}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	o := r.Snapshot().Options
	assert.Equal(t, 2.0, o.Alpha)
	assert.Equal(t, 9, o.NumAnts)
	assert.Equal(t, 0.25, o.EvaporationRate)

	rr = do(t, h, http.MethodPatch, "/config", `{"evaporation_rate":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodPatch, "/config", `{"gamma":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPatch, "/config", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVertices(t *testing.T) {
	r, h := setup(t)
	_, err := r.Step()
	require.NoError(t, err)

	rr := do(t, h, http.MethodPost, "/vertices", `{"x":5,"y":5}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	vs := decode[[]aco.Vertex](t, do(t, h, http.MethodGet, "/vertices", ""))
	assert.Len(t, vs, 5)
	assert.JSONEq(t, `{"path":null,"length":null}`, do(t, h, http.MethodGet, "/best", "").Body.String())

	rr = do(t, h, http.MethodDelete, "/vertices/nearest?x=5.5&y=5", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 4, decode[runner.Result](t, rr).Removed)

	rr = do(t, h, http.MethodDelete, "/vertices/nearest?x=50&y=50", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/vertices/nearest?x=50&y=50&radius=100", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodDelete, "/vertices/nearest?y=1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/vertices", `{"vertices":[{"x":1,"y":1},{"x":2,"y":2}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, r.Snapshot().Vertices, 2)

	rr = do(t, h, http.MethodPut, "/vertices", `{"vertices":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Len(t, r.Snapshot().Vertices, 2)
}

func TestReset(t *testing.T) {
	r, h := setup(t)
	_, err := r.Step()
	require.NoError(t, err)

	rr := do(t, h, http.MethodPost, "/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap := r.Snapshot()
	assert.Zero(t, snap.Iteration)
	assert.Nil(t, snap.Best)
}

func TestMetricsMounted(t *testing.T) {
	r, h := setup(t)
	_, err := r.Step()
	require.NoError(t, err)

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "antroute_iterations_total 1")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	_, h := setup(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, h, time.Second, nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
