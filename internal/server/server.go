// Package server exposes a running colony over HTTP for inspection and
// between-iteration control.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/internal/logging"
	"github.com/katalvlaran/antroute/internal/runner"
	"github.com/katalvlaran/antroute/matrix"
)

// Controller is the part of runner.Runner the handlers need.
type Controller interface {
	Snapshot() runner.Snapshot
	Submit(u runner.Update) (runner.Result, error)
	Pheromones() *matrix.Dense
}

var _ Controller = (*runner.Runner)(nil)

// Options configures the handler. Zero values are usable.
type Options struct {
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	// RemoveRadius is the default radius of DELETE /vertices/nearest.
	RemoveRadius float64
	Logger       *slog.Logger
}

// defaultRemoveRadius applies when Options.RemoveRadius is not positive.
const defaultRemoveRadius = 25.0

// Server holds the handler dependencies.
type Server struct {
	ctl    Controller
	radius float64
	log    *slog.Logger
}

// NewHandler builds the chi router.
func NewHandler(ctl Controller, opts Options) http.Handler {
	s := &Server{ctl: ctl, radius: opts.RemoveRadius, log: opts.Logger}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	if s.radius <= 0 {
		s.radius = defaultRemoveRadius
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/stats", s.GetStats)
	r.Get("/best", s.GetBest)
	r.Get("/paths", s.GetPaths)
	r.Get("/pheromones", s.GetPheromones)
	r.Patch("/config", s.PatchConfig)
	r.Post("/reset", s.Reset)
	r.Route("/vertices", func(r chi.Router) {
		r.Get("/", s.GetVertices)
		r.Post("/", s.AddVertex)
		r.Put("/", s.ReplaceVertices)
		r.Delete("/nearest", s.RemoveNearest)
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log *slog.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("http server stopped", "addr", addr)

	return nil
}

// -- DTOs --

// finite maps +Inf (no tour yet) to JSON null.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

type statsResponse struct {
	Iteration  int      `json:"iteration"`
	Phase      string   `json:"phase"`
	Stagnation int      `json:"stagnation"`
	AvgLength  *float64 `json:"avg_length"`
	MinLength  *float64 `json:"min_length"`
	BestLength *float64 `json:"best_length"`
	PathsCount int      `json:"paths_count"`
}

type tourResponse struct {
	Path   []int    `json:"path"`
	Length *float64 `json:"length"`
}

type pheromoneResponse struct {
	Size   int         `json:"size"`
	Levels [][]float64 `json:"levels"`
}

type configRequest struct {
	Alpha           *float64 `json:"alpha"`
	Beta            *float64 `json:"beta"`
	EvaporationRate *float64 `json:"evaporation_rate"`
	Ants            *int     `json:"ants"`
	Workers         *int     `json:"workers"`
}

type verticesRequest struct {
	Vertices []aco.Vertex `json:"vertices"`
}

// -- Handlers --

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStats handles GET /stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	snap := s.ctl.Snapshot()
	resp := statsResponse{
		Iteration:  snap.Iteration,
		Phase:      snap.Phase,
		Stagnation: snap.Stagnation,
	}
	if snap.Stats != nil {
		resp.AvgLength = finite(snap.Stats.AvgLength)
		resp.MinLength = finite(snap.Stats.MinLength)
		resp.BestLength = finite(snap.Stats.BestLength)
		resp.PathsCount = snap.Stats.PathsCount
	} else if snap.Best != nil {
		resp.BestLength = finite(snap.Best.Length)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetBest handles GET /best. Before the first iteration both fields are null.
func (s *Server) GetBest(w http.ResponseWriter, r *http.Request) {
	snap := s.ctl.Snapshot()
	resp := tourResponse{}
	if snap.Best != nil {
		resp.Path = snap.Best.Path
		resp.Length = finite(snap.Best.Length)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetPaths handles GET /paths: the last iteration's tours.
func (s *Server) GetPaths(w http.ResponseWriter, r *http.Request) {
	snap := s.ctl.Snapshot()
	out := make([]tourResponse, len(snap.Paths))
	for i, t := range snap.Paths {
		out[i] = tourResponse{Path: t.Path, Length: finite(t.Length)}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetVertices handles GET /vertices.
func (s *Server) GetVertices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ctl.Snapshot().Vertices)
}

// GetPheromones handles GET /pheromones.
func (s *Server) GetPheromones(w http.ResponseWriter, r *http.Request) {
	m := s.ctl.Pheromones()
	n := m.Rows()
	resp := pheromoneResponse{Size: n, Levels: make([][]float64, n)}
	for i := 0; i < n; i++ {
		row, err := m.Row(i)
		if err != nil {
			s.fail(w, err)
			return
		}
		resp.Levels[i] = row
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// PatchConfig handles PATCH /config.
func (s *Server) PatchConfig(w http.ResponseWriter, r *http.Request) {
	var body configRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.submit(w, runner.Update{
		Alpha:           body.Alpha,
		Beta:            body.Beta,
		EvaporationRate: body.EvaporationRate,
		Ants:            body.Ants,
		Workers:         body.Workers,
	}, http.StatusOK)
}

// AddVertex handles POST /vertices with a single {"x":..,"y":..} body.
func (s *Server) AddVertex(w http.ResponseWriter, r *http.Request) {
	var v aco.Vertex
	if !s.decode(w, r, &v) {
		return
	}
	s.submit(w, runner.Update{AddVertex: &v}, http.StatusCreated)
}

// ReplaceVertices handles PUT /vertices with {"vertices":[...]}.
func (s *Server) ReplaceVertices(w http.ResponseWriter, r *http.Request) {
	var body verticesRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Vertices == nil {
		body.Vertices = []aco.Vertex{}
	}
	s.submit(w, runner.Update{Vertices: body.Vertices}, http.StatusOK)
}

// RemoveNearest handles DELETE /vertices/nearest?x=&y=&radius=.
func (s *Server) RemoveNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y query parameters are required numbers", http.StatusBadRequest)
		return
	}
	radius := s.radius
	if raw := q.Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			http.Error(w, "radius must be a non-negative number", http.StatusBadRequest)
			return
		}
		radius = v
	}

	res, err := s.ctl.Submit(runner.Update{RemoveNearest: &runner.Point{X: x, Y: y, Radius: radius}})
	if err != nil {
		s.fail(w, err)
		return
	}
	if res.Removed < 0 {
		http.Error(w, "no vertex within radius", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// Reset handles POST /reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.submit(w, runner.Update{Reset: true}, http.StatusOK)
}

// -- Helpers --

func (s *Server) submit(w http.ResponseWriter, u runner.Update, status int) {
	res, err := s.ctl.Submit(u)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, status, res)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, aco.ErrIterationInProgress):
		return http.StatusConflict
	case errors.Is(err, aco.ErrInvalidExponent),
		errors.Is(err, aco.ErrInvalidEvaporation),
		errors.Is(err, aco.ErrInvalidAntCount),
		errors.Is(err, aco.ErrInvalidWorkers),
		errors.Is(err, aco.ErrInvalidPheromone),
		errors.Is(err, aco.ErrInvalidVertex),
		errors.Is(err, aco.ErrVertexOutOfRange),
		errors.Is(err, aco.ErrNoVertices):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}
