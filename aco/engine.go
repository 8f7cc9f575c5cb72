package aco

import (
	"fmt"
	"sync/atomic"
)

// Phase is the position of an Engine inside its iteration state machine:
//
//	Idle → PendingReset → AntsConstructing → PendingApplied → StatsReady
//
// StatsReady is kept after a successful RunIteration until the next iteration
// or configuration change moves the engine back to Idle. A failed iteration
// returns straight to Idle.
type Phase int32

// Iteration phases.
const (
	PhaseIdle Phase = iota
	PhasePendingReset
	PhaseAntsConstructing
	PhasePendingApplied
	PhaseStatsReady
)

var phaseNames = [...]string{"IDLE", "PENDING_RESET", "ANTS_CONSTRUCTING", "PENDING_APPLIED", "STATS_READY"}

// String returns the upper-case phase name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int32(p))
	}

	return phaseNames[p]
}

// Engine ties a Graph, its PheromoneMatrix and a Colony together and runs one
// iteration per RunIteration call.
//
// Engine is not safe for concurrent use. Overlapping RunIteration calls are
// detected and rejected with ErrIterationInProgress, and configuration setters
// refuse to run while an iteration is in flight.
type Engine struct {
	opts      Options
	graph     *Graph
	pm        *PheromoneMatrix
	colony    *Colony
	iteration int

	busy  atomic.Bool
	phase atomic.Int32
}

// New validates opts and builds the graph, pheromone store and ant pool.
//
// Errors: any Options.Validate error, ErrNoVertices, ErrInvalidVertex.
func New(vertices []Vertex, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGraph(vertices)
	if err != nil {
		return nil, err
	}
	pm, err := NewPheromoneMatrix(g.NumVertices(), opts.InitialPheromone, opts.EvaporationRate)
	if err != nil {
		return nil, err
	}

	e := &Engine{opts: opts, graph: g, pm: pm}
	if e.colony, err = e.newColony(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) newColony() (*Colony, error) {
	return NewColony(
		e.opts.NumAnts,
		NewRand(e.opts.Seed),
		WithWorkers(e.opts.Workers),
		WithDepositPolicy(e.opts.DepositPolicy),
	)
}

// RunIteration executes ResetPending, FindPaths, ApplyPending and returns the
// iteration's statistics.
//
// Errors: ErrIterationInProgress, ErrSizeMismatch, and any tour-construction or
// merge error. A failed iteration leaves current pheromones untouched.
func (e *Engine) RunIteration() (Stats, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Stats{}, ErrIterationInProgress
	}
	defer e.busy.Store(false)

	if err := e.pm.checkSize(e.graph); err != nil {
		e.setPhase(PhaseIdle)
		return Stats{}, err
	}

	e.setPhase(PhasePendingReset)
	e.pm.ResetPending()

	e.setPhase(PhaseAntsConstructing)
	results, err := e.colony.FindPaths(e.graph, e.pm, e.opts.Alpha, e.opts.Beta)
	if err != nil {
		e.pm.ResetPending()
		e.setPhase(PhaseIdle)
		return Stats{}, fmt.Errorf("iteration %d: %w", e.iteration+1, err)
	}

	if err = e.pm.ApplyPending(); err != nil {
		e.pm.ResetPending()
		e.setPhase(PhaseIdle)
		return Stats{}, fmt.Errorf("iteration %d: %w", e.iteration+1, err)
	}
	e.setPhase(PhasePendingApplied)

	e.iteration++
	stats := e.Stats(results)
	e.setPhase(PhaseStatsReady)

	return stats, nil
}

// Stats summarizes results against the current champion.
func (e *Engine) Stats(results []Tour) Stats {
	return ComputeStats(results, e.graph.BestPathLength())
}

// Phase returns the current iteration phase.
func (e *Engine) Phase() Phase { return Phase(e.phase.Load()) }

func (e *Engine) setPhase(p Phase) { e.phase.Store(int32(p)) }

// Iteration returns the number of completed iterations since New or Reset.
func (e *Engine) Iteration() int { return e.iteration }

// Graph returns the live graph. Mutating its vertex set directly desynchronizes
// it from the pheromone store; use SetVertices instead.
func (e *Engine) Graph() *Graph { return e.graph }

// Pheromones returns the live pheromone store.
func (e *Engine) Pheromones() *PheromoneMatrix { return e.pm }

// Options returns a copy of the active options.
func (e *Engine) Options() Options { return e.opts }

// Best returns the champion tour and whether one exists.
func (e *Engine) Best() (Tour, bool) {
	if !e.graph.HasChampion() {
		return Tour{}, false
	}

	return Tour{Path: e.graph.BestPath(), Length: e.graph.BestPathLength()}, true
}

// beginUpdate rejects configuration changes during an iteration.
func (e *Engine) beginUpdate() error {
	if e.busy.Load() {
		return ErrIterationInProgress
	}
	e.setPhase(PhaseIdle)

	return nil
}

// SetAlpha changes the pheromone exponent.
func (e *Engine) SetAlpha(alpha float64) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := validateExponent("alpha", alpha); err != nil {
		return err
	}
	e.opts.Alpha = alpha

	return nil
}

// SetBeta changes the heuristic exponent.
func (e *Engine) SetBeta(beta float64) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := validateExponent("beta", beta); err != nil {
		return err
	}
	e.opts.Beta = beta

	return nil
}

// SetEvaporationRate changes the fraction of pheromone lost per iteration.
func (e *Engine) SetEvaporationRate(rate float64) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := e.pm.SetEvaporationRate(rate); err != nil {
		return err
	}
	e.opts.EvaporationRate = rate

	return nil
}

// SetNumAnts recreates the ant pool with n ants.
func (e *Engine) SetNumAnts(n int) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := e.colony.Resize(n); err != nil {
		return err
	}
	e.opts.NumAnts = n

	return nil
}

// SetWorkers changes how many ants run concurrently.
func (e *Engine) SetWorkers(k int) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := e.colony.SetWorkers(k); err != nil {
		return err
	}
	e.opts.Workers = k

	return nil
}

// SetVertices replaces the vertex set, rebuilds distances, resets the champion
// and recreates the pheromone store at the initial level. On error nothing
// changes.
func (e *Engine) SetVertices(vertices []Vertex) error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	if err := validateVertices(vertices); err != nil {
		return err
	}
	pm, err := NewPheromoneMatrix(len(vertices), e.opts.InitialPheromone, e.opts.EvaporationRate)
	if err != nil {
		return err
	}
	if err = e.graph.SetVertices(vertices); err != nil {
		return err
	}
	e.pm = pm

	return nil
}

// AddVertex appends v to the vertex set (see SetVertices).
func (e *Engine) AddVertex(v Vertex) error {
	return e.SetVertices(append(e.graph.Vertices(), v))
}

// RemoveVertex deletes vertex i (see SetVertices). Removing the last vertex
// fails with ErrNoVertices.
func (e *Engine) RemoveVertex(i int) error {
	vs := e.graph.Vertices()
	if i < 0 || i >= len(vs) {
		return fmt.Errorf("vertex %d: %w", i, ErrVertexOutOfRange)
	}

	return e.SetVertices(append(vs[:i], vs[i+1:]...))
}

// RemoveNearestVertex removes the vertex closest to (x,y) within radius and
// returns its former index, or -1 when no vertex is close enough.
func (e *Engine) RemoveNearestVertex(x, y, radius float64) (int, error) {
	i, ok := e.graph.NearestVertex(x, y, radius)
	if !ok {
		return -1, nil
	}
	if err := e.RemoveVertex(i); err != nil {
		return -1, err
	}

	return i, nil
}

// Reset restarts the search on the same vertex set: distances are rebuilt, the
// champion cleared, pheromones re-initialized, the ant pool re-seeded and the
// iteration counter zeroed. A reset engine replays a fresh engine exactly.
func (e *Engine) Reset() error {
	if err := e.beginUpdate(); err != nil {
		return err
	}
	colony, err := e.newColony()
	if err != nil {
		return err
	}
	if err = e.graph.Rebuild(); err != nil {
		return err
	}
	pm, err := NewPheromoneMatrix(e.graph.NumVertices(), e.opts.InitialPheromone, e.opts.EvaporationRate)
	if err != nil {
		return err
	}
	e.pm = pm
	e.colony = colony
	e.iteration = 0

	return nil
}
