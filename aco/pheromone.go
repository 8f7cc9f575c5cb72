package aco

import (
	"fmt"
	"math"

	"github.com/katalvlaran/antroute/matrix"
)

// PheromoneMatrix owns the trail store: current (authoritative, read by ants)
// and pending (one iteration's deposits). Both are flat n×n matrices with a
// zero diagonal that is never written.
//
// Evaporation contract: evaporationRate is the fraction LOST per iteration, so
//
//	current[i][j] = current[i][j]*(1-evaporationRate) + pending[i][j]
//
// on every ApplyPending. No clamping is applied.
type PheromoneMatrix struct {
	n               int
	evaporationRate float64
	current         *matrix.Dense
	pending         *matrix.Dense
}

// NewPheromoneMatrix builds an n×n store with current off-diagonal = level,
// diagonal = 0 and an all-zero pending buffer.
//
// Errors: ErrNoVertices (n<=0), ErrInvalidPheromone (level), ErrInvalidEvaporation.
func NewPheromoneMatrix(n int, level, evaporationRate float64) (*PheromoneMatrix, error) {
	if n <= 0 {
		return nil, ErrNoVertices
	}
	if err := validateEvaporation(evaporationRate); err != nil {
		return nil, err
	}

	current, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	pending, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}

	pm := &PheromoneMatrix{
		n:               n,
		evaporationRate: evaporationRate,
		current:         current,
		pending:         pending,
	}
	if err = pm.Init(level); err != nil {
		return nil, err
	}

	return pm, nil
}

func validateEvaporation(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate >= 1 {
		return fmt.Errorf("%v: %w", rate, ErrInvalidEvaporation)
	}

	return nil
}

func validateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%v: %w", v, ErrInvalidPheromone)
	}

	return nil
}

// Init resets current to level off the diagonal and 0 on it.
// Pending is left untouched.
func (pm *PheromoneMatrix) Init(level float64) error {
	if err := validateAmount(level); err != nil {
		return err
	}

	return pm.current.FillOffDiagonal(level)
}

// Size returns n.
func (pm *PheromoneMatrix) Size() int { return pm.n }

// EvaporationRate returns the fraction of pheromone lost per ApplyPending.
func (pm *PheromoneMatrix) EvaporationRate() float64 { return pm.evaporationRate }

// Retention returns 1 - EvaporationRate, the multiplier applied to current.
func (pm *PheromoneMatrix) Retention() float64 { return 1 - pm.evaporationRate }

// SetEvaporationRate changes the rate used by subsequent ApplyPending calls.
func (pm *PheromoneMatrix) SetEvaporationRate(rate float64) error {
	if err := validateEvaporation(rate); err != nil {
		return err
	}
	pm.evaporationRate = rate

	return nil
}

// Level returns current[i][j].
func (pm *PheromoneMatrix) Level(i, j int) (float64, error) {
	v, err := pm.current.At(i, j)
	if err != nil {
		return 0, fmt.Errorf("pheromone(%d,%d): %w: %w", i, j, ErrVertexOutOfRange, err)
	}

	return v, nil
}

// PendingLevel returns pending[i][j].
func (pm *PheromoneMatrix) PendingLevel(i, j int) (float64, error) {
	v, err := pm.pending.At(i, j)
	if err != nil {
		return 0, fmt.Errorf("pending(%d,%d): %w: %w", i, j, ErrVertexOutOfRange, err)
	}

	return v, nil
}

// Total returns the sum of all current trail levels.
// Complexity: O(n^2).
func (pm *PheromoneMatrix) Total() float64 {
	var sum float64
	pm.current.Do(func(_, _ int, v float64) bool {
		sum += v
		return true
	})

	return sum
}

// Current returns a copy of the authoritative trail matrix.
func (pm *PheromoneMatrix) Current() *matrix.Dense { return pm.current.CloneDense() }

// Pending returns a copy of the pending deposit buffer.
func (pm *PheromoneMatrix) Pending() *matrix.Dense { return pm.pending.CloneDense() }

// ResetPending zeroes every pending cell. Called once per iteration before
// any ant runs.
// Complexity: O(n^2).
func (pm *PheromoneMatrix) ResetPending() {
	pm.pending.Zero()
}

// AddPending accumulates delta into pending[i][j]. It is NOT symmetric:
// depositing on an undirected edge needs both (i,j) and (j,i).
//
// Errors: ErrVertexOutOfRange, ErrSelfLoop (i==j), ErrInvalidPheromone.
// Complexity: O(1).
func (pm *PheromoneMatrix) AddPending(i, j int, delta float64) error {
	if i < 0 || i >= pm.n || j < 0 || j >= pm.n {
		return fmt.Errorf("pending(%d,%d): %w: %w", i, j, ErrVertexOutOfRange, matrix.ErrOutOfRange)
	}
	if i == j {
		return fmt.Errorf("pending(%d,%d): %w", i, j, ErrSelfLoop)
	}
	if err := validateAmount(delta); err != nil {
		return err
	}
	if err := pm.pending.AddAt(i, j, delta); err != nil {
		return fmt.Errorf("pending(%d,%d): %w", i, j, ErrInvalidPheromone)
	}

	return nil
}

// ApplyPending evaporates and merges in one sweep:
// current = current*Retention() + pending, then zeroes pending.
// On error (overflow to +Inf) neither matrix is modified.
//
// Complexity: O(n^2).
func (pm *PheromoneMatrix) ApplyPending() error {
	if err := pm.current.ScaleAddInPlace(pm.Retention(), pm.pending); err != nil {
		return fmt.Errorf("apply pending: %w", err)
	}
	pm.pending.Zero()

	return nil
}

// checkSize enforces the lockstep invariant between the trail store and graph.
func (pm *PheromoneMatrix) checkSize(g *Graph) error {
	if pm == nil || g == nil {
		return ErrNilArgument
	}
	if pm.n != g.NumVertices() {
		return fmt.Errorf("pheromone %d, graph %d: %w", pm.n, g.NumVertices(), ErrSizeMismatch)
	}

	return nil
}
