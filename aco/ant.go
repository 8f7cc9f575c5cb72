// Package aco - per-ant tour construction.
//
// An ant builds one closed tour by roulette-wheel selection over the unvisited
// vertices, weighting each candidate v by
//
//	w(last, v) = current[last][v]^alpha * grade(last, v)^beta
//
// and depositing on every edge right after choosing it. The walk has no state
// that survives the call: path, visited set and weight buffer are allocated per
// tour.
//
// Determinism:
//   - One rng.Intn for the start vertex, then one rng.Float64 per step whose
//     total weight is positive and finite. Zero total weight picks the
//     lowest-index unvisited vertex without consuming randomness.
//
// Complexity:
//   - O(n^2) time per tour, O(n) extra space.
package aco

import (
	"fmt"
	"math"
	"math/rand"
)

// Ant is a tour constructor with its own random stream. It keeps no tour state
// between calls; the pool in Colony only exists to give every ant a stable,
// independent stream.
type Ant struct {
	id     int
	rng    *rand.Rand
	policy DepositPolicy
}

// NewAnt returns an ant drawing from rng (nil ⇒ deterministic default stream)
// and depositing with policy (nil ⇒ EdgeGradeDeposit).
func NewAnt(id int, rng *rand.Rand, policy DepositPolicy) *Ant {
	if rng == nil {
		rng = rngFromSeed(0)
	}
	if policy == nil {
		policy = EdgeGradeDeposit
	}

	return &Ant{id: id, rng: rng, policy: policy}
}

// ID returns the ant's position in its colony.
func (a *Ant) ID() int { return a.id }

// FindTour builds one tour with the ant's deposit policy, streaming deposits
// straight into pm's pending buffer.
func (a *Ant) FindTour(g *Graph, pm *PheromoneMatrix, alpha, beta float64) (Tour, error) {
	return a.findTour(g, pm, alpha, beta, pm)
}

// findTour is FindTour with deposits routed to sink.
func (a *Ant) findTour(g *Graph, pm *PheromoneMatrix, alpha, beta float64, sink DepositSink) (Tour, error) {
	t, err := FindTour(g, pm, alpha, beta, a.rng, a.policy, sink)
	if err != nil {
		return Tour{}, fmt.Errorf("ant %d: %w", a.id, err)
	}

	return t, nil
}

// FindTour is the tour-construction procedure:
//  1. pick a uniformly random start vertex;
//  2. repeatedly choose the next unvisited vertex by roulette-wheel selection;
//  3. right after each choice, deposit policy(g, last, next, pathSoFar) into sink;
//  4. close the tour back to the start with the same deposit (skipped when the
//     closing edge is a self-loop, i.e. a single-vertex graph);
//  5. return the path and its length in true distances.
//
// nil rng, policy and sink default to the deterministic stream,
// EdgeGradeDeposit and pm respectively. The vertex count is not checked here:
// Graph cannot be empty by construction.
//
// Errors: ErrNilArgument, ErrSizeMismatch, and any error returned by policy or sink.
func FindTour(
	g *Graph,
	pm *PheromoneMatrix,
	alpha, beta float64,
	rng *rand.Rand,
	policy DepositPolicy,
	sink DepositSink,
) (Tour, error) {
	if err := pm.checkSize(g); err != nil {
		return Tour{}, err
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}
	if policy == nil {
		policy = EdgeGradeDeposit
	}
	if sink == nil {
		sink = pm
	}

	var (
		n       = g.NumVertices()
		path    = make([]int, 0, n+1)
		visited = make([]bool, n)
		weights = make([]float64, n)
		start   = rng.Intn(n)
		last    = start
		next    int
		err     error
	)
	path = append(path, start)
	visited[start] = true

	for len(path) < n {
		if next, err = chooseNext(g, pm, alpha, beta, last, visited, weights, rng); err != nil {
			return Tour{}, err
		}
		if err = depositEdge(g, policy, sink, last, next, path); err != nil {
			return Tour{}, err
		}
		path = append(path, next)
		visited[next] = true
		last = next
	}

	if last != start {
		if err = depositEdge(g, policy, sink, last, start, path); err != nil {
			return Tour{}, err
		}
	}
	path = append(path, start)

	length, err := g.PathLength(path)
	if err != nil {
		return Tour{}, err
	}

	return Tour{Path: path, Length: length}, nil
}

func depositEdge(g *Graph, policy DepositPolicy, sink DepositSink, from, to int, pathSoFar []int) error {
	delta, err := policy(g, from, to, pathSoFar)
	if err != nil {
		return fmt.Errorf("deposit policy %d→%d: %w", from, to, err)
	}

	return sink.AddPending(from, to, delta)
}

// chooseNext performs roulette-wheel selection among unvisited vertices.
// Candidates are scanned in ascending index order; the first positive-weight
// candidate whose cumulative weight reaches r∈[0,sum) wins. A zero total picks
// the lowest-index unvisited vertex. An overflowing (+Inf) total picks the
// lowest-index candidate with infinite weight.
func chooseNext(
	g *Graph,
	pm *PheromoneMatrix,
	alpha, beta float64,
	last int,
	visited []bool,
	weights []float64,
	rng *rand.Rand,
) (int, error) {
	var (
		n        = len(visited)
		sum      float64
		tau      float64
		grade    float64
		w        float64
		err      error
		v        int
		fallback = -1
	)
	for v = 0; v < n; v++ {
		weights[v] = 0
		if visited[v] {
			continue
		}
		if fallback < 0 {
			fallback = v
		}
		if tau, err = pm.current.At(last, v); err != nil {
			return 0, fmt.Errorf("pheromone(%d,%d): %w: %w", last, v, ErrVertexOutOfRange, err)
		}
		if grade, err = g.EdgeGrade(last, v); err != nil {
			return 0, err
		}
		w = math.Pow(tau, alpha) * math.Pow(grade, beta)
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		weights[v] = w
		sum += w
	}

	if fallback < 0 {
		return 0, fmt.Errorf("no unvisited vertex after %d: %w", last, ErrInvalidTour)
	}
	if !(sum > 0) {
		return fallback, nil
	}
	if math.IsInf(sum, 1) {
		for v = 0; v < n; v++ {
			if math.IsInf(weights[v], 1) {
				return v, nil
			}
		}
		return fallback, nil
	}

	var (
		r            = rng.Float64() * sum
		cum          float64
		lastPositive = fallback
	)
	// Zero-weight candidates are never selected, even when r == 0 would
	// satisfy cum >= r before any weight has been accumulated.
	for v = 0; v < n; v++ {
		if weights[v] <= 0 {
			continue
		}
		cum += weights[v]
		lastPositive = v
		if cum >= r {
			return v, nil
		}
	}

	// Only reachable through rounding when r lands on sum itself.
	return lastPositive, nil
}
