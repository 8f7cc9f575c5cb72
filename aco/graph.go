package aco

import (
	"fmt"
	"math"

	"github.com/katalvlaran/antroute/matrix"
)

// Graph owns the vertex set, the derived pairwise distance matrix and the
// cross-iteration champion (best tour ever seen since the last Rebuild).
//
// The distance matrix is a flat n×n matrix.Dense, symmetric with a zero
// diagonal, recomputed by Rebuild and otherwise immutable. The champion has a
// single writer (Colony, after each ant) and any number of readers; its length
// never increases between two rebuilds.
//
// Graph is not safe for concurrent mutation.
type Graph struct {
	vertices []Vertex
	dist     *matrix.Dense

	bestPath           []int
	bestPathLength     float64
	lastIterationPaths []Tour
}

// NewGraph copies vertices and builds the distance matrix.
//
// Errors: ErrNoVertices for an empty set, ErrInvalidVertex for non-finite
// coordinates or coordinates whose distances overflow float64.
func NewGraph(vertices []Vertex) (*Graph, error) {
	if err := validateVertices(vertices); err != nil {
		return nil, err
	}
	g := &Graph{vertices: append([]Vertex(nil), vertices...)}
	if err := g.Rebuild(); err != nil {
		return nil, err
	}

	return g, nil
}

// Rebuild recomputes the distance matrix from the current vertex list and
// resets the champion to (nil, +Inf) and the last-iteration report to empty.
// It must run whenever the vertex list changes; SetVertices calls it.
//
// Complexity: O(n^2).
func (g *Graph) Rebuild() error {
	if err := validateVertices(g.vertices); err != nil {
		return err
	}

	var (
		n      = len(g.vertices)
		values = make([]float64, n*n)
		i, j   int
		d      float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = g.vertices[i].DistanceTo(g.vertices[j])
			values[i*n+j] = d
			values[j*n+i] = d
		}
	}
	dist, err := matrix.NewDenseFrom(n, n, values)
	if err != nil {
		return fmt.Errorf("distances: %w: %w", ErrInvalidVertex, err)
	}

	g.dist = dist
	g.bestPath = nil
	g.bestPathLength = math.Inf(1)
	g.lastIterationPaths = []Tour{}

	return nil
}

// SetVertices replaces the vertex set wholesale and rebuilds. On error the
// previous vertex set, distances and champion are kept.
func (g *Graph) SetVertices(vertices []Vertex) error {
	if err := validateVertices(vertices); err != nil {
		return err
	}
	prev := g.vertices
	g.vertices = append([]Vertex(nil), vertices...)
	if err := g.Rebuild(); err != nil {
		g.vertices = prev
		return err
	}

	return nil
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// Vertices returns a copy of the vertex list.
func (g *Graph) Vertices() []Vertex { return append([]Vertex(nil), g.vertices...) }

// Vertex returns vertex i.
func (g *Graph) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("vertex %d: %w", i, ErrVertexOutOfRange)
	}

	return g.vertices[i], nil
}

// DistanceMatrix returns a copy of the n×n distance matrix.
func (g *Graph) DistanceMatrix() *matrix.Dense { return g.dist.CloneDense() }

// Distance returns the Euclidean distance between vertices i and j.
// Complexity: O(1).
func (g *Graph) Distance(i, j int) (float64, error) {
	d, err := g.dist.At(i, j)
	if err != nil {
		return 0, fmt.Errorf("distance(%d,%d): %w: %w", i, j, ErrVertexOutOfRange, err)
	}

	return d, nil
}

// EdgeGrade returns the heuristic desirability of edge (i,j): 1/distance when
// the distance is positive, otherwise 0 (self-loops and coincident points).
// Complexity: O(1).
func (g *Graph) EdgeGrade(i, j int) (float64, error) {
	d, err := g.Distance(i, j)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, nil
	}

	return 1 / d, nil
}

// PathLength sums true distances over consecutive entries of path.
// Complexity: O(len(path)).
func (g *Graph) PathLength(path []int) (float64, error) {
	var (
		sum float64
		d   float64
		err error
		k   int
	)
	for k = 0; k+1 < len(path); k++ {
		if d, err = g.Distance(path[k], path[k+1]); err != nil {
			return 0, err
		}
		sum += d
	}

	return sum, nil
}

// NearestVertex returns the index of the vertex closest to (x,y) within
// radius (inclusive). Ties resolve to the lowest index.
func (g *Graph) NearestVertex(x, y, radius float64) (int, bool) {
	var (
		best  = -1
		bestD = radius * radius
		p     = Vertex{X: x, Y: y}
		d     float64
	)
	for i, v := range g.vertices {
		d = v.DistanceTo(p)
		d *= d
		if d <= bestD && (best == -1 || d < bestD) {
			best, bestD = i, d
		}
	}

	return best, best >= 0
}

// BestPath returns a copy of the champion path, or nil before any iteration.
func (g *Graph) BestPath() []int { return CopyPath(g.bestPath) }

// BestPathLength returns the champion length (+Inf before any iteration).
func (g *Graph) BestPathLength() float64 { return g.bestPathLength }

// HasChampion reports whether a champion tour has been recorded.
func (g *Graph) HasChampion() bool { return g.bestPath != nil }

// LastIterationPaths returns a copy of the most recent iteration's results.
func (g *Graph) LastIterationPaths() []Tour {
	out := make([]Tour, len(g.lastIterationPaths))
	for i, t := range g.lastIterationPaths {
		out[i] = t.Clone()
	}

	return out
}

// offerChampion records t as the champion when it is strictly shorter.
func (g *Graph) offerChampion(t Tour) bool {
	if t.Length < g.bestPathLength {
		g.bestPathLength = t.Length
		g.bestPath = CopyPath(t.Path)
		return true
	}

	return false
}

func (g *Graph) setLastIterationPaths(results []Tour) {
	g.lastIterationPaths = make([]Tour, len(results))
	for i, t := range results {
		g.lastIterationPaths[i] = t.Clone()
	}
}
