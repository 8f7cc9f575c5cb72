package aco

import (
	"fmt"
	"math"
	"math/rand"
)

// Vertex is a point on the plane. It carries no behavior beyond its coordinates.
type Vertex struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistanceTo returns the Euclidean distance between v and u.
func (v Vertex) DistanceTo(u Vertex) float64 {
	return math.Hypot(v.X-u.X, v.Y-u.Y)
}

// String formats the vertex as "(x,y)".
func (v Vertex) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

func (v Vertex) valid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// validateVertices rejects empty sets and non-finite coordinates.
func validateVertices(vs []Vertex) error {
	if len(vs) == 0 {
		return ErrNoVertices
	}
	for i, v := range vs {
		if !v.valid() {
			return fmt.Errorf("vertex %d %v: %w", i, v, ErrInvalidVertex)
		}
	}

	return nil
}

// RandomVertices places n vertices on integer coordinates inside
// [0,width]×[0,height]. A nil rng uses the deterministic default stream.
// Non-positive n yields an empty slice.
func RandomVertices(n int, width, height int, rng *rand.Rand) []Vertex {
	if n <= 0 {
		return []Vertex{}
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	out := make([]Vertex, n)
	for i := range out {
		out[i] = Vertex{
			X: float64(rng.Intn(width + 1)),
			Y: float64(rng.Intn(height + 1)),
		}
	}

	return out
}
