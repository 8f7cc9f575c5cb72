// Package aco_test holds small fixtures shared by the aco test files.
package aco_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antroute/aco"
)

const (
	// eps is the tolerance for float comparisons that involve division.
	eps = 1e-12

	// seedDet is a fixed non-default seed.
	seedDet = int64(42)
)

// circle places n vertices on a slightly rippled circle of radius ~100 so
// that no two tours share a length by symmetry.
func circle(n int) []aco.Vertex {
	var (
		vs = make([]aco.Vertex, n)
		th float64
		r  float64
		i  int
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = 100 + 3*float64(i%3)
		vs[i] = aco.Vertex{X: r * math.Cos(th), Y: r * math.Sin(th)}
	}

	return vs
}

// newEngine builds an engine over vs with small, fast options.
func newEngine(t *testing.T, vs []aco.Vertex, mutate func(*aco.Options)) *aco.Engine {
	t.Helper()
	opts := aco.DefaultOptions()
	opts.NumAnts = 8
	opts.Seed = seedDet
	if mutate != nil {
		mutate(&opts)
	}
	e, err := aco.New(vs, opts)
	require.NoError(t, err)

	return e
}

// sumPending adds every pending cell.
func sumPending(t *testing.T, pm *aco.PheromoneMatrix) float64 {
	t.Helper()
	var (
		n   = pm.Size()
		sum float64
		v   float64
		err error
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err = pm.PendingLevel(i, j)
			require.NoError(t, err)
			sum += v
		}
	}

	return sum
}
