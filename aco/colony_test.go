package aco_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/matrix"
)

func TestNewColony_Rejects(t *testing.T) {
	_, err := aco.NewColony(0, nil)
	require.ErrorIs(t, err, aco.ErrInvalidAntCount)

	_, err = aco.NewColony(3, nil, aco.WithWorkers(-1))
	require.ErrorIs(t, err, aco.ErrInvalidWorkers)

	c, err := aco.NewColony(3, nil)
	require.NoError(t, err)
	require.ErrorIs(t, c.Resize(-2), aco.ErrInvalidAntCount)
	assert.Equal(t, 3, c.NumAnts())
	require.ErrorIs(t, c.SetWorkers(-1), aco.ErrInvalidWorkers)
}

func TestColony_FindPaths(t *testing.T) {
	g, pm := newProblem(t, circle(7), 1)
	c, err := aco.NewColony(10, aco.NewRand(seedDet))
	require.NoError(t, err)

	results, err := c.FindPaths(g, pm, 1, 2)
	require.NoError(t, err)
	require.Len(t, results, 10)

	minLen := math.Inf(1)
	for _, r := range results {
		require.NoError(t, aco.ValidateTour(r.Path, 7))
		minLen = math.Min(minLen, r.Length)
	}

	assert.Equal(t, minLen, g.BestPathLength())
	assert.Equal(t, results, g.LastIterationPaths())

	// Pending collected every ant's edges; current is unchanged until applied.
	assert.Greater(t, sumPending(t, pm), 0.0)
	v, err := pm.Level(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestColony_ChampionNeverIncreases(t *testing.T) {
	g, pm := newProblem(t, circle(10), 1)
	c, err := aco.NewColony(4, aco.NewRand(seedDet))
	require.NoError(t, err)

	prev := math.Inf(1)
	for it := 0; it < 25; it++ {
		pm.ResetPending()
		_, err = c.FindPaths(g, pm, 1, 2)
		require.NoError(t, err)
		require.NoError(t, pm.ApplyPending())

		require.LessOrEqual(t, g.BestPathLength(), prev)
		require.NoError(t, aco.ValidateTour(g.BestPath(), 10))
		prev = g.BestPathLength()
	}
}

func TestColony_SizeMismatch(t *testing.T) {
	g, err := aco.NewGraph(circle(5))
	require.NoError(t, err)
	pm, err := aco.NewPheromoneMatrix(6, 1, 0.1)
	require.NoError(t, err)
	c, err := aco.NewColony(2, nil)
	require.NoError(t, err)

	_, err = c.FindPaths(g, pm, 1, 2)
	require.ErrorIs(t, err, aco.ErrSizeMismatch)
	assert.False(t, g.HasChampion())
}

func TestColony_ParallelMatchesSequential(t *testing.T) {
	vs := aco.RandomVertices(25, 500, 500, aco.NewRand(3))

	run := func(workers int) (*aco.Graph, *aco.PheromoneMatrix, [][]aco.Tour) {
		g, pm := newProblem(t, vs, 1)
		c, err := aco.NewColony(16, aco.NewRand(seedDet), aco.WithWorkers(workers))
		require.NoError(t, err)

		var all [][]aco.Tour
		for it := 0; it < 15; it++ {
			pm.ResetPending()
			res, err := c.FindPaths(g, pm, 1, 2)
			require.NoError(t, err)
			require.NoError(t, pm.ApplyPending())
			all = append(all, res)
		}

		return g, pm, all
	}

	gSeq, pmSeq, seq := run(1)
	gPar, pmPar, par := run(4)

	assert.Equal(t, seq, par)
	assert.Equal(t, gSeq.BestPath(), gPar.BestPath())
	assert.Equal(t, gSeq.BestPathLength(), gPar.BestPathLength())
	assert.True(t, matrix.Equal(pmSeq.Current(), pmPar.Current()))
}

func TestColony_WithDepositPolicy(t *testing.T) {
	g, pm := newProblem(t, circle(4), 1)
	c, err := aco.NewColony(3, nil, aco.WithDepositPolicy(aco.ConstantDeposit(1)))
	require.NoError(t, err)

	_, err = c.FindPaths(g, pm, 1, 2)
	require.NoError(t, err)

	// Three ants, four edges each, one unit per edge.
	assert.InDelta(t, 12.0, sumPending(t, pm), eps)
}

func TestColony_PolicySurvivesResizeInParallel(t *testing.T) {
	g, pm := newProblem(t, circle(4), 1)
	c, err := aco.NewColony(3, nil,
		aco.WithDepositPolicy(aco.ConstantDeposit(1)),
		aco.WithWorkers(2),
	)
	require.NoError(t, err)
	require.NoError(t, c.Resize(2))

	_, err = c.FindPaths(g, pm, 1, 2)
	require.NoError(t, err)

	// Two ants, four edges each, one unit per edge.
	assert.InDelta(t, 8.0, sumPending(t, pm), eps)
}

func TestColony_ResizeChangesPool(t *testing.T) {
	g, pm := newProblem(t, circle(4), 1)
	c, err := aco.NewColony(3, nil)
	require.NoError(t, err)

	require.NoError(t, c.Resize(5))
	res, err := c.FindPaths(g, pm, 1, 2)
	require.NoError(t, err)
	assert.Len(t, res, 5)
}
