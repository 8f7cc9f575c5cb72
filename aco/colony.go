package aco

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Colony owns a fixed-size pool of ants and runs all of them once per
// iteration. The pool persists across iterations and is recreated by Resize.
//
// Workers > 1 runs ants concurrently. Each ant then writes into a private
// deposit log; after every ant finished, logs are replayed into pending in ant
// order and the champion is reduced in ant order. Because each ant owns its RNG
// stream and per-edge additions happen in the same order, the outcome is
// bit-identical to the sequential run.
type Colony struct {
	base    *rand.Rand
	ants    []*Ant
	workers int
	policy  DepositPolicy
	logs    []depositLog
}

// ColonyOption configures a Colony at construction time.
type ColonyOption func(*Colony)

// WithWorkers sets how many ants may run concurrently (0 or 1 ⇒ sequential).
func WithWorkers(k int) ColonyOption {
	return func(c *Colony) { c.workers = k }
}

// WithDepositPolicy replaces EdgeGradeDeposit.
func WithDepositPolicy(p DepositPolicy) ColonyOption {
	return func(c *Colony) {
		if p != nil {
			c.policy = p
		}
	}
}

// NewColony creates numAnts ants whose RNG streams derive from rng
// (nil ⇒ deterministic default stream).
//
// Errors: ErrInvalidAntCount, ErrInvalidWorkers.
func NewColony(numAnts int, rng *rand.Rand, opts ...ColonyOption) (*Colony, error) {
	if rng == nil {
		rng = rngFromSeed(0)
	}
	c := &Colony{base: rng, policy: EdgeGradeDeposit}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 0 {
		return nil, fmt.Errorf("%d: %w", c.workers, ErrInvalidWorkers)
	}
	if err := c.Resize(numAnts); err != nil {
		return nil, err
	}

	return c, nil
}

// Resize recreates the ant pool with numAnts fresh ants.
func (c *Colony) Resize(numAnts int) error {
	if numAnts <= 0 {
		return fmt.Errorf("%d: %w", numAnts, ErrInvalidAntCount)
	}
	ants := make([]*Ant, numAnts)
	for i := range ants {
		ants[i] = NewAnt(i, deriveRNG(c.base, uint64(i)), c.policy)
	}
	c.ants = ants
	c.logs = nil

	return nil
}

// NumAnts returns the pool size.
func (c *Colony) NumAnts() int { return len(c.ants) }

// Workers returns the configured concurrency (<=1 means sequential).
func (c *Colony) Workers() int { return c.workers }

// SetWorkers changes the concurrency used by subsequent FindPaths calls.
func (c *Colony) SetWorkers(k int) error {
	if k < 0 {
		return fmt.Errorf("%d: %w", k, ErrInvalidWorkers)
	}
	c.workers = k

	return nil
}

// FindPaths runs every ant once, updates the graph champion with every result
// strictly shorter than the current one (in ant order), overwrites the graph's
// last-iteration report and returns the results.
//
// Errors: ErrSizeMismatch and any tour-construction error; on error the
// champion and report are left untouched.
func (c *Colony) FindPaths(g *Graph, pm *PheromoneMatrix, alpha, beta float64) ([]Tour, error) {
	if err := pm.checkSize(g); err != nil {
		return nil, err
	}

	var (
		results []Tour
		err     error
	)
	if c.workers > 1 && len(c.ants) > 1 {
		results, err = c.findParallel(g, pm, alpha, beta)
	} else {
		results, err = c.findSequential(g, pm, alpha, beta)
	}
	if err != nil {
		return nil, err
	}

	for _, t := range results {
		g.offerChampion(t)
	}
	g.setLastIterationPaths(results)

	return results, nil
}

func (c *Colony) findSequential(g *Graph, pm *PheromoneMatrix, alpha, beta float64) ([]Tour, error) {
	results := make([]Tour, len(c.ants))
	for i, a := range c.ants {
		t, err := a.FindTour(g, pm, alpha, beta)
		if err != nil {
			return nil, err
		}
		results[i] = t
	}

	return results, nil
}

func (c *Colony) findParallel(g *Graph, pm *PheromoneMatrix, alpha, beta float64) ([]Tour, error) {
	if len(c.logs) != len(c.ants) {
		c.logs = make([]depositLog, len(c.ants))
	}
	results := make([]Tour, len(c.ants))

	var eg errgroup.Group
	eg.SetLimit(c.workers)
	for i := range c.ants {
		i := i
		eg.Go(func() error {
			log := &c.logs[i]
			log.reset()
			t, err := c.ants[i].findTour(g, pm, alpha, beta, log)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i := range c.logs {
		if err := c.logs[i].replay(pm); err != nil {
			return nil, fmt.Errorf("ant %d: %w", c.ants[i].id, err)
		}
	}

	return results, nil
}
