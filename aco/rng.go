// Package aco - RNG utilities shared by the colony and its ants.
//
// Goals:
//   - Determinism: same seed ⇒ identical tours, pheromones and champions.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independence: every ant draws from its own stream, so the outcome does not
//     depend on whether ants run sequentially or on several goroutines.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each ant owns its *rand.Rand and an
//     ant is never run on two goroutines at once.
package aco

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// NewRand exposes the seeding policy to callers that build their own colonies
// or vertex sets (seed==0 ⇒ deterministic default stream).
func NewRand(seed int64) *rand.Rand {
	return rngFromSeed(seed)
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring stream ids give unrelated seeds.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent deterministic RNG stream based on a base RNG
// and a stream identifier. If base==nil, defaultRNGSeed is used as the parent.
// Otherwise, base.Int63() is consumed once so that pools rebuilt from the same
// base do not repeat the previous pool's streams.
//
// Complexity: O(1).
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = defaultRNGSeed
	} else {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}
