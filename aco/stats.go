package aco

import "math"

// Stats summarizes one iteration.
//
// MinLength is +Inf and AvgLength 0 when no tours were produced. BestLength is
// the champion length after the iteration (+Inf before any champion exists).
type Stats struct {
	AvgLength  float64 `json:"avg_length"`
	MinLength  float64 `json:"min_length"`
	BestLength float64 `json:"best_length"`
	PathsCount int     `json:"paths_count"`
}

// ComputeStats aggregates results against the champion length best.
// Complexity: O(len(results)).
func ComputeStats(results []Tour, best float64) Stats {
	s := Stats{
		MinLength:  math.Inf(1),
		BestLength: best,
		PathsCount: len(results),
	}
	if len(results) == 0 {
		return s
	}

	var sum float64
	for _, t := range results {
		sum += t.Length
		if t.Length < s.MinLength {
			s.MinLength = t.Length
		}
	}
	s.AvgLength = sum / float64(len(results))

	return s
}
