// Package aco — tour utilities.
//
// A Tour is a closed walk produced by one ant: Path has n+1 entries,
// Path[0]==Path[n], and Path[:n] is a permutation of {0..n-1}. The helpers
// here operate purely on tour structure (index sequences) and never touch
// distance or pheromone storage.
package aco

import (
	"fmt"
	"strconv"
	"strings"
)

// Tour is one ant's result: the closed vertex sequence and its true length.
type Tour struct {
	Path   []int   `json:"path"`
	Length float64 `json:"length"`
}

// Clone returns an independent copy of t.
// Complexity: O(n).
func (t Tour) Clone() Tour {
	return Tour{Path: CopyPath(t.Path), Length: t.Length}
}

// Start returns the first vertex of the tour, or -1 for an empty path.
func (t Tour) Start() int {
	if len(t.Path) == 0 {
		return -1
	}

	return t.Path[0]
}

// String renders the path as "0→3→1→2→0 (12.5)".
func (t Tour) String() string {
	var b strings.Builder
	for i, v := range t.Path {
		if i > 0 {
			b.WriteString("→")
		}
		b.WriteString(strconv.Itoa(v))
	}
	fmt.Fprintf(&b, " (%g)", t.Length)

	return b.String()
}

// CopyPath returns an independent copy of a path slice (nil stays nil).
// Complexity: O(n).
func CopyPath(path []int) []int {
	if path == nil {
		return nil
	}
	out := make([]int, len(path))
	copy(out, path)

	return out
}

// ValidateTour enforces closed-tour invariants for n vertices:
//
//	len(path) == n+1, path[0]==path[n],
//	each vertex v∈[0..n-1] appears exactly once in positions [0..n-1].
//
// For n==1 the only valid tour is [0, 0].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(path []int, n int) error {
	if n <= 0 {
		return ErrNoVertices
	}
	if len(path) != n+1 {
		return fmt.Errorf("len %d, want %d: %w", len(path), n+1, ErrInvalidTour)
	}
	if path[0] != path[n] {
		return fmt.Errorf("open path %d..%d: %w", path[0], path[n], ErrInvalidTour)
	}

	seen := make([]bool, n)
	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = path[i]
		if v < 0 || v >= n {
			return fmt.Errorf("vertex %d at %d: %w", v, i, ErrVertexOutOfRange)
		}
		if seen[v] {
			return fmt.Errorf("vertex %d repeated at %d: %w", v, i, ErrInvalidTour)
		}
		seen[v] = true
	}

	return nil
}
