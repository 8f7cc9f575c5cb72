// Package matrix provides the flat, bounds-checked storage used by the
// optimization engine for its n×n tables (pairwise distances, pheromone trails).
//
// What & Why:
//
//	Dense keeps r*c float64 values in one row-major slice (offset = i*c + j).
//	Row sweeps touch contiguous memory, and every public accessor validates its
//	indices and returns a sentinel error instead of panicking. In-place kernels
//	(Fill, FillOffDiagonal, ScaleAddInPlace, AddAt) exist for the hot loops that
//	must not allocate.
//
// Complexity:
//
//	Rows, Cols, At, Set, AddAt run in O(1).
//	Fill, Apply, Do, ScaleAddInPlace and Clone run in O(rows*cols).
package matrix
