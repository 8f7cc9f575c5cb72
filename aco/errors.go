package aco

import "errors"

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// constructors and setters may wrap them with the offending value.
var (
	// ErrNoVertices is returned when a problem instance has no vertices.
	ErrNoVertices = errors.New("aco: vertex set is empty")

	// ErrInvalidVertex is returned for vertices with NaN or infinite coordinates.
	ErrInvalidVertex = errors.New("aco: vertex coordinates must be finite")

	// ErrVertexOutOfRange is returned when a vertex index is outside [0..n-1].
	ErrVertexOutOfRange = errors.New("aco: vertex index out of range")

	// ErrSizeMismatch is the fatal precondition violation raised when the
	// pheromone matrix and the graph disagree on the vertex count.
	ErrSizeMismatch = errors.New("aco: pheromone matrix size does not match graph")

	// ErrInvalidAntCount is returned for non-positive ant counts.
	ErrInvalidAntCount = errors.New("aco: ant count must be > 0")

	// ErrInvalidExponent is returned for negative or non-finite alpha/beta.
	ErrInvalidExponent = errors.New("aco: alpha and beta must be finite and >= 0")

	// ErrInvalidEvaporation is returned for evaporation rates outside [0, 1).
	ErrInvalidEvaporation = errors.New("aco: evaporation rate must be in [0, 1)")

	// ErrInvalidPheromone is returned for negative or non-finite pheromone amounts.
	ErrInvalidPheromone = errors.New("aco: pheromone amounts must be finite and >= 0")

	// ErrInvalidWorkers is returned for negative worker counts.
	ErrInvalidWorkers = errors.New("aco: worker count must be >= 0")

	// ErrSelfLoop is returned when a deposit targets a diagonal cell.
	ErrSelfLoop = errors.New("aco: pheromone diagonal is read-only")

	// ErrInvalidTour is returned when a path is not a closed permutation tour.
	ErrInvalidTour = errors.New("aco: path is not a closed tour")

	// ErrIterationInProgress is returned when RunIteration is re-entered or
	// called concurrently on the same Engine.
	ErrIterationInProgress = errors.New("aco: iteration already in progress")

	// ErrNilArgument is returned when a required collaborator is nil.
	ErrNilArgument = errors.New("aco: nil argument")
)
