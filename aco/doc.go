// Package aco implements an Ant Colony Optimization engine for closed tours
// over points on the plane.
//
// Components:
//
//   - Graph — vertices, the n×n Euclidean distance matrix and the champion
//     (best tour seen since the last rebuild).
//   - PheromoneMatrix — current trail levels (read by ants) and a pending
//     buffer collecting one iteration's deposits.
//   - Ant / FindTour — roulette-wheel tour construction with an incremental,
//     local deposit on every chosen edge.
//   - Colony — a persistent pool of ants; optionally runs them on several
//     goroutines with results identical to a sequential run.
//   - Engine — the iteration driver: reset pending → ants → evaporate & merge
//     → stats.
//
// One iteration:
//
//	e, _ := aco.New(vertices, aco.DefaultOptions())
//	st, _ := e.RunIteration()
//	fmt.Println(st.BestLength, e.Graph().BestPath())
//
// Evaporation:
//
//	current = current*(1-EvaporationRate) + pending
//
// Determinism:
//   - Options.Seed fixes every random choice; Seed==0 is a fixed default stream.
//   - The package never reads the clock and never logs.
//
// Errors are sentinel values (errors.go) matched with errors.Is.
package aco
