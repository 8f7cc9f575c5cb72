// Package antroute is an Ant Colony Optimization playground for the
// Euclidean Travelling Salesman Problem: scatter points on a plane, let a
// colony of ants lay pheromone, and watch the champion tour shrink.
//
// What is inside?
//
//	A deterministic, seedable ACO engine plus the tooling to drive it:
//		• Engine: one iteration = reset pending → ants → evaporate & merge → stats
//		• Roulette-wheel tour construction weighted by τ^α · (1/d)^β
//		• Incremental pheromone deposits, pluggable deposit policy
//		• Optional parallel ants with bit-identical results
//		• Live parameter and vertex edits between iterations
//
// Layout:
//
//	aco/               — Vertex, Graph, PheromoneMatrix, Ant, Colony, Engine
//	matrix/            — dense float64 matrices and structural validators
//	vertexio/          — CSV-ish vertex import and export
//	internal/config    — YAML configuration and discovery paths
//	internal/logging   — slog handler construction
//	internal/metrics   — Prometheus recorder for iteration statistics
//	internal/runner    — paced iteration loop, stagnation stop, live edits
//	internal/server    — HTTP control surface (chi)
//	cmd/antroute       — CLI: run, generate, version
//
// Quick start:
//
//	antroute generate -n 30 -o points.csv
//	antroute run --vertices points.csv --iterations 500 --listen :8080
package antroute
