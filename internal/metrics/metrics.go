// Package metrics exposes engine progress as Prometheus metrics.
package metrics

import (
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/antroute/aco"
)

// Namespace prefixes every metric name.
const Namespace = "antroute"

// Recorder owns a private registry so several engines (or tests) never
// collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	iterations   prometheus.Counter
	improvements prometheus.Counter
	failures     *prometheus.CounterVec
	bestLength   prometheus.Gauge
	minLength    prometheus.Gauge
	avgLength    prometheus.Gauge
	ants         prometheus.Gauge
	vertices     prometheus.Gauge
	pheromone    prometheus.Gauge
	duration     prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iterations_total",
			Help:      "Completed colony iterations.",
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "champion_improvements_total",
			Help:      "Iterations that shortened the best tour.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iteration_failures_total",
			Help:      "Failed iterations by reason.",
		}, []string{"reason"}),
		bestLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "best_length",
			Help:      "Length of the best tour seen since the last rebuild.",
		}),
		minLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "iteration_min_length",
			Help:      "Shortest tour of the last iteration.",
		}),
		avgLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "iteration_avg_length",
			Help:      "Mean tour length of the last iteration.",
		}),
		ants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ants",
			Help:      "Ants per iteration.",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "vertices",
			Help:      "Vertices in the current problem.",
		}),
		pheromone: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "pheromone_total",
			Help:      "Sum of all trail levels after the last iteration.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of one iteration.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	r.registry.MustRegister(
		r.iterations, r.improvements, r.failures,
		r.bestLength, r.minLength, r.avgLength,
		r.ants, r.vertices, r.pheromone, r.duration,
	)

	return r
}

// Observe records one successful iteration.
func (r *Recorder) Observe(st aco.Stats, improved bool, elapsed time.Duration) {
	r.iterations.Inc()
	if improved {
		r.improvements.Inc()
	}
	if !math.IsInf(st.BestLength, 0) {
		r.bestLength.Set(st.BestLength)
	}
	if !math.IsInf(st.MinLength, 0) {
		r.minLength.Set(st.MinLength)
	}
	r.avgLength.Set(st.AvgLength)
	r.duration.Observe(elapsed.Seconds())
}

// ObserveFailure counts a failed iteration under reason.
func (r *Recorder) ObserveFailure(reason string) {
	r.failures.WithLabelValues(reason).Inc()
}

// SetProblemSize publishes the current ant and vertex counts.
func (r *Recorder) SetProblemSize(ants, vertices int) {
	r.ants.Set(float64(ants))
	r.vertices.Set(float64(vertices))
}

// SetPheromoneTotal publishes the summed trail level.
func (r *Recorder) SetPheromoneTotal(v float64) {
	r.pheromone.Set(v)
}

// Registry returns the private registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
