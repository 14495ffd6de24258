// Package metrics exposes recommendation engine activity as Prometheus
// collectors. A Registry implements recommend.Observer.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rshade/greenprocure/internal/recommend"
)

const namespace = "greenprocure"

// Registry owns a private Prometheus registry and the engine collectors.
type Registry struct {
	reg *prometheus.Registry

	RecommendationRuns  prometheus.Counter
	SuppliersEvaluated  prometheus.Counter
	RecommendationsSent prometheus.Counter
	RecommendLatencySec prometheus.Histogram
	FitScores           prometheus.Histogram
	AllocationRuns      prometheus.Counter
	AllocatedQuantity   prometheus.Counter
	LastAllocationRatio prometheus.Gauge
	Advice              *prometheus.CounterVec
}

// NewRegistry creates a Registry with every collector registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_runs_total",
		Help:      "Supplier recommendation requests served.",
	})
	evaluated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suppliers_evaluated_total",
		Help:      "Eligible suppliers evaluated across all recommendation requests.",
	})
	sent := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_returned_total",
		Help:      "Ranked recommendations returned to callers.",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommendation_duration_seconds",
		Help:      "Time spent producing one recommendation result.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	fit := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fit_score",
		Help:      "Distribution of project fit scores (0-10).",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})
	allocRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocation_runs_total",
		Help:      "Allocation plans produced.",
	})
	allocated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocated_quantity_total",
		Help:      "Units allocated across all plans.",
	})
	ratio := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_allocation_ratio",
		Help:      "Share of the requested quantity allocated by the most recent plan.",
	})
	advice := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "procurement_advice_total",
		Help:      "Procurement recommendations issued, by type.",
	}, []string{"type"})

	r.MustRegister(runs, evaluated, sent, latency, fit, allocRuns, allocated, ratio, advice)
	return &Registry{
		reg:                 r,
		RecommendationRuns:  runs,
		SuppliersEvaluated:  evaluated,
		RecommendationsSent: sent,
		RecommendLatencySec: latency,
		FitScores:           fit,
		AllocationRuns:      allocRuns,
		AllocatedQuantity:   allocated,
		LastAllocationRatio: ratio,
		Advice:              advice,
	}
}

var _ recommend.Observer = (*Registry)(nil)

// RecommendationsGenerated implements recommend.Observer.
func (r *Registry) RecommendationsGenerated(evaluated, returned int, elapsed time.Duration) {
	r.RecommendationRuns.Inc()
	r.SuppliersEvaluated.Add(float64(evaluated))
	r.RecommendationsSent.Add(float64(returned))
	r.RecommendLatencySec.Observe(elapsed.Seconds())
}

// FitScored implements recommend.Observer.
func (r *Registry) FitScored(score float64) {
	r.FitScores.Observe(score)
}

// AllocationPlanned implements recommend.Observer.
func (r *Registry) AllocationPlanned(requested, allocated float64, _ int) {
	r.AllocationRuns.Inc()
	r.AllocatedQuantity.Add(allocated)
	if requested > 0 {
		r.LastAllocationRatio.Set(allocated / requested)
	}
}

// AdviceIssued implements recommend.Observer.
func (r *Registry) AdviceIssued(kind recommend.AdviceType) {
	r.Advice.WithLabelValues(string(kind)).Inc()
}

// Gatherer returns the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// WriteToTextfile dumps the registry in the node-exporter textfile format.
func (r *Registry) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
