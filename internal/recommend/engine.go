// Package recommend turns procurement requirements and a supplier pool into
// ranked, explained recommendations, allocation plans and roster advice.
package recommend

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/scoring"
	"github.com/rshade/greenprocure/internal/supplier"
)

const (
	// maxRecommendations caps the ranked list returned to callers.
	maxRecommendations = 5

	// industryAverageIntensity is the assumed kg CO2e per unit of a typical
	// supplier, used as the savings baseline.
	industryAverageIntensity = 4.0

	// savingsComparison labels the savings baseline.
	savingsComparison = "vs industry average"
)

// Observer receives engine activity. Implementations must be safe for
// concurrent use.
type Observer interface {
	// RecommendationsGenerated is called once per SupplierRecommendations call.
	RecommendationsGenerated(evaluated, returned int, elapsed time.Duration)

	// FitScored is called for every project fit score computed.
	FitScored(score float64)

	// AllocationPlanned is called once per AllocationRecommendations call.
	AllocationPlanned(requested, allocated float64, suppliers int)

	// AdviceIssued is called for every procurement recommendation returned.
	AdviceIssued(kind AdviceType)
}

type nopObserver struct{}

func (nopObserver) RecommendationsGenerated(int, int, time.Duration) {}
func (nopObserver) FitScored(float64)                                {}
func (nopObserver) AllocationPlanned(float64, float64, int)          {}
func (nopObserver) AdviceIssued(AdviceType)                          {}

// Engine ranks and allocates suppliers from a fixed pool. The pool and both
// calculators are read-only, so an Engine is safe for concurrent use.
type Engine struct {
	pool        []supplier.Supplier
	scorer      *scoring.Calculator
	carbon      *carbon.Calculator
	logger      zerolog.Logger
	observer    Observer
	parallelism int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for per-call summary lines.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l.With().Str("component", "recommend").Logger()
	}
}

// WithObserver registers an Observer, such as a metrics registry.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithParallelism bounds the goroutines ScorePool runs at once.
// Values below 1 select GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.parallelism = n
		}
	}
}

// NewEngine creates an Engine over pool. The pool slice is copied.
func NewEngine(pool []supplier.Supplier, scorer *scoring.Calculator, calc *carbon.Calculator, opts ...Option) *Engine {
	e := &Engine{
		pool:        append([]supplier.Supplier(nil), pool...),
		scorer:      scorer,
		carbon:      calc,
		logger:      zerolog.Nop(),
		observer:    nopObserver{},
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pool returns a copy of the engine's supplier pool.
func (e *Engine) Pool() []supplier.Supplier {
	return append([]supplier.Supplier(nil), e.pool...)
}
