package recommend

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/dataset"
	"github.com/rshade/greenprocure/internal/scoring"
	"github.com/rshade/greenprocure/internal/supplier"
)

type recordingObserver struct {
	mu          sync.Mutex
	generated   int
	evaluated   int
	fitScores   []float64
	allocations []float64
	advice      []AdviceType
}

func (o *recordingObserver) RecommendationsGenerated(evaluated, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generated++
	o.evaluated += evaluated
}

func (o *recordingObserver) FitScored(score float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fitScores = append(o.fitScores, score)
}

func (o *recordingObserver) AllocationPlanned(_, allocated float64, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.allocations = append(o.allocations, allocated)
}

func (o *recordingObserver) AdviceIssued(kind AdviceType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.advice = append(o.advice, kind)
}

func fixtures(t testing.TB) []supplier.Supplier {
	t.Helper()
	d, err := dataset.Default()
	require.NoError(t, err)
	return d.Suppliers()
}

func newTestEngine(t testing.TB, pool []supplier.Supplier, opts ...Option) *Engine {
	t.Helper()
	sc, err := scoring.NewDefault()
	require.NoError(t, err)
	cc, err := carbon.NewDefault()
	require.NoError(t, err)
	return NewEngine(pool, sc, cc, opts...)
}

func byID(t *testing.T, pool []supplier.Supplier, id string) supplier.Supplier {
	t.Helper()
	for _, s := range pool {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("supplier %s not in pool", id)
	return supplier.Supplier{}
}

func ids(ss []supplier.Supplier) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ID)
	}
	return out
}
