package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/supplier"
)

func TestSupplierRecommendations(t *testing.T) {
	obs := &recordingObserver{}
	e := newTestEngine(t, fixtures(t), WithObserver(obs))

	req := supplier.Requirements{Category: "Office Supplies", Quantity: 5000}
	history := []supplier.HistoryEntry{{SupplierID: "2", Date: "2025-03-01", Quantity: 4000}}
	got := e.SupplierRecommendations(req, history)

	assert.Equal(t, 3, got.TotalEvaluated)
	require.Len(t, got.Recommendations, 3)

	first := got.Recommendations[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "1", first.Supplier.ID)
	assert.InDelta(t, 8.7531, first.Score, 1e-3)
	assert.Equal(t, 1.0, first.Confidence)
	assert.InDelta(t, 8500.0, first.EstimatedSavings.AbsoluteSavings, 1e-6)
	assert.False(t, first.PreviouslyAwarded)
	assert.Contains(t, first.Reasoning, "Excellent sustainability score (8.6/10)")

	assert.Equal(t, "2", got.Recommendations[1].Supplier.ID)
	assert.True(t, got.Recommendations[1].PreviouslyAwarded)
	assert.Equal(t, "7", got.Recommendations[2].Supplier.ID)
	assert.Equal(t, 3, got.Recommendations[2].Rank)

	assert.Equal(t, "Office Supplies", got.Criteria.Category)
	assert.Equal(t, 1, got.Criteria.HistoryEntries)
	assert.Equal(t, 0.4, got.Criteria.EvaluationWeights.Sustainability)
	assert.Equal(t, DefaultPriorities, got.Criteria.NormalizedPriorities)

	assert.Equal(t, 1, obs.generated)
	assert.Equal(t, 3, obs.evaluated)
	assert.Len(t, obs.fitScores, 3)
}

func TestSupplierRecommendations_RankingOrderAndLimit(t *testing.T) {
	pool := fixtures(t)
	for i := range pool {
		pool[i].Industry = "Manufacturing"
	}
	e := newTestEngine(t, pool)

	got := e.SupplierRecommendations(supplier.Requirements{Category: "Packaging"}, nil)
	assert.Equal(t, 8, got.TotalEvaluated)
	require.Len(t, got.Recommendations, 5)
	for i := 1; i < len(got.Recommendations); i++ {
		assert.GreaterOrEqual(t, got.Recommendations[i-1].Score, got.Recommendations[i].Score)
		assert.Equal(t, i+1, got.Recommendations[i].Rank)
	}
}

func TestSupplierRecommendations_TiesBrokenByID(t *testing.T) {
	pool := []supplier.Supplier{
		{ID: "c", Name: "C", Industry: "Manufacturing"},
		{ID: "a", Name: "A", Industry: "Manufacturing"},
		{ID: "b", Name: "B", Industry: "Manufacturing"},
	}
	e := newTestEngine(t, pool)

	got := e.SupplierRecommendations(supplier.Requirements{}, nil)
	require.Len(t, got.Recommendations, 3)
	assert.Equal(t, "a", got.Recommendations[0].Supplier.ID)
	assert.Equal(t, "b", got.Recommendations[1].Supplier.ID)
	assert.Equal(t, "c", got.Recommendations[2].Supplier.ID)
}

func TestSupplierRecommendations_Empty(t *testing.T) {
	tests := []struct {
		name string
		pool []supplier.Supplier
		req  supplier.Requirements
	}{
		{"empty pool", nil, supplier.Requirements{Category: "Packaging"}},
		{"no eligible supplier", fixtures(t), supplier.Requirements{Category: "Logistics", GeographicPreference: supplier.RegionOceania}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestEngine(t, tt.pool).SupplierRecommendations(tt.req, nil)
			assert.NotNil(t, got.Recommendations)
			assert.Empty(t, got.Recommendations)
			assert.Equal(t, 0, got.TotalEvaluated)
		})
	}
}

func TestEngine_PoolIsCopied(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)
	pool[0].Name = "mutated"

	assert.Equal(t, "EcoTech Solutions", e.Pool()[0].Name)
}
