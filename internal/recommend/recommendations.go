package recommend

import (
	"sort"
	"time"

	"github.com/rshade/greenprocure/internal/supplier"
)

// Recommendation is one ranked supplier for a request.
type Recommendation struct {
	Rank             int               `json:"rank"`
	Supplier         supplier.Supplier `json:"supplier"`
	Score            float64           `json:"score"`
	Reasoning        string            `json:"reasoning"`
	Confidence       float64           `json:"confidence"`
	EstimatedSavings Savings           `json:"estimatedSavings"`

	// PreviouslyAwarded is set when the buyer's history includes this supplier.
	PreviouslyAwarded bool `json:"previouslyAwarded,omitempty"`
}

// EvaluationWeights documents the evaluation blend reported with every result.
type EvaluationWeights struct {
	Sustainability float64 `json:"sustainability"`
	Performance    float64 `json:"performance"`
	Risk           float64 `json:"risk"`
	Cost           float64 `json:"cost"`
}

var defaultEvaluationWeights = EvaluationWeights{
	Sustainability: 0.4,
	Performance:    0.3,
	Risk:           0.2,
	Cost:           0.1,
}

// Criteria echoes the request parameters that shaped a result.
type Criteria struct {
	SustainabilityPriorities map[string]float64 `json:"sustainabilityPriorities,omitempty"`
	NormalizedPriorities     Priorities         `json:"normalizedPriorities"`
	GeographicPreference     supplier.Region    `json:"geographicPreference,omitempty"`
	Category                 string             `json:"category,omitempty"`
	EvaluationWeights        EvaluationWeights  `json:"evaluationWeights"`
	HistoryEntries           int                `json:"historyEntries"`
}

// Result is the output of SupplierRecommendations.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`

	// TotalEvaluated counts eligible suppliers before truncation.
	TotalEvaluated int      `json:"totalEvaluated"`
	Criteria       Criteria `json:"criteria"`
}

type scored struct {
	supplier supplier.Supplier
	score    float64
}

// rank scores suppliers and sorts them by descending score, breaking ties by
// ascending supplier ID.
func (e *Engine) rank(suppliers []supplier.Supplier, w Priorities) []scored {
	out := make([]scored, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, scored{supplier: s, score: e.fitScore(s, w)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].supplier.ID < out[j].supplier.ID
	})
	return out
}

// SupplierRecommendations filters the pool by req, ranks eligible suppliers by
// project fit and returns at most five with reasoning, confidence and savings.
// An empty eligible set yields an empty, well-formed Result.
func (e *Engine) SupplierRecommendations(req supplier.Requirements, history []supplier.HistoryEntry) Result {
	start := time.Now()

	eligible := e.EligibleSuppliers(req)
	weights := NormalizePriorities(req.SustainabilityPriorities)
	ranked := e.rank(eligible, weights)
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	awarded := make(map[string]bool, len(history))
	for _, h := range history {
		awarded[h.SupplierID] = true
	}

	recs := make([]Recommendation, 0, len(ranked))
	for i, r := range ranked {
		recs = append(recs, Recommendation{
			Rank:              i + 1,
			Supplier:          r.supplier,
			Score:             r.score,
			Reasoning:         e.Reasoning(r.supplier, req),
			Confidence:        e.Confidence(r.supplier),
			EstimatedSavings:  e.EstimatedSavings(r.supplier, req),
			PreviouslyAwarded: awarded[r.supplier.ID],
		})
	}

	elapsed := time.Since(start)
	e.observer.RecommendationsGenerated(len(eligible), len(recs), elapsed)
	e.logger.Info().
		Str("operation", "SupplierRecommendations").
		Str("category", req.Category).
		Int("pool_size", len(e.pool)).
		Int("eligible", len(eligible)).
		Int("recommendation_count", len(recs)).
		Int64("duration_ms", elapsed.Milliseconds()).
		Msg("supplier recommendations generated")

	return Result{
		Recommendations: recs,
		TotalEvaluated:  len(eligible),
		Criteria: Criteria{
			SustainabilityPriorities: req.SustainabilityPriorities,
			NormalizedPriorities:     weights,
			GeographicPreference:     req.GeographicPreference,
			Category:                 req.Category,
			EvaluationWeights:        defaultEvaluationWeights,
			HistoryEntries:           len(history),
		},
	}
}
