package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rshade/greenprocure/internal/supplier"
)

const (
	allocationStrategy   = "Risk-optimized allocation with sustainability priority"
	allocationConfidence = 0.82
	maxAllocated         = 3
)

var (
	primaryShare   = decimal.RequireFromString("0.6")
	secondaryShare = decimal.RequireFromString("0.3")
	hundred        = decimal.NewFromInt(100)
)

// Allocation is one supplier's share of an order.
type Allocation struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	Allocation   float64 `json:"allocation"`
	Percentage   float64 `json:"percentage"`
	FitScore     float64 `json:"fitScore"`
	Rationale    string  `json:"rationale"`
}

// AllocationPlan splits an order across ranked suppliers.
type AllocationPlan struct {
	Allocations    []Allocation `json:"allocations"`
	Strategy       string       `json:"strategy"`
	Requested      float64      `json:"requested"`
	TotalAllocated float64      `json:"totalAllocated"`
	Confidence     float64      `json:"confidence"`
}

// AllocationRecommendations ranks suppliers by project fit and splits the
// requested quantity in whole units: 60% to the best, then up to 30% each to
// the next two, each share rounded to the nearest unit and capped by what
// remains. At most three suppliers receive a share. Every line is a whole
// number, so the lines add up exactly and never exceed the request; a
// fractional part of the request is left unallocated.
//
// suppliers is used as given; it is not filtered by req.
func (e *Engine) AllocationRecommendations(suppliers []supplier.Supplier, req supplier.Requirements) AllocationPlan {
	qty := req.EffectiveQuantity()
	plan := AllocationPlan{
		Allocations: []Allocation{},
		Strategy:    allocationStrategy,
		Requested:   qty,
		Confidence:  allocationConfidence,
	}

	ranked := e.rank(suppliers, NormalizePriorities(req.SustainabilityPriorities))
	requested := decimal.NewFromFloat(qty)
	units := requested.Floor()
	remaining := units

	for i, r := range ranked {
		if i >= maxAllocated || !remaining.IsPositive() {
			break
		}
		share, rationale := secondaryShare, fmt.Sprintf("Secondary supplier %d - risk diversification", i)
		if i == 0 {
			share, rationale = primaryShare, "Primary supplier - highest sustainability score"
		}

		amount := decimal.Min(units.Mul(share).Round(0), remaining)
		if !amount.IsPositive() {
			break
		}
		remaining = remaining.Sub(amount)
		plan.Allocations = append(plan.Allocations, Allocation{
			SupplierID:   r.supplier.ID,
			SupplierName: r.supplier.Name,
			Allocation:   amount.InexactFloat64(),
			Percentage:   amount.Div(requested).Mul(hundred).InexactFloat64(),
			FitScore:     r.score,
			Rationale:    rationale,
		})
	}
	plan.TotalAllocated = units.Sub(remaining).InexactFloat64()

	e.observer.AllocationPlanned(qty, plan.TotalAllocated, len(plan.Allocations))
	e.logger.Info().
		Str("operation", "AllocationRecommendations").
		Int("candidates", len(suppliers)).
		Int("allocated_suppliers", len(plan.Allocations)).
		Float64("requested", qty).
		Float64("total_allocated", plan.TotalAllocated).
		Msg("allocation planned")
	return plan
}
