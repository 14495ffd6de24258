package carbon

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// FootprintEstimator computes order-level supplier emissions.
type FootprintEstimator interface {
	// SupplierFootprint returns the supplier's emissions for quantity units.
	// Suppliers without emissions data yield an all-zero Footprint.
	SupplierFootprint(s supplier.Supplier, quantity float64) Footprint
}

// Calculator implements FootprintEstimator over an injected factor table.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	factors *Factors
}

var _ FootprintEstimator = (*Calculator)(nil)

// New creates a Calculator backed by factors.
func New(factors *Factors) *Calculator {
	return &Calculator{factors: factors}
}

// NewDefault creates a Calculator backed by the embedded factor table.
func NewDefault() (*Calculator, error) {
	f, err := DefaultFactors()
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// Factors returns the table the calculator reads.
func (c *Calculator) Factors() *Factors {
	return c.factors
}

// SupplierFootprint calculates a supplier's emissions for an order.
//
//  1. Total = perUnit × quantity
//  2. Scope N = annual scope N tonnes × quantity / ScopeQuantityDivisor
//  3. Transport = TransportEmissions by the default mode
//
// Step 2 conflates an annual aggregate with a per-order share and is kept only
// for comparability across suppliers.
func (c *Calculator) SupplierFootprint(s supplier.Supplier, quantity float64) Footprint {
	if !s.HasFootprint() {
		return Footprint{}
	}

	perUnit := s.PerUnitCarbon()
	return Footprint{
		PerUnit: perUnit,
		Total:   perUnit * quantity,
		Breakdown: Breakdown{
			Scope1:    s.Scope1() * quantity / ScopeQuantityDivisor,
			Scope2:    s.Scope2() * quantity / ScopeQuantityDivisor,
			Scope3:    s.Scope3() * quantity / ScopeQuantityDivisor,
			Transport: c.defaultTransport(s, quantity),
		},
	}
}

// CompareSuppliers returns each supplier's footprint in input order.
func (c *Calculator) CompareSuppliers(suppliers []supplier.Supplier, quantity float64) []SupplierFootprint {
	out := make([]SupplierFootprint, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, SupplierFootprint{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			Footprint:    c.SupplierFootprint(s, quantity),
		})
	}
	return out
}

// Savings compares switching an order from current to alternative.
// SavingsPercentage is 0 when the current supplier's emissions are 0.
func (c *Calculator) Savings(current, alternative supplier.Supplier, quantity float64) SavingsResult {
	cur := c.SupplierFootprint(current, quantity)
	alt := c.SupplierFootprint(alternative, quantity)

	savings := cur.Total - alt.Total
	pct := 0.0
	if cur.Total > 0 {
		pct = savings / cur.Total * 100
	}

	return SavingsResult{
		CurrentEmissions:     cur.Total,
		AlternativeEmissions: alt.Total,
		Savings:              savings,
		SavingsPercentage:    pct,
		Breakdown: Breakdown{
			Scope1:    cur.Breakdown.Scope1 - alt.Breakdown.Scope1,
			Scope2:    cur.Breakdown.Scope2 - alt.Breakdown.Scope2,
			Scope3:    cur.Breakdown.Scope3 - alt.Breakdown.Scope3,
			Transport: cur.Breakdown.Transport - alt.Breakdown.Transport,
		},
	}
}
