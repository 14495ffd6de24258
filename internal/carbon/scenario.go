package carbon

import (
	"math"

	"github.com/rshade/greenprocure/internal/supplier"
)

// Allocation assigns part of an order to one supplier.
type Allocation struct {
	Supplier supplier.Supplier
	Quantity float64
}

// OptimizationPotential compares a roster's average per-unit footprint with its
// best performer. PotentialSavings is the kg CO2e saved if every unit of quantity
// came at the best per-unit rate instead of the average.
func (c *Calculator) OptimizationPotential(suppliers []supplier.Supplier, quantity float64) Optimization {
	if len(suppliers) == 0 {
		return Optimization{}
	}

	sum := 0.0
	best := math.Inf(1)
	worst := math.Inf(-1)
	for _, fp := range c.CompareSuppliers(suppliers, quantity) {
		sum += fp.PerUnit
		best = math.Min(best, fp.PerUnit)
		worst = math.Max(worst, fp.PerUnit)
	}
	avg := sum / float64(len(suppliers))
	potential := (avg - best) * quantity

	return Optimization{
		CurrentAverage:    avg,
		BestPerformance:   best,
		WorstPerformance:  worst,
		PotentialSavings:  potential,
		PercentageSavings: Clamp(percentOf(potential, avg*quantity), 0, 100),
	}
}

// ScenarioImpact totals the emissions of an allocation plan. quantity is the
// order size each line's percentage is measured against.
func (c *Calculator) ScenarioImpact(allocations []Allocation, quantity float64) ScenarioResult {
	res := ScenarioResult{Breakdown: make([]ScenarioLine, 0, len(allocations))}
	for _, a := range allocations {
		e := c.SupplierFootprint(a.Supplier, a.Quantity).Total
		res.TotalEmissions += e
		res.Breakdown = append(res.Breakdown, ScenarioLine{
			SupplierID:   a.Supplier.ID,
			SupplierName: a.Supplier.Name,
			Allocation:   a.Quantity,
			Emissions:    e,
			Percentage:   percentOf(a.Quantity, quantity),
		})
	}
	if quantity > 0 {
		res.AverageEmissionsPerUnit = res.TotalEmissions / quantity
	}
	return res
}
