package carbon

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// ProductLifecycle sums manufacturing, use and end-of-life emissions for
// quantity units. Products without lifecycle data yield a zero result.
func (c *Calculator) ProductLifecycle(p supplier.Product, quantity float64) LifecycleResult {
	if !p.HasLifecycle() {
		return LifecycleResult{}
	}

	b := LifecycleBreakdown{
		Manufacturing: p.ManufactureCO2e() * quantity,
		Use:           p.UseCO2e() * quantity,
		EndOfLife:     p.EndOfLifeCO2e() * quantity,
	}
	return LifecycleResult{
		Total:     (p.ManufactureCO2e() + p.UseCO2e() + p.EndOfLifeCO2e()) * quantity,
		Breakdown: b,
	}
}

// MaterialEmissionFactor returns kg CO2e per kg for a material.
//
// With recycled set, the recycled factor is preferred when the table has one.
// Otherwise the virgin factor is used, then the conventional one. Unknown
// materials return 0.
func (c *Calculator) MaterialEmissionFactor(material string, recycled bool) float64 {
	m, ok := c.factors.Material(material)
	if !ok {
		return 0
	}
	if recycled && m.Recycled > 0 {
		return m.Recycled
	}
	if m.Virgin > 0 {
		return m.Virgin
	}
	return m.Conventional
}
