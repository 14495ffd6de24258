// Package carbon computes supplier, transport and product lifecycle emissions
// from versioned emission-factor tables.
package carbon

const (
	// DefaultUnitWeightKg is the assumed shipping weight of one unit.
	// Source: dashboard mock assumption, pending per-SKU weights.
	DefaultUnitWeightKg = 0.5

	// KgPerTonne converts kilograms to metric tonnes.
	KgPerTonne = 1000.0

	// ScopeQuantityDivisor scales annual scope tonnages to an order of a given
	// quantity (annual × quantity / divisor). This is a demo approximation and
	// not a GHG Protocol allocation.
	ScopeQuantityDivisor = 1000.0

	// DefaultDistanceKm is used when a supplier's region has no distance entry.
	DefaultDistanceKm = 1000.0

	// MinFactorsVersion is the oldest emission-factor table version accepted.
	MinFactorsVersion = "2024.1.0"
)

// regionDistanceKm maps a sourcing region to a representative shipping distance.
// Coarse lookup, not a geographic computation.
var regionDistanceKm = map[string]float64{
	"North America": 800,
	"Europe":        1200,
	"Asia":          8000,
	"South America": 6000,
	"Africa":        7000,
	"Oceania":       9000,
}
