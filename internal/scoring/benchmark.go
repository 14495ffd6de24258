package scoring

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// Percentile classifications.
const (
	PercentileTopQuartile  = "Top 25%"
	PercentileAboveAverage = "Above Average"
	PercentileBelowAverage = "Below Average"

	// NoBenchmark is the comparison text for industries missing from the table.
	NoBenchmark = "No benchmark available"
)

// BenchmarkResult places a supplier within its industry.
// When Available is false only Industry and Comparison are set.
type BenchmarkResult struct {
	Industry        string  `json:"industry"`
	Available       bool    `json:"available"`
	Comparison      string  `json:"comparison,omitempty"`
	SupplierScore   float64 `json:"supplierScore,omitempty"`
	IndustryAverage float64 `json:"industryAverage,omitempty"`
	TopQuartile     float64 `json:"topQuartile,omitempty"`
	Percentile      string  `json:"percentile,omitempty"`

	// Gap is top quartile minus the supplier's score; negative above the top quartile.
	Gap float64 `json:"gap,omitempty"`
}

// Benchmark compares the supplier's computed score with its sector's average
// and top quartile.
func (c *Calculator) Benchmark(s supplier.Supplier) BenchmarkResult {
	sec, ok := c.table.Sector(s.Industry)
	if !ok {
		return BenchmarkResult{Industry: s.Industry, Comparison: NoBenchmark}
	}

	score := c.ComputedScore(s)
	percentile := PercentileBelowAverage
	switch {
	case score >= sec.TopQuartile:
		percentile = PercentileTopQuartile
	case score >= sec.AvgScore:
		percentile = PercentileAboveAverage
	}

	return BenchmarkResult{
		Industry:        s.Industry,
		Available:       true,
		SupplierScore:   score,
		IndustryAverage: sec.AvgScore,
		TopQuartile:     sec.TopQuartile,
		Percentile:      percentile,
		Gap:             sec.TopQuartile - score,
	}
}
