package carbon

import "strings"

// DefaultGridFactor is used when a region has no grid entry.
// Value is kg CO2e per kWh, a global average.
const DefaultGridFactor = 0.45

// normalizeGridKey folds "North America", "NorthAmerica" and "north america"
// onto one key so tables can use either spelling.
func normalizeGridKey(region string) string {
	return strings.ToLower(strings.ReplaceAll(region, " ", ""))
}

// GridFactor returns the electricity grid intensity for region in kg CO2e per kWh.
// If the region is not listed, DefaultGridFactor is returned.
func (f *Factors) GridFactor(region string) float64 {
	if factor, ok := f.grid[normalizeGridKey(region)]; ok {
		return factor
	}
	return DefaultGridFactor
}
