package recommend

import (
	"slices"

	"github.com/rshade/greenprocure/internal/supplier"
)

// categoryIndustries maps a product category to the supplier industries that
// can serve it.
var categoryIndustries = map[string][]string{
	"Office Supplies": {"Manufacturing", "Technology"},
	"Packaging":       {"Manufacturing", "Materials"},
	"Electronics":     {"Technology", "Manufacturing"},
	"Chemicals":       {"Chemicals", "Manufacturing"},
	"Textiles":        {"Textiles", "Manufacturing"},
	"Logistics":       {"Logistics", "Transportation"},
}

// fallbackIndustries serve any category missing from categoryIndustries.
var fallbackIndustries = []string{"Manufacturing"}

// IndustriesFor returns the industries accepted for a product category.
func IndustriesFor(category string) []string {
	if ind, ok := categoryIndustries[category]; ok {
		return slices.Clone(ind)
	}
	return slices.Clone(fallbackIndustries)
}

func industryAligned(industry, category string) bool {
	accepted, ok := categoryIndustries[category]
	if !ok {
		accepted = fallbackIndustries
	}
	return slices.Contains(accepted, industry)
}

// EligibleSuppliers returns the pool members that satisfy req, in pool order.
//
// A supplier must be in the preferred region when one is set, belong to an
// industry aligned with the category, report at least the minimum score when
// one is set, and carry no more risk than the maximum when one is set.
// Suppliers without a reported score count as 0; unknown risk counts as medium.
func (e *Engine) EligibleSuppliers(req supplier.Requirements) []supplier.Supplier {
	return filterEligible(e.pool, req)
}

func filterEligible(pool []supplier.Supplier, req supplier.Requirements) []supplier.Supplier {
	minScore, hasMin := req.MinScore()
	var out []supplier.Supplier
	for _, s := range pool {
		if req.GeographicPreference != "" && s.Location.Region != req.GeographicPreference {
			continue
		}
		if !industryAligned(s.Industry, req.Category) {
			continue
		}
		if hasMin && s.ReportedScoreOrZero() < minScore {
			continue
		}
		if req.MaxRiskLevel != "" && s.RiskLevel.Ordinal() > req.MaxRiskLevel.Ordinal() {
			continue
		}
		out = append(out, s)
	}
	return out
}
