package scoring

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// Priority ranks an improvement suggestion.
type Priority string

// Improvement priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Component score thresholds below which an improvement is suggested.
const (
	carbonImprovementBelow        = 6.0
	certificationImprovementBelow = 5.0
	recyclingImprovementBelow     = 6.0
)

// Improvement is a rule-based suggestion for raising a supplier's score.
type Improvement struct {
	Area       string   `json:"area"`
	Priority   Priority `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Impact     string   `json:"impact"`
}

// ImprovementRecommendations suggests work on each weak score component,
// in the fixed order carbon, certifications, recycled content.
func (c *Calculator) ImprovementRecommendations(s supplier.Supplier) []Improvement {
	b := c.OverallScore(s, nil).Breakdown
	var out []Improvement

	if b.Carbon < carbonImprovementBelow {
		out = append(out, Improvement{
			Area:       "Carbon Footprint",
			Priority:   PriorityHigh,
			Suggestion: "Implement energy efficiency measures and renewable energy adoption",
			Impact:     "Could improve overall score by up to 1.5 points",
		})
	}
	if b.Certifications < certificationImprovementBelow {
		out = append(out, Improvement{
			Area:       "Certifications",
			Priority:   PriorityMedium,
			Suggestion: "Pursue ISO 14001 and industry-specific sustainability certifications",
			Impact:     "Could improve overall score by up to 2 points",
		})
	}
	if b.Recycling < recyclingImprovementBelow {
		out = append(out, Improvement{
			Area:       "Recycled Content",
			Priority:   PriorityMedium,
			Suggestion: "Increase use of recycled materials in products",
			Impact:     "Could improve overall score by up to 1 point",
		})
	}
	return out
}
