package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rshade/greenprocure/internal/supplier"
)

// AdviceType classifies a procurement recommendation.
type AdviceType string

// Procurement advice types.
const (
	AdviceDiversification       AdviceType = "diversification"
	AdviceIndustryConcentration AdviceType = "industry_concentration"
	AdviceCarbonOptimization    AdviceType = "carbon_optimization"
	AdviceCertification         AdviceType = "certification"
)

const (
	// concentrationLimit is the share above which one region or industry is flagged.
	concentrationLimit = 0.7

	// carbonGapFactor flags a roster whose average per-unit carbon exceeds the
	// best performer by this factor.
	carbonGapFactor = 1.2

	// certificationCoverageMin is the roster share each key certification should reach.
	certificationCoverageMin = 0.5

	unspecified = "unspecified"
)

// adviceNamespace scopes deterministic advice IDs.
var adviceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rshade/greenprocure/advice"))

// ProcurementRecommendation is advice about a supplier roster as a whole.
type ProcurementRecommendation struct {
	// ID is stable for the same advice type over the same roster.
	ID          string     `json:"id"`
	Type        AdviceType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Confidence  float64    `json:"confidence"`
	Action      string     `json:"action"`
}

// ProcurementRecommendations runs independent heuristics over the current
// roster: region and industry concentration, carbon optimization and key
// certification gaps. Results are sorted by descending confidence. An empty
// roster yields no advice.
func (e *Engine) ProcurementRecommendations(current []supplier.Supplier, req supplier.Requirements) []ProcurementRecommendation {
	out := []ProcurementRecommendation{}
	if len(current) == 0 {
		return out
	}
	rosterKey := rosterKey(current)

	if share, region := concentration(current, func(s supplier.Supplier) string { return string(s.Location.Region) }); share > concentrationLimit {
		out = append(out, ProcurementRecommendation{
			Type:        AdviceDiversification,
			Title:       "Diversify Geographic Risk",
			Description: fmt.Sprintf("%d%% of suppliers are in %s", int(math.Round(share*100)), region),
			Impact:      "15-25% risk reduction",
			Confidence:  0.85,
			Action:      "Consider suppliers from other regions",
		})
	}

	if share, industry := concentration(current, func(s supplier.Supplier) string { return s.Industry }); share > concentrationLimit {
		out = append(out, ProcurementRecommendation{
			Type:        AdviceIndustryConcentration,
			Title:       "Diversify Industry Exposure",
			Description: fmt.Sprintf("%d%% of suppliers are in the %s industry", int(math.Round(share*100)), industry),
			Impact:      "10-20% supply disruption risk reduction",
			Confidence:  0.8,
			Action:      "Qualify suppliers from adjacent industries",
		})
	}

	if potential, desc, ok := carbonOpportunity(current); ok {
		out = append(out, ProcurementRecommendation{
			Type:        AdviceCarbonOptimization,
			Title:       "Optimize Carbon Footprint",
			Description: desc,
			Impact:      fmt.Sprintf("%d%% CO2 reduction", potential),
			Confidence:  0.78,
			Action:      "Switch to lower-carbon suppliers",
		})
	}

	if gaps := certificationGaps(current); len(gaps) > 0 {
		out = append(out, ProcurementRecommendation{
			Type:        AdviceCertification,
			Title:       "Improve Supplier Certifications",
			Description: "Missing key certifications: " + strings.Join(gaps, ", "),
			Impact:      "10-15% compliance improvement",
			Confidence:  0.72,
			Action:      "Prioritize certified suppliers",
		})
	}

	for i := range out {
		out[i].ID = uuid.NewSHA1(adviceNamespace, []byte(string(out[i].Type)+"|"+rosterKey)).String()
		e.observer.AdviceIssued(out[i].Type)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })

	e.logger.Info().
		Str("operation", "ProcurementRecommendations").
		Str("category", req.Category).
		Int("roster_size", len(current)).
		Int("advice_count", len(out)).
		Msg("procurement advice generated")
	return out
}

// rosterKey is an order-independent identity for a roster.
func rosterKey(roster []supplier.Supplier) string {
	ids := make([]string, 0, len(roster))
	for _, s := range roster {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// concentration returns the largest share held by one value of key and that
// value. Ties go to the value seen first in roster order.
func concentration(roster []supplier.Supplier, key func(supplier.Supplier) string) (float64, string) {
	counts := make(map[string]int, len(roster))
	for _, s := range roster {
		counts[keyOrUnspecified(key(s))]++
	}
	maxCount, dominant := 0, ""
	for _, s := range roster {
		k := keyOrUnspecified(key(s))
		if counts[k] > maxCount {
			maxCount, dominant = counts[k], k
		}
	}
	return float64(maxCount) / float64(len(roster)), dominant
}

func keyOrUnspecified(k string) string {
	if k == "" {
		return unspecified
	}
	return k
}

// carbonOpportunity compares the roster's average per-unit carbon with its best
// reporting supplier. Suppliers without a footprint count as 0 in the average
// and are not eligible as best performer.
func carbonOpportunity(roster []supplier.Supplier) (int, string, bool) {
	sum := 0.0
	best := math.Inf(1)
	for _, s := range roster {
		perUnit := s.PerUnitCarbon()
		sum += perUnit
		if perUnit > 0 && perUnit < best {
			best = perUnit
		}
	}
	avg := sum / float64(len(roster))
	if math.IsInf(best, 1) || avg <= best*carbonGapFactor {
		return 0, "", false
	}

	potential := int(math.Round((avg - best) / avg * 100))
	desc := fmt.Sprintf("Current average: %.1f kg CO2e, best performer: %.1f kg CO2e", avg, best)
	return potential, desc, potential > 0
}

// certificationGaps lists key certifications held by under half the roster.
func certificationGaps(roster []supplier.Supplier) []string {
	var gaps []string
	for _, cert := range keyCertifications {
		held := 0
		for _, s := range roster {
			if s.HasCertification(cert) {
				held++
			}
		}
		if float64(held)/float64(len(roster)) < certificationCoverageMin {
			gaps = append(gaps, cert)
		}
	}
	return gaps
}
