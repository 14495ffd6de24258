package recommend

import (
	"math"
	"strconv"
	"strings"

	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/scoring"
	"github.com/rshade/greenprocure/internal/supplier"
)

// Sustainability priority keys accepted in Requirements.SustainabilityPriorities.
const (
	PriorityCarbon         = "carbonFootprint"
	PriorityRecycling      = "recycling"
	PriorityCertifications = "certifications"
	PriorityPolicies       = "policies"
	PriorityRenewable      = "renewable"
)

// Fit score bonuses.
const (
	preferredBonus    = 0.5
	lowRiskBonus      = 0.3
	onTimeBonus       = 0.2
	lowDefectBonus    = 0.2
	onTimeBonusAbove  = 95.0
	lowDefectBelow    = 1.0
	highRecycledAbove = 50.0
	lowCarbonBelow    = 3.0
	excellentScoreMin = 8.0
)

// Confidence adjustments.
const (
	baseConfidence         = 0.5
	completenessWeight     = 0.2
	thirdPartyConfidence   = 0.15
	selfReportedConfidence = 0.05
	preferredConfidence    = 0.1
	minConfidence          = 0.1
	maxConfidence          = 1.0
)

var riskConfidence = map[supplier.RiskLevel]float64{
	supplier.RiskLow:    0.1,
	supplier.RiskMedium: 0.05,
	supplier.RiskHigh:   -0.1,
}

// keyCertifications are the certifications treated as strong environmental
// credentials in reasoning and roster gap analysis.
var keyCertifications = []string{"ISO14001", "ISO14067", "B-Corp"}

// Priorities are normalized fit-score weights summing to 1.
type Priorities struct {
	Carbon         float64 `json:"carbonFootprint"`
	Recycling      float64 `json:"recycling"`
	Certifications float64 `json:"certifications"`
	Policies       float64 `json:"policies"`
	Renewable      float64 `json:"renewable"`
}

// DefaultPriorities are used for keys absent from a request.
var DefaultPriorities = Priorities{
	Carbon:         0.3,
	Recycling:      0.2,
	Certifications: 0.2,
	Policies:       0.15,
	Renewable:      0.15,
}

// NormalizePriorities resolves caller weights to Priorities summing to 1.
// Absent keys take their DefaultPriorities value; keys present with 0 stay 0.
// Negative and non-finite weights take the default. A zero sum yields equal
// weights. Unknown keys are ignored.
func NormalizePriorities(in map[string]float64) Priorities {
	pick := func(key string, def float64) float64 {
		if v, ok := in[key]; ok && v >= 0 && !math.IsInf(v, 1) {
			return v
		}
		return def
	}
	p := Priorities{
		Carbon:         pick(PriorityCarbon, DefaultPriorities.Carbon),
		Recycling:      pick(PriorityRecycling, DefaultPriorities.Recycling),
		Certifications: pick(PriorityCertifications, DefaultPriorities.Certifications),
		Policies:       pick(PriorityPolicies, DefaultPriorities.Policies),
		Renewable:      pick(PriorityRenewable, DefaultPriorities.Renewable),
	}

	sum := p.Carbon + p.Recycling + p.Certifications + p.Policies + p.Renewable
	if sum == 0 {
		return Priorities{Carbon: 0.2, Recycling: 0.2, Certifications: 0.2, Policies: 0.2, Renewable: 0.2}
	}
	if math.IsInf(sum, 1) {
		// Rescale by the largest weight so the sum fits in a float64.
		largest := math.Max(math.Max(math.Max(p.Carbon, p.Recycling), math.Max(p.Certifications, p.Policies)), p.Renewable)
		p = Priorities{
			Carbon:         p.Carbon / largest,
			Recycling:      p.Recycling / largest,
			Certifications: p.Certifications / largest,
			Policies:       p.Policies / largest,
			Renewable:      p.Renewable / largest,
		}
		sum = p.Carbon + p.Recycling + p.Certifications + p.Policies + p.Renewable
	}
	return Priorities{
		Carbon:         p.Carbon / sum,
		Recycling:      p.Recycling / sum,
		Certifications: p.Certifications / sum,
		Policies:       p.Policies / sum,
		Renewable:      p.Renewable / sum,
	}
}

// ProjectFitScore re-weights the supplier's component scores by the request's
// priorities and adds performance bonuses. The result is capped at 10.
func (e *Engine) ProjectFitScore(s supplier.Supplier, req supplier.Requirements) float64 {
	return e.fitScore(s, NormalizePriorities(req.SustainabilityPriorities))
}

func (e *Engine) fitScore(s supplier.Supplier, w Priorities) float64 {
	weighted := e.scorer.CarbonScore(s)*w.Carbon +
		e.scorer.RecyclingScore(s)*w.Recycling +
		e.scorer.CertificationScore(s)*w.Certifications +
		e.scorer.PolicyScore(s)*w.Policies +
		e.scorer.RenewableEnergyScore(s)*w.Renewable

	bonus := 0.0
	if s.Preferred {
		bonus += preferredBonus
	}
	if s.RiskLevel == supplier.RiskLow {
		bonus += lowRiskBonus
	}
	if s.OnTimeDelivery() > onTimeBonusAbove {
		bonus += onTimeBonus
	}
	if rate, ok := s.DefectRate(); ok && rate < lowDefectBelow {
		bonus += lowDefectBonus
	}

	score := math.Min(scoring.MaxScore, weighted+bonus)
	e.observer.FitScored(score)
	return score
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Reasoning lists the supplier's strengths for this request, joined by "; ".
// A supplier with none gets "Meets basic requirements".
func (e *Engine) Reasoning(s supplier.Supplier, req supplier.Requirements) string {
	var reasons []string

	if score := s.ReportedScoreOrZero(); score >= excellentScoreMin {
		reasons = append(reasons, "Excellent sustainability score ("+formatNumber(score)+"/10)")
	}
	if perUnit := s.PerUnitCarbon(); perUnit < lowCarbonBelow {
		reasons = append(reasons, "Low carbon footprint ("+formatNumber(perUnit)+" kg CO2e per unit)")
	}
	for _, cert := range keyCertifications {
		if s.HasCertification(cert) {
			reasons = append(reasons, "Strong environmental certifications")
			break
		}
	}
	if req.GeographicPreference != "" && req.GeographicPreference == s.Location.Region {
		reasons = append(reasons, "Preferred geographic region")
	}
	if rc := s.Recycling(); rc > highRecycledAbove {
		reasons = append(reasons, "High recycled content ("+formatNumber(rc)+"%)")
	}
	if s.OnTimeDelivery() > onTimeBonusAbove {
		reasons = append(reasons, "Excellent delivery performance")
	}

	if len(reasons) == 0 {
		return "Meets basic requirements"
	}
	return strings.Join(reasons, "; ")
}

// Confidence rates how far the recommendation can be trusted, in [0.1, 1].
// It rewards complete, verified data, preferred status and low risk.
func (e *Engine) Confidence(s supplier.Supplier) float64 {
	c := baseConfidence + s.DataCompleteness()*completenessWeight

	switch s.VerificationMethod() {
	case supplier.VerificationThirdParty:
		c += thirdPartyConfidence
	case supplier.VerificationSelfReported:
		c += selfReportedConfidence
	}
	if s.Preferred {
		c += preferredConfidence
	}
	c += riskConfidence[s.RiskLevel]

	return carbon.Clamp(c, minConfidence, maxConfidence)
}

// Savings estimates emissions avoided against an industry-average supplier.
type Savings struct {
	AbsoluteSavings   float64 `json:"absoluteSavings"`
	PercentageSavings float64 `json:"percentageSavings"`
	Comparison        string  `json:"comparison"`
}

// EstimatedSavings compares the supplier's footprint at the requested quantity
// with the industry-average intensity. Both figures are floored at 0.
func (e *Engine) EstimatedSavings(s supplier.Supplier, req supplier.Requirements) Savings {
	qty := req.EffectiveQuantity()
	baseline := industryAverageIntensity * qty
	savings := baseline - e.carbon.SupplierFootprint(s, qty).Total

	pct := 0.0
	if baseline > 0 {
		pct = savings / baseline * 100
	}
	return Savings{
		AbsoluteSavings:   math.Max(0, savings),
		PercentageSavings: math.Max(0, pct),
		Comparison:        savingsComparison,
	}
}
