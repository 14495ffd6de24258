// Package scoring computes normalized 0..10 sustainability scores for suppliers
// and benchmarks them against their industry sector.
package scoring

import (
	"math"

	"github.com/rshade/greenprocure/internal/benchmark"
	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/supplier"
)

const (
	// MaxScore is the top of every score scale.
	MaxScore = 10.0

	// DefaultCarbonIntensity is the sector average kg CO2e per unit assumed when
	// the benchmark table does not publish one.
	DefaultCarbonIntensity = 5.0

	// DefaultSectorTarget is the recycled-content and renewable-energy target in
	// percent for sectors without one.
	DefaultSectorTarget = 50.0

	// certificationSlots and policySlots set how many top-weighted entries earn a full score.
	certificationSlots = 3
	policySlots        = 2
)

// Weights blends the five component scores into an overall score.
type Weights struct {
	Carbon    float64 `json:"carbonWeight"`
	Cert      float64 `json:"certWeight"`
	Recycling float64 `json:"recyclingWeight"`
	Policy    float64 `json:"policyWeight"`
	Waste     float64 `json:"wasteWeight"`
}

// Breakdown holds the component scores, each in [0, 10].
type Breakdown struct {
	Carbon          float64 `json:"carbon"`
	Certifications  float64 `json:"certifications"`
	Recycling       float64 `json:"recycling"`
	Policies        float64 `json:"policies"`
	WasteManagement float64 `json:"wasteManagement"`
}

// Result is an overall score with the inputs that produced it.
type Result struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	Weights   Weights   `json:"weights"`
}

// Calculator scores suppliers against an injected benchmark table.
// It is stateless and safe for concurrent use.
type Calculator struct {
	table *benchmark.Table
}

// New creates a Calculator backed by table.
func New(table *benchmark.Table) *Calculator {
	return &Calculator{table: table}
}

// NewDefault creates a Calculator backed by the embedded benchmark table.
func NewDefault() (*Calculator, error) {
	t, err := benchmark.Default()
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// Table returns the benchmark table the calculator reads.
func (c *Calculator) Table() *benchmark.Table {
	return c.table
}

// DefaultWeights returns the table's default normalization weights.
func (c *Calculator) DefaultWeights() Weights {
	n := c.table.Normalization()
	return Weights{Carbon: n.Carbon, Cert: n.Cert, Recycling: n.Recycling, Policy: n.Policy, Waste: n.Waste}
}

func bounded(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return carbon.Clamp(v, 0, MaxScore)
}

// CarbonScore rates per-unit emissions against the sector average; lower is better.
// Emissions at or above twice the average score 0.
func (c *Calculator) CarbonScore(s supplier.Supplier) float64 {
	avg := DefaultCarbonIntensity
	if sec, ok := c.table.Sector(s.Industry); ok && sec.AvgCarbonIntensity > 0 {
		avg = sec.AvgCarbonIntensity
	}
	return bounded(MaxScore - s.PerUnitCarbon()/avg*MaxScore)
}

// CertificationScore sums the weights of held certifications against three
// times the heaviest weight. Unknown certifications add nothing.
func (c *Calculator) CertificationScore(s supplier.Supplier) float64 {
	ceiling := c.table.MaxCertificationWeight() * certificationSlots
	if len(s.Certifications) == 0 || ceiling == 0 {
		return 0
	}
	achieved := 0.0
	for _, cert := range s.Certifications {
		achieved += c.table.CertificationWeight(cert)
	}
	return bounded(achieved / ceiling * MaxScore)
}

// RecyclingScore rates recycled content against the sector target.
func (c *Calculator) RecyclingScore(s supplier.Supplier) float64 {
	target := DefaultSectorTarget
	if sec, ok := c.table.Sector(s.Industry); ok && sec.RecycledContentTarget > 0 {
		target = sec.RecycledContentTarget
	}
	return bounded(s.Recycling() / target * MaxScore)
}

// PolicyScore sums policy weights against twice the heaviest weight.
func (c *Calculator) PolicyScore(s supplier.Supplier) float64 {
	ceiling := c.table.MaxPolicyWeight() * policySlots
	if len(s.Policies) == 0 || ceiling == 0 {
		return 0
	}
	total := 0.0
	for _, p := range s.Policies {
		total += c.table.PolicyWeight(p.Type)
	}
	return bounded(total / ceiling * MaxScore)
}

// WasteManagementScore rates waste diverted by recycling or energy recovery.
func (c *Calculator) WasteManagementScore(s supplier.Supplier) float64 {
	if !s.HasWasteData() {
		return 0
	}
	return bounded((s.RecycledWaste() + s.WasteToEnergy()) / 100 * MaxScore)
}

// RenewableEnergyScore rates the renewable energy share against the sector target.
func (c *Calculator) RenewableEnergyScore(s supplier.Supplier) float64 {
	target := DefaultSectorTarget
	if sec, ok := c.table.Sector(s.Industry); ok && sec.RenewableEnergyTarget > 0 {
		target = sec.RenewableEnergyTarget
	}
	return bounded(s.Renewable() / target * MaxScore)
}

// OverallScore blends the five component scores. A nil w uses DefaultWeights.
// The total is clamped to [0, 10].
func (c *Calculator) OverallScore(s supplier.Supplier, w *Weights) Result {
	weights := c.DefaultWeights()
	if w != nil {
		weights = *w
	}

	b := Breakdown{
		Carbon:          c.CarbonScore(s),
		Certifications:  c.CertificationScore(s),
		Recycling:       c.RecyclingScore(s),
		Policies:        c.PolicyScore(s),
		WasteManagement: c.WasteManagementScore(s),
	}
	total := b.Carbon*weights.Carbon +
		b.Certifications*weights.Cert +
		b.Recycling*weights.Recycling +
		b.Policies*weights.Policy +
		b.WasteManagement*weights.Waste

	return Result{Total: bounded(total), Breakdown: b, Weights: weights}
}

// ComputedScore is the engine-derived overall score under default weights.
// It is distinct from the supplier's self-reported score.
func (c *Calculator) ComputedScore(s supplier.Supplier) float64 {
	return c.OverallScore(s, nil).Total
}
