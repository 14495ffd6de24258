package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/supplier"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewDefault()
	require.NoError(t, err)
	return c
}

// leader scores roughly 9.47 under default weights.
func leader() supplier.Supplier {
	return supplier.Supplier{
		ID:               "lead",
		Name:             "Leader Tech",
		Industry:         "Technology",
		Certifications:   []string{"ISO14001", "ISO14067", "B-Corp"},
		Policies:         []supplier.Policy{{Type: "Net Zero Roadmap"}, {Type: "Environmental Policy"}},
		RecyclingContent: supplier.Float(40),
		CarbonFootprint:  &supplier.Footprint{PerUnit: supplier.Float(0)},
		WasteManagement: &supplier.WasteManagement{
			RecycledPercentage: supplier.Float(90),
			WasteToEnergy:      supplier.Float(10),
		},
	}
}

func TestCarbonScore(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name    string
		perUnit *float64
		want    float64
	}{
		{"no footprint", nil, 10},
		{"zero", supplier.Float(0), 10},
		{"half of average", supplier.Float(2.5), 5},
		{"at twice average", supplier.Float(10), 0},
		{"far above average", supplier.Float(40), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := supplier.Supplier{ID: "x", Name: "x", Industry: "Technology"}
			if tt.perUnit != nil {
				s.CarbonFootprint = &supplier.Footprint{PerUnit: tt.perUnit}
			}
			assert.InDelta(t, tt.want, c.CarbonScore(s), 1e-9)
		})
	}
}

func TestCertificationScore(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name  string
		certs []string
		want  float64
	}{
		{"none", nil, 0},
		{"unknown only", []string{"LEED"}, 0},
		{"one heavy", []string{"ISO14001"}, 10.0 / 3},
		{"three heaviest", []string{"ISO14001", "ISO14067", "B-Corp"}, 0.35 / 0.45 * 10},
		{"capped", []string{"ISO14001", "ISO14067", "FSC", "FairTrade", "B-Corp", "ISO50001"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := supplier.Supplier{ID: "x", Name: "x", Certifications: tt.certs}
			assert.InDelta(t, tt.want, c.CertificationScore(s), 1e-9)
		})
	}
}

func TestPolicyScore(t *testing.T) {
	c := newTestCalculator(t)

	one := supplier.Supplier{Policies: []supplier.Policy{{Type: "Net Zero Roadmap"}}}
	assert.InDelta(t, 5.0, c.PolicyScore(one), 1e-9)

	all := supplier.Supplier{Policies: []supplier.Policy{
		{Type: "Environmental Policy"},
		{Type: "Supplier Code of Conduct"},
		{Type: "Green Transport Policy"},
		{Type: "Net Zero Roadmap"},
		{Type: "Chemical Management Policy"},
	}}
	assert.Equal(t, 10.0, c.PolicyScore(all))

	assert.Equal(t, 0.0, c.PolicyScore(supplier.Supplier{}))
}

func TestRecyclingAndRenewableScores(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name          string
		industry      string
		recycling     float64
		renewable     float64
		wantRecycling float64
		wantRenewable float64
	}{
		{"technology targets", "Technology", 20, 25, 5, 5},
		{"unknown sector falls back to 50", "Aerospace", 25, 25, 5, 5},
		{"above target is capped", "Logistics", 100, 100, 10, 10},
		{"chemicals", "Chemicals", 0, 25, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := supplier.Supplier{
				Industry:               tt.industry,
				RecyclingContent:       supplier.Float(tt.recycling),
				RenewableEnergyPercent: supplier.Float(tt.renewable),
			}
			assert.InDelta(t, tt.wantRecycling, c.RecyclingScore(s), 1e-9)
			assert.InDelta(t, tt.wantRenewable, c.RenewableEnergyScore(s), 1e-9)
		})
	}
}

func TestWasteManagementScore(t *testing.T) {
	c := newTestCalculator(t)

	assert.Equal(t, 0.0, c.WasteManagementScore(supplier.Supplier{}))

	s := supplier.Supplier{WasteManagement: &supplier.WasteManagement{
		RecycledPercentage: supplier.Float(60),
		WasteToEnergy:      supplier.Float(20),
	}}
	assert.InDelta(t, 8.0, c.WasteManagementScore(s), 1e-9)

	s.WasteManagement.WasteToEnergy = supplier.Float(70)
	assert.Equal(t, 10.0, c.WasteManagementScore(s))
}

func TestOverallScore(t *testing.T) {
	c := newTestCalculator(t)

	got := c.OverallScore(leader(), nil)
	assert.InDelta(t, 9.4722, got.Total, 1e-3)
	assert.Equal(t, c.DefaultWeights(), got.Weights)
	assert.Equal(t, 10.0, got.Breakdown.Carbon)
	assert.Equal(t, 10.0, got.Breakdown.WasteManagement)

	carbonOnly := &Weights{Carbon: 1}
	s := supplier.Supplier{CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(2.5)}}
	assert.InDelta(t, 5.0, c.OverallScore(s, carbonOnly).Total, 1e-9)
	assert.Equal(t, *carbonOnly, c.OverallScore(s, carbonOnly).Weights)
}

func TestOverallScore_Bounds(t *testing.T) {
	c := newTestCalculator(t)

	suppliers := []supplier.Supplier{
		{},
		leader(),
		{CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(1e6)}},
		{RecyclingContent: supplier.Float(100), RenewableEnergyPercent: supplier.Float(100), Industry: "Logistics"},
	}
	weights := []*Weights{
		nil,
		{},
		{Carbon: 5, Cert: 5, Recycling: 5, Policy: 5, Waste: 5},
		{Carbon: -3, Cert: 0.1},
		{Carbon: 0.2, Cert: 0.2, Recycling: 0.2, Policy: 0.2, Waste: 0.2},
	}

	for i, s := range suppliers {
		for j, w := range weights {
			r := c.OverallScore(s, w)
			assert.GreaterOrEqual(t, r.Total, 0.0, "supplier %d weights %d", i, j)
			assert.LessOrEqual(t, r.Total, 10.0, "supplier %d weights %d", i, j)
			for _, v := range []float64{
				r.Breakdown.Carbon, r.Breakdown.Certifications, r.Breakdown.Recycling,
				r.Breakdown.Policies, r.Breakdown.WasteManagement,
			} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 10.0)
			}
		}
	}
}

func TestOverallScore_Deterministic(t *testing.T) {
	c := newTestCalculator(t)
	s := leader()

	first := c.OverallScore(s, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.OverallScore(s, nil))
	}
}

func TestComputedScore_IgnoresReportedScore(t *testing.T) {
	c := newTestCalculator(t)
	s := leader()
	base := c.ComputedScore(s)

	s.ReportedScore = supplier.Float(1)
	assert.Equal(t, base, c.ComputedScore(s))
}
