package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/greenprocure/internal/supplier"
)

func TestNormalizePriorities(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]float64
		want Priorities
	}{
		{
			name: "nil uses defaults",
			in:   nil,
			want: DefaultPriorities,
		},
		{
			name: "partial map fills defaults then normalizes",
			in:   map[string]float64{PriorityCarbon: 0.4, PriorityRecycling: 0.3, PriorityCertifications: 0.3},
			want: Priorities{Carbon: 0.4 / 1.3, Recycling: 0.3 / 1.3, Certifications: 0.3 / 1.3, Policies: 0.15 / 1.3, Renewable: 0.15 / 1.3},
		},
		{
			name: "explicit zeros summing to zero give equal weights",
			in: map[string]float64{
				PriorityCarbon: 0, PriorityRecycling: 0, PriorityCertifications: 0, PriorityPolicies: 0, PriorityRenewable: 0,
			},
			want: Priorities{Carbon: 0.2, Recycling: 0.2, Certifications: 0.2, Policies: 0.2, Renewable: 0.2},
		},
		{
			name: "percent-scale weights",
			in: map[string]float64{
				PriorityCarbon: 50, PriorityRecycling: 50, PriorityCertifications: 0, PriorityPolicies: 0, PriorityRenewable: 0,
			},
			want: Priorities{Carbon: 0.5, Recycling: 0.5},
		},
		{
			name: "huge weights do not overflow",
			in: map[string]float64{
				PriorityCarbon: math.MaxFloat64, PriorityRecycling: math.MaxFloat64,
				PriorityCertifications: 0, PriorityPolicies: 0, PriorityRenewable: 0,
			},
			want: Priorities{Carbon: 0.5, Recycling: 0.5},
		},
		{
			name: "huge weight dominates defaults",
			in:   map[string]float64{PriorityCarbon: math.MaxFloat64},
			want: Priorities{Carbon: 1},
		},
		{
			name: "infinite weight takes the default",
			in:   map[string]float64{PriorityCarbon: math.Inf(1)},
			want: DefaultPriorities,
		},
		{
			name: "unknown keys ignored",
			in:   map[string]float64{"cost": 99},
			want: DefaultPriorities,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePriorities(tt.in)
			assert.InDelta(t, tt.want.Carbon, got.Carbon, 1e-9)
			assert.InDelta(t, tt.want.Recycling, got.Recycling, 1e-9)
			assert.InDelta(t, tt.want.Certifications, got.Certifications, 1e-9)
			assert.InDelta(t, tt.want.Policies, got.Policies, 1e-9)
			assert.InDelta(t, tt.want.Renewable, got.Renewable, 1e-9)
			assert.InDelta(t, 1.0, got.Carbon+got.Recycling+got.Certifications+got.Policies+got.Renewable, 1e-9)
		})
	}
}

func TestProjectFitScore(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)

	tests := []struct {
		id   string
		want float64
	}{
		{"1", 8.7531},
		{"2", 7.7467},
		{"3", 7.9447},
		{"5", 6.3278},
		{"7", 2.9417},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.ProjectFitScore(byID(t, pool, tt.id), supplier.Requirements{}), 1e-3)
		})
	}
}

func TestProjectFitScore_Bonuses(t *testing.T) {
	e := newTestEngine(t, nil)
	base := supplier.Supplier{ID: "b", Name: "B", CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(10)}}
	req := supplier.Requirements{}

	assert.Equal(t, 0.0, e.ProjectFitScore(base, req))

	withBonuses := base
	withBonuses.Preferred = true
	withBonuses.RiskLevel = supplier.RiskLow
	withBonuses.KPIs = &supplier.KPIs{OnTimeDelivery: supplier.Float(96), DefectRate: supplier.Float(0.5)}
	assert.InDelta(t, 1.2, e.ProjectFitScore(withBonuses, req), 1e-9)

	borderline := base
	borderline.KPIs = &supplier.KPIs{OnTimeDelivery: supplier.Float(95), DefectRate: supplier.Float(1)}
	assert.Equal(t, 0.0, e.ProjectFitScore(borderline, req), "thresholds are strict")

	noDefectData := base
	noDefectData.KPIs = &supplier.KPIs{}
	assert.Equal(t, 0.0, e.ProjectFitScore(noDefectData, req), "missing defect rate earns no bonus")
}

func TestProjectFitScore_Capped(t *testing.T) {
	e := newTestEngine(t, nil)
	s := supplier.Supplier{
		ID:                     "top",
		Name:                   "Top",
		Industry:               "Logistics",
		Certifications:         []string{"ISO14001", "ISO14067", "B-Corp", "FSC"},
		Policies:               []supplier.Policy{{Type: "Net Zero Roadmap"}, {Type: "Environmental Policy"}, {Type: "Green Transport Policy"}},
		RecyclingContent:       supplier.Float(100),
		RenewableEnergyPercent: supplier.Float(100),
		Preferred:              true,
		RiskLevel:              supplier.RiskLow,
		KPIs:                   &supplier.KPIs{OnTimeDelivery: supplier.Float(99), DefectRate: supplier.Float(0.1)},
	}
	assert.Equal(t, 10.0, e.ProjectFitScore(s, supplier.Requirements{}))
}

func TestProjectFitScore_Deterministic(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)
	req := supplier.Requirements{SustainabilityPriorities: map[string]float64{PriorityCarbon: 3, PriorityRenewable: 1}}

	for _, s := range pool {
		first := e.ProjectFitScore(s, req)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, e.ProjectFitScore(s, req))
		}
	}
}

func TestReasoning(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)

	tests := []struct {
		name string
		s    supplier.Supplier
		req  supplier.Requirements
		want string
	}{
		{
			name: "every strength",
			s:    byID(t, pool, "1"),
			req:  supplier.Requirements{GeographicPreference: supplier.RegionNorthAmerica},
			want: "Excellent sustainability score (8.6/10); Low carbon footprint (2.3 kg CO2e per unit); " +
				"Strong environmental certifications; Preferred geographic region; High recycled content (52%); " +
				"Excellent delivery performance",
		},
		{
			name: "certification only",
			s:    byID(t, pool, "7"),
			want: "Strong environmental certifications",
		},
		{
			name: "no preference never matches",
			s:    supplier.Supplier{ID: "x", Name: "x", CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(9)}},
			want: "Meets basic requirements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Reasoning(tt.s, tt.req))
		})
	}
}

func TestConfidence(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)

	tests := []struct {
		name string
		s    supplier.Supplier
		want float64
	}{
		{"capped at one", byID(t, pool, "1"), 1.0},
		{"medium risk third party preferred", byID(t, pool, "2"), 0.98},
		{"self reported low risk", byID(t, pool, "3"), 0.814},
		{"self reported medium risk", byID(t, pool, "7"), 0.744},
		{"bare supplier", supplier.Supplier{}, 0.64},
		{"high risk", supplier.Supplier{RiskLevel: supplier.RiskHigh}, 0.54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Confidence(tt.s)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.1)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestEstimatedSavings(t *testing.T) {
	pool := fixtures(t)
	e := newTestEngine(t, pool)

	got := e.EstimatedSavings(byID(t, pool, "1"), supplier.Requirements{Quantity: 1000})
	assert.InDelta(t, 1700.0, got.AbsoluteSavings, 1e-9)
	assert.InDelta(t, 42.5, got.PercentageSavings, 1e-9)
	assert.Equal(t, "vs industry average", got.Comparison)

	worse := e.EstimatedSavings(byID(t, pool, "5"), supplier.Requirements{Quantity: 1000})
	assert.Equal(t, 0.0, worse.AbsoluteSavings)
	assert.Equal(t, 0.0, worse.PercentageSavings)

	defaulted := e.EstimatedSavings(byID(t, pool, "1"), supplier.Requirements{})
	assert.InDelta(t, 1700.0, defaulted.AbsoluteSavings, 1e-9, "zero quantity defaults to 1000")
}
