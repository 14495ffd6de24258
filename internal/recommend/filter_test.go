package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/greenprocure/internal/supplier"
)

func TestEligibleSuppliers(t *testing.T) {
	e := newTestEngine(t, fixtures(t))

	tests := []struct {
		name string
		req  supplier.Requirements
		want []string
	}{
		{
			name: "office supplies accepts manufacturing and technology",
			req:  supplier.Requirements{Category: "Office Supplies"},
			want: []string{"1", "2", "7"},
		},
		{
			name: "unmapped category falls back to manufacturing",
			req:  supplier.Requirements{Category: "Furniture"},
			want: []string{"2", "7"},
		},
		{
			name: "empty category falls back to manufacturing",
			req:  supplier.Requirements{},
			want: []string{"2", "7"},
		},
		{
			name: "region preference",
			req:  supplier.Requirements{Category: "Chemicals", GeographicPreference: supplier.RegionEurope},
			want: []string{"6"},
		},
		{
			name: "max risk low",
			req:  supplier.Requirements{Category: "Office Supplies", MaxRiskLevel: supplier.RiskLow},
			want: []string{"1"},
		},
		{
			name: "max risk high keeps everyone",
			req:  supplier.Requirements{Category: "Office Supplies", MaxRiskLevel: supplier.RiskHigh},
			want: []string{"1", "2", "7"},
		},
		{
			name: "minimum reported score",
			req:  supplier.Requirements{Category: "Office Supplies", MinSustainabilityScore: supplier.Float(8.5)},
			want: []string{"1"},
		},
		{
			name: "zero minimum is ignored",
			req:  supplier.Requirements{Category: "Office Supplies", MinSustainabilityScore: supplier.Float(0)},
			want: []string{"1", "2", "7"},
		},
		{
			name: "nothing matches",
			req:  supplier.Requirements{Category: "Logistics", GeographicPreference: supplier.RegionAfrica},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.EligibleSuppliers(tt.req)))
		})
	}
}

func TestEligibleSuppliers_MissingReportedScore(t *testing.T) {
	pool := []supplier.Supplier{{ID: "x", Name: "X", Industry: "Manufacturing"}}
	e := newTestEngine(t, pool)

	got := e.EligibleSuppliers(supplier.Requirements{MinSustainabilityScore: supplier.Float(5)})
	assert.Empty(t, got)
}

func TestIndustriesFor(t *testing.T) {
	assert.Equal(t, []string{"Logistics", "Transportation"}, IndustriesFor("Logistics"))
	assert.Equal(t, []string{"Manufacturing"}, IndustriesFor("Toys"))

	got := IndustriesFor("Packaging")
	got[0] = "mutated"
	assert.Equal(t, "Manufacturing", IndustriesFor("Packaging")[0])
}
