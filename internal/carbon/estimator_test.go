package carbon

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

func supplierWith(id string, region supplier.Region, perUnit float64) supplier.Supplier {
	return supplier.Supplier{
		ID:       id,
		Name:     "Supplier " + id,
		Location: supplier.Location{Country: "X", Region: region},
		CarbonFootprint: &supplier.Footprint{
			PerUnit: supplier.Float(perUnit),
			Scope1:  supplier.Float(420),
			Scope2:  supplier.Float(260),
			Scope3:  supplier.Float(1180),
		},
	}
}

func TestSupplierFootprint(t *testing.T) {
	c := newTestCalculator(t)
	s := supplierWith("1", supplier.RegionNorthAmerica, 2.3)

	fp := c.SupplierFootprint(s, 1000)

	assert.Equal(t, 2.3, fp.PerUnit)
	assert.InDelta(t, 2300.0, fp.Total, 1e-9)
	assert.InDelta(t, 420.0, fp.Breakdown.Scope1, 1e-9)
	assert.InDelta(t, 260.0, fp.Breakdown.Scope2, 1e-9)
	assert.InDelta(t, 1180.0, fp.Breakdown.Scope3, 1e-9)
	// 800 km × 500 kg × 0.1 / 1000
	assert.InDelta(t, 40.0, fp.Breakdown.Transport, 1e-9)
}

func TestSupplierFootprint_NoData(t *testing.T) {
	c := newTestCalculator(t)
	s := supplier.Supplier{ID: "bare", Name: "Bare"}

	assert.Equal(t, Footprint{}, c.SupplierFootprint(s, 1000))
}

func TestSupplierFootprint_ZeroQuantity(t *testing.T) {
	c := newTestCalculator(t)
	fp := c.SupplierFootprint(supplierWith("1", supplier.RegionEurope, 2.3), 0)

	assert.Equal(t, 0.0, fp.Total)
	assert.Equal(t, Breakdown{}, fp.Breakdown)
}

func TestCompareSuppliers_PreservesOrder(t *testing.T) {
	c := newTestCalculator(t)
	in := []supplier.Supplier{
		supplierWith("b", supplier.RegionAsia, 4.2),
		supplierWith("a", supplier.RegionEurope, 0.65),
		{ID: "c", Name: "No data"},
	}

	out := c.CompareSuppliers(in, 100)
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0].SupplierID)
	assert.Equal(t, "a", out[1].SupplierID)
	assert.Equal(t, "c", out[2].SupplierID)
	assert.InDelta(t, 420.0, out[0].Total, 1e-9)
	assert.Equal(t, 0.0, out[2].Total)
}

func TestSavings(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name        string
		current     supplier.Supplier
		alternative supplier.Supplier
		wantSavings float64
		wantPct     float64
	}{
		{
			name:        "switch to cleaner supplier",
			current:     supplierWith("B", supplier.RegionEurope, 5.8),
			alternative: supplierWith("A", supplier.RegionEurope, 1.2),
			wantSavings: 4600,
			wantPct:     79.31,
		},
		{
			name:        "switch to dirtier supplier is negative",
			current:     supplierWith("A", supplier.RegionEurope, 1.2),
			alternative: supplierWith("B", supplier.RegionEurope, 5.8),
			wantSavings: -4600,
			wantPct:     -383.33,
		},
		{
			name:        "current without data",
			current:     supplier.Supplier{ID: "none", Name: "None"},
			alternative: supplierWith("A", supplier.RegionEurope, 1.2),
			wantSavings: -1200,
			wantPct:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Savings(tt.current, tt.alternative, 1000)
			assert.InDelta(t, tt.wantSavings, got.Savings, 1e-9)
			assert.InDelta(t, tt.wantPct, got.SavingsPercentage, 0.01)
			assert.InDelta(t, got.CurrentEmissions-got.AlternativeEmissions, got.Savings, 1e-9)
		})
	}
}

func TestSavings_BreakdownDeltas(t *testing.T) {
	c := newTestCalculator(t)
	cur := supplierWith("asia", supplier.RegionAsia, 3)
	alt := supplierWith("na", supplier.RegionNorthAmerica, 3)

	got := c.Savings(cur, alt, 1000)

	assert.InDelta(t, 0.0, got.Savings, 1e-9)
	// (8000 - 800) km × 500 kg × 0.1 / 1000
	assert.InDelta(t, 360.0, got.Breakdown.Transport, 1e-9)
	assert.InDelta(t, 0.0, got.Breakdown.Scope1, 1e-9)
}
