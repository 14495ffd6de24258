package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/supplier"
)

func areas(in []Improvement) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Area)
	}
	return out
}

func TestImprovementRecommendations(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name string
		s    supplier.Supplier
		want []string
	}{
		{
			name: "leader needs nothing",
			s:    leader(),
			want: []string{},
		},
		{
			name: "bare supplier lacks certifications and recycling",
			s:    supplier.Supplier{},
			want: []string{"Certifications", "Recycled Content"},
		},
		{
			name: "high carbon flagged first",
			s: supplier.Supplier{
				CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(3)},
				Certifications:  []string{"ISO14001", "ISO14067", "B-Corp"},
			},
			want: []string{"Carbon Footprint", "Recycled Content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, areas(c.ImprovementRecommendations(tt.s)))
		})
	}
}

func TestImprovementRecommendations_Text(t *testing.T) {
	c := newTestCalculator(t)
	got := c.ImprovementRecommendations(supplier.Supplier{
		CarbonFootprint: &supplier.Footprint{PerUnit: supplier.Float(4)},
	})

	require.Len(t, got, 3)
	assert.Equal(t, PriorityHigh, got[0].Priority)
	assert.Equal(t, "Implement energy efficiency measures and renewable energy adoption", got[0].Suggestion)
	assert.Equal(t, "Could improve overall score by up to 1.5 points", got[0].Impact)
	assert.Equal(t, PriorityMedium, got[1].Priority)
	assert.Equal(t, "Could improve overall score by up to 2 points", got[1].Impact)
	assert.Equal(t, "Could improve overall score by up to 1 point", got[2].Impact)
}
