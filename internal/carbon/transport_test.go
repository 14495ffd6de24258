package carbon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/supplier"
)

func TestEstimateDistance(t *testing.T) {
	tests := []struct {
		region supplier.Region
		want   float64
	}{
		{supplier.RegionNorthAmerica, 800},
		{supplier.RegionEurope, 1200},
		{supplier.RegionAsia, 8000},
		{supplier.RegionSouthAmerica, 6000},
		{supplier.RegionAfrica, 7000},
		{supplier.RegionOceania, 9000},
		{"", DefaultDistanceKm},
		{"Atlantis", DefaultDistanceKm},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateDistance(tt.region))
		})
	}
}

func TestTransportModeEmissions(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		mode TransportMode
		want float64
	}{
		{ModeTruck, 100},
		{ModeRail, 25},
		{ModeSea, 8},
		{ModeAir, 600},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := c.TransportModeEmissions(100, 10, tt.mode)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTransportModeEmissions_UnknownMode(t *testing.T) {
	c := newTestCalculator(t)

	_, err := c.TransportModeEmissions(100, 10, "hyperloop")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTransportMode))

	var modeErr *UnknownTransportModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, TransportMode("hyperloop"), modeErr.Mode)
	assert.Contains(t, err.Error(), "hyperloop")
}

func TestTransportEmissions(t *testing.T) {
	c := newTestCalculator(t)
	s := supplierWith("eu", supplier.RegionEurope, 1)

	truck, err := c.TransportEmissions(s, 1000, "")
	require.NoError(t, err)
	// 1200 km × 500 kg × 0.1 / 1000
	assert.InDelta(t, 60.0, truck, 1e-9)

	sea, err := c.TransportEmissions(s, 1000, ModeSea)
	require.NoError(t, err)
	assert.InDelta(t, 4.8, sea, 1e-9)

	_, err = c.TransportEmissions(s, 1000, "teleport")
	assert.ErrorIs(t, err, ErrUnknownTransportMode)
}

func TestCompareTransportModes(t *testing.T) {
	c := newTestCalculator(t)
	s := supplierWith("asia", supplier.RegionAsia, 1)

	got := c.CompareTransportModes(s, 1000)
	require.Len(t, got, 4)
	assert.Equal(t, ModeTruck, got[0].Mode)
	assert.Equal(t, ModeAir, got[3].Mode)
	for _, m := range got {
		assert.Equal(t, 8000.0, m.DistanceKm)
	}
	assert.InDelta(t, 400.0, got[0].Emissions, 1e-9)
	assert.InDelta(t, 2400.0, got[3].Emissions, 1e-9)
}
