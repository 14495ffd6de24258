package carbon

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// TransportMode is a freight mode with a per tonne-km emission factor.
type TransportMode string

// Freight modes in the default factor table.
const (
	ModeTruck TransportMode = "truck"
	ModeRail  TransportMode = "rail"
	ModeSea   TransportMode = "sea"
	ModeAir   TransportMode = "air"
)

// DefaultTransportMode is assumed when a caller does not choose a mode.
const DefaultTransportMode = ModeTruck

// KnownTransportModes lists the canonical freight modes in display order.
func KnownTransportModes() []TransportMode {
	return []TransportMode{ModeTruck, ModeRail, ModeSea, ModeAir}
}

// EstimateDistance returns a representative shipping distance for a region.
// Unknown or empty regions get DefaultDistanceKm.
func EstimateDistance(region supplier.Region) float64 {
	if d, ok := regionDistanceKm[string(region)]; ok {
		return d
	}
	return DefaultDistanceKm
}

// TransportModeEmissions returns distanceKm × weightTons × factor[mode] in kg CO2e.
// It returns *UnknownTransportModeError for a mode absent from the table.
func (c *Calculator) TransportModeEmissions(distanceKm, weightTons float64, mode TransportMode) (float64, error) {
	factor, ok := c.factors.TransportFactor(mode)
	if !ok {
		return 0, &UnknownTransportModeError{Mode: mode}
	}
	return distanceKm * weightTons * factor, nil
}

// TransportEmissions estimates shipping emissions for a supplier's order.
//
// Distance comes from EstimateDistance on the supplier's region and each unit is
// assumed to weigh DefaultUnitWeightKg:
//
//	emissions = distance × (quantity × 0.5) × factor[mode] / 1000
//
// An empty mode means DefaultTransportMode.
func (c *Calculator) TransportEmissions(s supplier.Supplier, quantity float64, mode TransportMode) (float64, error) {
	if mode == "" {
		mode = DefaultTransportMode
	}
	distance := EstimateDistance(s.Location.Region)
	weight := quantity * DefaultUnitWeightKg
	e, err := c.TransportModeEmissions(distance, weight, mode)
	if err != nil {
		return 0, err
	}
	return e / KgPerTonne, nil
}

// defaultTransport is TransportEmissions by the default mode. LoadFactors
// guarantees the truck factor exists, so the error path is unreachable.
func (c *Calculator) defaultTransport(s supplier.Supplier, quantity float64) float64 {
	e, err := c.TransportEmissions(s, quantity, DefaultTransportMode)
	if err != nil {
		logger.Error().Err(err).Str("supplier_id", s.ID).Msg("default transport mode missing from factor table")
		return 0
	}
	return e
}

// CompareTransportModes returns the supplier's transport footprint under every
// mode in the factor table.
func (c *Calculator) CompareTransportModes(s supplier.Supplier, quantity float64) []ModeEmissions {
	distance := EstimateDistance(s.Location.Region)
	modes := c.factors.TransportModes()
	out := make([]ModeEmissions, 0, len(modes))
	for _, mode := range modes {
		e, err := c.TransportEmissions(s, quantity, mode)
		if err != nil {
			continue
		}
		out = append(out, ModeEmissions{Mode: mode, DistanceKm: distance, Emissions: e})
	}
	return out
}
