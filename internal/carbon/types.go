package carbon

// Breakdown splits an order's emissions by source.
type Breakdown struct {
	// Scope1 is the order's share of annual direct emissions (demo scaling, see ScopeQuantityDivisor).
	Scope1 float64 `json:"scope1"`

	// Scope2 is the order's share of annual purchased-energy emissions.
	Scope2 float64 `json:"scope2"`

	// Scope3 is the order's share of annual value-chain emissions.
	Scope3 float64 `json:"scope3"`

	// Transport is shipping emissions for the order by the default mode.
	Transport float64 `json:"transport"`
}

// Footprint is a supplier's emissions for one order.
type Footprint struct {
	// PerUnit is kg CO2e per unit as reported by the supplier.
	PerUnit float64 `json:"perUnit"`

	// Total is PerUnit × quantity in kg CO2e.
	Total float64 `json:"total"`

	Breakdown Breakdown `json:"breakdown"`
}

// SupplierFootprint tags a Footprint with the supplier it belongs to.
type SupplierFootprint struct {
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	Footprint
}

// SavingsResult compares switching from a current to an alternative supplier.
type SavingsResult struct {
	CurrentEmissions     float64 `json:"currentEmissions"`
	AlternativeEmissions float64 `json:"alternativeEmissions"`

	// Savings is current minus alternative; negative when the switch is worse.
	Savings float64 `json:"savings"`

	// SavingsPercentage is Savings relative to current emissions, 0 when current is 0.
	SavingsPercentage float64 `json:"savingsPercentage"`

	// Breakdown holds per-source deltas (current minus alternative).
	Breakdown Breakdown `json:"breakdown"`
}

// LifecycleBreakdown splits product emissions by lifecycle phase.
type LifecycleBreakdown struct {
	Manufacturing float64 `json:"manufacturing"`
	Use           float64 `json:"use"`
	EndOfLife     float64 `json:"endOfLife"`
}

// LifecycleResult is a product's cradle-to-grave emissions for a quantity.
type LifecycleResult struct {
	Total     float64            `json:"total"`
	Breakdown LifecycleBreakdown `json:"breakdown"`
}

// ModeEmissions is the transport footprint of one supplier's order by one mode.
type ModeEmissions struct {
	Mode       TransportMode `json:"mode"`
	DistanceKm float64       `json:"distanceKm"`
	Emissions  float64       `json:"emissions"`
}

// Optimization summarizes how far a roster's average sits from its best performer.
type Optimization struct {
	CurrentAverage    float64 `json:"currentAverage"`
	BestPerformance   float64 `json:"bestPerformance"`
	WorstPerformance  float64 `json:"worstPerformance"`
	PotentialSavings  float64 `json:"potentialSavings"`
	PercentageSavings float64 `json:"percentageSavings"`
}

// ScenarioLine is one supplier's share of a scenario.
type ScenarioLine struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	Allocation   float64 `json:"allocation"`
	Emissions    float64 `json:"emissions"`
	Percentage   float64 `json:"percentage"`
}

// ScenarioResult is the footprint of an allocation across suppliers.
type ScenarioResult struct {
	TotalEmissions          float64        `json:"totalEmissions"`
	AverageEmissionsPerUnit float64        `json:"averageEmissionsPerUnit"`
	Breakdown               []ScenarioLine `json:"breakdown"`
}
