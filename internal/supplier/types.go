// Package supplier defines the procurement data model consumed by the scoring,
// carbon accounting and recommendation packages.
//
// Optional attributes are pointers. Code outside this package never reads them
// directly; it calls the default-resolution methods in defaults.go so that every
// fallback value is defined in exactly one place.
package supplier

// Region is a coarse sourcing region.
type Region string

// Known sourcing regions.
const (
	RegionNorthAmerica Region = "North America"
	RegionEurope       Region = "Europe"
	RegionAsia         Region = "Asia"
	RegionSouthAmerica Region = "South America"
	RegionAfrica       Region = "Africa"
	RegionOceania      Region = "Oceania"
)

// Regions lists every known region in display order.
func Regions() []Region {
	return []Region{
		RegionNorthAmerica,
		RegionEurope,
		RegionAsia,
		RegionSouthAmerica,
		RegionAfrica,
		RegionOceania,
	}
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	for _, known := range Regions() {
		if r == known {
			return true
		}
	}
	return false
}

// RiskLevel is the assessed sourcing risk of a supplier.
type RiskLevel string

// Risk levels in ascending order.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Ordinal maps a risk level onto low=1, medium=2, high=3.
// Unknown or empty levels are treated as medium.
func (r RiskLevel) Ordinal() int {
	switch r {
	case RiskLow:
		return 1
	case RiskHigh:
		return 3
	default:
		return 2
	}
}

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// Verification describes how a supplier's sustainability data was checked.
type Verification string

// Verification methods.
const (
	VerificationThirdParty    Verification = "third-party"
	VerificationSelfReported  Verification = "self-reported"
	VerificationInternalAudit Verification = "internal-audit"
)

// Valid reports whether v is a known verification method.
func (v Verification) Valid() bool {
	return v == VerificationThirdParty || v == VerificationSelfReported || v == VerificationInternalAudit
}

// Location is where a supplier operates.
type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country" validate:"required"`
	Region  Region `json:"region,omitempty" validate:"omitempty,region"`
}

// Policy is a published sustainability policy.
type Policy struct {
	Type        string `json:"type" validate:"required"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Footprint holds supplier-reported emissions.
type Footprint struct {
	// PerUnit is kg CO2e per delivered unit.
	PerUnit *float64 `json:"perUnit,omitempty" validate:"omitempty,gte=0"`

	// Scope1 is annual direct emissions in tonnes CO2e.
	Scope1 *float64 `json:"scope1,omitempty" validate:"omitempty,gte=0"`

	// Scope2 is annual purchased-energy emissions in tonnes CO2e.
	Scope2 *float64 `json:"scope2,omitempty" validate:"omitempty,gte=0"`

	// Scope3 is annual value-chain emissions in tonnes CO2e.
	Scope3 *float64 `json:"scope3,omitempty" validate:"omitempty,gte=0"`
}

// WasteManagement holds waste diversion data.
type WasteManagement struct {
	TotalWaste         *float64 `json:"totalWaste,omitempty" validate:"omitempty,gte=0"`
	RecycledPercentage *float64 `json:"recycledPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	WasteToEnergy      *float64 `json:"wasteToEnergy,omitempty" validate:"omitempty,gte=0,lte=100"`
	HazardousWaste     *float64 `json:"hazardousWaste,omitempty" validate:"omitempty,gte=0"`
}

// KPIs holds supplier performance indicators.
type KPIs struct {
	// OnTimeDelivery is the on-time delivery rate in percent.
	OnTimeDelivery *float64 `json:"onTimeDelivery,omitempty" validate:"omitempty,gte=0,lte=100"`

	// DefectRate is the defect rate in percent.
	DefectRate *float64 `json:"defectRate,omitempty" validate:"omitempty,gte=0,lte=100"`

	// AuditScore is the last audit result out of 100.
	AuditScore *float64 `json:"auditScore,omitempty" validate:"omitempty,gte=0,lte=100"`

	// DataCompleteness is the share of requested data points provided (0..1).
	DataCompleteness *float64 `json:"dataCompleteness,omitempty" validate:"omitempty,gte=0,lte=1"`

	Verification Verification `json:"verification,omitempty" validate:"omitempty,verification"`
}

// Supplier is a sourcing partner. The core treats suppliers as read-only.
type Supplier struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Location         Location `json:"location"`
	Industry         string   `json:"industry,omitempty"`
	CompanySize      string   `json:"companySize,omitempty"`
	YearsInOperation int      `json:"yearsInOperation,omitempty" validate:"gte=0"`

	// ReportedScore is the supplier-reported sustainability score (0..10).
	// The engine-derived value is scoring.Calculator.ComputedScore.
	ReportedScore *float64 `json:"sustainabilityScore,omitempty" validate:"omitempty,gte=0,lte=10"`

	Certifications []string `json:"certifications,omitempty"`
	Policies       []Policy `json:"policies,omitempty" validate:"dive"`

	// RecyclingContent is the average recycled content of key SKUs in percent.
	RecyclingContent *float64 `json:"recyclingContent,omitempty" validate:"omitempty,gte=0,lte=100"`

	// RenewableEnergyPercent is the renewable share of consumed energy.
	RenewableEnergyPercent *float64 `json:"renewableEnergyPercent,omitempty" validate:"omitempty,gte=0,lte=100"`

	CarbonFootprint *Footprint       `json:"carbonFootprint,omitempty" validate:"omitempty"`
	WasteManagement *WasteManagement `json:"wasteManagement,omitempty" validate:"omitempty"`
	KPIs            *KPIs            `json:"kpis,omitempty" validate:"omitempty"`

	RiskLevel RiskLevel `json:"riskLevel,omitempty" validate:"omitempty,risklevel"`
	Preferred bool      `json:"preferred,omitempty"`
}

// Lifecycle holds per-unit lifecycle emissions of a product in kg CO2e.
type Lifecycle struct {
	ManufactureCO2ePerUnit *float64 `json:"manufactureCO2ePerUnit,omitempty"`
	UseCO2ePerUnit         *float64 `json:"useCO2ePerUnit,omitempty"`
	EndOfLifeCO2ePerUnit   *float64 `json:"endOfLifeCO2ePerUnit,omitempty"`
	RecycledContentPercent *float64 `json:"recycledContentPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Targets holds aspirational product values.
type Targets struct {
	RecycledContentPercent    *float64 `json:"recycledContentPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	IntensityReductionPercent *float64 `json:"intensityReductionPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	CertificationsRequired    []string `json:"certificationsRequired,omitempty"`
}

// Product is a purchasable line item.
type Product struct {
	ID                 string     `json:"id" validate:"required"`
	Name               string     `json:"name" validate:"required"`
	Category           string     `json:"category,omitempty"`
	Unit               string     `json:"unit,omitempty"`
	CurrentSupplierID  string     `json:"currentSupplierId,omitempty"`
	BaselineSupplierID string     `json:"baselineSupplierId,omitempty"`
	Lifecycle          *Lifecycle `json:"lifecycle,omitempty" validate:"omitempty"`
	Targets            *Targets   `json:"targets,omitempty" validate:"omitempty"`
}

// Requirements is a caller-supplied procurement query. It is never persisted.
type Requirements struct {
	Category string `json:"category,omitempty"`

	// Quantity is the order size in units and must be positive when set.
	// Zero means unset and selects DefaultQuantity (see EffectiveQuantity).
	Quantity float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`

	Budget float64 `json:"budget,omitempty" validate:"gte=0"`

	// SustainabilityPriorities maps a priority name to a relative weight.
	// Weights need not sum to anything in particular; the engine normalizes them.
	SustainabilityPriorities map[string]float64 `json:"sustainabilityPriorities,omitempty" validate:"dive,gte=0"`

	// GeographicPreference restricts suppliers to one region when set.
	GeographicPreference Region `json:"geographicPreference,omitempty" validate:"omitempty,region"`

	MinSustainabilityScore *float64  `json:"minSustainabilityScore,omitempty" validate:"omitempty,gte=0,lte=10"`
	MaxRiskLevel           RiskLevel `json:"maxRiskLevel,omitempty" validate:"omitempty,risklevel"`
}

// HistoryEntry is one past award made by the requesting buyer.
type HistoryEntry struct {
	SupplierID string  `json:"supplierId"`
	Date       string  `json:"date,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
}

// Float returns a pointer to v. It keeps fixtures and tests readable.
func Float(v float64) *float64 {
	return &v
}
