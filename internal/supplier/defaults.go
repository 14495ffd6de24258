package supplier

const (
	// DefaultDataCompleteness is assumed when a supplier reports no completeness figure.
	DefaultDataCompleteness = 0.7

	// DefaultQuantity is the order size used when a request leaves quantity unset.
	DefaultQuantity = 1000.0
)

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// HasFootprint reports whether the supplier published any emissions data.
func (s Supplier) HasFootprint() bool {
	return s.CarbonFootprint != nil
}

// PerUnitCarbon returns kg CO2e per unit, or 0 when not reported.
func (s Supplier) PerUnitCarbon() float64 {
	if s.CarbonFootprint == nil {
		return 0
	}
	return deref(s.CarbonFootprint.PerUnit)
}

// Scope1 returns annual scope 1 tonnes, or 0.
func (s Supplier) Scope1() float64 {
	if s.CarbonFootprint == nil {
		return 0
	}
	return deref(s.CarbonFootprint.Scope1)
}

// Scope2 returns annual scope 2 tonnes, or 0.
func (s Supplier) Scope2() float64 {
	if s.CarbonFootprint == nil {
		return 0
	}
	return deref(s.CarbonFootprint.Scope2)
}

// Scope3 returns annual scope 3 tonnes, or 0.
func (s Supplier) Scope3() float64 {
	if s.CarbonFootprint == nil {
		return 0
	}
	return deref(s.CarbonFootprint.Scope3)
}

// Recycling returns recycled content in percent, or 0.
func (s Supplier) Recycling() float64 {
	return deref(s.RecyclingContent)
}

// Renewable returns the renewable energy share in percent, or 0.
func (s Supplier) Renewable() float64 {
	return deref(s.RenewableEnergyPercent)
}

// HasWasteData reports whether waste management data is present.
func (s Supplier) HasWasteData() bool {
	return s.WasteManagement != nil
}

// RecycledWaste returns the recycled waste share in percent, or 0.
func (s Supplier) RecycledWaste() float64 {
	if s.WasteManagement == nil {
		return 0
	}
	return deref(s.WasteManagement.RecycledPercentage)
}

// WasteToEnergy returns the waste-to-energy share in percent, or 0.
func (s Supplier) WasteToEnergy() float64 {
	if s.WasteManagement == nil {
		return 0
	}
	return deref(s.WasteManagement.WasteToEnergy)
}

// OnTimeDelivery returns the on-time delivery rate, or 0.
func (s Supplier) OnTimeDelivery() float64 {
	if s.KPIs == nil {
		return 0
	}
	return deref(s.KPIs.OnTimeDelivery)
}

// DefectRate returns the defect rate and whether it was reported.
// An unreported defect rate must not earn a low-defect bonus.
func (s Supplier) DefectRate() (float64, bool) {
	if s.KPIs == nil || s.KPIs.DefectRate == nil {
		return 0, false
	}
	return *s.KPIs.DefectRate, true
}

// DataCompleteness returns reported completeness, or DefaultDataCompleteness
// when absent or zero.
func (s Supplier) DataCompleteness() float64 {
	if s.KPIs == nil || s.KPIs.DataCompleteness == nil || *s.KPIs.DataCompleteness == 0 {
		return DefaultDataCompleteness
	}
	return *s.KPIs.DataCompleteness
}

// VerificationMethod returns how the supplier's data was verified, or "".
func (s Supplier) VerificationMethod() Verification {
	if s.KPIs == nil {
		return ""
	}
	return s.KPIs.Verification
}

// ReportedScoreOrZero returns the supplier-reported score, or 0.
func (s Supplier) ReportedScoreOrZero() float64 {
	return deref(s.ReportedScore)
}

// HasCertification reports whether the supplier holds cert.
func (s Supplier) HasCertification(cert string) bool {
	for _, c := range s.Certifications {
		if c == cert {
			return true
		}
	}
	return false
}

// HasLifecycle reports whether lifecycle data is present.
func (p Product) HasLifecycle() bool {
	return p.Lifecycle != nil
}

// ManufactureCO2e returns manufacturing kg CO2e per unit, or 0.
func (p Product) ManufactureCO2e() float64 {
	if p.Lifecycle == nil {
		return 0
	}
	return deref(p.Lifecycle.ManufactureCO2ePerUnit)
}

// UseCO2e returns use-phase kg CO2e per unit, or 0. May be negative for reuse credits.
func (p Product) UseCO2e() float64 {
	if p.Lifecycle == nil {
		return 0
	}
	return deref(p.Lifecycle.UseCO2ePerUnit)
}

// EndOfLifeCO2e returns end-of-life kg CO2e per unit, or 0.
func (p Product) EndOfLifeCO2e() float64 {
	if p.Lifecycle == nil {
		return 0
	}
	return deref(p.Lifecycle.EndOfLifeCO2ePerUnit)
}

// EffectiveQuantity returns the requested quantity, or DefaultQuantity when unset.
func (r Requirements) EffectiveQuantity() float64 {
	if r.Quantity <= 0 {
		return DefaultQuantity
	}
	return r.Quantity
}

// MinScore returns the minimum reported score filter and whether it is set.
// A zero minimum is treated as unset.
func (r Requirements) MinScore() (float64, bool) {
	if r.MinSustainabilityScore == nil || *r.MinSustainabilityScore == 0 {
		return 0, false
	}
	return *r.MinSustainabilityScore, true
}
