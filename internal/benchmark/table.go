// Package benchmark loads the industry benchmark table: per-sector score
// references and targets, certification and policy weights, default score
// normalization and KPI thresholds.
package benchmark

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// MinVersion is the oldest benchmark table version accepted.
const MinVersion = "2024.1.0"

//go:embed data/industry_benchmarks.yaml
var industryBenchmarksYAML []byte

// Metadata identifies a table revision.
type Metadata struct {
	Version     string `yaml:"version" json:"version"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Notes       string `yaml:"notes" json:"notes,omitempty"`
}

// Sector holds reference values for one industry.
type Sector struct {
	Name                  string  `yaml:"-" json:"name"`
	AvgScore              float64 `yaml:"avg_score" json:"avgScore"`
	TopQuartile           float64 `yaml:"top_quartile" json:"topQuartile"`
	RecycledContentTarget float64 `yaml:"recycled_content_target" json:"recycledContentTarget"`
	RenewableEnergyTarget float64 `yaml:"renewable_energy_target" json:"renewableEnergyTarget"`

	// AvgCarbonIntensity is the sector's average kg CO2e per unit. Zero means not published.
	AvgCarbonIntensity float64 `yaml:"avg_carbon_intensity" json:"avgCarbonIntensity,omitempty"`
}

// Band classifies a per-unit footprint for a product category.
type Band struct {
	Good    float64 `yaml:"good" json:"good"`
	Average float64 `yaml:"average" json:"average"`
	Poor    float64 `yaml:"poor" json:"poor"`
}

// Ratings returned by Band.Rate.
const (
	RatingGood    = "good"
	RatingAverage = "average"
	RatingPoor    = "poor"
)

// Rate places a per-unit footprint in the band: at or above Poor is poor,
// at or above Average is average, anything lower is good.
func (b Band) Rate(perUnit float64) string {
	switch {
	case perUnit >= b.Poor:
		return RatingPoor
	case perUnit >= b.Average:
		return RatingAverage
	default:
		return RatingGood
	}
}

// KPIThresholds are the "good performance" cut-offs for supplier KPIs.
type KPIThresholds struct {
	OnTimeDeliveryGoodMin float64 `yaml:"on_time_delivery_good_min" json:"onTimeDeliveryGoodMin"`
	DefectRateGoodMax     float64 `yaml:"defect_rate_good_max" json:"defectRateGoodMax"`
	AuditScoreGoodMin     float64 `yaml:"audit_score_good_min" json:"auditScoreGoodMin"`
}

// Normalization is the default weighting of the five score components.
type Normalization struct {
	Carbon    float64 `yaml:"carbon_weight" json:"carbonWeight"`
	Cert      float64 `yaml:"cert_weight" json:"certWeight"`
	Recycling float64 `yaml:"recycling_weight" json:"recyclingWeight"`
	Policy    float64 `yaml:"policy_weight" json:"policyWeight"`
	Waste     float64 `yaml:"waste_weight" json:"wasteWeight"`
}

type thresholdsFile struct {
	PerUnitCO2e map[string]Band `yaml:"per_unit_co2e"`
	KPIs        KPIThresholds   `yaml:"kpis"`
}

type tableFile struct {
	Metadata             Metadata           `yaml:"metadata"`
	Sectors              map[string]Sector  `yaml:"sectors"`
	Thresholds           thresholdsFile     `yaml:"thresholds"`
	CertificationWeights map[string]float64 `yaml:"certification_weights"`
	PolicyWeights        map[string]float64 `yaml:"policy_weights"`
	ScoreNormalization   Normalization      `yaml:"score_normalization"`
	RecyclingTargets     map[string]float64 `yaml:"recycling_targets"`
}

// Table is an immutable industry benchmark table. Build one with Load or
// Default; the zero value is not usable.
//
// Sector, band and material lookups are case-insensitive. Certification and
// policy names match exactly, as suppliers report them.
type Table struct {
	metadata      Metadata
	sectors       map[string]Sector
	bands         map[string]Band
	bandNames     map[string]string
	kpis          KPIThresholds
	certWeights   map[string]float64
	maxCert       float64
	policyWeights map[string]float64
	maxPolicy     float64
	normalization Normalization
	recycling     map[string]float64
}

var (
	defaultTable     *Table
	defaultTableErr  error
	defaultTableOnce sync.Once
)

// Default returns the embedded benchmark table, parsed once.
func Default() (*Table, error) {
	defaultTableOnce.Do(func() {
		defaultTable, defaultTableErr = Load(bytes.NewReader(industryBenchmarksYAML))
		if defaultTableErr != nil {
			logger.Error().Err(defaultTableErr).Msg("failed to parse embedded industry benchmarks")
		}
	})
	return defaultTable, defaultTableErr
}

// Load parses a benchmark table from YAML.
func Load(r io.Reader) (*Table, error) {
	var raw tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding industry benchmarks: %w", err)
	}
	if err := checkVersion(raw.Metadata.Version); err != nil {
		return nil, err
	}
	if len(raw.Sectors) == 0 {
		return nil, ErrNoSectors
	}

	t := &Table{
		metadata:      raw.Metadata,
		sectors:       make(map[string]Sector, len(raw.Sectors)),
		bands:         make(map[string]Band, len(raw.Thresholds.PerUnitCO2e)),
		bandNames:     make(map[string]string, len(raw.Thresholds.PerUnitCO2e)),
		kpis:          raw.Thresholds.KPIs,
		certWeights:   make(map[string]float64, len(raw.CertificationWeights)),
		policyWeights: make(map[string]float64, len(raw.PolicyWeights)),
		normalization: raw.ScoreNormalization,
		recycling:     make(map[string]float64, len(raw.RecyclingTargets)),
	}

	for name, s := range raw.Sectors {
		s.Name = name
		t.sectors[strings.ToLower(name)] = s
	}
	for name, b := range raw.Thresholds.PerUnitCO2e {
		t.bands[bandKey(name)] = b
		t.bandNames[bandKey(name)] = name
	}
	for name, v := range raw.RecyclingTargets {
		t.recycling[strings.ToLower(name)] = v
	}

	var err error
	if t.maxCert, err = copyWeights(t.certWeights, raw.CertificationWeights, "certification"); err != nil {
		return nil, err
	}
	if t.maxPolicy, err = copyWeights(t.policyWeights, raw.PolicyWeights, "policy"); err != nil {
		return nil, err
	}
	n := raw.ScoreNormalization
	if n.Carbon < 0 || n.Cert < 0 || n.Recycling < 0 || n.Policy < 0 || n.Waste < 0 {
		return nil, fmt.Errorf("%w: score_normalization", ErrNegativeWeight)
	}

	logger.Debug().
		Str("version", t.metadata.Version).
		Int("sectors", len(t.sectors)).
		Int("certifications", len(t.certWeights)).
		Int("policies", len(t.policyWeights)).
		Msg("loaded industry benchmarks")
	return t, nil
}

// copyWeights copies src into dst and returns the largest weight.
func copyWeights(dst, src map[string]float64, kind string) (float64, error) {
	maxW := 0.0
	for name, w := range src {
		if w < 0 {
			return 0, fmt.Errorf("%w: %s %q", ErrNegativeWeight, kind, name)
		}
		dst[name] = w
		if w > maxW {
			maxW = w
		}
	}
	return maxW, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing metadata.version", ErrUnsupportedTableVersion)
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedTableVersion, v, err)
	}
	if got.LessThan(semver.MustParse(MinVersion)) {
		return fmt.Errorf("%w: %s is older than %s", ErrUnsupportedTableVersion, got, MinVersion)
	}
	return nil
}

// Metadata returns the table's version information.
func (t *Table) Metadata() Metadata {
	return t.metadata
}

// Sector returns the benchmark for an industry.
func (t *Table) Sector(industry string) (Sector, bool) {
	s, ok := t.sectors[strings.ToLower(industry)]
	return s, ok
}

// Sectors returns every sector sorted by name.
func (t *Table) Sectors() []Sector {
	out := make([]Sector, 0, len(t.sectors))
	for _, s := range t.sectors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CertificationWeight returns the weight of a certification; unknown names weigh 0.
func (t *Table) CertificationWeight(cert string) float64 {
	return t.certWeights[cert]
}

// MaxCertificationWeight returns the heaviest single certification weight.
func (t *Table) MaxCertificationWeight() float64 {
	return t.maxCert
}

// CertificationWeights returns a copy of the certification weight map.
func (t *Table) CertificationWeights() map[string]float64 {
	return copyMap(t.certWeights)
}

// PolicyWeight returns the weight of a policy type; unknown types weigh 0.
func (t *Table) PolicyWeight(policyType string) float64 {
	return t.policyWeights[policyType]
}

// MaxPolicyWeight returns the heaviest single policy weight.
func (t *Table) MaxPolicyWeight() float64 {
	return t.maxPolicy
}

// PolicyWeights returns a copy of the policy weight map.
func (t *Table) PolicyWeights() map[string]float64 {
	return copyMap(t.policyWeights)
}

// Normalization returns the default component weights.
func (t *Table) Normalization() Normalization {
	return t.normalization
}

// bandKey folds "Office Supplies" and "OfficeSupplies" onto one key.
func bandKey(category string) string {
	return strings.ToLower(strings.ReplaceAll(category, " ", ""))
}

// CarbonBand returns the per-unit footprint band for a product category.
// Case and spaces in category are ignored.
func (t *Table) CarbonBand(category string) (Band, bool) {
	b, ok := t.bands[bandKey(category)]
	return b, ok
}

// CarbonBands returns every band keyed by its category as written in the table.
func (t *Table) CarbonBands() map[string]Band {
	out := make(map[string]Band, len(t.bands))
	for k, b := range t.bands {
		out[t.bandNames[k]] = b
	}
	return out
}

// KPIThresholds returns the KPI cut-offs.
func (t *Table) KPIThresholds() KPIThresholds {
	return t.kpis
}

// RecyclingTarget returns the recycled content target for a material in percent.
func (t *Table) RecyclingTarget(material string) (float64, bool) {
	v, ok := t.recycling[strings.ToLower(material)]
	return v, ok
}

// RecyclingTargets returns a copy of the material recycling targets, keyed by
// lower-case material name.
func (t *Table) RecyclingTargets() map[string]float64 {
	return copyMap(t.recycling)
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
