package carbon

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

//go:embed data/emission_factors.yaml
var emissionFactorsYAML []byte

// Metadata identifies a table revision.
type Metadata struct {
	Version     string `yaml:"version" json:"version"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Notes       string `yaml:"notes" json:"notes,omitempty"`
}

// MaterialFactor holds per-kg factors for one material. Zero means not published.
type MaterialFactor struct {
	Virgin       float64 `yaml:"virgin" json:"virgin,omitempty"`
	Recycled     float64 `yaml:"recycled" json:"recycled,omitempty"`
	Conventional float64 `yaml:"conventional" json:"conventional,omitempty"`
	Organic      float64 `yaml:"organic" json:"organic,omitempty"`
}

// RevenueIntensity holds fallback scope intensities in tonnes CO2e per $M revenue.
type RevenueIntensity struct {
	Scope1 float64 `yaml:"scope1_intensity_per_revenue" json:"scope1"`
	Scope2 float64 `yaml:"scope2_intensity_per_revenue" json:"scope2"`
	Scope3 float64 `yaml:"scope3_intensity_per_revenue" json:"scope3"`
}

// factorsFile is the on-disk shape of an emission factor table.
type factorsFile struct {
	Metadata        Metadata                  `yaml:"metadata"`
	Transport       map[string]float64        `yaml:"transport"`
	ElectricityGrid map[string]float64        `yaml:"electricity_grid"`
	Materials       map[string]MaterialFactor `yaml:"materials"`
	Packaging       map[string]float64        `yaml:"packaging"`
	Defaults        RevenueIntensity          `yaml:"defaults"`
}

// Factors is an immutable emission factor table. Build one with LoadFactors or
// DefaultFactors; the zero value is not usable.
type Factors struct {
	metadata  Metadata
	transport map[TransportMode]float64
	grid      map[string]float64
	materials map[string]MaterialFactor
	packaging map[string]float64
	defaults  RevenueIntensity
}

var (
	defaultFactors     *Factors
	defaultFactorsErr  error
	defaultFactorsOnce sync.Once
)

// DefaultFactors returns the embedded emission factor table, parsed once.
func DefaultFactors() (*Factors, error) {
	defaultFactorsOnce.Do(func() {
		defaultFactors, defaultFactorsErr = LoadFactors(bytes.NewReader(emissionFactorsYAML))
		if defaultFactorsErr != nil {
			logger.Error().Err(defaultFactorsErr).Msg("failed to parse embedded emission factors")
		}
	})
	return defaultFactors, defaultFactorsErr
}

// LoadFactors parses an emission factor table from YAML.
// The table must carry a semver-compatible version no older than MinFactorsVersion
// and must define the default truck factor.
func LoadFactors(r io.Reader) (*Factors, error) {
	var raw factorsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding emission factors: %w", err)
	}

	if err := checkVersion(raw.Metadata.Version); err != nil {
		return nil, err
	}

	f := &Factors{
		metadata:  raw.Metadata,
		transport: make(map[TransportMode]float64, len(raw.Transport)),
		grid:      make(map[string]float64, len(raw.ElectricityGrid)),
		materials: make(map[string]MaterialFactor, len(raw.Materials)),
		packaging: make(map[string]float64, len(raw.Packaging)),
		defaults:  raw.Defaults,
	}
	for mode, v := range raw.Transport {
		if v < 0 {
			logger.Warn().Str("mode", mode).Float64("factor", v).Msg("skipping negative transport factor")
			continue
		}
		f.transport[TransportMode(strings.ToLower(mode))] = v
	}
	if _, ok := f.transport[ModeTruck]; !ok {
		return nil, ErrMissingDefaultMode
	}
	for region, v := range raw.ElectricityGrid {
		f.grid[normalizeGridKey(region)] = v
	}
	for name, m := range raw.Materials {
		f.materials[strings.ToLower(name)] = m
	}
	for name, v := range raw.Packaging {
		f.packaging[strings.ToLower(name)] = v
	}
	return f, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing metadata.version", ErrUnsupportedTableVersion)
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedTableVersion, v, err)
	}
	if got.LessThan(semver.MustParse(MinFactorsVersion)) {
		return fmt.Errorf("%w: %s is older than %s", ErrUnsupportedTableVersion, got, MinFactorsVersion)
	}
	return nil
}

// Metadata returns the table's version information.
func (f *Factors) Metadata() Metadata {
	return f.metadata
}

// TransportFactor returns kg CO2e per tonne-km for mode.
func (f *Factors) TransportFactor(mode TransportMode) (float64, bool) {
	v, ok := f.transport[mode]
	return v, ok
}

// TransportModes returns the modes present in the table, known modes first in
// their canonical order, then any extra modes alphabetically.
func (f *Factors) TransportModes() []TransportMode {
	modes := make([]TransportMode, 0, len(f.transport))
	seen := make(map[TransportMode]bool, len(f.transport))
	for _, m := range KnownTransportModes() {
		if _, ok := f.transport[m]; ok {
			modes = append(modes, m)
			seen[m] = true
		}
	}
	var extra []TransportMode
	for m := range f.transport {
		if !seen[m] {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(modes, extra...)
}

// Material returns the factors for a material (case-insensitive).
func (f *Factors) Material(name string) (MaterialFactor, bool) {
	m, ok := f.materials[strings.ToLower(name)]
	return m, ok
}

// PackagingFactor returns kg CO2e per kg for a packaging type (case-insensitive).
func (f *Factors) PackagingFactor(name string) (float64, bool) {
	v, ok := f.packaging[strings.ToLower(name)]
	return v, ok
}

// PackagingFactors returns a copy of the packaging factors, keyed by
// lower-case packaging type.
func (f *Factors) PackagingFactors() map[string]float64 {
	out := make(map[string]float64, len(f.packaging))
	for k, v := range f.packaging {
		out[k] = v
	}
	return out
}

// RevenueIntensity returns the fallback scope intensities.
func (f *Factors) RevenueIntensity() RevenueIntensity {
	return f.defaults
}
