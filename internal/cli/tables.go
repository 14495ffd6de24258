package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/benchmark"
	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/format"
	"github.com/rshade/greenprocure/internal/supplier"
)

// tablesOutput summarizes the loaded reference tables.
type tablesOutput struct {
	Factors struct {
		Metadata         carbon.Metadata                  `json:"metadata"`
		Transport        map[carbon.TransportMode]float64 `json:"transport"`
		Grid             map[supplier.Region]float64      `json:"electricityGrid"`
		RevenueIntensity carbon.RevenueIntensity          `json:"revenueIntensity"`
		Packaging        map[string]float64               `json:"packaging"`
	} `json:"factors"`
	Benchmarks struct {
		Metadata             benchmark.Metadata        `json:"metadata"`
		Sectors              []benchmark.Sector        `json:"sectors"`
		CertificationWeights map[string]float64        `json:"certificationWeights"`
		PolicyWeights        map[string]float64        `json:"policyWeights"`
		Normalization        benchmark.Normalization   `json:"scoreNormalization"`
		CarbonBands          map[string]benchmark.Band `json:"perUnitCO2eBands"`
		KPIThresholds        benchmark.KPIThresholds   `json:"kpiThresholds"`
		RecyclingTargets     map[string]float64        `json:"recyclingTargets"`
	} `json:"benchmarks"`
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Show the loaded emission factor and benchmark tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			factors := a.carbon.Factors()
			bench := a.scorer.Table()

			var out tablesOutput
			out.Factors.Metadata = factors.Metadata()
			out.Factors.Transport = make(map[carbon.TransportMode]float64)
			modes := view{title: "Freight factors (kg CO2e per tonne-km)", headers: []string{"Mode", "Factor"}}
			for _, m := range factors.TransportModes() {
				f, _ := factors.TransportFactor(m)
				out.Factors.Transport[m] = f
				modes.rows = append(modes.rows, []string{string(m), format.Float(f, 3)})
			}

			out.Factors.Grid = make(map[supplier.Region]float64)
			grid := view{title: "Electricity grid (kg CO2e per kWh)", headers: []string{"Region", "Factor"}}
			for _, r := range supplier.Regions() {
				f := factors.GridFactor(string(r))
				out.Factors.Grid[r] = f
				grid.rows = append(grid.rows, []string{string(r), format.Float(f, 3)})
			}
			out.Factors.RevenueIntensity = factors.RevenueIntensity()

			out.Benchmarks.Metadata = bench.Metadata()
			out.Benchmarks.Sectors = bench.Sectors()
			out.Benchmarks.CertificationWeights = bench.CertificationWeights()
			out.Benchmarks.PolicyWeights = bench.PolicyWeights()
			out.Benchmarks.Normalization = bench.Normalization()

			sectors := view{
				title:   "Industry benchmarks",
				headers: []string{"Sector", "Average", "Top quartile", "Recycled target %", "Renewable target %"},
			}
			for _, s := range out.Benchmarks.Sectors {
				sectors.rows = append(sectors.rows, []string{
					s.Name,
					format.Score(s.AvgScore),
					format.Score(s.TopQuartile),
					format.Float(s.RecycledContentTarget, 0),
					format.Float(s.RenewableEnergyTarget, 0),
				})
			}

			certs := view{title: "Certification weights", headers: []string{"Certification", "Weight"}}
			for _, n := range sortedKeys(out.Benchmarks.CertificationWeights) {
				certs.rows = append(certs.rows, []string{n, format.Float(out.Benchmarks.CertificationWeights[n], 2)})
			}

			versions := keyValues("Table versions",
				"Emission factors", out.Factors.Metadata.Version+" ("+out.Factors.Metadata.LastUpdated+")",
				"Industry benchmarks", out.Benchmarks.Metadata.Version+" ("+out.Benchmarks.Metadata.LastUpdated+")",
			)
			ri := out.Factors.RevenueIntensity
			versions.rows = append(versions.rows, []string{
				"Fallback intensity (t CO2e per $M)",
				fmt.Sprintf("scope 1 %s, scope 2 %s, scope 3 %s",
					format.Float(ri.Scope1, 1), format.Float(ri.Scope2, 1), format.Float(ri.Scope3, 1)),
			})

			out.Factors.Packaging = factors.PackagingFactors()
			packaging := view{title: "Packaging (kg CO2e per kg)", headers: []string{"Type", "Factor"}}
			for _, n := range sortedKeys(out.Factors.Packaging) {
				packaging.rows = append(packaging.rows, []string{n, format.Float(out.Factors.Packaging[n], 2)})
			}

			out.Benchmarks.CarbonBands = bench.CarbonBands()
			bands := view{
				title:   "Per-unit footprint bands (kg CO2e)",
				headers: []string{"Category", "Average from", "Poor from"},
			}
			for _, n := range sortedKeys(out.Benchmarks.CarbonBands) {
				b := out.Benchmarks.CarbonBands[n]
				bands.rows = append(bands.rows, []string{n, format.Float(b.Average, 2), format.Float(b.Poor, 2)})
			}

			out.Benchmarks.KPIThresholds = bench.KPIThresholds()
			k := out.Benchmarks.KPIThresholds
			kpis := keyValues("KPI thresholds",
				"On-time delivery good from", format.Percent(k.OnTimeDeliveryGoodMin),
				"Defect rate good up to", format.Percent(k.DefectRateGoodMax),
				"Audit score good from", format.Float(k.AuditScoreGoodMin, 0),
			)

			out.Benchmarks.RecyclingTargets = bench.RecyclingTargets()
			targets := view{title: "Recycled content targets", headers: []string{"Material", "Target"}}
			for _, n := range sortedKeys(out.Benchmarks.RecyclingTargets) {
				targets.rows = append(targets.rows, []string{n, format.Percent(out.Benchmarks.RecyclingTargets[n])})
			}

			return a.render(cmd, out, versions, modes, grid, packaging, sectors, bands, kpis, targets, certs)
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
