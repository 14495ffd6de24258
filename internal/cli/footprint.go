package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/benchmark"
	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/format"
)

// footprintRow is one supplier footprint, rated against the category band
// when --category names one.
type footprintRow struct {
	carbon.SupplierFootprint
	Rating string `json:"rating,omitempty"`
}

func newFootprintCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "footprint [supplier-id...]",
		Short: "Estimate order carbon footprints per supplier",
		Long: `Estimate the carbon footprint of an order from each supplier.

Scope figures apportion annual emissions by quantity/1000. This is a
demonstration heuristic, not a GHG Protocol allocation.

With --category, each supplier's per-unit footprint is rated good, average
or poor against that category's band in the benchmark table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := a.quantity(cmd)
			if err != nil {
				return err
			}
			ss, err := a.suppliers(args)
			if err != nil {
				return err
			}
			var (
				band   benchmark.Band
				banded bool
			)
			if category != "" {
				if band, banded = a.scorer.Table().CarbonBand(category); !banded {
					return fmt.Errorf("%w: %s", errNoCarbonBand, category)
				}
			}

			res := make([]footprintRow, 0, len(ss))
			for _, fp := range a.carbon.CompareSuppliers(ss, qty) {
				row := footprintRow{SupplierFootprint: fp}
				if banded {
					row.Rating = band.Rate(fp.PerUnit)
				}
				res = append(res, row)
			}

			vw := view{
				title:   "Carbon footprint for " + format.Float(qty, 0) + " units (kg CO2e)",
				headers: []string{"ID", "Supplier", "Per unit", "Total", "Scope 1", "Scope 2", "Scope 3", "Transport"},
			}
			if banded {
				vw.headers = append(vw.headers, "Rating")
			}
			for _, r := range res {
				cells := []string{
					r.SupplierID,
					r.SupplierName,
					format.Float(r.PerUnit, 2),
					format.Float(r.Total, 1),
					format.Float(r.Breakdown.Scope1, 1),
					format.Float(r.Breakdown.Scope2, 1),
					format.Float(r.Breakdown.Scope3, 1),
					format.Float(r.Breakdown.Transport, 1),
				}
				if banded {
					cells = append(cells, r.Rating)
				}
				vw.rows = append(vw.rows, cells)
			}
			return a.render(cmd, res, vw)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "rate per-unit footprints against this category's band")
	addQuantityFlag(cmd)
	return cmd
}

func newSavingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings <current-id> <alternative-id>",
		Short: "Compare switching an order between two suppliers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := a.quantity(cmd)
			if err != nil {
				return err
			}
			cur, err := a.supplier(args[0])
			if err != nil {
				return err
			}
			alt, err := a.supplier(args[1])
			if err != nil {
				return err
			}
			res := a.carbon.Savings(cur, alt, qty)

			return a.render(cmd, res, keyValues(
				fmt.Sprintf("Switching %s to %s", cur.Name, alt.Name),
				"Current emissions", format.Emissions(res.CurrentEmissions),
				"Alternative emissions", format.Emissions(res.AlternativeEmissions),
				"Savings", format.Emissions(res.Savings),
				"Savings %", format.Percent(res.SavingsPercentage),
				"Scope 1 delta", format.Emissions(res.Breakdown.Scope1),
				"Scope 2 delta", format.Emissions(res.Breakdown.Scope2),
				"Scope 3 delta", format.Emissions(res.Breakdown.Scope3),
				"Transport delta", format.Emissions(res.Breakdown.Transport),
			))
		},
	}
	addQuantityFlag(cmd)
	return cmd
}

// rawTransport is the JSON shape of a distance/weight transport estimate.
type rawTransport struct {
	Mode       carbon.TransportMode `json:"mode"`
	DistanceKm float64              `json:"distanceKm"`
	WeightTons float64              `json:"weightTons"`
	Emissions  float64              `json:"emissions"`
}

func newTransportCmd(a *app) *cobra.Command {
	var (
		mode     string
		distance float64
		weight   float64
	)
	cmd := &cobra.Command{
		Use:   "transport [supplier-id]",
		Short: "Estimate freight emissions",
		Long: `Estimate freight emissions either for a supplier's order (distance from the
supplier's region, weight of 0.5 kg per unit) or for an explicit
--distance and --weight. Without --mode, a supplier's order is compared
across every freight mode; an explicit estimate defaults to truck.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := carbon.TransportMode(strings.ToLower(mode))

			if len(args) == 0 {
				if !cmd.Flags().Changed("distance") || !cmd.Flags().Changed("weight") {
					return errors.New("give a supplier ID or both --distance and --weight")
				}
				if m == "" {
					m = carbon.DefaultTransportMode
				}
				e, err := a.carbon.TransportModeEmissions(distance, weight, m)
				if err != nil {
					return err
				}
				res := rawTransport{Mode: m, DistanceKm: distance, WeightTons: weight, Emissions: e}
				return a.render(cmd, res, keyValues("Freight estimate",
					"Mode", string(m),
					"Distance", format.Float(distance, 0)+" km",
					"Weight", format.Float(weight, 2)+" t",
					"Emissions", format.Emissions(e),
				))
			}

			qty, err := a.quantity(cmd)
			if err != nil {
				return err
			}
			s, err := a.supplier(args[0])
			if err != nil {
				return err
			}

			var res []carbon.ModeEmissions
			if m != "" {
				e, err := a.carbon.TransportEmissions(s, qty, m)
				if err != nil {
					return err
				}
				res = []carbon.ModeEmissions{{Mode: m, DistanceKm: carbon.EstimateDistance(s.Location.Region), Emissions: e}}
			} else {
				res = a.carbon.CompareTransportModes(s, qty)
			}

			vw := view{
				title:   fmt.Sprintf("Freight for %s units from %s", format.Float(qty, 0), s.Name),
				headers: []string{"Mode", "Distance (km)", "Emissions (kg CO2e)"},
			}
			for _, r := range res {
				vw.rows = append(vw.rows, []string{string(r.Mode), format.Float(r.DistanceKm, 0), format.Float(r.Emissions, 2)})
			}
			return a.render(cmd, res, vw)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "freight mode: truck, rail, sea or air")
	cmd.Flags().Float64Var(&distance, "distance", 0, "shipping distance in km")
	cmd.Flags().Float64Var(&weight, "weight", 0, "shipment weight in tonnes")
	addQuantityFlag(cmd)
	return cmd
}

func newLifecycleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifecycle <product-id>",
		Short: "Estimate cradle-to-grave emissions of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := a.quantity(cmd)
			if err != nil {
				return err
			}
			p, ok := a.data.Product(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownProduct, args[0])
			}
			res := a.carbon.ProductLifecycle(p, qty)

			return a.render(cmd, res, keyValues(
				fmt.Sprintf("%s lifecycle for %s units", p.Name, format.Float(qty, 0)),
				"Manufacturing", format.Emissions(res.Breakdown.Manufacturing),
				"Use", format.Emissions(res.Breakdown.Use),
				"End of life", format.Emissions(res.Breakdown.EndOfLife),
				"Total", format.Emissions(res.Total),
			))
		},
	}
	addQuantityFlag(cmd)
	return cmd
}

// materialFactor is the JSON shape of a material lookup.
type materialFactor struct {
	Material string  `json:"material"`
	Recycled bool    `json:"recycled"`
	Factor   float64 `json:"kgCO2ePerKg"`

	// Packaging is set when the factor came from the packaging table.
	Packaging bool `json:"packaging,omitempty"`

	// RecyclingTarget is the benchmark recycled content target in percent.
	RecyclingTarget *float64 `json:"recyclingTarget,omitempty"`
}

func newMaterialCmd(a *app) *cobra.Command {
	var recycled bool
	cmd := &cobra.Command{
		Use:   "material <name>",
		Short: "Look up a material or packaging emission factor (kg CO2e per kg)",
		Long: `Look up a material's emission factor and its recycled content target.
Names missing from the material table are looked up as packaging types.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			res := materialFactor{Material: name, Recycled: recycled}
			if _, ok := a.carbon.Factors().Material(name); ok {
				res.Factor = a.carbon.MaterialEmissionFactor(name, recycled)
			} else if f, ok := a.carbon.Factors().PackagingFactor(name); ok {
				res.Factor = f
				res.Packaging = true
			}
			if target, ok := a.scorer.Table().RecyclingTarget(name); ok {
				res.RecyclingTarget = &target
			}

			kind := "material"
			if res.Packaging {
				kind = "packaging"
			}
			target := "-"
			if res.RecyclingTarget != nil {
				target = format.Percent(*res.RecyclingTarget)
			}
			return a.render(cmd, res, keyValues("Material factor",
				"Material", res.Material,
				"Kind", kind,
				"Recycled", strconv.FormatBool(res.Recycled),
				"kg CO2e per kg", format.Float(res.Factor, 2),
				"Recycled content target", target,
			))
		},
	}
	cmd.Flags().BoolVar(&recycled, "recycled", false, "prefer the recycled-material factor")
	return cmd
}

func newOptimizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [supplier-id...]",
		Short: "Measure how far a roster's average footprint is from its best supplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := a.quantity(cmd)
			if err != nil {
				return err
			}
			ss, err := a.suppliers(args)
			if err != nil {
				return err
			}
			res := a.carbon.OptimizationPotential(ss, qty)

			return a.render(cmd, res, keyValues("Optimization potential",
				"Average per unit", format.Float(res.CurrentAverage, 2)+" kg CO2e",
				"Best per unit", format.Float(res.BestPerformance, 2)+" kg CO2e",
				"Worst per unit", format.Float(res.WorstPerformance, 2)+" kg CO2e",
				"Potential savings", format.Emissions(res.PotentialSavings),
				"Potential savings %", format.Percent(res.PercentageSavings),
			))
		},
	}
	addQuantityFlag(cmd)
	return cmd
}

func newScenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <supplier-id=quantity>...",
		Short: "Total the emissions of a hand-written allocation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allocs := make([]carbon.Allocation, 0, len(args))
			total := 0.0
			for _, arg := range args {
				id, q, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%w: %q", errBadKeyValue, arg)
				}
				qty, err := strconv.ParseFloat(q, 64)
				if err != nil || qty < 0 {
					return fmt.Errorf("quantity for %s: %q is not a non-negative number", id, q)
				}
				s, err := a.supplier(id)
				if err != nil {
					return err
				}
				allocs = append(allocs, carbon.Allocation{Supplier: s, Quantity: qty})
				total += qty
			}
			if cmd.Flags().Changed("quantity") {
				q, err := a.quantity(cmd)
				if err != nil {
					return err
				}
				total = q
			}
			return a.renderScenario(cmd, a.carbon.ScenarioImpact(allocs, total))
		},
	}
	cmd.Flags().Float64("quantity", 0, "order size percentages are measured against (default sum of allocations)")
	return cmd
}

func (a *app) renderScenario(cmd *cobra.Command, res carbon.ScenarioResult) error {
	vw := view{
		title:   "Scenario emissions: " + format.Emissions(res.TotalEmissions) + ", " + format.Float(res.AverageEmissionsPerUnit, 3) + " kg CO2e per unit",
		headers: []string{"ID", "Supplier", "Units", "Share", "Emissions (kg CO2e)"},
	}
	for _, l := range res.Breakdown {
		vw.rows = append(vw.rows, []string{
			l.SupplierID,
			l.SupplierName,
			format.Float(l.Allocation, 0),
			format.Percent(l.Percentage),
			format.Float(l.Emissions, 1),
		})
	}
	return a.render(cmd, res, vw)
}
