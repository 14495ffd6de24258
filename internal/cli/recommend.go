package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/format"
	"github.com/rshade/greenprocure/internal/recommend"
	"github.com/rshade/greenprocure/internal/supplier"
)

func newRecommendCmd(a *app) *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank suppliers for a procurement request",
		Long: `Filter the supplier pool by category, region, minimum reported score and
maximum risk, then rank eligible suppliers by project fit. At most five
recommendations are returned, each with reasoning, confidence and estimated
savings against an industry-average supplier.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.requirements(cmd, &f)
			if err != nil {
				return err
			}
			res := a.engine.SupplierRecommendations(req, f.history())

			vw := view{
				title:   fmt.Sprintf("Recommendations (%d of %d eligible)", len(res.Recommendations), res.TotalEvaluated),
				headers: []string{"Rank", "ID", "Supplier", "Fit", "Confidence", "Savings", "Reasoning"},
			}
			for _, r := range res.Recommendations {
				name := r.Supplier.Name
				if r.PreviouslyAwarded {
					name += " *"
				}
				vw.rows = append(vw.rows, []string{
					strconv.Itoa(r.Rank),
					r.Supplier.ID,
					name,
					format.Score(r.Score),
					format.Percent(r.Confidence * 100),
					format.Emissions(r.EstimatedSavings.AbsoluteSavings),
					r.Reasoning,
				})
			}
			return a.render(cmd, res, vw)
		},
	}
	f.register(cmd)
	return cmd
}

// allocationOutput pairs a plan with the emissions it implies.
type allocationOutput struct {
	recommend.AllocationPlan
	Impact carbon.ScenarioResult `json:"impact"`
}

func newAllocateCmd(a *app) *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split an order across the best eligible suppliers",
		Long: `Rank the suppliers eligible for the request and split the quantity 60/30/10
across at most three of them, then total the emissions of the split.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.requirements(cmd, &f)
			if err != nil {
				return err
			}
			plan := a.engine.AllocationRecommendations(a.engine.EligibleSuppliers(req), req)

			lines := make([]carbon.Allocation, 0, len(plan.Allocations))
			for _, al := range plan.Allocations {
				s, err := a.supplier(al.SupplierID)
				if err != nil {
					return err
				}
				lines = append(lines, carbon.Allocation{Supplier: s, Quantity: al.Allocation})
			}
			out := allocationOutput{AllocationPlan: plan, Impact: a.carbon.ScenarioImpact(lines, plan.Requested)}

			vw := view{
				title: fmt.Sprintf("%s: %s of %s units allocated",
					plan.Strategy, format.Float(plan.TotalAllocated, 0), format.Float(plan.Requested, 0)),
				headers: []string{"ID", "Supplier", "Units", "Share", "Fit", "Emissions (kg CO2e)", "Rationale"},
			}
			for i, al := range plan.Allocations {
				vw.rows = append(vw.rows, []string{
					al.SupplierID,
					al.SupplierName,
					format.Float(al.Allocation, 2),
					format.Percent(al.Percentage),
					format.Score(al.FitScore),
					format.Float(out.Impact.Breakdown[i].Emissions, 1),
					al.Rationale,
				})
			}
			return a.render(cmd, out, vw)
		},
	}
	f.register(cmd)
	return cmd
}

func newAdviseCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "advise [supplier-id...]",
		Short: "Audit a supplier roster for concentration, carbon and certification gaps",
		Long: `Run roster-level heuristics over the given suppliers (default: the whole
pool): regional and industry concentration, carbon optimization against the
best performer and key certification coverage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := a.suppliers(args)
			if err != nil {
				return err
			}
			res := a.engine.ProcurementRecommendations(roster, supplier.Requirements{Category: category})

			vw := view{
				title:   fmt.Sprintf("Advice for %d suppliers", len(roster)),
				headers: []string{"Type", "Title", "Description", "Impact", "Confidence", "Action"},
			}
			for _, r := range res {
				vw.rows = append(vw.rows, []string{
					string(r.Type),
					r.Title,
					r.Description,
					r.Impact,
					format.Percent(r.Confidence * 100),
					r.Action,
				})
			}
			return a.render(cmd, res, vw)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "product category the roster serves")
	return cmd
}
