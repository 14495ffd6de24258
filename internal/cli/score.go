package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/format"
	"github.com/rshade/greenprocure/internal/scoring"
)

// scoredSupplier is the JSON shape of one score row.
type scoredSupplier struct {
	SupplierID    string         `json:"supplierId"`
	SupplierName  string         `json:"supplierName"`
	ReportedScore *float64       `json:"reportedScore,omitempty"`
	Score         scoring.Result `json:"score"`
}

func newScoreCmd(a *app) *cobra.Command {
	var weightPairs []string
	cmd := &cobra.Command{
		Use:   "score [supplier-id...]",
		Short: "Compute overall sustainability scores",
		Long: `Compute each supplier's overall sustainability score (0-10) from carbon,
certification, recycling, policy and waste components.

--weight overrides individual component weights (keys: carbon, cert,
recycling, policy, waste); unspecified weights keep their table defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := a.suppliers(args)
			if err != nil {
				return err
			}
			w, err := a.weights(weightPairs)
			if err != nil {
				return err
			}
			scores, err := a.engine.ScorePool(cmd.Context(), ss, w)
			if err != nil {
				return err
			}

			res := make([]scoredSupplier, 0, len(scores))
			vw := view{
				title:   "Sustainability scores",
				headers: []string{"ID", "Supplier", "Reported", "Computed", "Carbon", "Certs", "Recycling", "Policies", "Waste"},
			}
			for i, sc := range scores {
				res = append(res, scoredSupplier{
					SupplierID:    sc.SupplierID,
					SupplierName:  sc.SupplierName,
					ReportedScore: ss[i].ReportedScore,
					Score:         sc.Score,
				})
				reported := "-"
				if ss[i].ReportedScore != nil {
					reported = format.Float(*ss[i].ReportedScore, 1)
				}
				b := sc.Score.Breakdown
				vw.rows = append(vw.rows, []string{
					sc.SupplierID,
					sc.SupplierName,
					reported,
					format.Score(sc.Score.Total),
					format.Score(b.Carbon),
					format.Score(b.Certifications),
					format.Score(b.Recycling),
					format.Score(b.Policies),
					format.Score(b.WasteManagement),
				})
			}
			return a.render(cmd, res, vw)
		},
	}
	cmd.Flags().StringArrayVar(&weightPairs, "weight", nil, "component weight as key=value (carbon, cert, recycling, policy, waste)")
	return cmd
}

func newBenchmarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark <supplier-id>",
		Short: "Place a supplier within its industry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.supplier(args[0])
			if err != nil {
				return err
			}
			res := a.scorer.Benchmark(s)

			vw := keyValues(s.Name+" vs "+res.Industry, "Industry", res.Industry)
			if !res.Available {
				vw.rows = append(vw.rows, []string{"Comparison", res.Comparison})
				return a.render(cmd, res, vw)
			}
			vw.rows = append(vw.rows,
				[]string{"Supplier score", format.Score(res.SupplierScore)},
				[]string{"Industry average", format.Score(res.IndustryAverage)},
				[]string{"Top quartile", format.Score(res.TopQuartile)},
				[]string{"Percentile", res.Percentile},
				[]string{"Gap to top quartile", format.Score(res.Gap)},
			)
			return a.render(cmd, res, vw)
		},
	}
}

func newImproveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "improve <supplier-id>",
		Short: "Suggest improvements for a supplier's weakest score components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.supplier(args[0])
			if err != nil {
				return err
			}
			res := a.scorer.ImprovementRecommendations(s)

			vw := view{
				title:   "Improvements for " + s.Name,
				headers: []string{"Area", "Priority", "Suggestion", "Impact"},
			}
			for _, imp := range res {
				vw.rows = append(vw.rows, []string{imp.Area, string(imp.Priority), imp.Suggestion, imp.Impact})
			}
			return a.render(cmd, res, vw)
		},
	}
}

func newTrendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trend <snapshots.json>",
		Short: "Score dated supplier snapshots and report the trend",
		Long: `Score a JSON array of {"date": ..., "supplier": {...}} snapshots in file
order and compare the last score with the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading snapshots: %w", err)
			}
			var history []scoring.Snapshot
			if err := json.Unmarshal(raw, &history); err != nil {
				return fmt.Errorf("decoding snapshots %s: %w", args[0], err)
			}
			for i, h := range history {
				if err := h.Supplier.Validate(); err != nil {
					return fmt.Errorf("snapshot %d: %w", i, err)
				}
			}
			res := a.scorer.ScoreTrend(history)

			vw := view{
				title:   fmt.Sprintf("Trend: %s (%+.2f)", res.Description, res.Change),
				headers: []string{"Date", "Score"},
			}
			for _, s := range res.Scores {
				vw.rows = append(vw.rows, []string{s.Date, format.Score(s.Score)})
			}
			return a.render(cmd, res, vw)
		},
	}
}
