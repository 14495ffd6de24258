package cli

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/recommend"
	"github.com/rshade/greenprocure/internal/scoring"
	"github.com/rshade/greenprocure/internal/supplier"
)

var (
	errUnknownSupplier = errors.New("unknown supplier")
	errUnknownProduct  = errors.New("unknown product")
	errBadKeyValue     = errors.New("expected key=value")
	errNoCarbonBand    = errors.New("no carbon band for category")
)

var priorityKeys = []string{
	recommend.PriorityCarbon,
	recommend.PriorityRecycling,
	recommend.PriorityCertifications,
	recommend.PriorityPolicies,
	recommend.PriorityRenewable,
}

var weightKeys = []string{"carbon", "cert", "recycling", "policy", "waste"}

// parseKeyValues parses key=value pairs with numeric values. Keys must be in
// allowed; later pairs override earlier ones.
func parseKeyValues(pairs []string, allowed []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", errBadKeyValue, p)
		}
		if !slices.Contains(allowed, k) {
			return nil, fmt.Errorf("unknown key %q (accepted: %s)", k, strings.Join(allowed, ", "))
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

// requestFlags are the procurement request flags shared by recommend,
// allocate and advise.
type requestFlags struct {
	category   string
	region     string
	minScore   float64
	maxRisk    string
	priorities []string
	budget     float64
	awarded    []string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.category, "category", "", "product category, e.g. \"Office Supplies\"")
	fs.StringVar(&f.region, "region", "", "only consider suppliers in this region")
	fs.Float64Var(&f.minScore, "min-score", 0, "minimum supplier-reported sustainability score (0-10)")
	fs.StringVar(&f.maxRisk, "max-risk", "", "maximum risk level: low, medium or high")
	fs.StringArrayVar(&f.priorities, "priority", nil,
		"sustainability priority weight as key=value (keys: "+strings.Join(priorityKeys, ", ")+")")
	fs.Float64Var(&f.budget, "budget", 0, "budget carried with the request")
	fs.StringSliceVar(&f.awarded, "awarded", nil, "supplier IDs previously awarded by this buyer")
	addQuantityFlag(cmd)
}

func addQuantityFlag(cmd *cobra.Command) {
	cmd.Flags().Float64("quantity", 0, "order quantity in units (default from config, 1000)")
}

// quantity returns --quantity when set, else the configured default.
func (a *app) quantity(cmd *cobra.Command) (float64, error) {
	if cmd.Flags().Changed("quantity") {
		q, err := cmd.Flags().GetFloat64("quantity")
		if err != nil {
			return 0, err
		}
		if q < 0 {
			return 0, fmt.Errorf("quantity %v must not be negative", q)
		}
		return q, nil
	}
	return a.cfg.Defaults.Quantity, nil
}

// requirements builds and validates a request from flags.
func (a *app) requirements(cmd *cobra.Command, f *requestFlags) (supplier.Requirements, error) {
	qty, err := a.quantity(cmd)
	if err != nil {
		return supplier.Requirements{}, err
	}
	prio, err := parseKeyValues(f.priorities, priorityKeys)
	if err != nil {
		return supplier.Requirements{}, fmt.Errorf("--priority: %w", err)
	}

	req := supplier.Requirements{
		Category:             f.category,
		Quantity:             qty,
		Budget:               f.budget,
		GeographicPreference: supplier.Region(f.region),
		MaxRiskLevel:         supplier.RiskLevel(strings.ToLower(f.maxRisk)),
	}
	if len(prio) > 0 {
		req.SustainabilityPriorities = prio
	}
	if cmd.Flags().Changed("min-score") {
		req.MinSustainabilityScore = supplier.Float(f.minScore)
	}
	if err := req.Validate(); err != nil {
		return supplier.Requirements{}, err
	}
	return req, nil
}

func (f *requestFlags) history() []supplier.HistoryEntry {
	out := make([]supplier.HistoryEntry, 0, len(f.awarded))
	for _, id := range f.awarded {
		out = append(out, supplier.HistoryEntry{SupplierID: id})
	}
	return out
}

// weights returns nil when no --weight was given, else the default weights
// with the given overrides applied.
func (a *app) weights(pairs []string) (*scoring.Weights, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	kv, err := parseKeyValues(pairs, weightKeys)
	if err != nil {
		return nil, fmt.Errorf("--weight: %w", err)
	}
	w := a.scorer.DefaultWeights()
	for k, v := range kv {
		if v < 0 {
			return nil, fmt.Errorf("--weight: %s must not be negative", k)
		}
		switch k {
		case "carbon":
			w.Carbon = v
		case "cert":
			w.Cert = v
		case "recycling":
			w.Recycling = v
		case "policy":
			w.Policy = v
		case "waste":
			w.Waste = v
		}
	}
	return &w, nil
}

// suppliers resolves IDs against the dataset; no IDs selects every supplier.
func (a *app) suppliers(ids []string) ([]supplier.Supplier, error) {
	if len(ids) == 0 {
		return a.data.Suppliers(), nil
	}
	found, missing := a.data.SuppliersByID(ids...)
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", errUnknownSupplier, strings.Join(missing, ", "))
	}
	return found, nil
}

func (a *app) supplier(id string) (supplier.Supplier, error) {
	s, ok := a.data.Supplier(id)
	if !ok {
		return supplier.Supplier{}, fmt.Errorf("%w: %s", errUnknownSupplier, id)
	}
	return s, nil
}
