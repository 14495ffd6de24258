// Package cli implements the greenprocure command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rshade/greenprocure/internal/benchmark"
	"github.com/rshade/greenprocure/internal/carbon"
	"github.com/rshade/greenprocure/internal/config"
	"github.com/rshade/greenprocure/internal/dataset"
	"github.com/rshade/greenprocure/internal/metrics"
	"github.com/rshade/greenprocure/internal/recommend"
	"github.com/rshade/greenprocure/internal/scoring"
)

// app holds everything a command needs once configuration is resolved.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	logger  zerolog.Logger
	data    *dataset.Dataset
	carbon  *carbon.Calculator
	scorer  *scoring.Calculator
	engine  *recommend.Engine
	metrics *metrics.Registry
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}
	var (
		cfgFile string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "greenprocure",
		Short: "Sustainable procurement scoring and carbon accounting",
		Long: `greenprocure scores suppliers on sustainability, estimates order carbon
footprints and recommends, allocates and audits supplier rosters.

Reference data (suppliers, products, emission factors and industry benchmarks)
is embedded; every table can be replaced with a file of the same shape.`,
		Version:       version,
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, cfgFile, debug)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.flushMetrics()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.greenprocure/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.String("suppliers", "", "supplier dataset JSON file (default embedded reference data)")
	pf.String("products", "", "product dataset JSON file (default embedded reference data)")
	pf.String("factors", "", "emission factor table YAML file (default embedded table)")
	pf.String("benchmarks", "", "industry benchmark table YAML file (default embedded table)")
	pf.StringP("output", "o", "", "output format: table or json (default table on a terminal, json otherwise)")
	pf.String("metrics-file", "", "write Prometheus metrics to this file after the command")
	pf.Int("parallelism", 0, "maximum concurrent scoring workers (0 = GOMAXPROCS)")

	for key, flag := range map[string]string{
		config.KeyDataSuppliers:     "suppliers",
		config.KeyDataProducts:      "products",
		config.KeyTablesFactors:     "factors",
		config.KeyTablesBenchmarks:  "benchmarks",
		config.KeyOutputFormat:      "output",
		config.KeyMetricsFile:       "metrics-file",
		config.KeyEngineParallelism: "parallelism",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.AddCommand(
		newFootprintCmd(a),
		newSavingsCmd(a),
		newTransportCmd(a),
		newLifecycleCmd(a),
		newMaterialCmd(a),
		newOptimizeCmd(a),
		newScenarioCmd(a),
		newScoreCmd(a),
		newBenchmarkCmd(a),
		newImproveCmd(a),
		newTrendCmd(a),
		newRecommendCmd(a),
		newAllocateCmd(a),
		newAdviseCmd(a),
		newTablesCmd(a),
		newServeCmd(a),
	)
	return cmd
}

const rootExample = `  # Rank suppliers for an office supplies order
  greenprocure recommend --category "Office Supplies" --quantity 5000

  # Weight carbon over everything else
  greenprocure recommend --category Packaging --priority carbonFootprint=60 --priority recycling=40

  # Split an order across the best suppliers
  greenprocure allocate --category "Office Supplies" --quantity 1000

  # Compare freight modes for one supplier
  greenprocure transport 3

  # Score a custom dataset and keep metrics
  greenprocure score --suppliers suppliers.json --metrics-file greenprocure.prom`

// setup resolves configuration, builds the logger and loads every table.
func (a *app) setup(cmd *cobra.Command, cfgFile string, debug bool) error {
	cfg, err := config.Load(a.v, cfgFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	carbon.SetLogger(a.logger)
	benchmark.SetLogger(a.logger)

	factors, err := config.LoadFactors(cfg.Tables.Factors)
	if err != nil {
		return fmt.Errorf("emission factors: %w", err)
	}
	table, err := config.LoadBenchmarks(cfg.Tables.Benchmarks)
	if err != nil {
		return fmt.Errorf("industry benchmarks: %w", err)
	}
	data, err := dataset.LoadFiles(cfg.Data.Suppliers, cfg.Data.Products, a.logger)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	a.data = data
	a.carbon = carbon.New(factors)
	a.scorer = scoring.New(table)
	a.metrics = metrics.NewRegistry()
	a.engine = recommend.NewEngine(data.Suppliers(), a.scorer, a.carbon,
		recommend.WithLogger(a.logger),
		recommend.WithObserver(a.metrics),
		recommend.WithParallelism(cfg.Engine.Parallelism),
	)

	a.logger.Debug().
		Str("config_file", cfg.File).
		Str("factors_version", factors.Metadata().Version).
		Str("benchmarks_version", table.Metadata().Version).
		Int("suppliers", len(data.Suppliers())).
		Int("products", len(data.Products())).
		Msg("greenprocure initialized")
	return nil
}

func (a *app) flushMetrics() error {
	if a.metrics == nil || a.cfg.Metrics.File == "" {
		return nil
	}
	if err := a.metrics.WriteToTextfile(a.cfg.Metrics.File); err != nil {
		return err
	}
	a.logger.Debug().Str("path", a.cfg.Metrics.File).Msg("metrics written")
	return nil
}
