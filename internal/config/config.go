// Package config resolves greenprocure settings from defaults, an optional
// YAML file, GREENPROCURE_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GREENPROCURE_LOG_LEVEL.
const EnvPrefix = "GREENPROCURE"

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Log formats.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// Config keys, also used to bind flags.
const (
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyDataSuppliers     = "data.suppliers"
	KeyDataProducts      = "data.products"
	KeyTablesFactors     = "tables.factors"
	KeyTablesBenchmarks  = "tables.benchmarks"
	KeyDefaultsQuantity  = "defaults.quantity"
	KeyOutputFormat      = "output.format"
	KeyEngineParallelism = "engine.parallelism"
	KeyMetricsFile       = "metrics.file"
	KeyServeListen       = "serve.listen"
	KeyServeShutdown     = "serve.shutdown_timeout"
)

// Config is the resolved application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Data     DataConfig     `mapstructure:"data"`
	Tables   TablesConfig   `mapstructure:"tables"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Output   OutputConfig   `mapstructure:"output"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Serve    ServeConfig    `mapstructure:"serve"`

	// File is the config file that was read, or "" when none was found.
	File string `mapstructure:"-"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig points at caller-supplied datasets. Empty paths use the
// embedded reference data.
type DataConfig struct {
	Suppliers string `mapstructure:"suppliers"`
	Products  string `mapstructure:"products"`
}

// TablesConfig points at replacement reference tables. Empty paths use the
// embedded tables.
type TablesConfig struct {
	Factors    string `mapstructure:"factors"`
	Benchmarks string `mapstructure:"benchmarks"`
}

// DefaultsConfig holds request defaults.
type DefaultsConfig struct {
	Quantity float64 `mapstructure:"quantity"`
}

// OutputConfig selects the CLI renderer. An empty format means table on a
// terminal and JSON otherwise.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// EngineConfig tunes the recommendation engine.
type EngineConfig struct {
	// Parallelism bounds concurrent pool scoring; 0 uses GOMAXPROCS.
	Parallelism int `mapstructure:"parallelism"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Listen          string        `mapstructure:"listen"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SetDefaults registers every key with its default so environment
// variables are honoured on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, LogConsole)
	v.SetDefault(KeyDataSuppliers, "")
	v.SetDefault(KeyDataProducts, "")
	v.SetDefault(KeyTablesFactors, "")
	v.SetDefault(KeyTablesBenchmarks, "")
	v.SetDefault(KeyDefaultsQuantity, 1000.0)
	v.SetDefault(KeyOutputFormat, "")
	v.SetDefault(KeyEngineParallelism, 0)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyServeListen, ":9090")
	v.SetDefault(KeyServeShutdown, 10*time.Second)
}

// DefaultPath returns $HOME/.greenprocure/config.yaml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".greenprocure", "config.yaml")
}

// Load reads configuration into v and returns the resolved Config.
// An explicit path must exist; the default path is optional.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		file = DefaultPath()
		if file != "" {
			if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
				file = ""
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = file
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no command can act on.
func (c Config) Validate() error {
	var errs []error
	switch c.Output.Format {
	case "", OutputTable, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output.format %q: want %s or %s", c.Output.Format, OutputTable, OutputJSON))
	}
	switch c.Log.Format {
	case LogConsole, LogJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want %s or %s", c.Log.Format, LogConsole, LogJSON))
	}
	if c.Defaults.Quantity < 0 {
		errs = append(errs, fmt.Errorf("defaults.quantity %v must not be negative", c.Defaults.Quantity))
	}
	if c.Engine.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("engine.parallelism %d must not be negative", c.Engine.Parallelism))
	}
	if c.Serve.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("serve.shutdown_timeout %s must not be negative", c.Serve.ShutdownTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
