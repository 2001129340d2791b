package contract

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/schema"
)

// Default values for configuration.
const (
	DefaultBeta        = 1.0
	DefaultGamma       = 0.95
	DefaultLogBase     = 2.0
	DefaultPersistence = 0.95
	DefaultCutoffs     = "1000"
	DefaultSeparator   = " "
	DefaultPrecision   = 4
	MaxPrecision       = 8
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for labelling and scoring.
// This struct is the "final, validated" config.
type Config struct {
	RelFile   string
	RelFormat schema.RelFormat
	Topic     string
	Inputs    []string
	Separator string
	Condensed bool

	// Label settings
	Truncate int // 0 disables truncation

	// Compute settings
	Grades      []float64
	Stops       []float64
	Cutoffs     []int
	Beta        float64
	Gamma       float64
	LogBase     float64
	Persistence float64
	Prefix      string
	Recall      bool
	Verbose     bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Workers    int
	UseColors  bool

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args and flag state, so no tag
	Inputs      []string
	TruncateSet bool

	// --- Fields from rootCmd.PersistentFlags() ---
	RelFile      string `mapstructure:"relfile"`
	RelFormat    string `mapstructure:"rel-format"`
	Topic        string `mapstructure:"topic"`
	Separator    string `mapstructure:"sep"`
	Condensed    bool   `mapstructure:"condensed"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Workers      int    `mapstructure:"workers"`
	Color        string `mapstructure:"color"`
	Verbose      bool   `mapstructure:"verbose"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`

	// --- Fields from labelCmd.Flags() ---
	Truncate   int  `mapstructure:"truncate"`
	EquivClass bool `mapstructure:"ec"`

	// --- Fields from computeCmd.Flags() ---
	Grades      string  `mapstructure:"grades"`
	Stops       string  `mapstructure:"stops"`
	Cutoffs     string  `mapstructure:"cutoffs"`
	Beta        float64 `mapstructure:"beta"`
	Gamma       float64 `mapstructure:"gamma"`
	LogBase     float64 `mapstructure:"logb"`
	Persistence float64 `mapstructure:"rbp"`
	Prefix      string  `mapstructure:"out"`
	Recall      bool    `mapstructure:"recall"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Inputs = slices.Clone(c.Inputs)
	clone.Grades = slices.Clone(c.Grades)
	clone.Stops = slices.Clone(c.Stops)
	clone.Cutoffs = slices.Clone(c.Cutoffs)
	return &clone
}

// MetricParams returns the scalars that configure the metric suite.
func (c *Config) MetricParams() algo.Params {
	return algo.Params{
		Grades:      c.Grades,
		Stops:       c.Stops,
		Beta:        c.Beta,
		Gamma:       c.Gamma,
		LogBase:     c.LogBase,
		Persistence: c.Persistence,
		Cutoffs:     c.Cutoffs,
		Condensed:   c.Condensed,
	}
}

// ConfigParams returns the scoring configuration as a flat map for run tracking.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"grades":    c.Grades,
		"stops":     c.Stops,
		"cutoffs":   c.Cutoffs,
		"beta":      c.Beta,
		"gamma":     c.Gamma,
		"logb":      c.LogBase,
		"rbp":       c.Persistence,
		"condensed": c.Condensed,
		"inputs":    c.Inputs,
	}
}

// ProcessAndValidate performs the parsing and validation shared by every
// command and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessLabelInputs validates the settings of the label command.
func ProcessLabelInputs(cfg *Config, input *ConfigRawInput) error {
	if cfg.RelFile == "" {
		return fmt.Errorf("a relevance assessment file is required (--relfile)")
	}
	if input.EquivClass {
		return fmt.Errorf("equivalence class mode has not been implemented")
	}
	if input.Truncate < 0 || (input.TruncateSet && input.Truncate == 0) {
		return fmt.Errorf("truncate must be greater than 0 (received %d)", input.Truncate)
	}
	cfg.Truncate = input.Truncate
	if len(cfg.Inputs) > 1 {
		return fmt.Errorf("label accepts at most one ranked list (received %d)", len(cfg.Inputs))
	}
	return nil
}

// ProcessComputeInputs parses the grade, stop and cutoff strings and checks
// the metric scalars. Checks that need the judgments run later in algo.Validate.
func ProcessComputeInputs(cfg *Config, input *ConfigRawInput) error {
	if cfg.RelFile == "" {
		return fmt.Errorf("a relevance assessment file is required (--relfile)")
	}
	if strings.TrimSpace(input.Grades) == "" {
		return fmt.Errorf("gain values are required (--grades, e.g. 1:2:3)")
	}

	grades, err := ParseFloatList(input.Grades, ":")
	if err != nil {
		return fmt.Errorf("invalid --grades: %w", err)
	}
	if err := algo.ValidateAscending("gain", grades); err != nil {
		return err
	}
	cfg.Grades = grades

	cfg.Stops = slices.Clone(grades)
	if strings.TrimSpace(input.Stops) != "" {
		stops, err := ParseFloatList(input.Stops, ":")
		if err != nil {
			return fmt.Errorf("invalid --stops: %w", err)
		}
		if err := algo.ValidateAscending("stop", stops); err != nil {
			return err
		}
		if len(stops) != len(grades) {
			return fmt.Errorf("%d stop values given for %d gain values", len(stops), len(grades))
		}
		cfg.Stops = stops
	}

	cutoffs, err := ParseCutoffs(input.Cutoffs)
	if err != nil {
		return fmt.Errorf("invalid --cutoffs: %w", err)
	}
	cfg.Cutoffs = cutoffs

	if input.Beta < 0 {
		return fmt.Errorf("beta must be positive (received %v)", input.Beta)
	}
	if input.Gamma < 0 || input.Gamma > 1 {
		return fmt.Errorf("gamma must range from 0 to 1 (received %v)", input.Gamma)
	}
	if input.LogBase < 0 || (input.LogBase > 0 && input.LogBase <= 1) {
		return fmt.Errorf("logb must be 0 (natural log) or greater than 1 (received %v)", input.LogBase)
	}
	if input.Persistence < 0 || input.Persistence > 1 {
		return fmt.Errorf("rbp must range from 0 to 1 (received %v)", input.Persistence)
	}
	cfg.Beta = input.Beta
	cfg.Gamma = input.Gamma
	cfg.LogBase = input.LogBase
	cfg.Persistence = input.Persistence
	cfg.Prefix = input.Prefix
	cfg.Recall = input.Recall
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if cfg.RunBackend == "" {
		cfg.RunBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// validateSimpleInputs processes and validates the fields shared by every command.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.RelFile = strings.TrimSpace(input.RelFile)
	cfg.RelFormat = schema.RelFormat(strings.ToLower(input.RelFormat))
	if cfg.RelFormat == "" {
		cfg.RelFormat = schema.NTCIRRel
	}
	if _, ok := schema.ValidRelFormats[cfg.RelFormat]; !ok {
		return fmt.Errorf("invalid rel format '%s'. must be ntcir, trec", input.RelFormat)
	}
	cfg.Topic = strings.TrimSpace(input.Topic)
	if cfg.RelFormat == schema.TRECRel && cfg.Topic == "" {
		return fmt.Errorf("--topic is required when reading trec relevance assessments")
	}
	cfg.Inputs = slices.Clone(input.Inputs)
	cfg.Condensed = input.Condensed
	cfg.OutputFile = input.OutputFile
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Separator = input.Separator
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, table, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// ParseFloatList parses a string like "1:2:3" into floats.
func ParseFloatList(s, sep string) ([]float64, error) {
	var values []float64
	for part := range strings.SplitSeq(s, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty value in '%s'", s)
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number '%s': %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseCutoffs parses a string like "10,1000" into positive ranks.
func ParseCutoffs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultCutoffs
	}
	var cutoffs []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		c, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid cutoff '%s': %w", part, err)
		}
		if c <= 0 {
			return nil, fmt.Errorf("cutoffs must be greater than 0 (received %d)", c)
		}
		cutoffs = append(cutoffs, c)
	}
	return cutoffs, nil
}
