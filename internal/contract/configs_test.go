package contract

import (
	"testing"

	"github.com/huangsam/irmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() *ConfigRawInput {
	return &ConfigRawInput{
		RelFile:     "qrels.txt",
		Separator:   " ",
		Output:      "text",
		Precision:   4,
		Workers:     2,
		Color:       "yes",
		RunBackend:  "none",
		Grades:      "1:2:3",
		Cutoffs:     "10,1000",
		Beta:        1,
		Gamma:       0.95,
		LogBase:     2,
		Persistence: 0.95,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "uppercase output", mutate: func(in *ConfigRawInput) { in.Output = "JSON" }},
		{name: "sqlite backend", mutate: func(in *ConfigRawInput) { in.RunBackend = "sqlite" }},
		{name: "empty backend defaults to none", mutate: func(in *ConfigRawInput) { in.RunBackend = "" }},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision (zero)", mutate: func(in *ConfigRawInput) { in.Precision = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 9 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.RunBackend = "oracle" }, expectError: true},
		{
			name: "mysql without connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = "mysql"
			},
			expectError: true,
		},
		{
			name: "postgresql with connection string",
			mutate: func(in *ConfigRawInput) {
				in.RunBackend = "postgresql"
				in.RunDBConnect = "host=localhost user=postgres dbname=irmetrics"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(input)
			cfg := &Config{}

			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "qrels.txt", cfg.RelFile)
			assert.NotEmpty(t, cfg.RunBackend)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := baseInput()
	input.Separator = ""
	input.RunBackend = ""
	cfg := &Config{}

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, DefaultSeparator, cfg.Separator)
	assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
}

func TestProcessLabelInputs(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ConfigRawInput)
		errMsg   string
		truncate int
	}{
		{name: "no truncation", mutate: func(*ConfigRawInput) {}},
		{
			name:     "explicit truncation",
			mutate:   func(in *ConfigRawInput) { in.Truncate = 5; in.TruncateSet = true },
			truncate: 5,
		},
		{
			name:   "explicit zero truncation",
			mutate: func(in *ConfigRawInput) { in.Truncate = 0; in.TruncateSet = true },
			errMsg: "truncate must be greater than 0",
		},
		{
			name:   "negative truncation",
			mutate: func(in *ConfigRawInput) { in.Truncate = -1 },
			errMsg: "truncate must be greater than 0",
		},
		{
			name:   "equivalence classes",
			mutate: func(in *ConfigRawInput) { in.EquivClass = true },
			errMsg: "equivalence class mode has not been implemented",
		},
		{
			name:   "missing relfile",
			mutate: func(in *ConfigRawInput) { in.RelFile = "" },
			errMsg: "relevance assessment file is required",
		},
		{
			name:   "two ranked lists",
			mutate: func(in *ConfigRawInput) { in.Inputs = []string{"a", "b"} },
			errMsg: "at most one ranked list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(input)
			cfg := &Config{}
			require.NoError(t, ProcessAndValidate(cfg, input))

			err := ProcessLabelInputs(cfg, input)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.truncate, cfg.Truncate)
		})
	}
}

func TestProcessComputeInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
		errMsg string
		check  func(t *testing.T, cfg *Config)
	}{
		{
			name: "stops default to grades",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []float64{1, 2, 3}, cfg.Grades)
				assert.Equal(t, []float64{1, 2, 3}, cfg.Stops)
				assert.Equal(t, []int{10, 1000}, cfg.Cutoffs)
			},
		},
		{
			name:   "explicit stops",
			mutate: func(in *ConfigRawInput) { in.Stops = "1:1:4" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []float64{1, 1, 4}, cfg.Stops)
			},
		},
		{
			name:   "default cutoff",
			mutate: func(in *ConfigRawInput) { in.Cutoffs = "" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []int{1000}, cfg.Cutoffs)
			},
		},
		{
			name:   "natural log",
			mutate: func(in *ConfigRawInput) { in.LogBase = 0 },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.0, cfg.LogBase)
			},
		},
		{name: "missing grades", mutate: func(in *ConfigRawInput) { in.Grades = "" }, errMsg: "gain values are required"},
		{name: "non numeric grade", mutate: func(in *ConfigRawInput) { in.Grades = "1:x" }, errMsg: "invalid --grades"},
		{name: "descending grades", mutate: func(in *ConfigRawInput) { in.Grades = "3:2:1" }, errMsg: "ascending order"},
		{name: "negative grade", mutate: func(in *ConfigRawInput) { in.Grades = "-1:2" }, errMsg: "must be positive"},
		{name: "descending stops", mutate: func(in *ConfigRawInput) { in.Stops = "3:2:1" }, errMsg: "ascending order"},
		{name: "stop count mismatch", mutate: func(in *ConfigRawInput) { in.Stops = "1:2" }, errMsg: "2 stop values given for 3 gain values"},
		{name: "zero cutoff", mutate: func(in *ConfigRawInput) { in.Cutoffs = "10,0" }, errMsg: "cutoffs must be greater than 0"},
		{name: "bad cutoff", mutate: func(in *ConfigRawInput) { in.Cutoffs = "ten" }, errMsg: "invalid cutoff"},
		{name: "negative beta", mutate: func(in *ConfigRawInput) { in.Beta = -1 }, errMsg: "beta"},
		{name: "gamma out of range", mutate: func(in *ConfigRawInput) { in.Gamma = 1.1 }, errMsg: "gamma"},
		{name: "log base one", mutate: func(in *ConfigRawInput) { in.LogBase = 1 }, errMsg: "logb"},
		{name: "rbp out of range", mutate: func(in *ConfigRawInput) { in.Persistence = 2 }, errMsg: "rbp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			require.NoError(t, ProcessAndValidate(cfg, input))

			err := ProcessComputeInputs(cfg, input)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/irmetrics", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/irmetrics", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=irmetrics", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=irmetrics", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Grades: []float64{1, 2}, Cutoffs: []int{10}, Inputs: []string{"a"}}
	clone := cfg.Clone()
	clone.Grades[0] = 9
	clone.Cutoffs[0] = 99
	clone.Inputs[0] = "b"

	assert.Equal(t, []float64{1, 2}, cfg.Grades)
	assert.Equal(t, []int{10}, cfg.Cutoffs)
	assert.Equal(t, []string{"a"}, cfg.Inputs)
}

func TestMetricParams(t *testing.T) {
	input := baseInput()
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	require.NoError(t, ProcessComputeInputs(cfg, input))

	p := cfg.MetricParams()
	assert.Equal(t, cfg.Grades, p.Grades)
	assert.Equal(t, 0.95, p.Persistence)
	assert.Equal(t, 2.0, p.LogBase)
	assert.Contains(t, cfg.ConfigParams(), "cutoffs")
}
