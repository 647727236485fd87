package contract

import (
	"log/slog"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Missing:   string(schema.ZeroMissing),
		ScoreMode: string(schema.RawScore),
		Output:    string(schema.TextOut),
		Format:    string(schema.XLSXExport),
		Precision: DefaultPrecision,
		Limit:     DefaultResultLimit,
		Color:     "yes",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func ptr(v float64) *float64 { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name: "valid minimal config uses default criteria",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.DefaultCriteria(), cfg.Criteria)
				assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
				assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
				assert.True(t, cfg.UseColors)
			},
		},
		{
			name: "custom criteria from config file",
			mutate: func(in *ConfigRawInput) {
				in.Criteria = []CriterionRaw{
					{Name: "speed", Weight: ptr(2)},
					{Name: "accuracy", Weight: ptr(-1), MaxScore: ptr(10)},
				}
			},
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Criteria, 2)
				assert.Equal(t, schema.Criterion{Name: "speed", Weight: 2, MaxScore: 100}, cfg.Criteria[0])
				assert.Equal(t, schema.Criterion{Name: "accuracy", Weight: -1, MaxScore: 10}, cfg.Criteria[1])
			},
		},
		{
			name:        "criterion without weight",
			mutate:      func(in *ConfigRawInput) { in.Criteria = []CriterionRaw{{Name: "speed"}} },
			expectError: true,
		},
		{
			name: "duplicate criteria",
			mutate: func(in *ConfigRawInput) {
				in.Criteria = []CriterionRaw{{Name: "a", Weight: ptr(1)}, {Name: "a", Weight: ptr(1)}}
			},
			expectError: true,
		},
		{
			name:   "weight edits are split but not parsed",
			mutate: func(in *ConfigRawInput) { in.Weight = []string{"quality = 0.5", "timeliness=abc"} },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []WeightEdit{{Name: "quality", Raw: "0.5"}, {Name: "timeliness", Raw: "abc"}}, cfg.WeightEdits)
			},
		},
		{
			name:        "weight edit without equals",
			mutate:      func(in *ConfigRawInput) { in.Weight = []string{"quality"} },
			expectError: true,
		},
		{
			name:   "manual entries",
			mutate: func(in *ConfigRawInput) { in.Entry = []string{"name=A, productivity=80,quality=90"} },
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Entries, 1)
				assert.Equal(t, map[string]string{"name": "A", "productivity": "80", "quality": "90"}, cfg.Entries[0])
			},
		},
		{
			name: "inputs merge flags before positional args",
			mutate: func(in *ConfigRawInput) {
				in.Input = []string{"a.csv"}
				in.Args = []string{"b.xlsx", " "}
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a.csv", "b.xlsx"}, cfg.Inputs)
			},
		},
		{
			name:   "select accepts comma lists",
			mutate: func(in *ConfigRawInput) { in.Select = []string{"A,B", "C"} },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"A", "B", "C"}, cfg.Select)
			},
		},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid format", mutate: func(in *ConfigRawInput) { in.Format = "docx" }, expectError: true},
		{name: "invalid score mode", mutate: func(in *ConfigRawInput) { in.ScoreMode = "avg" }, expectError: true},
		{name: "invalid missing policy", mutate: func(in *ConfigRawInput) { in.Missing = "nan" }, expectError: true},
		{name: "invalid limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid precision", mutate: func(in *ConfigRawInput) { in.Precision = 9 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "invalid log format", mutate: func(in *ConfigRawInput) { in.LogFormat = "xml" }, expectError: true},
		{name: "invalid history backend", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "redis" }, expectError: true},
		{
			name:        "mysql history requires connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgres history backend",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "PostgreSQL"
				in.HistoryDBConnect = "host=localhost dbname=scorecard"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.HistoryBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
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
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/scorecard"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "dbname=scorecard"))
}

func TestParseFieldList(t *testing.T) {
	fields, err := ParseFieldList("name=Team A,quality=90,,quality=95")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Team A", "quality": "95"}, fields)

	_, err = ParseFieldList("name")
	assert.Error(t, err)
	_, err = ParseFieldList(" , ")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Criteria: schema.DefaultCriteria(),
		Entries:  []map[string]string{{"name": "A"}},
		Inputs:   []string{"a.csv"},
	}
	clone := cfg.Clone()
	clone.Criteria[0].Weight = 5
	clone.Entries[0]["name"] = "B"
	clone.Inputs[0] = "b.csv"

	assert.InDelta(t, 0.4, cfg.Criteria[0].Weight, 1e-12)
	assert.Equal(t, "A", cfg.Entries[0]["name"])
	assert.Equal(t, "a.csv", cfg.Inputs[0])
}
