package contract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/huangsam/scorecard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultPrecision   = 2
	DefaultAddr        = ":8080"
	DefaultMetricsAddr = ":9090"
)

// CriterionRaw holds one criterion definition from the YAML config file.
// Pointers distinguish an omitted field from an explicit zero.
type CriterionRaw struct {
	Name     string   `mapstructure:"name"`
	Weight   *float64 `mapstructure:"weight"`
	MaxScore *float64 `mapstructure:"max_score"`
}

// WeightEdit is a pending weight change expressed as "name=value".
// The value stays raw so the session applies its own parsing rules.
type WeightEdit struct {
	Name string
	Raw  string
}

// Config holds the runtime configuration for scoring and presentation.
// This struct remains the "final, validated" config.
type Config struct {
	Criteria    schema.Criteria
	WeightEdits []WeightEdit
	Entries     []map[string]string // Manual entries, one field map per entry
	Inputs      []string            // Files to import in order
	Missing     schema.MissingPolicy
	ScoreMode   schema.ScoreMode

	Output      schema.OutputMode
	OutputFile  string
	Precision   int
	ResultLimit int
	Detail      bool
	Explain     bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Select       []string
	ExportFormat schema.ExportFormat

	Addr        string
	MetricsAddr string
	NATSURL     string

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel  slog.Level
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Args []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Criteria         []CriterionRaw `mapstructure:"criteria"`
	Weight           []string       `mapstructure:"weight"`
	Entry            []string       `mapstructure:"entry"`
	Input            []string       `mapstructure:"input"`
	Missing          string         `mapstructure:"missing"`
	ScoreMode        string         `mapstructure:"score-mode"`
	Output           string         `mapstructure:"output"`
	OutputFile       string         `mapstructure:"output-file"`
	Precision        int            `mapstructure:"precision"`
	Limit            int            `mapstructure:"limit"`
	Detail           bool           `mapstructure:"detail"`
	Width            int            `mapstructure:"width"`
	Color            string         `mapstructure:"color"`
	HistoryBackend   string         `mapstructure:"history-backend"`
	HistoryDBConnect string         `mapstructure:"history-db-connect"`
	LogLevel         string         `mapstructure:"log-level"`
	LogFormat        string         `mapstructure:"log-format"`

	// --- Fields from dashboardCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from compareCmd.Flags() ---
	Select []string `mapstructure:"select"`

	// --- Fields from exportCmd.Flags() ---
	Format string `mapstructure:"format"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	MetricsAddr string `mapstructure:"metrics-addr"`
	NATSURL     string `mapstructure:"nats-url"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Criteria = c.Criteria.Clone()
	if c.WeightEdits != nil {
		clone.WeightEdits = append([]WeightEdit(nil), c.WeightEdits...)
	}
	if c.Entries != nil {
		clone.Entries = make([]map[string]string, len(c.Entries))
		for i, e := range c.Entries {
			fields := make(map[string]string, len(e))
			for k, v := range e {
				fields[k] = v
			}
			clone.Entries[i] = fields
		}
	}
	if c.Inputs != nil {
		clone.Inputs = append([]string(nil), c.Inputs...)
	}
	if c.Select != nil {
		clone.Select = append([]string(nil), c.Select...)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCriteria(cfg, input); err != nil {
		return err
	}
	if err := processWeightEdits(cfg, input); err != nil {
		return err
	}
	if err := processEntries(cfg, input); err != nil {
		return err
	}
	processInputs(cfg, input)
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
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
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

// validateHistoryConfig validates the run history backend configuration.
func validateHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.HistoryBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Addr = input.Addr
	cfg.MetricsAddr = input.MetricsAddr
	cfg.NATSURL = strings.TrimSpace(input.NATSURL)
	cfg.Select = splitList(input.Select)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision Validation ---
	if input.Precision < 0 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Output, Format, Mode and Policy Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml", input.Output)
	}

	cfg.ExportFormat = schema.ExportFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidExportFormats[cfg.ExportFormat]; !ok {
		return fmt.Errorf("invalid export format '%s'. must be xlsx, csv, pdf, json, parquet", input.Format)
	}

	cfg.ScoreMode = schema.ScoreMode(strings.ToLower(input.ScoreMode))
	if _, ok := schema.ValidScoreModes[cfg.ScoreMode]; !ok {
		return fmt.Errorf("invalid score mode '%s'. must be raw, normalized", input.ScoreMode)
	}

	cfg.Missing = schema.MissingPolicy(strings.ToLower(input.Missing))
	if _, ok := schema.ValidMissingPolicies[cfg.Missing]; !ok {
		return fmt.Errorf("invalid missing policy '%s'. must be zero, skip, reject", input.Missing)
	}

	// --- 4. Logging ---
	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level
	cfg.LogFormat = strings.ToLower(input.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format '%s'. must be text, json", input.LogFormat)
	}

	// --- 5. Backend Validation ---
	return validateHistoryConfig(cfg, input)
}

// processCriteria builds the criteria registry from the config file, or falls back to defaults.
func processCriteria(cfg *Config, input *ConfigRawInput) error {
	if len(input.Criteria) == 0 {
		cfg.Criteria = schema.DefaultCriteria()
		return nil
	}

	criteria := make(schema.Criteria, 0, len(input.Criteria))
	for i, raw := range input.Criteria {
		if raw.Weight == nil {
			return fmt.Errorf("criterion %d (%q) must define a weight", i+1, raw.Name)
		}
		maxScore := schema.DefaultMaxScore
		if raw.MaxScore != nil {
			maxScore = *raw.MaxScore
		}
		criteria = append(criteria, schema.Criterion{
			Name:     raw.Name,
			Weight:   *raw.Weight,
			MaxScore: maxScore,
		})
	}
	if err := criteria.Validate(); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}
	cfg.Criteria = criteria
	return nil
}

// processWeightEdits splits every "name=value" weight flag.
// Values are parsed later by the session so invalid input is reported the same way on every surface.
func processWeightEdits(cfg *Config, input *ConfigRawInput) error {
	cfg.WeightEdits = nil
	for _, w := range input.Weight {
		name, value, ok := strings.Cut(w, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid --weight '%s'. expected name=value", w)
		}
		cfg.WeightEdits = append(cfg.WeightEdits, WeightEdit{Name: name, Raw: strings.TrimSpace(value)})
	}
	return nil
}

// processEntries parses every manual entry flag into a field map.
func processEntries(cfg *Config, input *ConfigRawInput) error {
	cfg.Entries = nil
	for _, raw := range input.Entry {
		fields, err := ParseFieldList(raw)
		if err != nil {
			return fmt.Errorf("invalid --entry '%s': %w", raw, err)
		}
		cfg.Entries = append(cfg.Entries, fields)
	}
	return nil
}

// processInputs merges the --input flag with positional arguments, flags first.
func processInputs(cfg *Config, input *ConfigRawInput) {
	cfg.Inputs = nil
	for _, list := range [][]string{input.Input, input.Args} {
		for _, p := range list {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Inputs = append(cfg.Inputs, p)
			}
		}
	}
}

// ParseFieldList parses "key=value,key=value" into a map. Later keys win.
func ParseFieldList(raw string) (map[string]string, error) {
	fields := make(map[string]string)
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("field '%s' must be key=value", part)
		}
		fields[key] = strings.TrimSpace(value)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields provided")
	}
	return fields, nil
}

// splitList flattens comma separated values from repeated flags.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseLogLevel maps a level name onto slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", s)
	}
}

