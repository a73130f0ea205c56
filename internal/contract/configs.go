package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/partnerscore/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 10000
	DefaultPrecision   = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for partnerscore.
// This struct remains the "final, validated" config.
type Config struct {
	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	// Quadrants is the validated classification configuration, sorted by ID.
	Quadrants schema.QuadrantConfig
}

// RuleRawInput is one quadrant predicate from the YAML config file.
type RuleRawInput struct {
	Metric string `mapstructure:"metric"`
	Level  string `mapstructure:"level"`
}

// QuadrantRawInput is one quadrant definition from the YAML config file.
type QuadrantRawInput struct {
	ID    int            `mapstructure:"id"`
	Name  string         `mapstructure:"name"`
	Rules []RuleRawInput `mapstructure:"rules"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Quadrants from config file ---
	Quadrants []QuadrantRawInput `mapstructure:"quadrants"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Quadrants != nil {
		clone.Quadrants = make(schema.QuadrantConfig, len(c.Quadrants))
		for i, q := range c.Quadrants {
			q.Predicates = append([]schema.Predicate(nil), q.Predicates...)
			clone.Quadrants[i] = q
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return processQuadrants(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for the host:port address")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
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

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.Backend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect)
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// processQuadrants converts the raw quadrant input into the final cfg.Quadrants.
// Without any configured quadrant the built-in defaults are used.
func processQuadrants(cfg *Config, input *ConfigRawInput) error {
	if len(input.Quadrants) == 0 {
		cfg.Quadrants = schema.DefaultQuadrants()
		return nil
	}

	quads, err := ParseQuadrants(input.Quadrants)
	if err != nil {
		return err
	}
	cfg.Quadrants = quads
	return nil
}

// ParseQuadrants validates raw quadrant definitions and returns them sorted by ID.
// Metric keys may be given as catalog keys or display names; unknown keys are kept
// as-is and later treated as vacuous predicates.
func ParseQuadrants(raw []QuadrantRawInput) (schema.QuadrantConfig, error) {
	seen := make(map[int]bool, len(raw))
	quads := make(schema.QuadrantConfig, 0, len(raw))
	for _, rq := range raw {
		if rq.ID <= 0 {
			return nil, fmt.Errorf("quadrant id must be positive (received %d)", rq.ID)
		}
		if seen[rq.ID] {
			return nil, fmt.Errorf("duplicate quadrant id %d", rq.ID)
		}
		seen[rq.ID] = true

		name := strings.TrimSpace(rq.Name)
		if name == "" {
			name = fmt.Sprintf("Quadrant %d", rq.ID)
		}
		quad := schema.Quadrant{ID: rq.ID, Name: name}
		for _, rule := range rq.Rules {
			level := schema.Level(strings.ToLower(strings.TrimSpace(rule.Level)))
			if _, ok := schema.ValidLevels[level]; !ok {
				return nil, fmt.Errorf("quadrant %d: invalid level '%s'. must be high, mid, low, any", rq.ID, rule.Level)
			}
			key := strings.TrimSpace(rule.Metric)
			if resolved, ok := schema.ResolveMetricKey(key); ok {
				key = resolved
			}
			quad.Predicates = append(quad.Predicates, schema.Predicate{MetricKey: key, Level: level})
		}
		quads = append(quads, quad)
	}

	if !seen[schema.LongTailQuadrantID] {
		quads = append(quads, schema.Quadrant{ID: schema.LongTailQuadrantID, Name: schema.LongTailQuadrantName})
	}
	return quads.Sorted(), nil
}
