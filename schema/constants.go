package schema

// Custom string types for type safety.
type (
	// MetricType distinguishes numeric range metrics from descriptor metrics.
	MetricType string

	// Direction tells whether larger raw values are better or worse.
	Direction string

	// Unit is the display unit of a quantitative metric.
	Unit string

	// Level is a coarse score band used by quadrant predicates.
	Level string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// RunTrigger records why a re-score happened.
	RunTrigger string
)

// Score is a discrete rubric score. Unscored is the zero value.
type Score int

// All score values.
const (
	Unscored Score = 0
	MinScore Score = 1
	MaxScore Score = 5
)

// NumLevels is the number of score levels in the rubric.
const NumLevels = 5

// All metric types supported.
const (
	Quantitative MetricType = "quantitative"
	Qualitative  MetricType = "qualitative"
)

// All directions supported.
const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// All units supported.
const (
	UnitNone     Unit = ""
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
	UnitCount    Unit = "count"
	UnitCerts    Unit = "certs"
	UnitDays     Unit = "days"
)

// All quadrant predicate levels supported.
const (
	LevelHigh Level = "high"
	LevelMid  Level = "mid"
	LevelLow  Level = "low"
	LevelAny  Level = "any"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All run triggers recorded in history.
const (
	TriggerManual    RunTrigger = "manual"
	TriggerCriteria  RunTrigger = "criteria"
	TriggerBenchmark RunTrigger = "benchmark"
	TriggerPartner   RunTrigger = "partner"
)

// RawFieldPrefix prefixes metric keys in dict-form partner records.
const RawFieldPrefix = "raw_"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLevels lists all valid quadrant predicate levels.
var ValidLevels = map[Level]struct{}{
	LevelHigh: {},
	LevelMid:  {},
	LevelLow:  {},
	LevelAny:  {},
}

// IntegerUnits are rendered without decimals when benchmark bounds are formatted.
var IntegerUnits = map[Unit]struct{}{
	UnitCurrency: {},
	UnitCount:    {},
	UnitCerts:    {},
	UnitDays:     {},
}

// Valid reports whether s is inside the 1..5 rubric range.
func (s Score) Valid() bool {
	return s >= MinScore && s <= MaxScore
}

// AllScores returns the rubric scores in ascending order.
func AllScores() []Score {
	return []Score{1, 2, 3, 4, 5}
}
