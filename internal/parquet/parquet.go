// Package parquet provides data structures and functions for exporting partnerscore
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/partnerscore/schema"
	"github.com/parquet-go/parquet-go"
)

// RescoreRun represents a single re-score run.
// This struct maps to the partnerscore_rescore_runs database table.
type RescoreRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	PartnerCount int32  `parquet:"partner_count,snappy"`
	MetricCount  int32  `parquet:"metric_count,snappy"`
	Trigger      string `parquet:"trigger,snappy,dict"`
}

// PartnerScore is the summary score of one partner.
type PartnerScore struct {
	PartnerName string   `parquet:"partner_name,snappy"`
	Year        int32    `parquet:"year,snappy"`
	Tier        *string  `parquet:"tier,optional,snappy,dict"`
	DiscountPct *float64 `parquet:"discount_pct,optional,snappy"`
	City        *string  `parquet:"city,optional,snappy"`
	Country     *string  `parquet:"country,optional,snappy,dict"`
	TotalScore  int32    `parquet:"total_score,snappy"`
	MaxPossible int32    `parquet:"max_possible,snappy"`
	Percentage  float64  `parquet:"percentage,snappy"`

	// Label is the plain-text tier derived from Percentage
	Label string `parquet:"label,snappy,dict"`
}

// MetricScore is one metric score of one partner in long format.
type MetricScore struct {
	PartnerName string `parquet:"partner_name,snappy"`
	MetricKey   string `parquet:"metric_key,snappy,dict"`
	Category    string `parquet:"category,snappy,dict"`

	// Score is 0 when the metric was enabled but could not be scored
	Score int32 `parquet:"score,snappy"`
}

// writeParquet writes a slice of rows to a Parquet file with a schema inferred from T.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRescoreRunsParquet writes re-score runs to a Parquet file.
func WriteRescoreRunsParquet(data []RescoreRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePartnerScoresParquet writes partner summary scores to a Parquet file.
func WritePartnerScoresParquet(data []PartnerScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteMetricScoresParquet writes per-metric scores to a Parquet file.
func WriteMetricScoresParquet(data []MetricScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRescoreRuns converts schema.RescoreRun to RescoreRun for Parquet export.
func ConvertRescoreRuns(runs []schema.RescoreRun) []RescoreRun {
	result := make([]RescoreRun, len(runs))
	for i, run := range runs {
		result[i] = RescoreRun{
			RunID:         run.ID,
			RunUUID:       run.UUID,
			StartTime:     run.StartTime,
			EndTime:       run.EndTime,
			RunDurationMs: run.DurationMs,
			PartnerCount:  int32(run.PartnerCount),
			MetricCount:   int32(run.MetricCount),
			Trigger:       string(run.Trigger),
		}
	}
	return result
}

// ConvertPartnerScores converts scored rows to PartnerScore for Parquet export.
func ConvertPartnerScores(rows []schema.ScoredRow) []PartnerScore {
	result := make([]PartnerScore, len(rows))
	for i, row := range rows {
		result[i] = PartnerScore{
			PartnerName: row.Name,
			Year:        int32(row.Year),
			Tier:        optionalString(row.Tier),
			City:        optionalString(row.City),
			Country:     optionalString(row.Country),
			TotalScore:  int32(row.TotalScore),
			MaxPossible: int32(row.MaxPossible),
			Percentage:  row.Percentage,
			Label:       schema.GetPlainLabel(row.Percentage),
		}
		if row.DiscountPct != 0 {
			d := row.DiscountPct
			result[i].DiscountPct = &d
		}
	}
	return result
}

// ConvertMetricScores flattens scored rows into one MetricScore per enabled metric.
// Metrics are emitted in catalog order for each partner.
func ConvertMetricScores(rows []schema.ScoredRow) []MetricScore {
	var result []MetricScore
	for _, row := range rows {
		for _, key := range scoreKeys(row) {
			category := ""
			if m, ok := schema.MetricByKey(key); ok {
				category = string(m.Category)
			}
			result = append(result, MetricScore{
				PartnerName: row.Name,
				MetricKey:   key,
				Category:    category,
				Score:       int32(row.Scores[key]),
			})
		}
	}
	return result
}

// scoreKeys returns the scored metric keys of a row in catalog order.
func scoreKeys(row schema.ScoredRow) []string {
	c := make(schema.Criteria, len(row.Scores))
	for key := range row.Scores {
		c[key] = schema.Criterion{}
	}
	return c.Keys()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
