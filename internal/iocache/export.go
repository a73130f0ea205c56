package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/parquet"
)

// Suffixes appended to the export base path.
const (
	exportScoresSuffix  = ".partner_scores.parquet"
	exportMetricsSuffix = ".metric_scores.parquet"
	exportRunsSuffix    = ".rescore_runs.parquet"
)

// ExecuteStoreExport writes the scored dataset and run history to Parquet files
// named after outputFile, reporting progress to w.
func ExecuteStoreExport(w io.Writer, store contract.Store, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return contract.ErrStoreUnavailable
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalScoredRows == 0 && status.TotalRuns == 0 {
		return errors.New("no scored data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scored partners: %d\n", status.TotalScoredRows)
	_, _ = fmt.Fprintf(w, "Total rescore runs: %d\n", status.TotalRuns)

	rows, err := store.ListScoredRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve scored rows: %w", err)
	}
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve rescore runs: %w", err)
	}

	partnerScores := parquet.ConvertPartnerScores(rows)
	scoresFile := outputFile + exportScoresSuffix
	if err := parquet.WritePartnerScoresParquet(partnerScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write partner scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d partner scores to: %s\n", len(partnerScores), scoresFile)

	metricScores := parquet.ConvertMetricScores(rows)
	metricsFile := outputFile + exportMetricsSuffix
	if err := parquet.WriteMetricScoresParquet(metricScores, metricsFile); err != nil {
		return fmt.Errorf("failed to write metric scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d metric scores to: %s\n", len(metricScores), metricsFile)

	rescoreRuns := parquet.ConvertRescoreRuns(runs)
	runsFile := outputFile + exportRunsSuffix
	if err := parquet.WriteRescoreRunsParquet(rescoreRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write rescore runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d rescore runs to: %s\n", len(rescoreRuns), runsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	return nil
}
