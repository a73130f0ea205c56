package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintBenchmark outputs the ranges a benchmark pass produced.
// A dry run is labeled so nobody mistakes the preview for saved criteria.
func PrintBenchmark(summary schema.BenchmarkSummary, changes []schema.BenchmarkChange, dryRun bool, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary schema.BenchmarkSummary  `json:"summary"`
				Changes []schema.BenchmarkChange `json:"changes"`
				DryRun  bool                     `json:"dry_run"`
			}{summary, changes, dryRun})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkCSV(w, changes)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkTable(w, summary, changes, dryRun, cfg)
		}, "Wrote table")
	}
}

// writeBenchmarkCSV writes one line per metric and score with the old and new band.
func writeBenchmarkCSV(w io.Writer, changes []schema.BenchmarkChange) error {
	header := []string{"key", "name", "updated", "score", "before", "after"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range changes {
			for _, s := range schema.AllScores() {
				rec := []string{
					c.Key,
					c.Name,
					strconv.FormatBool(c.Updated),
					strconv.Itoa(int(s)),
					formatRange(c.Before[s]),
					formatRange(c.After[s]),
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// writeBenchmarkTable prints the new bands of every updated metric and lists skipped ones.
func writeBenchmarkTable(w io.Writer, summary schema.BenchmarkSummary, changes []schema.BenchmarkChange, dryRun bool, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "1", "2", "3", "4", "5"})

	cellWidth := max(getMaxTextWidth(cfg, 30)/schema.NumLevels, 8)
	var data [][]string
	for _, c := range changes {
		if !c.Updated {
			continue
		}
		row := []string{c.Key}
		for _, s := range schema.AllScores() {
			row = append(row, contract.TruncateText(formatRange(c.After[s]), cellWidth))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Updated %d metrics, skipped %d\n", len(summary.Updated), len(summary.Skipped)); err != nil {
		return err
	}
	for _, name := range summary.Skipped {
		if _, err := fmt.Fprintf(w, "   skipped: %s\n", name); err != nil {
			return err
		}
	}
	if dryRun {
		if _, err := fmt.Fprintln(w, "Dry run: criteria were not saved"); err != nil {
			return err
		}
	}
	return nil
}
