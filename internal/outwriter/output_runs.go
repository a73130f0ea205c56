package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/parquet"
	"github.com/huangsam/partnerscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRuns outputs re-score history, dispatching on the configured output format.
func PrintRuns(runs []schema.RescoreRun, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"run_id", "run_uuid", "trigger", "start_time", "end_time", "duration_ms", "partner_count", "metric_count"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range runs {
					duration := ""
					if r.DurationMs != nil {
						duration = strconv.FormatInt(*r.DurationMs, 10)
					}
					rec := []string{
						strconv.FormatInt(r.ID, 10),
						r.UUID,
						string(r.Trigger),
						formatTime(&r.StartTime),
						formatTime(r.EndTime),
						duration,
						strconv.Itoa(r.PartnerCount),
						strconv.Itoa(r.MetricCount),
					}
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteRescoreRunsParquet(parquet.ConvertRescoreRuns(runs), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs)
		}, "Wrote table")
	}
}

func writeRunsTable(w io.Writer, runs []schema.RescoreRun) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Run", "Trigger", "Started", "Duration", "Partners", "Metrics"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			shortUUID(r.UUID),
			string(r.Trigger),
			formatTime(&r.StartTime),
			formatDurationMs(r.DurationMs),
			strconv.Itoa(r.PartnerCount),
			strconv.Itoa(r.MetricCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(runs))
	return err
}

// PrintPartners outputs raw partner records.
// The CSV form uses raw_<key> columns and can be imported again.
func PrintPartners(partners []schema.RawPartner, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, partners)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePartnersCSV(w, partners)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePartnersTable(w, partners, cfg)
		}, "Wrote table")
	}
}

func writePartnersCSV(w io.Writer, partners []schema.RawPartner) error {
	present := make(map[string]bool)
	for _, p := range partners {
		for key := range p.Raw {
			present[key] = true
		}
	}
	rawKeys := catalogOrder(present)

	header := slices.Clone(schema.IdentityFields)
	for _, key := range rawKeys {
		header = append(header, schema.RawFieldPrefix+key)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range partners {
			rec := p.ToRecord()
			line := make([]string, len(header))
			for i, field := range header {
				line[i] = rec[field]
			}
			if err := cw.Write(line); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writePartnersTable(w io.Writer, partners []schema.RawPartner, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Partner", "Year", "Tier", "Country", "Manager", "Values"})

	nameWidth := getMaxTextWidth(cfg, 70)
	var data [][]string
	for _, p := range partners {
		data = append(data, []string{
			contract.TruncateText(p.Name, nameWidth),
			yearString(p.Year),
			p.Tier,
			p.Country,
			p.ManagerName,
			strconv.Itoa(len(p.Raw)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d partners\n", len(partners))
	return err
}
