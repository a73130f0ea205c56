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

// criterionView is the JSON shape of one rubric entry.
type criterionView struct {
	Key string `json:"key"`
	schema.Criterion
}

// catalogEntry is the display shape of one catalog metric.
type catalogEntry struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Category  schema.Category   `json:"category"`
	Type      schema.MetricType `json:"type"`
	Unit      schema.Unit       `json:"unit,omitempty"`
	Direction schema.Direction  `json:"direction"`
}

// PrintCriteria outputs the rubric in catalog order, dispatching on the configured output format.
func PrintCriteria(criteria schema.Criteria, cfg *contract.Config) error {
	keys := criteria.Keys()

	switch cfg.Output {
	case schema.JSONOut:
		views := make([]criterionView, 0, len(keys))
		for _, key := range keys {
			views = append(views, criterionView{Key: key, Criterion: criteria[key]})
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, views)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"key", "name", "type", "unit", "direction", "enabled"}
		for _, s := range schema.AllScores() {
			header = append(header, fmt.Sprintf("score_%d", s))
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, key := range keys {
					c := criteria[key]
					rec := []string{key, c.Name, string(c.Type), string(c.Unit), string(c.Direction), strconv.FormatBool(c.Enabled)}
					for _, s := range schema.AllScores() {
						rec = append(rec, formatLevel(c, s))
					}
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriteriaTable(w, criteria, keys, cfg)
		}, "Wrote table")
	}
}

// writeCriteriaTable prints one row per metric with the level for each score.
func writeCriteriaTable(w io.Writer, criteria schema.Criteria, keys []string, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "On", "Dir", "1", "2", "3", "4", "5"})

	cellWidth := max(getMaxTextWidth(cfg, 40)/schema.NumLevels, 8)
	enabled := 0
	var data [][]string
	for _, key := range keys {
		c := criteria[key]
		on := "no"
		if c.Enabled {
			on = "yes"
			enabled++
		}
		dir := "↑"
		if c.Direction == schema.LowerIsBetter {
			dir = "↓"
		}
		row := []string{key, on, dir}
		for _, s := range schema.AllScores() {
			row = append(row, contract.TruncateText(formatLevel(c, s), cellWidth))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d metrics enabled\n", enabled, len(keys))
	return err
}

// PrintCatalog outputs the static metric definitions.
func PrintCatalog(catalog []schema.Metric, cfg *contract.Config) error {
	entries := make([]catalogEntry, len(catalog))
	for i, m := range catalog {
		entries[i] = catalogEntry{Key: m.Key, Name: m.Name, Category: m.Category, Type: m.Type, Unit: m.Unit, Direction: m.Direction}
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"key", "name", "category", "type", "unit", "direction"}, func(cw *csv.Writer) error {
				for _, e := range entries {
					if err := cw.Write([]string{e.Key, e.Name, string(e.Category), string(e.Type), string(e.Unit), string(e.Direction)}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogText(w, entries)
		}, "Wrote text")
	}
}

// writeCatalogText prints the catalog grouped by category.
func writeCatalogText(w io.Writer, entries []catalogEntry) error {
	if _, err := fmt.Fprintf(w, "📋 Partner Metric Catalog\n=========================\n"); err != nil {
		return err
	}
	for _, cat := range schema.Categories() {
		if _, err := fmt.Fprintf(w, "\n%s\n", cat); err != nil {
			return err
		}
		for _, e := range entries {
			if e.Category != cat {
				continue
			}
			detail := string(e.Type)
			if e.Unit != schema.UnitNone {
				detail += ", " + string(e.Unit)
			}
			if _, err := fmt.Fprintf(w, "   %-24s %s (%s, %s)\n", e.Key, e.Name, detail, e.Direction); err != nil {
				return err
			}
		}
	}
	return nil
}
