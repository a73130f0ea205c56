package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/parquet"
	"github.com/huangsam/partnerscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScores outputs scored rows, dispatching on the configured output format.
// Rows are printed in the order given and ranked from 1.
func PrintScores(rows []schema.ScoredRow, cfg *contract.Config) error {
	fmtPct := percentFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichRows(rows))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, rows, fmtPct)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WritePartnerScoresParquet(parquet.ConvertPartnerScores(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, rows, cfg, fmtPct)
		}, "Wrote table")
	}
}

// writeScoresTable generates the human-readable scorecard table.
func writeScoresTable(w io.Writer, rows []schema.ScoredRow, cfg *contract.Config, fmtPct func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Partner", "Tier", "Score", "Max", "Pct", "Label"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTextWidth(cfg, 60)
	var data [][]string
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Name, nameWidth),
			r.Tier,
			strconv.Itoa(r.TotalScore),
			strconv.Itoa(r.MaxPossible),
			fmtPct(r.Percentage),
			tierLabel(r.Percentage, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d partners across %d scored metrics\n", len(rows), len(metricColumns(rows)))
	return err
}

// writeScoresCSV writes one line per partner with a column per metric score.
func writeScoresCSV(w io.Writer, rows []schema.ScoredRow, fmtPct func(float64) string) error {
	keys := metricColumns(rows)
	header := []string{"rank", "partner_name", "year", "tier", "total_score", "max_possible", "percentage", "label"}
	for _, key := range keys {
		header = append(header, "score_"+key)
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rows {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Name,
				yearString(r.Year),
				r.Tier,
				strconv.Itoa(r.TotalScore),
				strconv.Itoa(r.MaxPossible),
				fmtPct(r.Percentage),
				contract.GetPlainLabel(r.Percentage),
			}
			for _, key := range keys {
				score, ok := r.Scores[key]
				if !ok {
					rec = append(rec, "")
					continue
				}
				rec = append(rec, strconv.Itoa(int(score)))
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// metricColumns returns every metric key present in any row, catalog order first.
func metricColumns(rows []schema.ScoredRow) []string {
	present := make(map[string]bool)
	for _, r := range rows {
		for key := range r.Scores {
			present[key] = true
		}
	}
	return catalogOrder(present)
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// scorecardLine is one metric of a single partner's scorecard.
type scorecardLine struct {
	Key      string       `json:"key"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Raw      string       `json:"raw"`
	Score    schema.Score `json:"score"`
}

// scorecard is the JSON shape of a single partner's scorecard.
type scorecard struct {
	schema.EnrichedRow
	Lines []scorecardLine `json:"lines"`
}

// PrintScorecard outputs the per-metric breakdown of one partner.
func PrintScorecard(row schema.ScoredRow, partner schema.RawPartner, cfg *contract.Config) error {
	card := scorecard{
		EnrichedRow: schema.EnrichedRow{Rank: 1, Label: contract.GetPlainLabel(row.Percentage), ScoredRow: row},
		Lines:       buildScorecardLines(row, partner),
	}
	fmtPct := percentFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, card)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"partner_name", "metric", "category", "raw", "score"}, func(cw *csv.Writer) error {
				for _, l := range card.Lines {
					if err := cw.Write([]string{row.Name, l.Key, l.Category, l.Raw, strconv.Itoa(int(l.Score))}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "%s: %d/%d (%s%%) %s\n", row.Name, row.TotalScore, row.MaxPossible,
				fmtPct(row.Percentage), tierLabel(row.Percentage, cfg.UseColors)); err != nil {
				return err
			}
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Category", "Metric", "Raw", "Score"})
			rawWidth := getMaxTextWidth(cfg, 70)
			var data [][]string
			for _, l := range card.Lines {
				data = append(data, []string{l.Category, l.Name, contract.TruncateText(l.Raw, rawWidth), formatScore(l.Score)})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}

// buildScorecardLines lists the scored metrics of a row in catalog order.
func buildScorecardLines(row schema.ScoredRow, partner schema.RawPartner) []scorecardLine {
	lines := make([]scorecardLine, 0, len(row.Scores))
	for _, key := range metricColumns([]schema.ScoredRow{row}) {
		line := scorecardLine{Key: key, Name: key, Raw: partner.RawValue(key), Score: row.Scores[key]}
		if m, ok := schema.MetricByKey(key); ok {
			line.Name = m.Name
			line.Category = string(m.Category)
		}
		lines = append(lines, line)
	}
	return lines
}
