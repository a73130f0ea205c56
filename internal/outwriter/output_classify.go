package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// quadrantCount is one line of the classification summary.
type quadrantCount struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PrintClassification outputs quadrant assignments, dispatching on the configured output format.
func PrintClassification(assignments []schema.QuadrantAssignment, cfg *contract.Config) error {
	fmtPct := percentFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Assignments []schema.QuadrantAssignment `json:"assignments"`
				Quadrants   []quadrantCount             `json:"quadrants"`
			}{assignments, countQuadrants(assignments)})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"partner_name", "quadrant_id", "quadrant_name", "total_score", "percentage"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, a := range assignments {
					rec := []string{
						a.PartnerName,
						strconv.Itoa(a.QuadrantID),
						a.QuadrantName,
						strconv.Itoa(a.TotalScore),
						fmtPct(a.Percentage),
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
			return writeClassificationTable(w, assignments, cfg, fmtPct)
		}, "Wrote table")
	}
}

// writeClassificationTable prints one row per partner followed by quadrant totals.
func writeClassificationTable(w io.Writer, assignments []schema.QuadrantAssignment, cfg *contract.Config, fmtPct func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Partner", "Quadrant", "Score", "Pct", "Label"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := getMaxTextWidth(cfg, 65)
	var data [][]string
	for _, a := range assignments {
		data = append(data, []string{
			contract.TruncateText(a.PartnerName, nameWidth),
			fmt.Sprintf("%d %s", a.QuadrantID, a.QuadrantName),
			strconv.Itoa(a.TotalScore),
			fmtPct(a.Percentage),
			tierLabel(a.Percentage, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, qc := range countQuadrants(assignments) {
		if _, err := fmt.Fprintf(w, "Q%d %s: %d\n", qc.ID, qc.Name, qc.Count); err != nil {
			return err
		}
	}
	return nil
}

// countQuadrants tallies assignments per quadrant in ascending ID order.
func countQuadrants(assignments []schema.QuadrantAssignment) []quadrantCount {
	byID := make(map[int]*quadrantCount)
	for _, a := range assignments {
		qc, ok := byID[a.QuadrantID]
		if !ok {
			qc = &quadrantCount{ID: a.QuadrantID, Name: a.QuadrantName}
			byID[a.QuadrantID] = qc
		}
		qc.Count++
	}
	counts := make([]quadrantCount, 0, len(byID))
	for _, qc := range byID {
		counts = append(counts, *qc)
	}
	slices.SortFunc(counts, func(a, b quadrantCount) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return counts
}
