package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// writeWithFile opens the configured output, hands it to writer and closes it.
// An empty path writes to stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes a header row and then lets writeRows fill in the data.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// percentFormatter returns a closure rendering percentages at the given precision.
func percentFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

// tierLabel picks the colored or plain tier label.
func tierLabel(percentage float64, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(percentage)
	}
	return contract.GetPlainLabel(percentage)
}

// formatRange renders a band compactly: "10..20", ">= 10", "<= 20" or "any".
func formatRange(r schema.Range) string {
	lo, hi := strings.TrimSpace(r.Min), strings.TrimSpace(r.Max)
	switch {
	case lo != "" && hi != "":
		return lo + ".." + hi
	case lo != "":
		return ">= " + lo
	case hi != "":
		return "<= " + hi
	default:
		return "any"
	}
}

// formatLevel renders the band or descriptor that earns one score.
func formatLevel(c schema.Criterion, score schema.Score) string {
	if c.Type == schema.Qualitative {
		return c.Descriptors[score]
	}
	r, ok := c.Ranges[score]
	if !ok {
		return ""
	}
	return formatRange(r)
}

// formatScore renders a metric score, leaving unscored metrics as a dash.
func formatScore(s schema.Score) string {
	if s == schema.Unscored {
		return "-"
	}
	return strconv.Itoa(int(s))
}

// formatTime renders a timestamp or an empty string for the zero time.
func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(contract.DateTimeFormat)
}

// formatDurationMs renders an optional duration in milliseconds.
func formatDurationMs(ms *int64) string {
	if ms == nil {
		return ""
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}

// shortUUID keeps the first block of a run UUID for tables.
func shortUUID(id string) string {
	if before, _, found := strings.Cut(id, "-"); found {
		return before
	}
	return id
}

// catalogOrder returns the keys of present in catalog order, then unknown keys sorted.
func catalogOrder(present map[string]bool) []string {
	keys := make([]string, 0, len(present))
	seen := make(map[string]bool, len(present))
	for _, m := range schema.Catalog() {
		if present[m.Key] {
			keys = append(keys, m.Key)
			seen[m.Key] = true
		}
	}
	var extra []string
	for key := range present {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
