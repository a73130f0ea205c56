package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Partners: %d\n", status.TotalPartners)
	_, _ = fmt.Fprintf(w, "Scored Rows: %d\n", status.TotalScoredRows)
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format(contract.DateTimeFormat))
	}
	if !status.CriteriaUpdated.IsZero() {
		_, _ = fmt.Fprintf(w, "Criteria Updated: %s\n", status.CriteriaUpdated.Format(contract.DateTimeFormat))
	}
	if status.Backend != string(schema.NoneBackend) {
		_, _ = fmt.Fprintf(w, "Schema Version: %d (latest %d)\n", status.MigrationVersion, LatestMigrationVersion)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableRows)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableRows[table])
	}
}
