package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/importer"
	"github.com/huangsam/partnerscore/internal/outwriter"
	"github.com/huangsam/partnerscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// partnerFromArgs builds a raw partner from a name and key=value assignments.
// Keys may be identity fields, metric keys, metric names or aliases.
func partnerFromArgs(name string, assignments []string) (schema.RawPartner, error) {
	partner := schema.RawPartner{Raw: make(map[string]string)}
	partner.Name = strings.TrimSpace(name)
	if partner.Name == "" {
		return partner, contract.ErrEmptyPartnerName
	}
	for _, arg := range assignments {
		key, value, err := contract.ParseAssignment(arg)
		if err != nil {
			return partner, err
		}
		identity, metric := importer.ResolveHeader(key)
		switch {
		case identity == schema.FieldPartnerName:
			return partner, fmt.Errorf("partner name is positional, drop %q", arg)
		case identity != "":
			partner.SetIdentityField(identity, value)
		case metric != "":
			partner.Raw[metric] = strings.TrimSpace(value)
		default:
			return partner, fmt.Errorf("unknown field %q", key)
		}
	}
	return partner, nil
}

// partnerCmd groups raw partner management.
var partnerCmd = &cobra.Command{
	Use:   "partner",
	Short: "Manage raw partner records",
	Long: `Manage the raw partner records that scorecards are computed from.

Every write is followed by a full re-score.

Examples:
  # Add or replace a partner
  partnerscore partner upsert "Acme Corp" tier=Gold revenue='$900,000' csat=92

  # Change one value and keep the rest
  partnerscore partner upsert "Acme Corp" win_rate=48% --merge

  # Load a spreadsheet export
  partnerscore partner import partners.csv`,
}

var partnerUpsertCmd = &cobra.Command{
	Use:     "upsert <name> [field=value]...",
	Short:   "Add or replace a partner",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		partner, err := partnerFromArgs(args[0], args[1:])
		if err != nil {
			fatal("Invalid partner", err)
		}
		store := getStore()
		if viper.GetBool("merge") {
			if partner, err = core.MergePartner(store, partner); err != nil {
				fatal("Failed to merge partner", err)
			}
		}
		run, err := core.UpsertPartner(store, partner)
		if err != nil {
			fatal("Failed to save partner", err)
		}
		printRun(run)
	},
}

var partnerDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Remove a partner",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		run, err := core.DeletePartner(getStore(), args[0])
		if err != nil {
			fatal("Failed to delete partner", err)
		}
		printRun(run)
	},
}

var partnerListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List raw partner records",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		partners, err := getStore().ListPartners()
		if err != nil {
			fatal("Failed to list partners", err)
		}
		if err := ow.WritePartners(partners, cfg); err != nil {
			fatal("Failed to write partners", err)
		}
	},
}

var partnerShowCmd = &cobra.Command{
	Use:     "show <name>",
	Short:   "Print the scorecard of one partner",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		store := getStore()
		partner, err := store.GetPartner(args[0])
		if err != nil {
			fatal("Failed to load partner", err)
		}
		rows, err := store.ListScoredRows()
		if err != nil {
			fatal("Failed to list scores", err)
		}
		row, ok := findRow(rows, partner.Name)
		if !ok {
			fatal("Partner has no scorecard", errors.New("run 'partnerscore rescore' first"))
		}
		if err := outwriter.PrintScorecard(row, partner, cfg); err != nil {
			fatal("Failed to write scorecard", err)
		}
	},
}

// findRow returns the scored row for a partner name.
func findRow(rows []schema.ScoredRow, name string) (schema.ScoredRow, bool) {
	key := schema.NameKey(name)
	for _, row := range rows {
		if schema.NameKey(row.Name) == key {
			return row, true
		}
	}
	return schema.ScoredRow{}, false
}

var partnerImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Load partners from a CSV export",
	Long: `Load partners from a CSV file with a header row. Columns are matched to identity
fields and metrics by key, display name or alias. Unknown columns and rows without a
partner name are reported and skipped.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open partner file", err)
		}
		defer func() { _ = file.Close() }()

		result, err := importer.ReadPartnersCSV(file)
		if err != nil {
			fatal("Failed to read partner file", err)
		}
		if len(result.Unmapped) > 0 {
			contract.LogWarn("Ignored columns", fmt.Errorf("%s", strings.Join(result.Unmapped, ", ")))
		}
		if len(result.Skipped) > 0 {
			contract.LogWarn("Skipped rows without a partner name", fmt.Errorf("lines %v", result.Skipped))
		}
		run, err := core.ImportPartners(getStore(), result.Partners)
		if err != nil {
			fatal("Failed to import partners", err)
		}
		printRun(run)
	},
}
