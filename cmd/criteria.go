package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/importer"
	"github.com/huangsam/partnerscore/schema"
	"github.com/spf13/cobra"
)

// loadCriteria returns the active rubric or exits.
func loadCriteria() schema.Criteria {
	criteria, err := core.LoadCriteria(getStore())
	if err != nil {
		fatal("Failed to load criteria", err)
	}
	return criteria
}

// applyCriteria saves criteria, re-scores everything and reports the run.
func applyCriteria(criteria schema.Criteria) {
	run, err := core.ApplyCriteria(getStore(), criteria)
	if err != nil {
		fatal("Failed to apply criteria", err)
	}
	printRun(run)
}

// parseScore parses a 1..5 score argument.
func parseScore(arg string) (schema.Score, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || !schema.Score(n).Valid() {
		return 0, fmt.Errorf("score must be an integer from %d to %d (received %q)", schema.MinScore, schema.MaxScore, arg)
	}
	return schema.Score(n), nil
}

// criteriaCmd groups rubric management.
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Inspect and edit the scoring rubric",
	Long: `Inspect and edit the active scoring rubric.

Every change is saved and followed by a full re-score, so stored scorecards always
match the current rubric. Metrics may be named by key, display name or alias.

Examples:
  # Show the rubric
  partnerscore criteria show

  # Stop scoring a metric
  partnerscore criteria disable win_rate

  # Make score 5 require at least $1M revenue
  partnerscore criteria set-range annual_revenues 5 1000000 ""`,
}

var criteriaShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the active rubric",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := ow.WriteCriteria(loadCriteria(), cfg); err != nil {
			fatal("Failed to write criteria", err)
		}
	},
}

// toggleCriteria enables or disables every named metric in one save.
func toggleCriteria(keys []string, enabled bool) {
	criteria := loadCriteria()
	var err error
	for _, key := range keys {
		if criteria, err = core.SetEnabled(criteria, key, enabled); err != nil {
			fatal("Failed to update criteria", err)
		}
	}
	applyCriteria(criteria)
}

var criteriaEnableCmd = &cobra.Command{
	Use:     "enable <metric>...",
	Short:   "Include metrics in scoring",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		toggleCriteria(args, true)
	},
}

var criteriaDisableCmd = &cobra.Command{
	Use:     "disable <metric>...",
	Short:   "Exclude metrics from scoring",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		toggleCriteria(args, false)
	},
}

var criteriaSetRangeCmd = &cobra.Command{
	Use:   "set-range <metric> <score> <min> <max>",
	Short: "Change the numeric band of one score",
	Long: `Change the numeric band that earns one score of a quantitative metric.
Pass an empty string for an open bound. Values may carry $, % or thousands separators.`,
	Args:    cobra.ExactArgs(4),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		score, err := parseScore(args[1])
		if err != nil {
			fatal("Invalid score", err)
		}
		criteria, err := core.SetRange(loadCriteria(), args[0], score, args[2], args[3])
		if err != nil {
			fatal("Failed to set range", err)
		}
		applyCriteria(criteria)
	},
}

var criteriaSetDescriptorCmd = &cobra.Command{
	Use:     "set-descriptor <metric> <score> <text>",
	Short:   "Change the descriptor text of one score",
	Args:    cobra.ExactArgs(3),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		score, err := parseScore(args[1])
		if err != nil {
			fatal("Invalid score", err)
		}
		criteria, err := core.SetDescriptor(loadCriteria(), args[0], score, args[2])
		if err != nil {
			fatal("Failed to set descriptor", err)
		}
		applyCriteria(criteria)
	},
}

var criteriaResetCmd = &cobra.Command{
	Use:     "reset [metric]...",
	Short:   "Restore catalog defaults for some or all metrics",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		criteria, err := core.ResetCriteria(loadCriteria(), args...)
		if err != nil {
			fatal("Failed to reset criteria", err)
		}
		applyCriteria(criteria)
	},
}

var criteriaExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the rubric as YAML to --output-file or stdout",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		file, err := contract.SelectOutputFile(cfg.OutputFile)
		if err != nil {
			fatal("Failed to open output file", err)
		}
		if file != os.Stdout {
			defer func() { _ = file.Close() }()
		}
		if err := importer.WriteCriteriaYAML(file, loadCriteria()); err != nil {
			fatal("Failed to export criteria", err)
		}
	},
}

var criteriaImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Merge criteria from a YAML file and re-score",
	Long: `Merge criteria from a YAML file keyed by metric. Metrics missing from the file
keep their current definition. Every imported criterion is validated first.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open criteria file", err)
		}
		defer func() { _ = file.Close() }()

		imported, err := importer.ReadCriteriaYAML(file)
		if err != nil {
			fatal("Failed to read criteria file", err)
		}
		criteria, err := core.ImportCriteria(loadCriteria(), imported)
		if err != nil {
			fatal("Failed to import criteria", err)
		}
		applyCriteria(criteria)
	},
}
