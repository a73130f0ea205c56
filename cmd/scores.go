package cmd

import (
	"github.com/huangsam/partnerscore/core"
	"github.com/huangsam/partnerscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rescoreCmd = &cobra.Command{
	Use:     "rescore",
	Short:   "Re-score every partner against the active rubric",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		run, err := core.Rescore(getStore(), schema.TriggerManual)
		if err != nil {
			fatal("Failed to re-score partners", err)
		}
		printRun(run)
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Rank partners by total score",
	Long: `Rank partners by total score, highest first, with per-metric scores.

Examples:
  # Top 10 as a table
  partnerscore scores --limit 10

  # Everything as JSON
  partnerscore scores --limit 10000 --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		rows, err := core.TopScores(getStore(), cfg.ResultLimit)
		if err != nil {
			fatal("Failed to load scores", err)
		}
		if err := ow.WriteScores(rows, cfg); err != nil {
			fatal("Failed to write scores", err)
		}
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Sort partners into classification quadrants",
	Long: `Assign every scored partner to the first quadrant whose rules it meets.
Quadrants come from the 'quadrants' section of .partnerscore.yaml, or the built-in
four when none are configured.`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		assignments, err := core.ClassifyPartners(getStore(), cfg.Quadrants)
		if err != nil {
			fatal("Failed to classify partners", err)
		}
		if err := ow.WriteClassification(assignments, cfg); err != nil {
			fatal("Failed to write classification", err)
		}
	},
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Derive metric ranges from the current partner population",
	Long: `Recompute the numeric ranges of every quantitative metric from quantiles of the
stored partner values, save them and re-score. Metrics with too few values keep
their ranges. Use --dry-run to preview the change without saving.`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ApplyBenchmark(getStore(), viper.GetBool("dry-run"))
		if err != nil {
			fatal("Failed to benchmark criteria", err)
		}
		if err := ow.WriteBenchmark(result.Summary, result.Changes, result.DryRun, cfg); err != nil {
			fatal("Failed to write benchmark", err)
		}
		if result.Run != nil {
			printRun(*result.Run)
		}
	},
}

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Short:   "List every scorable metric",
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := ow.WriteCatalog(cfg); err != nil {
			fatal("Failed to write catalog", err)
		}
	},
}

var runsCmd = &cobra.Command{
	Use:     "runs",
	Short:   "Show re-score history, newest first",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := getStore().ListRuns(cfg.ResultLimit)
		if err != nil {
			fatal("Failed to list runs", err)
		}
		if err := ow.WriteRuns(runs, cfg); err != nil {
			fatal("Failed to write runs", err)
		}
	},
}
