// Package cmd defines the command-line interface for partnerscore.
package cmd

import (
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(partnerCmd)
	rootCmd.AddCommand(rescoreCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the criteria subcommands to the parent criteria command
	criteriaCmd.AddCommand(criteriaShowCmd)
	criteriaCmd.AddCommand(criteriaEnableCmd)
	criteriaCmd.AddCommand(criteriaDisableCmd)
	criteriaCmd.AddCommand(criteriaSetRangeCmd)
	criteriaCmd.AddCommand(criteriaSetDescriptorCmd)
	criteriaCmd.AddCommand(criteriaResetCmd)
	criteriaCmd.AddCommand(criteriaExportCmd)
	criteriaCmd.AddCommand(criteriaImportCmd)

	// Add the partner subcommands to the parent partner command
	partnerCmd.AddCommand(partnerUpsertCmd)
	partnerCmd.AddCommand(partnerDeleteCmd)
	partnerCmd.AddCommand(partnerListCmd)
	partnerCmd.AddCommand(partnerShowCmd)
	partnerCmd.AddCommand(partnerImportCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for sqlite/mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentages (1 or 2)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of benchmarkCmd to Viper
	benchmarkCmd.Flags().Bool("dry-run", false, "Preview the computed ranges without saving them")
	if err := viper.BindPFlags(benchmarkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding benchmark flags", err)
	}

	// Bind all flags of partnerUpsertCmd to Viper
	partnerUpsertCmd.Flags().Bool("merge", false, "Keep stored values that the update does not mention")
	if err := viper.BindPFlags(partnerUpsertCmd.Flags()); err != nil {
		contract.LogFatal("Error binding partner upsert flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
