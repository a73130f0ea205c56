package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/partnerscore/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd groups persistence maintenance.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and maintain the partnerscore database",
}

var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show backend, table sizes and the last run",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := getStore().GetStatus()
		if err != nil {
			fatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

var storeClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete every partner, criterion, score and run",
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.Backend, cfg.DBConnect); err != nil {
			fatal("Failed to clear store", err)
		}
		fmt.Printf("Cleared %s store\n", cfg.Backend)
	},
}

var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move the database schema to a version",
	Long: `Apply schema migrations. By default the database moves to the latest version.
Use --target-version 0 to roll everything back.`,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.Migrate(cfg.Backend, cfg.DBConnect, viper.GetInt("target-version")); err != nil {
			fatal("Failed to migrate store", err)
		}
	},
}

var storeExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write scores and run history to Parquet files",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteStoreExport(os.Stdout, getStore(), cfg.OutputFile); err != nil {
			fatal("Failed to export store", err)
		}
	},
}
