package cmd

import (
	"runtime"

	"github.com/huangsam/partnerscore/internal/iocache"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of partnerscore.",
	Long: `Display build details and the newest database schema this binary can migrate to.
Include this output when reporting bugs.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("partnerscore CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Schema:  v%d\n", iocache.LatestMigrationVersion)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
