package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/iocache"
	"github.com/huangsam/partnerscore/internal/outwriter"
	"github.com/huangsam/partnerscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global persistence manager instance.
var storeManager contract.StoreManager

// ow renders every command result.
var ow = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "partnerscore",
	Short: "Score channel partners against an editable rubric.",
	Long: `Partnerscore keeps a scorecard for every channel partner. Raw partner data is
scored 1 to 5 per metric against editable criteria, totals are re-computed whenever
the rubric or the data changes, and partners are sorted into classification quadrants.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigPaths()

	viper.SetEnvPrefix("PARTNERSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("color", "yes")
}

// setConfigPaths points viper at --config or the default .partnerscore.yaml locations.
func setConfigPaths() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".partnerscore")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile reads the config file if one exists.
func loadConfigFile() error {
	setConfigPaths()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// configSetup resolves and validates the full configuration without touching the store.
func configSetup() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and parsing into the global cfg.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = color.NoColor || !cfg.UseColors
	return nil
}

// sharedSetup validates configuration and opens the configured store.
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := configSetup(); err != nil {
		return err
	}
	if err := iocache.InitStore(cfg.Backend, cfg.DBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// configSetupWrapper wraps configSetup to provide PreRunE for store-free commands.
func configSetupWrapper(_ *cobra.Command, _ []string) error {
	return configSetup()
}

// getStore returns the process-wide store or exits when it is unavailable.
func getStore() contract.Store {
	if storeManager == nil || storeManager.GetStore() == nil {
		fatal("Store unavailable", contract.ErrStoreUnavailable)
	}
	return storeManager.GetStore()
}

// fatal closes the store before exiting so SQLite files are released cleanly.
func fatal(msg string, err error) {
	iocache.CloseStore()
	contract.LogFatal(msg, err)
}

// printRun reports a finished re-score on stderr so data output stays clean.
func printRun(run schema.RescoreRun) {
	green := color.New(color.FgGreen).SprintFunc()
	duration := ""
	if run.DurationMs != nil {
		duration = fmt.Sprintf(" in %dms", *run.DurationMs)
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s Re-scored %d partners on %d metrics%s (run %d, %s)\n",
		green("✔"), run.PartnerCount, run.MetricCount, duration, run.ID, run.Trigger)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
