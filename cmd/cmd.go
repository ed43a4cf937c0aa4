// Package cmd defines the command-line interface for cadence.
package cmd

import (
	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the contacts subcommands to the parent contacts command
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsAddCmd)

	// Add the tasks subcommands to the parent tasks command
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksDoneCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("source", "s", string(schema.AutoSource), "Calendar export flavor: auto or graph or gcal or ics")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("window-weeks", contract.DefaultWindowWeeks, "Trailing window in whole weeks for weekly counts and trend")
	rootCmd.PersistentFlags().Int("cadence-days", contract.DefaultCadenceDays, "Default meeting cadence for contacts without one of their own")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone applied to zoneless event timestamps (defaults to UTC)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of importCmd to Viper
	importCmd.Flags().Bool("dry-run", false, "Run the full pipeline without committing anything")
	importCmd.Flags().Bool("future-only", false, "Skip events that have already started")
	if err := viper.BindPFlags(importCmd.Flags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of contactsAddCmd to Viper
	contactsAddCmd.Flags().String("name", "", "Contact display name (required)")
	contactsAddCmd.Flags().String("email", "", "Contact email, the attendee matching key")
	contactsAddCmd.Flags().Int("contact-cadence", 0, "Expected meeting cadence in days for this contact (0 = use default)")
	if err := viper.BindPFlags(contactsAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding contacts add flags", err)
	}

	// Bind all flags of tasksAddCmd to Viper
	tasksAddCmd.Flags().String("contact-id", "", "Contact the task is assigned to (required)")
	tasksAddCmd.Flags().String("title", "", "Task title (required)")
	tasksAddCmd.Flags().String("due", "", "Optional due date (YYYY-MM-DD)")
	if err := viper.BindPFlags(tasksAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding tasks add flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
