package cmd

import (
	"fmt"

	"github.com/cadencehq/cadence/internal/contract"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/cadencehq/cadence/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := meetstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize meeting store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on meeting store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by import and insights. This avoids input-path
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the durable meeting store",
	Long: `Manage the persistent store that holds meetings, contacts, tasks
and import-run history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check store status
  cadence store status

  # Export for analysis in pandas/DuckDB
  cadence store export --output-file cadence-data`,
}

// storeClearCmd clears the meeting store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored meetings, contacts, tasks and run history",
	Long: `Delete everything in the configured store backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cadence tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  cadence store export --output-file backup
  cadence store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := meetstore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear meeting store", err)
		}
		fmt.Println("Meeting store cleared successfully.")
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the meeting store.

Displays:
- Backend type and connection status
- Total meetings, contacts, tasks and import runs
- Last import timestamp
- Database table sizes

Examples:
  # Check store status
  cadence store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := meetstore.Manager.Get().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		meetstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export meeting history to Parquet for BI tools and analytics",
	Long: `Export all stored meeting data to Parquet format for use with
analytics tools.

Exports two datasets:
- Meetings - one row per imported meeting
- Import runs - metadata about each import execution

Requires: --output-file parameter (used as a filename prefix)

Examples:
  # Export all data
  cadence store export --output-file cadence-data

  # Use with DuckDB for analysis
  cadence store export --output-file data
  duckdb -c "SELECT category, count(*) FROM read_parquet('data.meetings.parquet') GROUP BY 1"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := meetstore.ExecuteStoreExport(rootCtx, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the meeting store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the meeting store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  cadence store migrate

  # Rollback to initial state
  cadence store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := meetstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
