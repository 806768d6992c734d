package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ainnoce10/ebf-console/internal/db"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing database")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the console for first-time use",
	Long: `Initialize the console by creating the ~/.ebf/ directory and database.

This command:
- Creates ~/.ebf/ directory if it doesn't exist
- Creates ebf.db with the storage schema
- Runs any pending migrations

Use --force to overwrite an existing database.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

type initResult struct {
	Database string `json:"database"`
	Created  bool   `json:"created"`
	Schema   int64  `json:"schema_version"`
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetDBPath()

	if db.Exists(path) && !initForce {
		displayPath := path
		if displayPath == "" {
			displayPath = db.DefaultDBPath
		}
		return fmt.Errorf("database already exists at %s (use --force to overwrite)", displayPath)
	}

	database, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	if initForce {
		// Recreate from scratch
		if _, err := database.Exec("DROP TABLE IF EXISTS slots"); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		if _, err := database.Exec("DROP TABLE IF EXISTS goose_db_version"); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
	}

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	schema, err := database.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if IsJSON() {
		data, _ := json.MarshalIndent(initResult{
			Database: database.Path(),
			Created:  true,
			Schema:   schema,
		}, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	Output("Initialized console database at %s (schema v%d)\n", database.Path(), schema)
	fmt.Fprintln(os.Stderr, "Run 'ebf serve' to start the API server.")
	return nil
}
