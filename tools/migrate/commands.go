package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orgball2608/affiliate-post-bot/internal/migrations"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var log logger.Logger = logger.NewNop()

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the bot's Postgres schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDB(func(cmd *cobra.Command, db *sql.DB) error {
		if err := goose.UpContext(cmd.Context(), db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: withDB(func(cmd *cobra.Command, db *sql.DB) error {
		if err := goose.DownContext(cmd.Context(), db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		log.Info("Migration rollback successful")
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the migration status",
	RunE: withDB(func(cmd *cobra.Command, db *sql.DB) error {
		return goose.StatusContext(cmd.Context(), db, migrations.Dir)
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back every migration",
	RunE: withDB(func(cmd *cobra.Command, db *sql.DB) error {
		if err := goose.ResetContext(cmd.Context(), db, migrations.Dir); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		log.Info("All migrations have been rolled back")
		return nil
	}),
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new SQL migration in the source tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

var sourceDir string

func init() {
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, resetCmd, createCmd)

	createCmd.Flags().StringVar(&sourceDir, "dir", filepath.Join("internal", "migrations", migrations.Dir),
		"Directory the new migration is written to")
}

// withDB opens the database for commands that read the embedded migrations.
func withDB(run func(cmd *cobra.Command, db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := migrations.Open(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		return run(cmd, db)
	}
}

func runCreate(_ *cobra.Command, args []string) error {
	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("migrations directory %s: %w", dir, err)
	}

	log.Info("Creating migration", "dir", dir, "name", args[0])
	return goose.Create(nil, dir, args[0], "sql")
}
