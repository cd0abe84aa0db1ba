package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kitarpshakya/Reaction-hub-sub000/internal/infrastructure/database/postgres"
)

var migrateSteps int

// NewMigrateCmd creates the database migration command group.
func NewMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, sourceURL, err := migrationURLs(cmd)
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(dbURL, sourceURL); err != nil {
				return err
			}
			PrintSuccess(cmd, "migrations applied")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, sourceURL, err := migrationURLs(cmd)
			if err != nil {
				return err
			}
			if err := postgres.RollbackMigration(dbURL, sourceURL, migrateSteps); err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("rolled back %d step(s)", migrateSteps))
			return nil
		},
	}
	downCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the applied migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, sourceURL, err := migrationURLs(cmd)
			if err != nil {
				return err
			}
			version, dirty, err := postgres.MigrationStatus(dbURL, sourceURL)
			if err != nil {
				return err
			}
			state := "clean"
			if dirty {
				state = "dirty"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d (%s)\n", version, state)
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)
	return migrateCmd
}

func migrationURLs(cmd *cobra.Command) (dbURL, sourceURL string, err error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return "", "", err
	}
	cfg := cliCtx.Config.Database

	sourceURL = cfg.MigrationPath
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}
	if !strings.Contains(sourceURL, "://") {
		sourceURL = "file://" + sourceURL
	}
	return postgres.BuildDSN(cfg), sourceURL, nil
}
