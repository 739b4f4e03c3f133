package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yusufkecer/fitness-tracker-backend/internal/db"
	"github.com/yusufkecer/fitness-tracker-backend/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the configured SQL database",
	Long: `Apply pending schema migrations and exit. Only sqlite, mysql and postgres
backends have a schema; serve also migrates on start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dialect, dsn, err := cfg.SQLDialect()
		if err != nil {
			return err
		}

		logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		database, err := db.Connect(dialect, dsn)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(database, dialect, logging.For(logger, "migrate")); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		logger.Info().Str("dialect", dialect.Name).Msg("migrations complete")
		return nil
	},
}
