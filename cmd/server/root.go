package main

import (
	"github.com/spf13/cobra"

	"github.com/yusufkecer/fitness-tracker-backend/internal/config"
)

var (
	flagPort    string
	flagBackend string
)

var rootCmd = &cobra.Command{
	Use:   "fitness-server",
	Short: "Fitness tracker REST backend",
	Long: `fitness-server serves the fitness tracker JSON API: goals, workouts,
nutrition and activity logs, daily stats and tips.

Configuration comes from the environment (a .env file is read when present):

  PORT             listen port (default 8080)
  STORAGE_BACKEND  memory, sqlite, mysql, postgres or bolt (default memory)
  DB_PATH          sqlite or bolt file
  DATABASE_URL     postgres connection string
  DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME  mysql settings
  JWT_SECRET       enables bearer tokens and /api/auth/login
  AUTH_REQUIRED    reject requests without a token
  SEED_DEMO        seed the demo account on start (default true)

Running without a subcommand is the same as 'fitness-server serve'.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "listen port, overrides PORT")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend, overrides STORAGE_BACKEND")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
