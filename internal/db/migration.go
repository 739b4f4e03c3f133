package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type migration struct {
	version string
	sql     string
}

// {{id}} and {{varchar}} are replaced with the dialect's column types.
var migrations = []migration{
	{
		version: "000_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id       {{id}},
				username {{varchar}} NOT NULL UNIQUE,
				password {{varchar}} NOT NULL,
				name     {{varchar}} NOT NULL,
				email    {{varchar}} NOT NULL
			)`,
	},
	{
		version: "001_create_goals",
		sql: `
			CREATE TABLE IF NOT EXISTS goals (
				id            {{id}},
				user_id       BIGINT NOT NULL,
				title         {{varchar}} NOT NULL,
				description   TEXT NOT NULL,
				target_value  INT NOT NULL,
				current_value INT NOT NULL DEFAULT 0,
				unit          VARCHAR(50) NOT NULL,
				start_date    VARCHAR(10) NOT NULL,
				end_date      VARCHAR(10) NOT NULL,
				created_at    VARCHAR(40) NOT NULL
			);
			CREATE INDEX idx_goals_user ON goals (user_id)`,
	},
	{
		version: "002_create_workouts",
		sql: `
			CREATE TABLE IF NOT EXISTS workouts (
				id              {{id}},
				user_id         BIGINT NOT NULL,
				title           {{varchar}} NOT NULL,
				description     TEXT,
				duration        INT NOT NULL,
				calories_burned INT,
				status          VARCHAR(20) NOT NULL DEFAULT 'scheduled',
				scheduled_for   VARCHAR(40) NOT NULL,
				completed_at    VARCHAR(40),
				created_at      VARCHAR(40) NOT NULL
			);
			CREATE INDEX idx_workouts_user ON workouts (user_id)`,
	},
	{
		version: "003_create_nutrition_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS nutrition_logs (
				id          {{id}},
				user_id     BIGINT NOT NULL,
				meal_type   VARCHAR(20) NOT NULL,
				description TEXT NOT NULL,
				calories    INT NOT NULL,
				date        VARCHAR(10) NOT NULL,
				created_at  VARCHAR(40) NOT NULL
			);
			CREATE INDEX idx_nutrition_logs_user_date ON nutrition_logs (user_id, date)`,
	},
	{
		version: "004_create_activity_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS activity_logs (
				id              {{id}},
				user_id         BIGINT NOT NULL,
				activity_type   VARCHAR(50) NOT NULL,
				description     TEXT NOT NULL,
				duration        INT NOT NULL,
				calories_burned INT,
				date            VARCHAR(10) NOT NULL,
				status          VARCHAR(20) NOT NULL,
				created_at      VARCHAR(40) NOT NULL
			);
			CREATE INDEX idx_activity_logs_user_date ON activity_logs (user_id, date)`,
	},
	{
		version: "005_create_stats",
		sql: `
			CREATE TABLE IF NOT EXISTS stats (
				id            {{id}},
				user_id       BIGINT NOT NULL,
				date          VARCHAR(10) NOT NULL,
				steps         INT NOT NULL DEFAULT 0,
				calories      INT NOT NULL DEFAULT 0,
				calories_goal INT NOT NULL DEFAULT 2200,
				water_intake  INT NOT NULL DEFAULT 0,
				water_goal    INT NOT NULL DEFAULT 2500,
				sleep_hours   DOUBLE PRECISION NOT NULL DEFAULT 0,
				sleep_goal    DOUBLE PRECISION NOT NULL DEFAULT 8,
				created_at    VARCHAR(40) NOT NULL,
				updated_at    VARCHAR(40) NOT NULL
			);
			CREATE UNIQUE INDEX idx_stats_user_date ON stats (user_id, date)`,
	},
	{
		version: "006_create_tips",
		sql: `
			CREATE TABLE IF NOT EXISTS tips (
				id         {{id}},
				title      {{varchar}} NOT NULL,
				content    TEXT NOT NULL,
				category   VARCHAR(50) NOT NULL,
				icon_name  VARCHAR(50) NOT NULL,
				created_at VARCHAR(40) NOT NULL
			)`,
	},
}

func RunMigrations(db *sql.DB, d Dialect, logger zerolog.Logger) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, d, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, d, m); err != nil {
			return err
		}

		logger.Info().Str("version", m.version).Str("dialect", d.Name).Msg("applied migration")
	}

	return nil
}

func isMigrationApplied(db *sql.DB, d Dialect, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		d.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"),
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, d Dialect, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	columns := strings.NewReplacer("{{id}}", d.IDColumn, "{{varchar}}", d.Varchar)
	for _, stmt := range strings.Split(columns.Replace(m.sql), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		d.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"),
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
