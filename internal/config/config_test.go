package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/fitness-tracker-backend/internal/db"
	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "SEED_DEMO", "DEMO_USER_ID", "AUTH_REQUIRED", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, int64(1), cfg.DemoUserID)
	assert.False(t, cfg.AuthRequired)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("DEMO_USER_ID", "7")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_SECRET", "shh")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, int64(7), cfg.DemoUserID)
	assert.True(t, cfg.AuthRequired)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Backend: BackendMemory, AuthRequired: true}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Backend: "cassandra"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUnknownBackend)
}

func TestSQLDialect(t *testing.T) {
	cfg := &Config{
		Backend:    BackendMySQL,
		DBUser:     "fitness",
		DBPassword: "pw",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "fitness",
	}
	d, dsn, err := cfg.SQLDialect()
	require.NoError(t, err)
	assert.Equal(t, db.MySQL.Name, d.Name)
	assert.Equal(t, "fitness:pw@tcp(db:3306)/fitness?parseTime=true&charset=utf8mb4", dsn)

	cfg.Backend = BackendPostgres
	cfg.DatabaseURL = "postgres://localhost/fitness"
	d, dsn, err = cfg.SQLDialect()
	require.NoError(t, err)
	assert.True(t, d.Numbered)
	assert.Equal(t, "postgres://localhost/fitness", dsn)

	cfg.Backend = BackendBolt
	_, _, err = cfg.SQLDialect()
	assert.Error(t, err)
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{BackendMemory, BackendSQLite, BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DBPath: filepath.Join(t.TempDir(), "fitness.db")}

			store, err := cfg.OpenStorage(zerolog.Nop())
			require.NoError(t, err)
			defer store.Close()

			tip, err := store.CreateTip(ctx, domain.NewTip{Title: "Stretch", Category: "recovery"})
			require.NoError(t, err)
			got, err := store.GetTip(ctx, tip.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Stretch", got.Title)
		})
	}

	_, err := (&Config{Backend: "cassandra"}).OpenStorage(zerolog.Nop())
	assert.ErrorIs(t, err, repository.ErrUnknownBackend)
}
