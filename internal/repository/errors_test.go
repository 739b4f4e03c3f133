package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/fitness-tracker-backend/internal/db"
	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

func TestIsDuplicateKeyFromSQLite(t *testing.T) {
	database, err := db.Connect(db.SQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database, db.SQLite, zerolog.Nop()))
	store := NewSQLStore(database, db.SQLite)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	user := domain.NewUser{Username: "johnsmith", Password: "hash", Name: "John Smith", Email: "john@example.com"}
	_, err = store.CreateUser(ctx, user)
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, user)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.True(t, isConflict(err))
}

func TestConflictClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		duplicate bool
		conflict  bool
	}{
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062}, duplicate: true, conflict: true},
		{name: "mysql deadlock", err: &mysql.MySQLError{Number: 1213}, conflict: true},
		{name: "mysql other", err: &mysql.MySQLError{Number: 1146}},
		{name: "postgres unique", err: &pq.Error{Code: "23505"}, duplicate: true, conflict: true},
		{name: "postgres deadlock", err: &pq.Error{Code: "40P01"}, conflict: true},
		{name: "postgres serialization", err: &pq.Error{Code: "40001"}, conflict: true},
		{name: "wrapped", err: fmt.Errorf("failed to create stats: %w", &pq.Error{Code: "23505"}), duplicate: true, conflict: true},
		{name: "plain", err: errors.New("connection refused")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.duplicate, IsDuplicateKey(tt.err))
			assert.Equal(t, tt.conflict, isConflict(tt.err))
		})
	}
}
