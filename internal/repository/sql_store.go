package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yusufkecer/fitness-tracker-backend/internal/db"
)

// timeLayout is fixed width so that stored timestamps sort lexically in
// chronological order on every engine.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// SQLStore implements Storage on top of database/sql for MySQL, SQLite and
// PostgreSQL. The schema comes from db.RunMigrations.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
	opts    options
}

var _ Storage = (*SQLStore)(nil)

func NewSQLStore(database *sql.DB, dialect db.Dialect, opts ...Option) *SQLStore {
	return &SQLStore{db: database, dialect: dialect, opts: buildOptions(opts)}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) now() time.Time {
	return s.opts.now().UTC()
}

func (s *SQLStore) exec(ctx context.Context, q queryer, query string, args ...interface{}) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, q queryer, query string, args ...interface{}) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, q queryer, query string, args ...interface{}) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

// insert runs an INSERT and returns the generated id.
func (s *SQLStore) insert(ctx context.Context, q queryer, query string, args ...interface{}) (int64, error) {
	if s.dialect.Returning {
		var id int64
		if err := s.queryRow(ctx, q, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	result, err := s.exec(ctx, q, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) delete(ctx context.Context, table string, id int64) (bool, error) {
	result, err := s.exec(ctx, s.db, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return affected > 0, nil
}

// forUpdate locks the rows a read-modify-write transaction is about to
// overwrite, so a concurrent update waits instead of writing stale columns.
func (s *SQLStore) forUpdate(query string, lock bool) string {
	if lock && s.dialect.RowLocks {
		return query + " FOR UPDATE"
	}
	return query
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// timeColumn scans a text timestamp column into a time.Time.
type timeColumn struct{ dst *time.Time }

func (c timeColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		t, err := parseTime(v)
		*c.dst = t
		return err
	case []byte:
		t, err := parseTime(string(v))
		*c.dst = t
		return err
	case time.Time:
		*c.dst = v
		return nil
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
}

// nullTimeColumn scans a nullable text timestamp column.
type nullTimeColumn struct{ dst **time.Time }

func (c nullTimeColumn) Scan(src interface{}) error {
	if src == nil {
		*c.dst = nil
		return nil
	}
	var t time.Time
	if err := (timeColumn{dst: &t}).Scan(src); err != nil {
		return err
	}
	*c.dst = &t
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func nullableString(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return int64(*p)
}
