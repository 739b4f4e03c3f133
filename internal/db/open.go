package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the SQL engines the SQL store
// runs on. Queries are written with ? placeholders and rebound per dialect.
type Dialect struct {
	Name      string
	Driver    string
	IDColumn  string
	Varchar   string
	Returning bool
	Numbered  bool
	// RowLocks marks engines that take SELECT ... FOR UPDATE. SQLite has no
	// row locks; its single connection serialises transactions instead.
	RowLocks  bool
}

var (
	MySQL = Dialect{
		Name:     "mysql",
		Driver:   "mysql",
		IDColumn: "BIGINT AUTO_INCREMENT PRIMARY KEY",
		Varchar:  "VARCHAR(255)",
		RowLocks: true,
	}
	SQLite = Dialect{
		Name:     "sqlite",
		Driver:   "sqlite",
		IDColumn: "INTEGER PRIMARY KEY AUTOINCREMENT",
		Varchar:  "TEXT",
	}
	Postgres = Dialect{
		Name:      "postgres",
		Driver:    "postgres",
		IDColumn:  "BIGSERIAL PRIMARY KEY",
		Varchar:   "VARCHAR(255)",
		Returning: true,
		Numbered:  true,
		RowLocks:  true,
	}
)

func DialectFor(name string) (Dialect, error) {
	switch name {
	case MySQL.Name:
		return MySQL, nil
	case SQLite.Name:
		return SQLite, nil
	case Postgres.Name:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
	}
}

// Rebind rewrites ? placeholders to $1, $2, ... for dialects that need it.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func Connect(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if d.Name == SQLite.Name {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
