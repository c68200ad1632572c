package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

//go:embed schema.sql
var schema string

// DB holds the database connection
var DB *sql.DB

// InitDB opens the global connection for driver and applies the schema
func InitDB(driver, dsn string) error {
	conn, err := Open(driver, dsn)
	if err != nil {
		return err
	}
	if err := Migrate(context.Background(), conn); err != nil {
		conn.Close()
		return err
	}
	DB = conn
	log.Printf("✓ Database connection established successfully (%s)", driver)
	return nil
}

// Open opens and pings a connection
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == DriverSQLite {
		// :memory: databases live per connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// Migrate applies the embedded schema. Statements are idempotent.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

var placeholder = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $1..$n placeholders to ? for drivers that need it.
// Queries must use each numbered placeholder once, in order.
func Rebind(driver, query string) string {
	if driver != DriverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
