package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouncecure/internal/domain"
)

// Dialect selects the SQL flavour of a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DB is a SQL-backed TemplateStore. Each key is one row of store_entries.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

var _ domain.TemplateStore = (*DB)(nil)

func open(conn *sql.DB, dialect Dialect) (*DB, error) {
	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) Dialect() Dialect { return db.dialect }

func (db *DB) migrate() error {
	valueType := "TEXT"
	keyType := "TEXT"
	if db.dialect == DialectMySQL {
		valueType = "LONGTEXT"
		keyType = "VARCHAR(191)"
	}
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS store_entries (
			entry_key ` + keyType + ` PRIMARY KEY,
			value_json ` + valueType + ` NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %s: %w", strings.TrimSpace(m[:40]), err)
		}
	}
	return nil
}

// bind rewrites ? placeholders for the dialect.
func (db *DB) bind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		db.bind(`SELECT value_json FROM store_entries WHERE entry_key = ?`), key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), nil
}

func (db *DB) Save(ctx context.Context, key string, value []byte) error {
	var query string
	switch db.dialect {
	case DialectMySQL:
		query = `INSERT INTO store_entries (entry_key, value_json, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE value_json = VALUES(value_json), updated_at = VALUES(updated_at)`
	default:
		query = `INSERT INTO store_entries (entry_key, value_json, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(entry_key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at`
	}
	if _, err := db.conn.ExecContext(ctx, db.bind(query), key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in name order.
func (db *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT entry_key FROM store_entries ORDER BY entry_key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Delete removes a key. Missing keys are not an error.
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, db.bind(`DELETE FROM store_entries WHERE entry_key = ?`), key)
	return err
}
