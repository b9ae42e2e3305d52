package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewPostgres connects to PostgreSQL using a lib/pq connection string.
func NewPostgres(dsn string) (*DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return open(conn, DialectPostgres)
}
