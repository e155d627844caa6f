// Package postgres owns the database handle and schema bootstrap. The store
// is the final arbiter of write consistency: uniqueness of warga.nik is a
// primary key constraint here, not just the service-level pre-check.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS keluarga (
		id BIGSERIAL PRIMARY KEY,
		nama_keluarga TEXT NOT NULL,
		jumlah_anggota INT NOT NULL,
		rumah_id BIGINT,
		kepala_keluarga_id TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS warga (
		nik TEXT PRIMARY KEY,
		nama_warga TEXT NOT NULL,
		jenis_kelamin TEXT NOT NULL,
		status_domisili TEXT NOT NULL,
		status_hidup TEXT NOT NULL,
		keluarga_id BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_warga_keluarga_id ON warga (keluarga_id)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id UUID PRIMARY KEY,
		ts TIMESTAMPTZ NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate applies the schema. Statements are idempotent so boot can run them
// unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
