package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema es idempotente; gen_random_uuid() viene de core desde PG 13.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id   text NOT NULL,
		content    text NOT NULL CHECK (length(btrim(content)) > 0),
		annotation text NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS journal_entries_owner_created_idx
		ON journal_entries (owner_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id   text NOT NULL,
		mood       text NOT NULL,
		note       text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS mood_entries_owner_created_idx
		ON mood_entries (owner_id, created_at DESC)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
