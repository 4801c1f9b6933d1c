package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the session tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		username    TEXT NOT NULL,
		full_name   TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT 'employee',
		permissions TEXT NOT NULL DEFAULT '', -- comma separated permission names
		token       TEXT NOT NULL,
		token_exp   INTEGER NOT NULL DEFAULT 0,
		created_at  INTEGER NOT NULL,
		expires_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
