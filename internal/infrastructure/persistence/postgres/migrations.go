// Package postgres implements the PostgreSQL event-side persistence
// for the insights worker.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: USERS AND QUIZ SUBMISSIONS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create users and quiz_submissions tables
-- Version: 001

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    display_name VARCHAR(100) NOT NULL DEFAULT '',
    last_quiz_submission_time TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Active-user discovery scans by last submission time
CREATE INDEX IF NOT EXISTS idx_users_last_submission ON users(last_quiz_submission_time DESC);

CREATE TABLE IF NOT EXISTS quiz_submissions (
    id BIGSERIAL PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    subject VARCHAR(100) NOT NULL,
    score NUMERIC,
    responded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_subject CHECK (subject <> '')
);

-- Composite index for the trailing-window query per user
CREATE INDEX IF NOT EXISTS idx_quiz_submissions_user_responded
    ON quiz_submissions(user_id, responded_at DESC);
`

// migrations lists all schema migrations in order.
var migrations = []struct {
	version int
	name    string
	up      string
}{
	{1, "create_users_and_quiz_submissions", migration001Up},
}

// Migrator applies schema migrations. All statements are idempotent,
// so re-running at every worker start is safe.
type Migrator struct {
	conn   *Connection
	logger *slog.Logger
}

// NewMigrator creates a new Migrator.
func NewMigrator(conn *Connection, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{conn: conn, logger: logger}
}

// Migrate applies all pending migrations.
func (m *Migrator) Migrate(ctx context.Context) error {
	for _, migration := range migrations {
		if _, err := m.conn.Exec(ctx, migration.up); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMigrationFailed, migration.name, err)
		}
		m.logger.Debug("migration applied",
			"version", migration.version,
			"name", migration.name,
		)
	}
	return nil
}
