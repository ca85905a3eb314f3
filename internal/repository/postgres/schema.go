package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cohorts (
        id UUID PRIMARY KEY,
        cohort_slug TEXT NOT NULL DEFAULT '',
        cohort_name TEXT NOT NULL DEFAULT '',
        program TEXT NOT NULL DEFAULT '',
        format TEXT NOT NULL DEFAULT '',
        campus TEXT NOT NULL DEFAULT '',
        start_date TIMESTAMPTZ,
        end_date TIMESTAMPTZ,
        in_progress BOOLEAN,
        program_manager TEXT NOT NULL DEFAULT '',
        lead_teacher TEXT NOT NULL DEFAULT '',
        total_hours DOUBLE PRECISION,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS cohorts_slug_unique ON cohorts (cohort_slug) WHERE cohort_slug <> ''`,
	`CREATE TABLE IF NOT EXISTS students (
        id UUID PRIMARY KEY,
        first_name TEXT NOT NULL DEFAULT '',
        last_name TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        linkedin_url TEXT NOT NULL DEFAULT '',
        languages TEXT[] NOT NULL DEFAULT '{}',
        program TEXT NOT NULL DEFAULT '',
        background TEXT NOT NULL DEFAULT '',
        image TEXT NOT NULL DEFAULT '',
        projects TEXT[] NOT NULL DEFAULT '{}',
        cohort_id UUID,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS students_cohort_idx ON students (cohort_id)`,
	`CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
// Student cohort references carry no foreign key so deleting a cohort can
// leave them dangling.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
