package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The unique index on (student_id, job_id) is the authoritative guard against
// duplicate applications; the service-level pre-check only improves the error
// message.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		google_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS students_google_id_key ON students (google_id) WHERE google_id <> ''`,
	`CREATE TABLE IF NOT EXISTS employers (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		google_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS employers_google_id_key ON employers (google_id) WHERE google_id <> ''`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		employer_id UUID NOT NULL REFERENCES employers (id),
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL,
		salary TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES students (id),
		employer_id UUID NOT NULL REFERENCES employers (id),
		job_id UUID NOT NULL REFERENCES jobs (id),
		form_name TEXT NOT NULL DEFAULT '',
		form_srn TEXT NOT NULL DEFAULT '',
		form_college TEXT NOT NULL DEFAULT '',
		form_class10 TEXT NOT NULL DEFAULT '',
		form_class12 TEXT NOT NULL DEFAULT '',
		form_degree TEXT NOT NULL DEFAULT '',
		form_degree_cgpa TEXT NOT NULL DEFAULT '',
		form_skills TEXT[] NOT NULL DEFAULT '{}',
		form_projects TEXT NOT NULL DEFAULT '',
		form_resume TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (student_id, job_id)
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
