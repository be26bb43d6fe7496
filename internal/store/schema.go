package store

import (
	"context"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS auth_users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		google_sub    TEXT UNIQUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES auth_users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		spiritual_name TEXT,
		email          TEXT NOT NULL UNIQUE,
		phone          TEXT NOT NULL DEFAULT '',
		photo_url      TEXT NOT NULL DEFAULT '',
		dob            DATE,
		address        TEXT NOT NULL DEFAULT '',
		city           TEXT NOT NULL DEFAULT '',
		state          TEXT NOT NULL DEFAULT '',
		country        TEXT NOT NULL DEFAULT '',
		role           TEXT NOT NULL DEFAULT 'student',
		category       TEXT NOT NULL,
		goals          TEXT NOT NULL DEFAULT '',
		hobbies        TEXT[] NOT NULL DEFAULT '{}',
		skills         TEXT[] NOT NULL DEFAULT '{}',
		interests      TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		date         TIMESTAMPTZ NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		facilitator  TEXT NOT NULL DEFAULT '',
		type         TEXT NOT NULL DEFAULT 'Regular',
		status       TEXT NOT NULL DEFAULT 'Upcoming',
		attendee_ids TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_attendees ON sessions USING GIN (attendee_ids)`,
	`CREATE TABLE IF NOT EXISTS homework (
		id             TEXT PRIMARY KEY,
		session_id     TEXT NOT NULL REFERENCES sessions(id),
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		attachment_url TEXT,
		due_date       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id           TEXT PRIMARY KEY,
		homework_id  TEXT NOT NULL REFERENCES homework(id),
		student_id   TEXT NOT NULL,
		file_url     TEXT,
		status       TEXT NOT NULL DEFAULT 'Pending',
		marks        INTEGER,
		feedback     TEXT,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id         TEXT PRIMARY KEY,
		session_id TEXT REFERENCES sessions(id),
		topic      TEXT NOT NULL,
		questions  JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id              TEXT PRIMARY KEY,
		quiz_id         TEXT NOT NULL REFERENCES quizzes(id),
		student_id      TEXT NOT NULL,
		score           INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
		total_questions INTEGER NOT NULL,
		completed_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_student ON quiz_results(student_id)`,
	`CREATE TABLE IF NOT EXISTS resources (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		type          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT '',
		url           TEXT NOT NULL,
		thumbnail_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS mentorship_requests (
		id         TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		mentor_id  TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'Pending',
		message    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		read       BOOLEAN NOT NULL DEFAULT FALSE,
		type       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS chanting_logs (
		id         TEXT PRIMARY KEY,
		user_email TEXT NOT NULL,
		date       DATE NOT NULL,
		rounds     INTEGER NOT NULL DEFAULT 0 CHECK (rounds >= 0),
		beads      INTEGER NOT NULL DEFAULT 0 CHECK (beads >= 0 AND beads < 108),
		UNIQUE (user_email, date)
	)`,
}

// Migrate creates every table the service needs.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
