package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert profile: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, NonNil(nil))
	assert.Equal(t, []string{"a"}, NonNil([]string{"a"}))
}

func TestSchemaCoversEveryTable(t *testing.T) {
	tables := []string{
		"auth_users", "refresh_tokens", "profiles", "sessions", "homework", "submissions",
		"quizzes", "quiz_results", "resources", "mentorship_requests", "notifications", "chanting_logs",
	}
	for _, table := range tables {
		found := false
		for _, stmt := range schema {
			if containsCreate(stmt, table) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing table %s", table)
	}
}

func containsCreate(stmt, table string) bool {
	prefix := "CREATE TABLE IF NOT EXISTS " + table + " ("
	return len(stmt) >= len(prefix) && stmt[:len(prefix)] == prefix
}

func TestNilHandlesAreSafe(t *testing.T) {
	var p *Postgres
	p.Close()
	assert.False(t, p.Healthy(context.Background()))

	var r *Redis
	assert.NoError(t, r.Close())
	assert.False(t, r.Healthy(context.Background()))
}
