package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists sessions in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, title, description, date, location, facilitator, type, status, attendee_ids`

func scan(row store.Scanner) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Date, &s.Location, &s.Facilitator, &s.Type, &s.Status, &s.AttendeeIDs)
	return s, err
}

func collect(rows pgx.Rows) ([]Session, error) {
	defer rows.Close()
	res := []Session{}
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// Insert writes a new session.
func (r *Repository) Insert(ctx context.Context, s Session) (Session, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, title, description, date, location, facilitator, type, status, attendee_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, s.ID, s.Title, s.Description, s.Date, s.Location, s.Facilitator, s.Type, s.Status, store.NonNil(s.AttendeeIDs))
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// Get returns ErrNotFound when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (Session, error) {
	s, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM sessions WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

// List returns every session, most recent first.
func (r *Repository) List(ctx context.Context) ([]Session, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM sessions ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAttendedBy returns sessions whose attendee list contains profileID.
func (r *Repository) ListAttendedBy(ctx context.Context, profileID string) ([]Session, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM sessions WHERE attendee_ids @> ARRAY[$1]::text[] ORDER BY date DESC`, profileID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Update overwrites the whole row. Last write wins.
func (r *Repository) Update(ctx context.Context, s Session) (Session, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE sessions SET title = $2, description = $3, date = $4, location = $5, facilitator = $6,
			type = $7, status = $8, attendee_ids = $9
		WHERE id = $1
	`, s.ID, s.Title, s.Description, s.Date, s.Location, s.Facilitator, s.Type, s.Status, store.NonNil(s.AttendeeIDs))
	if err != nil {
		return Session{}, fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// UpdateAttendees rewrites the attendee list with fn while holding the row lock.
func (r *Repository) UpdateAttendees(ctx context.Context, id string, fn func([]string) []string) (Session, error) {
	var out Session
	err := store.InTx(ctx, r.db, func(tx pgx.Tx) error {
		s, err := scan(tx.QueryRow(ctx, `SELECT `+columns+` FROM sessions WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if store.IsNoRows(err) {
				return ErrNotFound
			}
			return err
		}
		s.AttendeeIDs = store.NonNil(fn(s.AttendeeIDs))
		if _, err := tx.Exec(ctx, `UPDATE sessions SET attendee_ids = $2 WHERE id = $1`, id, s.AttendeeIDs); err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

// Delete removes a session. Sessions referenced by homework or quizzes are kept.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
