package mentorship

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists mentorship requests in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, student_id, mentor_id, status, message, created_at`

func scan(row store.Scanner) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.StudentID, &r.MentorID, &r.Status, &r.Message, &r.CreatedAt)
	return r, err
}

// Insert writes a new request.
func (r *Repository) Insert(ctx context.Context, req Request) (Request, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO mentorship_requests (id, student_id, mentor_id, status, message)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, req.ID, req.StudentID, req.MentorID, req.Status, req.Message).Scan(&req.CreatedAt)
	if err != nil {
		return Request{}, fmt.Errorf("insert mentorship request: %w", err)
	}
	return req, nil
}

// Get returns ErrNotFound when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (Request, error) {
	req, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM mentorship_requests WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return req, nil
}

// List returns requests matching f, newest first.
func (r *Repository) List(ctx context.Context, f Filter) ([]Request, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+columns+` FROM mentorship_requests
		WHERE ($1 = '' OR student_id = $1) AND ($2 = '' OR mentor_id = $2) AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
	`, f.StudentID, f.MentorID, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Request{}
	for rows.Next() {
		req, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// UpdateStatus closes a pending request with status. A request that is no longer
// pending yields ErrAlreadyClosed.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) (Request, error) {
	req, err := scan(r.db.QueryRow(ctx, `
		UPDATE mentorship_requests SET status = $2 WHERE id = $1 AND status = $3
		RETURNING `+columns, id, status, StatusPending))
	if err != nil {
		if store.IsNoRows(err) {
			if _, gerr := r.Get(ctx, id); gerr != nil {
				return Request{}, gerr
			}
			return Request{}, ErrAlreadyClosed
		}
		return Request{}, fmt.Errorf("update mentorship request: %w", err)
	}
	return req, nil
}
