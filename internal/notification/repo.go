package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists notifications in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, title, message, created_at, read, type`

func scan(row store.Scanner) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.CreatedAt, &n.Read, &n.Type)
	return n, err
}

// Insert writes a notification.
func (r *Repository) Insert(ctx context.Context, n Notification) (Notification, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (id, title, message, type)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, n.ID, n.Title, n.Message, n.Type).Scan(&n.CreatedAt)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// List returns notifications newest first; limit <= 0 means all.
func (r *Repository) List(ctx context.Context, limit int) ([]Notification, error) {
	query := `SELECT ` + columns + ` FROM notifications ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Notification{}
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags one notification as read.
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification and returns how many changed.
func (r *Repository) MarkAllRead(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE read = FALSE`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
