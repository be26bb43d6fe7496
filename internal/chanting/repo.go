package chanting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists chanting logs in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, user_email, date, rounds, beads`

func scan(row store.Scanner) (Log, error) {
	var (
		l Log
		d time.Time
	)
	if err := row.Scan(&l.ID, &l.UserEmail, &d, &l.Rounds, &l.Beads); err != nil {
		return Log{}, err
	}
	l.Date = d.Format(DateLayout)
	return l, nil
}

// Get returns nil when the member has no log for the date.
func (r *Repository) Get(ctx context.Context, email string, date time.Time) (*Log, error) {
	l, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM chanting_logs WHERE user_email = $1 AND date = $2`, email, date))
	if err != nil {
		if store.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// UpsertRounds sets the rounds for (email, date), creating the row if needed.
func (r *Repository) UpsertRounds(ctx context.Context, email string, date time.Time, rounds int) (Log, error) {
	l, err := scan(r.db.QueryRow(ctx, `
		INSERT INTO chanting_logs (id, user_email, date, rounds)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_email, date) DO UPDATE SET rounds = EXCLUDED.rounds
		RETURNING `+columns, uuid.NewString(), email, date, rounds))
	if err != nil {
		return Log{}, fmt.Errorf("upsert chanting log: %w", err)
	}
	return l, nil
}

// UpdateCounter applies fn to the (email, date) counter under a row lock.
func (r *Repository) UpdateCounter(ctx context.Context, email string, date time.Time, fn func(Counter) Counter) (Log, error) {
	var out Log
	err := store.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO chanting_logs (id, user_email, date) VALUES ($1,$2,$3)
			ON CONFLICT (user_email, date) DO NOTHING
		`, uuid.NewString(), email, date); err != nil {
			return err
		}
		cur, err := scan(tx.QueryRow(ctx, `SELECT `+columns+` FROM chanting_logs WHERE user_email = $1 AND date = $2 FOR UPDATE`, email, date))
		if err != nil {
			return err
		}
		next := fn(Counter{Beads: cur.Beads, Rounds: cur.Rounds})
		out, err = scan(tx.QueryRow(ctx, `
			UPDATE chanting_logs SET rounds = $2, beads = $3 WHERE id = $1
			RETURNING `+columns, cur.ID, next.Rounds, next.Beads))
		return err
	})
	if err != nil {
		return Log{}, fmt.Errorf("update chanting counter: %w", err)
	}
	return out, nil
}

// History returns the member's logs, newest first; limit <= 0 means all.
func (r *Repository) History(ctx context.Context, email string, limit int) ([]Log, error) {
	query := `SELECT ` + columns + ` FROM chanting_logs WHERE user_email = $1 ORDER BY date DESC`
	args := []any{email}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Log{}
	for rows.Next() {
		l, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
