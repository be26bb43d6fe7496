package resource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists resources in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, title, type, category, url, thumbnail_url`

func scan(row store.Scanner) (Resource, error) {
	var r Resource
	err := row.Scan(&r.ID, &r.Title, &r.Type, &r.Category, &r.URL, &r.ThumbnailURL)
	return r, err
}

// Insert writes a new resource.
func (r *Repository) Insert(ctx context.Context, res Resource) (Resource, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (id, title, type, category, url, thumbnail_url)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, res.ID, res.Title, res.Type, res.Category, res.URL, res.ThumbnailURL)
	if err != nil {
		return Resource{}, fmt.Errorf("insert resource: %w", err)
	}
	return res, nil
}

// Get returns ErrNotFound when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (Resource, error) {
	res, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Resource{}, ErrNotFound
		}
		return Resource{}, err
	}
	return res, nil
}

// List returns resources matching f ordered by title.
func (r *Repository) List(ctx context.Context, f Filter) ([]Resource, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+columns+` FROM resources
		WHERE ($1 = '' OR type = $1) AND ($2 = '' OR category = $2)
		ORDER BY title
	`, string(f.Type), f.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Resource{}
	for rows.Next() {
		res, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update overwrites a resource.
func (r *Repository) Update(ctx context.Context, res Resource) (Resource, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE resources SET title = $2, type = $3, category = $4, url = $5, thumbnail_url = $6
		WHERE id = $1
	`, res.ID, res.Title, res.Type, res.Category, res.URL, res.ThumbnailURL)
	if err != nil {
		return Resource{}, fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Resource{}, ErrNotFound
	}
	return res, nil
}

// Delete removes a resource.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
