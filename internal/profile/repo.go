package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists profiles in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, name, spiritual_name, email, phone, photo_url, dob, address, city, state, country,
	role, category, goals, hobbies, skills, interests, created_at`

func scan(row store.Scanner) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.SpiritualName, &p.Email, &p.Phone, &p.PhotoURL, &p.DOB,
		&p.Address, &p.City, &p.State, &p.Country, &p.Role, &p.Category, &p.Goals,
		&p.Hobbies, &p.Skills, &p.Interests, &p.CreatedAt)
	return p, err
}

// Insert writes a new profile and returns it with its creation time.
func (r *Repository) Insert(ctx context.Context, p Profile) (Profile, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, name, spiritual_name, email, phone, photo_url, dob, address, city, state, country,
			role, category, goals, hobbies, skills, interests)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING created_at
	`, p.ID, p.Name, p.SpiritualName, p.Email, p.Phone, p.PhotoURL, p.DOB, p.Address, p.City, p.State, p.Country,
		p.Role, p.Category, p.Goals, store.NonNil(p.Hobbies), store.NonNil(p.Skills), store.NonNil(p.Interests))
	if err := row.Scan(&p.CreatedAt); err != nil {
		if store.IsUniqueViolation(err) {
			if strings.Contains(err.Error(), "email") {
				return Profile{}, ErrEmailTaken
			}
			return Profile{}, ErrExists
		}
		return Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// Get returns nil when no profile has the id.
func (r *Repository) Get(ctx context.Context, id string) (*Profile, error) {
	return r.one(ctx, `SELECT `+columns+` FROM profiles WHERE id = $1`, id)
}

// GetByEmail returns nil when no profile has the email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.one(ctx, `SELECT `+columns+` FROM profiles WHERE lower(email) = lower($1)`, email)
}

func (r *Repository) one(ctx context.Context, query string, args ...any) (*Profile, error) {
	p, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if store.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List returns profiles matching the filter, ordered by name.
func (r *Repository) List(ctx context.Context, f Filter) ([]Profile, error) {
	query := `SELECT ` + columns + ` FROM profiles`
	var args []any
	var clauses []string
	if f.Role != "" {
		args = append(args, f.Role)
		clauses = append(clauses, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Profile{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// Update overwrites every mutable column. Last write wins.
func (r *Repository) Update(ctx context.Context, p Profile) (Profile, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE profiles SET name = $2, spiritual_name = $3, email = $4, phone = $5, photo_url = $6, dob = $7,
			address = $8, city = $9, state = $10, country = $11, role = $12, category = $13, goals = $14,
			hobbies = $15, skills = $16, interests = $17
		WHERE id = $1
		RETURNING created_at
	`, p.ID, p.Name, p.SpiritualName, p.Email, p.Phone, p.PhotoURL, p.DOB, p.Address, p.City, p.State, p.Country,
		p.Role, p.Category, p.Goals, store.NonNil(p.Hobbies), store.NonNil(p.Skills), store.NonNil(p.Interests))
	if err := row.Scan(&p.CreatedAt); err != nil {
		if store.IsNoRows(err) {
			return Profile{}, ErrNotFound
		}
		if store.IsUniqueViolation(err) {
			return Profile{}, ErrEmailTaken
		}
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// Delete removes a profile. References held by sessions are left as they are.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRole changes the role of the profile with the email.
func (r *Repository) SetRole(ctx context.Context, email string, role Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET role = $2 WHERE lower(email) = lower($1)`, email, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
