package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// User is an authentication identity. Profiles created at onboarding reuse its id.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GoogleSub    *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository persists auth users and refresh tokens in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, email, COALESCE(password_hash, ''), google_sub, created_at`

func scanUser(row store.Scanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.GoogleSub, &u.CreatedAt); err != nil {
		if store.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new identity.
func (r *Repository) CreateUser(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	var hash *string
	if u.PasswordHash != "" {
		hash = &u.PasswordHash
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO auth_users (id, email, password_hash, google_sub)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, u.ID, u.Email, hash, u.GoogleSub).Scan(&u.CreatedAt)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// GetUserByEmail returns nil when no identity uses the email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE email = $1`, email))
}

// GetUserByID returns nil when the id is unknown.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id))
}

// GetUserByGoogleSub returns nil when no identity is linked to the Google subject.
func (r *Repository) GetUserByGoogleSub(ctx context.Context, sub string) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE google_sub = $1`, sub))
}

// LinkGoogle attaches a Google subject to an existing identity.
func (r *Repository) LinkGoogle(ctx context.Context, userID, sub string) error {
	_, err := r.db.Exec(ctx, `UPDATE auth_users SET google_sub = $2 WHERE id = $1`, userID, sub)
	return err
}

// SaveRefreshToken stores a refresh token for rotation checks.
func (r *Repository) SaveRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	return err
}

// ConsumeRefreshToken revokes a live token and returns its owner.
// It returns ErrInvalidToken when the token is unknown, revoked or expired.
func (r *Repository) ConsumeRefreshToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE
		WHERE token = $1 AND NOT revoked AND expires_at > NOW()
		RETURNING user_id
	`, token).Scan(&userID)
	if err != nil {
		if store.IsNoRows(err) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return userID, nil
}

// RevokeRefreshToken marks a token revoked.
func (r *Repository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}
