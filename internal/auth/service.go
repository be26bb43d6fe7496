package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sangha/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidToken       = errors.New("invalid token")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
	ErrUnverifiedEmail    = errors.New("google account email is not verified")
)

// Store is the persistence the auth service needs.
type Store interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByGoogleSub(ctx context.Context, sub string) (*User, error)
	LinkGoogle(ctx context.Context, userID, sub string) error
	SaveRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, token string) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

// Session is what a successful sign-in hands back to the client.
type Session struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Options configure token issuance.
type Options struct {
	Issuer     string
	SigningKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service signs users up, in and out.
type Service struct {
	store     Store
	blacklist Blacklist
	google    IDTokenVerifier
	opts      Options
}

// NewService wires the auth service. blacklist and google may be nil.
func NewService(store Store, blacklist Blacklist, google IDTokenVerifier, opts Options) *Service {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	return &Service{store: store, blacklist: blacklist, google: google, opts: opts}
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emails = validation.New(nil)

// ValidEmail reports whether email is a bare address, without display name or brackets.
func ValidEmail(email string) bool {
	return emails.Var("email", email, "required,email") == nil
}

// SignUp creates a password identity and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (Session, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return Session{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return Session{}, ErrWeakPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, err
	}
	u, err := s.store.CreateUser(ctx, User{Email: email, PasswordHash: hash})
	if err != nil {
		return Session{}, err
	}
	return s.issue(ctx, u)
}

// SignIn checks a password and issues tokens.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	u, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return Session{}, err
	}
	if u == nil || !CheckPassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(ctx, *u)
}

// SignInWithGoogle completes the OAuth redirect flow from a verified ID token.
// Unknown subjects with a verified email are linked to an existing identity with
// the same email, or a new one is created.
func (s *Service) SignInWithGoogle(ctx context.Context, idToken string) (Session, error) {
	if s.google == nil {
		return Session{}, ErrGoogleDisabled
	}
	ident, err := s.google.Verify(idToken)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	u, err := s.store.GetUserByGoogleSub(ctx, ident.Subject)
	if err != nil {
		return Session{}, err
	}
	if u == nil {
		if !ident.EmailVerified {
			return Session{}, ErrUnverifiedEmail
		}
		email := NormalizeEmail(ident.Email)
		if !ValidEmail(email) {
			return Session{}, ErrInvalidEmail
		}
		u, err = s.store.GetUserByEmail(ctx, email)
		if err != nil {
			return Session{}, err
		}
		if u != nil {
			if err := s.store.LinkGoogle(ctx, u.ID, ident.Subject); err != nil {
				return Session{}, err
			}
		} else {
			sub := ident.Subject
			created, err := s.store.CreateUser(ctx, User{Email: email, GoogleSub: &sub})
			if err != nil {
				return Session{}, err
			}
			u = &created
		}
	}
	return s.issue(ctx, *u)
}

// Refresh rotates a refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := Parse(refreshToken, s.opts.SigningKey, s.opts.Issuer)
	if err != nil || claims.Kind != KindRefresh {
		return Session{}, ErrInvalidToken
	}
	userID, err := s.store.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		return Session{}, err
	}
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if u == nil {
		return Session{}, ErrInvalidToken
	}
	return s.issue(ctx, *u)
}

// SignOut revokes the refresh token and blacklists the access token.
func (s *Service) SignOut(ctx context.Context, access Claims, refreshToken string) error {
	if refreshToken != "" {
		if err := s.store.RevokeRefreshToken(ctx, refreshToken); err != nil {
			return err
		}
	}
	if s.blacklist != nil && access.ExpiresAt != nil {
		return s.blacklist.Revoke(ctx, access.ID, access.ExpiresAt.Time)
	}
	return nil
}

// CurrentUser loads the identity behind validated claims.
func (s *Service) CurrentUser(ctx context.Context, claims Claims) (*User, error) {
	u, err := s.store.GetUserByID(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

func (s *Service) issue(ctx context.Context, u User) (Session, error) {
	tokens, err := Issue(u.ID, u.Email, s.opts.Issuer, s.opts.SigningKey, s.opts.AccessTTL, s.opts.RefreshTTL)
	if err != nil {
		return Session{}, err
	}
	if err := s.store.SaveRefreshToken(ctx, u.ID, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		return Session{}, err
	}
	return Session{
		User:         u,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.AccessExp,
	}, nil
}
