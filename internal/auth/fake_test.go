package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memStore struct {
	mu      sync.Mutex
	users   map[string]User
	refresh map[string]refreshRow
}

type refreshRow struct {
	userID  string
	exp     time.Time
	revoked bool
}

func newMemStore() *memStore {
	return &memStore{users: map[string]User{}, refresh: map[string]refreshRow{}}
}

func (m *memStore) CreateUser(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) find(match func(User) bool) *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*User, error) {
	return m.find(func(u User) bool { return u.Email == email }), nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*User, error) {
	return m.find(func(u User) bool { return u.ID == id }), nil
}

func (m *memStore) GetUserByGoogleSub(_ context.Context, sub string) (*User, error) {
	return m.find(func(u User) bool { return u.GoogleSub != nil && *u.GoogleSub == sub }), nil
}

func (m *memStore) LinkGoogle(_ context.Context, userID, sub string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	u.GoogleSub = &sub
	m.users[userID] = u
	return nil
}

func (m *memStore) SaveRefreshToken(_ context.Context, userID, token string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[token] = refreshRow{userID: userID, exp: exp}
	return nil
}

func (m *memStore) ConsumeRefreshToken(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.refresh[token]
	if !ok || row.revoked || time.Now().After(row.exp) {
		return "", ErrInvalidToken
	}
	row.revoked = true
	m.refresh[token] = row
	return row.userID, nil
}

func (m *memStore) RevokeRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.refresh[token]; ok {
		row.revoked = true
		m.refresh[token] = row
	}
	return nil
}

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{revoked: map[string]time.Time{}}
}

func (b *memBlacklist) Revoke(_ context.Context, jti string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = until
	return nil
}

func (b *memBlacklist) Revoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[jti]
	return ok, nil
}

type stubVerifier struct {
	ident GoogleIdentity
	err   error
}

func (s stubVerifier) Verify(string) (GoogleIdentity, error) { return s.ident, s.err }
