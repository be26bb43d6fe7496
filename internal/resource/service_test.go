package resource

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangha/internal/validation"
)

type memStore struct {
	mu   sync.Mutex
	rows map[string]Resource
}

func (m *memStore) Insert(_ context.Context, r Resource) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[r.ID] = r
	return r, nil
}

func (m *memStore) Get(_ context.Context, id string) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return Resource{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) List(_ context.Context, f Filter) ([]Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Resource{}
	for _, r := range m.rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, r Resource) (Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; !ok {
		return Resource{}, ErrNotFound
	}
	m.rows[r.ID] = r
	return r, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func TestCreateValidatesType(t *testing.T) {
	svc := NewService(&memStore{rows: map[string]Resource{}}, nil, nil)
	tests := []struct {
		name  string
		in    Resource
		valid bool
	}{
		{name: "book", in: Resource{Title: "Gita", Type: TypeBook, URL: "https://example.org/gita"}, valid: true},
		{name: "photo", in: Resource{Title: "Altar", Type: TypePhoto, URL: "https://example.org/a.jpg"}, valid: true},
		{name: "unknown type", in: Resource{Title: "Podcast", Type: "audio", URL: "https://example.org/p"}},
		{name: "bad url", in: Resource{Title: "Gita", Type: TypeBook, URL: "not a url"}},
		{name: "no title", in: Resource{Type: TypeVideo, URL: "https://example.org/v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, validation.IsInvalid(err))
		})
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memStore{rows: map[string]Resource{}}, nil, nil)
	for _, r := range []Resource{
		{Title: "Gita", Type: TypeBook, Category: "scripture", URL: "https://example.org/1"},
		{Title: "Bhagavatam", Type: TypeBook, Category: "scripture", URL: "https://example.org/2"},
		{Title: "Kirtan night", Type: TypeVideo, Category: "music", URL: "https://example.org/3"},
	} {
		_, err := svc.Create(ctx, r)
		require.NoError(t, err)
	}

	books, err := svc.List(ctx, Filter{Type: TypeBook})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	music, err := svc.List(ctx, Filter{Category: "music"})
	require.NoError(t, err)
	assert.Len(t, music, 1)

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
