package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Role     Role
	Category string
}

// Store is the persistence the profile service needs.
type Store interface {
	Insert(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context, f Filter) ([]Profile, error)
	Update(ctx context.Context, p Profile) (Profile, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the devotee roster.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a profile on behalf of an admin; the id is generated.
func (s *Service) Create(ctx context.Context, p Profile) (Profile, error) {
	p.ID = uuid.NewString()
	return s.insert(ctx, p)
}

// Onboard creates the caller's own profile under their auth user id.
// Onboarding always yields a student; promotion is an admin action.
func (s *Service) Onboard(ctx context.Context, userID, email string, p Profile) (Profile, error) {
	existing, err := s.store.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if existing != nil {
		return Profile{}, ErrExists
	}
	p.ID = userID
	p.Email = email
	p.Role = RoleStudent
	return s.insert(ctx, p)
}

func (s *Service) insert(ctx context.Context, p Profile) (Profile, error) {
	p.Email = strings.TrimSpace(p.Email)
	p.normalize()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return s.store.Insert(ctx, p)
}

// Get returns the profile or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if p == nil {
		return Profile{}, ErrNotFound
	}
	return *p, nil
}

// GetByEmail returns nil, nil when the email has no profile.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return s.store.GetByEmail(ctx, strings.TrimSpace(email))
}

// List returns the roster.
func (s *Service) List(ctx context.Context, f Filter) ([]Profile, error) {
	return s.store.List(ctx, f)
}

// ListMentors returns every profile with the mentor role.
func (s *Service) ListMentors(ctx context.Context) ([]Profile, error) {
	return s.store.List(ctx, Filter{Role: RoleMentor})
}

// Update replaces a whole profile.
func (s *Service) Update(ctx context.Context, p Profile) (Profile, error) {
	p.normalize()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return s.store.Update(ctx, p)
}

// UpdateOwn replaces the caller's profile but keeps id, email and role as stored.
func (s *Service) UpdateOwn(ctx context.Context, id string, p Profile) (Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.ID = current.ID
	p.Email = current.Email
	p.Role = current.Role
	return s.Update(ctx, p)
}

// Delete removes a profile.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
