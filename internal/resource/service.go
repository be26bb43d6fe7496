package resource

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sangha/internal/queue"
)

// Store is the persistence the resource service needs.
type Store interface {
	Insert(ctx context.Context, r Resource) (Resource, error)
	Get(ctx context.Context, id string) (Resource, error)
	List(ctx context.Context, f Filter) ([]Resource, error)
	Update(ctx context.Context, r Resource) (Resource, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the resource library.
type Service struct {
	store  Store
	events queue.Publisher
	log    *zap.Logger
}

// NewService creates a service. events may be nil.
func NewService(store Store, events queue.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, events: events, log: log}
}

// Create adds a resource and announces it.
func (s *Service) Create(ctx context.Context, r Resource) (Resource, error) {
	r.ID = uuid.NewString()
	if err := r.Validate(); err != nil {
		return Resource{}, err
	}
	out, err := s.store.Insert(ctx, r)
	if err != nil {
		return Resource{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeResourceCreated, queue.Event{
		ID:     out.ID,
		Title:  out.Title,
		Detail: string(out.Type),
	})
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Resource, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Resource, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, r Resource) (Resource, error) {
	if err := r.Validate(); err != nil {
		return Resource{}, err
	}
	return s.store.Update(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
