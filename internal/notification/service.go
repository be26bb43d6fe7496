package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sangha/internal/validation"
)

// Store is the persistence the notification service needs.
type Store interface {
	Insert(ctx context.Context, n Notification) (Notification, error)
	List(ctx context.Context, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the notification feed.
type Service struct {
	store Store
}

// NewService creates a service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

var validate = validation.New(nil)

// Create posts a notification. An empty type tag is stored as NULL.
func (s *Service) Create(ctx context.Context, n Notification) (Notification, error) {
	n.ID = uuid.NewString()
	n.Title = strings.TrimSpace(n.Title)
	n.Read = false
	if n.Type != nil && *n.Type == "" {
		n.Type = nil
	}
	if err := validate.Struct("notification", n); err != nil {
		return Notification{}, err
	}
	return s.store.Insert(ctx, n)
}

func (s *Service) List(ctx context.Context, limit int) ([]Notification, error) {
	return s.store.List(ctx, limit)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.store.MarkAllRead(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
