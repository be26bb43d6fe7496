package chanting

import (
	"context"
	"time"
)

// Store is the persistence the chanting service needs.
type Store interface {
	Get(ctx context.Context, email string, date time.Time) (*Log, error)
	UpsertRounds(ctx context.Context, email string, date time.Time, rounds int) (Log, error)
	UpdateCounter(ctx context.Context, email string, date time.Time, fn func(Counter) Counter) (Log, error)
	History(ctx context.Context, email string, limit int) ([]Log, error)
}

// Service tracks daily japa rounds.
type Service struct {
	store Store
}

// NewService creates a service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the member's log for date, or nil if none exists.
func (s *Service) Get(ctx context.Context, email, date string) (*Log, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, email, d)
}

// SetRounds records the completed rounds for a day.
func (s *Service) SetRounds(ctx context.Context, email, date string, rounds int) (Log, error) {
	if rounds < 0 {
		return Log{}, ErrNegative
	}
	d, err := ParseDate(date)
	if err != nil {
		return Log{}, err
	}
	return s.store.UpsertRounds(ctx, email, d, rounds)
}

// AddBeads advances the bead counter by n.
func (s *Service) AddBeads(ctx context.Context, email, date string, n int) (Log, error) {
	if n <= 0 {
		return Log{}, ErrNoBeads
	}
	d, err := ParseDate(date)
	if err != nil {
		return Log{}, err
	}
	return s.store.UpdateCounter(ctx, email, d, func(c Counter) Counter { return c.Add(n) })
}

// History returns recent logs for a member.
func (s *Service) History(ctx context.Context, email string, limit int) ([]Log, error) {
	return s.store.History(ctx, email, limit)
}
