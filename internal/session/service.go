package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sangha/internal/profile"
	"sangha/internal/queue"
	"sangha/internal/validation"
)

// Store is the persistence the session service needs.
type Store interface {
	Insert(ctx context.Context, s Session) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	List(ctx context.Context) ([]Session, error)
	ListAttendedBy(ctx context.Context, profileID string) ([]Session, error)
	Update(ctx context.Context, s Session) (Session, error)
	UpdateAttendees(ctx context.Context, id string, fn func([]string) []string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// Roster resolves attendee ids to profiles.
type Roster interface {
	Get(ctx context.Context, id string) (profile.Profile, error)
}

// Service manages gatherings and their attendance.
type Service struct {
	store  Store
	people Roster
	events queue.Publisher
	log    *zap.Logger
}

// NewService creates a service. events may be nil.
func NewService(store Store, people Roster, events queue.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, people: people, events: events, log: log}
}

// checkAttendees fails when any id in ids not already on known is not a profile.
func (s *Service) checkAttendees(ctx context.Context, ids []string, known Session) error {
	for _, id := range ids {
		if known.Attended(id) {
			continue
		}
		if _, err := s.people.Get(ctx, id); err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				return validation.Invalid("session", "Session.AttendeeIDs")
			}
			return err
		}
	}
	return nil
}

// Create schedules a session and announces it.
func (s *Service) Create(ctx context.Context, in Session) (Session, error) {
	in.ID = uuid.NewString()
	in.normalize()
	if err := in.Validate(); err != nil {
		return Session{}, err
	}
	if err := s.checkAttendees(ctx, in.AttendeeIDs, Session{}); err != nil {
		return Session{}, err
	}
	out, err := s.store.Insert(ctx, in)
	if err != nil {
		return Session{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeSessionCreated, queue.Event{
		ID:     out.ID,
		Title:  out.Title,
		Detail: out.Date.Format("Mon 2 Jan 15:04"),
	})
	return out, nil
}

// Get returns one session.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Get(ctx, id)
}

// List returns all sessions.
func (s *Service) List(ctx context.Context) ([]Session, error) {
	return s.store.List(ctx)
}

// ListAttendedBy returns the sessions a profile attended.
func (s *Service) ListAttendedBy(ctx context.Context, profileID string) ([]Session, error) {
	return s.store.ListAttendedBy(ctx, profileID)
}

// Update replaces a session. Attendees already on the session are kept even
// if their profile was removed since.
func (s *Service) Update(ctx context.Context, in Session) (Session, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return Session{}, err
	}
	cur, err := s.store.Get(ctx, in.ID)
	if err != nil {
		return Session{}, err
	}
	if err := s.checkAttendees(ctx, in.AttendeeIDs, cur); err != nil {
		return Session{}, err
	}
	return s.store.Update(ctx, in)
}

// ToggleAttendance marks profileID present, or absent when already present.
// Only existing profiles can be marked present; stale ids can still be removed.
func (s *Service) ToggleAttendance(ctx context.Context, sessionID, profileID string) (Session, error) {
	_, err := s.people.Get(ctx, profileID)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		return Session{}, err
	}
	if err == nil {
		return s.store.UpdateAttendees(ctx, sessionID, func(ids []string) []string {
			return ToggleAttendee(ids, profileID)
		})
	}
	removed := false
	out, uerr := s.store.UpdateAttendees(ctx, sessionID, func(ids []string) []string {
		if !(Session{AttendeeIDs: ids}).Attended(profileID) {
			return ids
		}
		removed = true
		return ToggleAttendee(ids, profileID)
	})
	if uerr != nil {
		return Session{}, uerr
	}
	if !removed {
		return Session{}, err
	}
	return out, nil
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
