package mentorship

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sangha/internal/profile"
	"sangha/internal/queue"
	"sangha/internal/validation"
)

// Store is the persistence the mentorship service needs.
type Store interface {
	Insert(ctx context.Context, r Request) (Request, error)
	Get(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, f Filter) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Request, error)
}

// Directory looks up profiles to find mentors.
type Directory interface {
	Get(ctx context.Context, id string) (profile.Profile, error)
	ListMentors(ctx context.Context) ([]profile.Profile, error)
}

// Service runs the mentorship board.
type Service struct {
	store  Store
	people Directory
	events queue.Publisher
	log    *zap.Logger
}

// NewService creates a service. events may be nil.
func NewService(store Store, people Directory, events queue.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, people: people, events: events, log: log}
}

// Mentors lists every profile with the mentor role.
func (s *Service) Mentors(ctx context.Context) ([]profile.Profile, error) {
	return s.people.ListMentors(ctx)
}

// Request opens a pending request from a student to a mentor.
func (s *Service) Request(ctx context.Context, studentID, mentorID, message string) (Request, error) {
	if strings.TrimSpace(mentorID) == "" {
		return Request{}, validation.Invalid("mentorship request", "mentorId")
	}
	mentor, err := s.people.Get(ctx, mentorID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return Request{}, ErrNotMentor
		}
		return Request{}, err
	}
	if mentor.Role != profile.RoleMentor {
		return Request{}, ErrNotMentor
	}
	out, err := s.store.Insert(ctx, Request{
		ID:        uuid.NewString(),
		StudentID: studentID,
		MentorID:  mentorID,
		Status:    StatusPending,
		Message:   strings.TrimSpace(message),
	})
	if err != nil {
		return Request{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeMentorshipRequested, queue.Event{
		ID:     out.ID,
		Title:  "New mentorship request",
		Detail: mentor.Name,
	})
	return out, nil
}

// List returns requests matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]Request, error) {
	return s.store.List(ctx, f)
}

// Decide accepts or rejects a pending request. Mentors may only decide their own.
func (s *Service) Decide(ctx context.Context, id string, status Status, by profile.Profile) (Request, error) {
	if status != StatusAccepted && status != StatusRejected {
		return Request{}, ErrBadDecision
	}
	req, err := s.store.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if by.Role != profile.RoleAdmin && req.MentorID != by.ID {
		return Request{}, ErrNotYours
	}
	if req.Status != StatusPending {
		return Request{}, ErrAlreadyClosed
	}
	out, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return Request{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeMentorshipDecided, queue.Event{
		ID:     out.ID,
		Title:  "Mentorship request " + strings.ToLower(string(out.Status)),
		Detail: by.Name,
	})
	return out, nil
}
