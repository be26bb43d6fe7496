package quiz

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sangha/internal/queue"
	"sangha/internal/session"
)

// Store is the persistence the quiz service needs.
type Store interface {
	Insert(ctx context.Context, q Quiz) (Quiz, error)
	Get(ctx context.Context, id string) (Quiz, error)
	List(ctx context.Context) ([]Quiz, error)
	ListBySessions(ctx context.Context, sessionIDs []string) ([]Quiz, error)
	Update(ctx context.Context, q Quiz) (Quiz, error)
	Delete(ctx context.Context, id string) error
	InsertResult(ctx context.Context, r Result) (Result, error)
	ListResults(ctx context.Context, quizID, studentID string) ([]Result, error)
}

// AttendanceLookup finds the sessions a profile attended.
type AttendanceLookup interface {
	ListAttendedBy(ctx context.Context, profileID string) ([]session.Session, error)
}

// Service manages quizzes, attempts and the pending list.
type Service struct {
	store      Store
	attendance AttendanceLookup
	events     queue.Publisher
	log        *zap.Logger
}

// NewService creates a service. events may be nil.
func NewService(store Store, attendance AttendanceLookup, events queue.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, attendance: attendance, events: events, log: log}
}

func assignIDs(qs []Question) {
	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = uuid.NewString()
		}
	}
}

// Create stores a quiz and announces it.
func (s *Service) Create(ctx context.Context, q Quiz) (Quiz, error) {
	q.ID = uuid.NewString()
	q.normalize()
	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	assignIDs(q.Questions)
	out, err := s.store.Insert(ctx, q)
	if err != nil {
		return Quiz{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeQuizCreated, queue.Event{ID: out.ID, Title: out.Topic})
	return out, nil
}

// Get returns one quiz.
func (s *Service) Get(ctx context.Context, id string) (Quiz, error) {
	return s.store.Get(ctx, id)
}

// List returns every quiz.
func (s *Service) List(ctx context.Context) ([]Quiz, error) {
	return s.store.List(ctx)
}

// ListBySessions returns quizzes tied to the given sessions.
func (s *Service) ListBySessions(ctx context.Context, sessionIDs []string) ([]Quiz, error) {
	return s.store.ListBySessions(ctx, sessionIDs)
}

// Update replaces a quiz.
func (s *Service) Update(ctx context.Context, q Quiz) (Quiz, error) {
	q.normalize()
	if err := q.Validate(); err != nil {
		return Quiz{}, err
	}
	assignIDs(q.Questions)
	return s.store.Update(ctx, q)
}

// Delete removes a quiz.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Submit scores answers against the stored quiz and records the result.
// Unanswered questions count as wrong, so an empty answer map records 0.
func (s *Service) Submit(ctx context.Context, quizID, studentID string, answers map[int]int) (Result, error) {
	q, err := s.store.Get(ctx, quizID)
	if err != nil {
		return Result{}, err
	}
	return s.store.InsertResult(ctx, Result{
		ID:             uuid.NewString(),
		QuizID:         q.ID,
		StudentID:      studentID,
		Score:          Score(q.Questions, answers),
		TotalQuestions: len(q.Questions),
	})
}

// Results lists attempts by quiz and/or student.
func (s *Service) Results(ctx context.Context, quizID, studentID string) ([]Result, error) {
	return s.store.ListResults(ctx, quizID, studentID)
}

// Pending returns quizzes from sessions the student attended that they have not taken.
func (s *Service) Pending(ctx context.Context, studentID string) ([]Quiz, error) {
	attended, err := s.attendance.ListAttendedBy(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(attended) == 0 {
		return []Quiz{}, nil
	}
	ids := make([]string, 0, len(attended))
	for _, a := range attended {
		ids = append(ids, a.ID)
	}
	quizzes, err := s.store.ListBySessions(ctx, ids)
	if err != nil {
		return nil, err
	}
	results, err := s.store.ListResults(ctx, "", studentID)
	if err != nil {
		return nil, err
	}
	return PendingFor(ids, quizzes, results), nil
}
