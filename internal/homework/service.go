package homework

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sangha/internal/queue"
)

// Store is the persistence the homework service needs.
type Store interface {
	Insert(ctx context.Context, h Homework) (Homework, error)
	Get(ctx context.Context, id string) (Homework, error)
	List(ctx context.Context, sessionID string) ([]Homework, error)
	Update(ctx context.Context, h Homework) (Homework, error)
	Delete(ctx context.Context, id string) error
	InsertSubmission(ctx context.Context, s Submission) (Submission, error)
	GetSubmission(ctx context.Context, id string) (Submission, error)
	ListSubmissions(ctx context.Context, homeworkID, studentID string) ([]Submission, error)
	UpdateSubmission(ctx context.Context, s Submission) (Submission, error)
}

// Service manages homework, submissions and grading.
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

// Create assigns homework to a session and announces it.
func (s *Service) Create(ctx context.Context, h Homework) (Homework, error) {
	h.ID = uuid.NewString()
	if err := h.Validate(); err != nil {
		return Homework{}, err
	}
	out, err := s.store.Insert(ctx, h)
	if err != nil {
		return Homework{}, err
	}
	queue.Emit(ctx, s.events, s.log, queue.TypeHomeworkCreated, queue.Event{
		ID:     out.ID,
		Title:  out.Title,
		Detail: "due " + out.DueDate.Format("Mon 2 Jan"),
	})
	return out, nil
}

// Get returns one homework.
func (s *Service) Get(ctx context.Context, id string) (Homework, error) {
	return s.store.Get(ctx, id)
}

// List returns homework, optionally for a single session.
func (s *Service) List(ctx context.Context, sessionID string) ([]Homework, error) {
	return s.store.List(ctx, sessionID)
}

// Update replaces a homework.
func (s *Service) Update(ctx context.Context, h Homework) (Homework, error) {
	if err := h.Validate(); err != nil {
		return Homework{}, err
	}
	return s.store.Update(ctx, h)
}

// Delete removes a homework.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Submit records a student's submission for a homework.
func (s *Service) Submit(ctx context.Context, homeworkID, studentID string, fileURL *string) (Submission, error) {
	if _, err := s.store.Get(ctx, homeworkID); err != nil {
		return Submission{}, err
	}
	sub := Submission{
		ID:         uuid.NewString(),
		HomeworkID: homeworkID,
		StudentID:  studentID,
		FileURL:    fileURL,
		Status:     StatusSubmitted,
	}
	if err := sub.Validate(); err != nil {
		return Submission{}, err
	}
	return s.store.InsertSubmission(ctx, sub)
}

// Submissions lists submissions by homework and/or student.
func (s *Service) Submissions(ctx context.Context, homeworkID, studentID string) ([]Submission, error) {
	return s.store.ListSubmissions(ctx, homeworkID, studentID)
}

// Grade marks a submission graded with marks and feedback.
func (s *Service) Grade(ctx context.Context, submissionID string, g Grade) (Submission, error) {
	if err := validate.Struct("grade", g); err != nil {
		return Submission{}, err
	}
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	marks := g.Marks
	sub.Marks = &marks
	if g.Feedback != "" {
		feedback := g.Feedback
		sub.Feedback = &feedback
	}
	sub.Status = StatusGraded
	return s.store.UpdateSubmission(ctx, sub)
}
