package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats is the admin overview.
type Stats struct {
	TotalDevotees      int     `json:"totalDevotees"`
	Mentors            int     `json:"mentors"`
	UpcomingSessions   int     `json:"upcomingSessions"`
	CompletedSessions  int     `json:"completedSessions"`
	PendingMentorships int     `json:"pendingMentorships"`
	Resources          int     `json:"resources"`
	Quizzes            int     `json:"quizzes"`
	QuizAttempts       int     `json:"quizAttempts"`
	AverageQuizScore   float64 `json:"averageQuizScore"`
	RoundsToday        int     `json:"roundsToday"`
}

// Source loads the raw counts.
type Source interface {
	Stats(ctx context.Context, today time.Time) (Stats, error)
}

// Repository aggregates counts straight from Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Stats runs every count in one round trip.
func (r *Repository) Stats(ctx context.Context, today time.Time) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM profiles WHERE role = 'student'),
			(SELECT COUNT(*) FROM profiles WHERE role = 'mentor'),
			(SELECT COUNT(*) FROM sessions WHERE status = 'Upcoming'),
			(SELECT COUNT(*) FROM sessions WHERE status = 'Completed'),
			(SELECT COUNT(*) FROM mentorship_requests WHERE status = 'Pending'),
			(SELECT COUNT(*) FROM resources),
			(SELECT COUNT(*) FROM quizzes),
			(SELECT COUNT(*) FROM quiz_results),
			(SELECT COALESCE(AVG(score), 0)::float8 FROM quiz_results),
			(SELECT COALESCE(SUM(rounds), 0) FROM chanting_logs WHERE date = $1)
	`, today).Scan(&s.TotalDevotees, &s.Mentors, &s.UpcomingSessions, &s.CompletedSessions,
		&s.PendingMentorships, &s.Resources, &s.Quizzes, &s.QuizAttempts, &s.AverageQuizScore, &s.RoundsToday)
	return s, err
}

// Service serves the dashboard.
type Service struct {
	src Source
	now func() time.Time
}

// NewService creates a service.
func NewService(src Source) *Service {
	return &Service{src: src, now: time.Now}
}

// Stats returns the overview for today, with the average score rounded to one decimal.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	st, err := s.src.Stats(ctx, today)
	if err != nil {
		return Stats{}, err
	}
	st.AverageQuizScore = float64(int(st.AverageQuizScore*10+0.5)) / 10
	return st, nil
}
