package quiz

import (
	"errors"
	"math"
	"strings"
	"time"

	"sangha/internal/validation"
)

// OptionCount is the number of options every question offers.
const OptionCount = 4

var ErrNotFound = errors.New("quiz not found")

// Question is a single multiple-choice item.
type Question struct {
	ID           string   `json:"id"`
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"len=4,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"min=0,max=3"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Quiz is an ordered set of questions, optionally tied to a session.
type Quiz struct {
	ID        string     `json:"id"`
	SessionID *string    `json:"sessionId,omitempty"`
	Topic     string     `json:"topic" validate:"required"`
	Questions []Question `json:"questions" validate:"dive"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Result is a student's completed attempt.
type Result struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	StudentID      string    `json:"studentId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

var validate = validation.New(nil)

// Validate checks the topic and every question.
func (q Quiz) Validate() error { return validate.Struct("quiz", q) }

// Validate checks a single question.
func (q Question) Validate() error { return validate.Struct("question", q) }

func (q *Quiz) normalize() {
	q.Topic = strings.TrimSpace(q.Topic)
	if q.SessionID != nil && strings.TrimSpace(*q.SessionID) == "" {
		q.SessionID = nil
	}
	if q.Questions == nil {
		q.Questions = []Question{}
	}
}

// Score returns round(100 * correct / len(questions)).
// answers maps question index to the chosen option index.
func Score(questions []Question, answers map[int]int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if chosen, ok := answers[i]; ok && chosen == q.CorrectIndex {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// PendingFor returns the quizzes tied to attended sessions with no result for the student.
func PendingFor(attended []string, quizzes []Quiz, results []Result) []Quiz {
	sessions := make(map[string]struct{}, len(attended))
	for _, id := range attended {
		sessions[id] = struct{}{}
	}
	done := make(map[string]struct{}, len(results))
	for _, r := range results {
		done[r.QuizID] = struct{}{}
	}
	out := []Quiz{}
	for _, q := range quizzes {
		if q.SessionID == nil {
			continue
		}
		if _, ok := sessions[*q.SessionID]; !ok {
			continue
		}
		if _, ok := done[q.ID]; ok {
			continue
		}
		out = append(out, q)
	}
	return out
}
