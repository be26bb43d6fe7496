package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sangha/internal/validation"
)

func questions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: i % OptionCount}
	}
	return qs
}

func TestScore(t *testing.T) {
	qs := questions(5)
	allCorrect := map[int]int{}
	for i, q := range qs {
		allCorrect[i] = q.CorrectIndex
	}

	tests := []struct {
		name    string
		qs      []Question
		answers map[int]int
		want    int
	}{
		{name: "all correct", qs: qs, answers: allCorrect, want: 100},
		{name: "none answered", qs: qs, answers: map[int]int{}, want: 0},
		{name: "all wrong", qs: qs, answers: map[int]int{0: 3, 1: 0, 2: 0, 3: 0, 4: 1}, want: 0},
		{name: "four of five", qs: qs, answers: map[int]int{0: 0, 1: 1, 2: 2, 3: 3}, want: 80},
		{name: "one of three rounds", qs: questions(3), answers: map[int]int{0: 0}, want: 33},
		{name: "two of three rounds up", qs: questions(3), answers: map[int]int{0: 0, 1: 1}, want: 67},
		{name: "no questions", qs: nil, answers: map[int]int{0: 1}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.qs, tt.answers))
		})
	}
}

func ptr(s string) *string { return &s }

func TestPendingFor(t *testing.T) {
	quizzes := []Quiz{
		{ID: "q1", SessionID: ptr("s1")},
		{ID: "q2", SessionID: ptr("s2")},
		{ID: "q3", SessionID: ptr("s1")},
		{ID: "q4"},
	}
	results := []Result{{QuizID: "q3", StudentID: "st"}}

	got := PendingFor([]string{"s1"}, quizzes, results)
	ids := []string{}
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"q1"}, ids)

	assert.Empty(t, PendingFor(nil, quizzes, nil))
}

func TestQuestionValidation(t *testing.T) {
	tests := []struct {
		name  string
		q     Question
		valid bool
	}{
		{name: "ok", q: Question{Question: "Who spoke the Gita?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2}, valid: true},
		{name: "three options", q: Question{Question: "x", Options: []string{"a", "b", "c"}}},
		{name: "blank option", q: Question{Question: "x", Options: []string{"a", "", "c", "d"}}},
		{name: "index out of range", q: Question{Question: "x", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 4}},
		{name: "no text", q: Question{Options: []string{"a", "b", "c", "d"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, validation.IsInvalid(err))
		})
	}
}
