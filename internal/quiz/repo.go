package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists quizzes and results in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const (
	quizColumns   = `id, session_id, topic, questions, created_at`
	resultColumns = `id, quiz_id, student_id, score, total_questions, completed_at`
)

func scanQuiz(row store.Scanner) (Quiz, error) {
	var (
		q   Quiz
		raw []byte
	)
	if err := row.Scan(&q.ID, &q.SessionID, &q.Topic, &raw, &q.CreatedAt); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal(raw, &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("decode questions for quiz %s: %w", q.ID, err)
	}
	return q, nil
}

func scanResult(row store.Scanner) (Result, error) {
	var r Result
	err := row.Scan(&r.ID, &r.QuizID, &r.StudentID, &r.Score, &r.TotalQuestions, &r.CompletedAt)
	return r, err
}

func collectQuizzes(rows pgx.Rows) ([]Quiz, error) {
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func collectResults(rows pgx.Rows) ([]Result, error) {
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Insert writes a new quiz.
func (r *Repository) Insert(ctx context.Context, q Quiz) (Quiz, error) {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return Quiz{}, err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO quizzes (id, session_id, topic, questions)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, q.ID, q.SessionID, q.Topic, questions).Scan(&q.CreatedAt)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return Quiz{}, fmt.Errorf("quiz session: %w", ErrNotFound)
		}
		return Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return q, nil
}

// Get returns ErrNotFound when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (Quiz, error) {
	q, err := scanQuiz(r.db.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	return q, nil
}

// List returns all quizzes, newest first.
func (r *Repository) List(ctx context.Context) ([]Quiz, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectQuizzes(rows)
}

// ListBySessions returns quizzes tied to any of the given sessions.
func (r *Repository) ListBySessions(ctx context.Context, sessionIDs []string) ([]Quiz, error) {
	if len(sessionIDs) == 0 {
		return []Quiz{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE session_id = ANY($1) ORDER BY created_at DESC`, sessionIDs)
	if err != nil {
		return nil, err
	}
	return collectQuizzes(rows)
}

// Update overwrites topic, session and questions.
func (r *Repository) Update(ctx context.Context, q Quiz) (Quiz, error) {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return Quiz{}, err
	}
	err = r.db.QueryRow(ctx, `
		UPDATE quizzes SET session_id = $2, topic = $3, questions = $4
		WHERE id = $1
		RETURNING created_at
	`, q.ID, q.SessionID, q.Topic, questions).Scan(&q.CreatedAt)
	if err != nil {
		if store.IsNoRows(err) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, fmt.Errorf("update quiz: %w", err)
	}
	return q, nil
}

// Delete removes a quiz and its results.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return store.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_results WHERE quiz_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// InsertResult stores an attempt.
func (r *Repository) InsertResult(ctx context.Context, res Result) (Result, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO quiz_results (id, quiz_id, student_id, score, total_questions)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING completed_at
	`, res.ID, res.QuizID, res.StudentID, res.Score, res.TotalQuestions).Scan(&res.CompletedAt)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return Result{}, ErrNotFound
		}
		return Result{}, fmt.Errorf("insert quiz result: %w", err)
	}
	return res, nil
}

// ListResults filters by quiz and/or student, newest first.
func (r *Repository) ListResults(ctx context.Context, quizID, studentID string) ([]Result, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resultColumns+` FROM quiz_results
		WHERE ($1 = '' OR quiz_id = $1) AND ($2 = '' OR student_id = $2)
		ORDER BY completed_at DESC
	`, quizID, studentID)
	if err != nil {
		return nil, err
	}
	return collectResults(rows)
}
