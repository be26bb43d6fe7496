package homework

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sangha/internal/store"
)

// Repository persists homework and submissions in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a repo.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const (
	homeworkColumns   = `id, session_id, title, description, attachment_url, due_date`
	submissionColumns = `id, homework_id, student_id, file_url, status, marks, feedback, submitted_at`
)

func scanHomework(row store.Scanner) (Homework, error) {
	var h Homework
	err := row.Scan(&h.ID, &h.SessionID, &h.Title, &h.Description, &h.AttachmentURL, &h.DueDate)
	return h, err
}

func scanSubmission(row store.Scanner) (Submission, error) {
	var s Submission
	err := row.Scan(&s.ID, &s.HomeworkID, &s.StudentID, &s.FileURL, &s.Status, &s.Marks, &s.Feedback, &s.SubmittedAt)
	return s, err
}

func collectHomework(rows pgx.Rows) ([]Homework, error) {
	defer rows.Close()
	res := []Homework{}
	for rows.Next() {
		h, err := scanHomework(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

func collectSubmissions(rows pgx.Rows) ([]Submission, error) {
	defer rows.Close()
	res := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// Insert writes a new homework.
func (r *Repository) Insert(ctx context.Context, h Homework) (Homework, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO homework (id, session_id, title, description, attachment_url, due_date)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, h.ID, h.SessionID, h.Title, h.Description, h.AttachmentURL, h.DueDate)
	if err != nil {
		return Homework{}, writeErr("insert homework", h, err)
	}
	return h, nil
}

// writeErr reports a missing parent session as ErrNotFound.
func writeErr(op string, h Homework, err error) error {
	if store.IsForeignKeyViolation(err) {
		return fmt.Errorf("session %s: %w", h.SessionID, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Get returns ErrNotFound when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (Homework, error) {
	h, err := scanHomework(r.db.QueryRow(ctx, `SELECT `+homeworkColumns+` FROM homework WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Homework{}, ErrNotFound
		}
		return Homework{}, err
	}
	return h, nil
}

// List returns homework, optionally for one session, by due date.
func (r *Repository) List(ctx context.Context, sessionID string) ([]Homework, error) {
	query := `SELECT ` + homeworkColumns + ` FROM homework`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = $1`
		args = append(args, sessionID)
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY due_date`, args...)
	if err != nil {
		return nil, err
	}
	return collectHomework(rows)
}

// Update overwrites a homework row.
func (r *Repository) Update(ctx context.Context, h Homework) (Homework, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE homework SET session_id = $2, title = $3, description = $4, attachment_url = $5, due_date = $6
		WHERE id = $1
	`, h.ID, h.SessionID, h.Title, h.Description, h.AttachmentURL, h.DueDate)
	if err != nil {
		return Homework{}, writeErr("update homework", h, err)
	}
	if tag.RowsAffected() == 0 {
		return Homework{}, ErrNotFound
	}
	return h, nil
}

// Delete removes a homework and its submissions.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return store.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM submissions WHERE homework_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM homework WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// InsertSubmission writes a new submission.
func (r *Repository) InsertSubmission(ctx context.Context, s Submission) (Submission, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO submissions (id, homework_id, student_id, file_url, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING submitted_at
	`, s.ID, s.HomeworkID, s.StudentID, s.FileURL, s.Status).Scan(&s.SubmittedAt)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return s, nil
}

// GetSubmission returns ErrSubmissionNotFound when the id is unknown.
func (r *Repository) GetSubmission(ctx context.Context, id string) (Submission, error) {
	s, err := scanSubmission(r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
	if err != nil {
		if store.IsNoRows(err) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, err
	}
	return s, nil
}

// ListSubmissions filters by homework and/or student, newest first.
func (r *Repository) ListSubmissions(ctx context.Context, homeworkID, studentID string) ([]Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE ($1 = '' OR homework_id = $1) AND ($2 = '' OR student_id = $2) ORDER BY submitted_at DESC`
	rows, err := r.db.Query(ctx, query, homeworkID, studentID)
	if err != nil {
		return nil, err
	}
	return collectSubmissions(rows)
}

// UpdateSubmission overwrites status, marks and feedback.
func (r *Repository) UpdateSubmission(ctx context.Context, s Submission) (Submission, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE submissions SET file_url = $2, status = $3, marks = $4, feedback = $5
		WHERE id = $1
	`, s.ID, s.FileURL, s.Status, s.Marks, s.Feedback)
	if err != nil {
		return Submission{}, fmt.Errorf("update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Submission{}, ErrSubmissionNotFound
	}
	return s, nil
}
