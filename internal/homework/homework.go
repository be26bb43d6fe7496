package homework

import (
	"errors"
	"time"

	"sangha/internal/validation"
)

// SubmissionStatus tracks a submission through grading.
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "Pending"
	StatusSubmitted SubmissionStatus = "Submitted"
	StatusGraded    SubmissionStatus = "Graded"
)

var (
	ErrNotFound           = errors.New("homework not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Homework is an assignment attached to a session.
type Homework struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"sessionId" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty" validate:"omitempty,url"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
}

// Submission is a student's answer to a homework.
type Submission struct {
	ID          string           `json:"id"`
	HomeworkID  string           `json:"homeworkId" validate:"required"`
	StudentID   string           `json:"studentId" validate:"required"`
	FileURL     *string          `json:"fileUrl,omitempty" validate:"omitempty,url"`
	Status      SubmissionStatus `json:"status" validate:"submissionstatus"`
	Marks       *int             `json:"marks,omitempty" validate:"omitempty,min=0,max=100"`
	Feedback    *string          `json:"feedback,omitempty"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// Grade is a mentor's verdict on a submission.
type Grade struct {
	Marks    int    `json:"marks" validate:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

var validate = validation.New(map[string][]string{
	"submissionstatus": {string(StatusPending), string(StatusSubmitted), string(StatusGraded)},
})

// Validate checks required fields.
func (h Homework) Validate() error { return validate.Struct("homework", h) }

// Validate checks required fields and the status enumeration.
func (s Submission) Validate() error { return validate.Struct("submission", s) }
