package mentorship

import (
	"errors"
	"time"
)

// Status is the lifecycle of a mentorship request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

var (
	ErrNotFound      = errors.New("mentorship request not found")
	ErrNotMentor     = errors.New("profile is not a mentor")
	ErrNotYours      = errors.New("request belongs to another mentor")
	ErrAlreadyClosed = errors.New("request already decided")
	ErrBadDecision   = errors.New("decision must be Accepted or Rejected")
)

// Request is a student's ask for guidance from a mentor.
type Request struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	MentorID  string    `json:"mentorId"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter narrows List; empty fields match everything.
type Filter struct {
	StudentID string
	MentorID  string
	Status    Status
}
