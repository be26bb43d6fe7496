package session

import (
	"errors"
	"time"

	"sangha/internal/validation"
)

// Type classifies a gathering.
type Type string

const (
	TypeRegular Type = "Regular"
	TypeCamp    Type = "Camp"
	TypeEvent   Type = "Event"
	TypeSpecial Type = "Special"
)

// Status tracks where a gathering is in its lifecycle.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrInUse    = errors.New("session still has homework or quizzes")
)

// Session is a scheduled gathering, not an auth session.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
	Facilitator string    `json:"facilitator"`
	Type        Type      `json:"type" validate:"sessiontype"`
	Status      Status    `json:"status" validate:"sessionstatus"`
	AttendeeIDs []string  `json:"attendeeIds"`
}

var validate = validation.New(map[string][]string{
	"sessiontype":   {string(TypeRegular), string(TypeCamp), string(TypeEvent), string(TypeSpecial)},
	"sessionstatus": {string(StatusUpcoming), string(StatusOngoing), string(StatusCompleted)},
})

// Validate checks required fields and enumerations.
func (s Session) Validate() error {
	return validate.Struct("session", s)
}

func (s *Session) normalize() {
	if s.Type == "" {
		s.Type = TypeRegular
	}
	if s.Status == "" {
		s.Status = StatusUpcoming
	}
	s.AttendeeIDs = dedupe(s.AttendeeIDs)
}

// Attended reports whether profileID is in the attendee list.
func (s Session) Attended(profileID string) bool {
	for _, id := range s.AttendeeIDs {
		if id == profileID {
			return true
		}
	}
	return false
}

// ToggleAttendee adds profileID when absent and removes it when present.
// Applying it twice with the same id restores the original set.
func ToggleAttendee(ids []string, profileID string) []string {
	out := make([]string, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == profileID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, profileID)
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
