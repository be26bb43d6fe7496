package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Notification is a broadcast message shown on every member's feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Type      *string   `json:"type,omitempty"`
}
