package chanting

import (
	"errors"
	"time"
)

// BeadsPerRound is the number of beads on a japa mala.
const BeadsPerRound = 108

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

var (
	ErrNegative = errors.New("rounds cannot be negative")
	ErrNoBeads  = errors.New("bead count must be positive")
	ErrBadDate  = errors.New("date must be YYYY-MM-DD")
)

// Log is one member's chanting for one calendar day.
type Log struct {
	ID        string `json:"id"`
	UserEmail string `json:"userEmail"`
	Date      string `json:"date"`
	Rounds    int    `json:"rounds"`
	Beads     int    `json:"beads"`
}

// Counter tracks beads within the current round and completed rounds.
type Counter struct {
	Beads  int
	Rounds int
}

// Add moves n beads forward, carrying every full mala into a round.
func (c Counter) Add(n int) Counter {
	total := c.Beads + n
	c.Rounds += total / BeadsPerRound
	c.Beads = total % BeadsPerRound
	return c
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return d, nil
}

// Today returns the current date in loc as YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}
