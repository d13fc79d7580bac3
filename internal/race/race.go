package race

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

const (
	// RangeSeparator splits a multi-day date cell into its start and end.
	RangeSeparator = " - "

	StartSuffix = " (START)"
	EndSuffix   = " (END)"
)

// Race represents a single race day from the calendar table
type Race struct {
	Date   time.Time `json:"date"`
	Name   string    `json:"name"`
	Class  string    `json:"class"`
	Winner *string   `json:"winner,omitempty"` // nil until a winner is recorded
}

// New creates a Race. An empty winner is stored as nil.
func New(date time.Time, name, class, winner string) *Race {
	r := &Race{
		Date:  date,
		Name:  name,
		Class: class,
	}
	if winner != "" {
		w := winner
		r.Winner = &w
	}
	return r
}

// HasWinner reports whether a winner was recorded for the race
func (r *Race) HasWinner() bool {
	return r.Winner != nil
}

// WinnerText returns the winner or an empty string
func (r *Race) WinnerText() string {
	if r.Winner == nil {
		return ""
	}
	return *r.Winner
}

// UID creates a deterministic identifier for the race based on its date and name
func (r *Race) UID() string {
	h := sha1.New()
	h.Write([]byte(r.Date.Format(DateLayout) + "|" + r.Name))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the race as "[class] name (YYYY-MM-DD) Winner: winner"
func (r *Race) String() string {
	return fmt.Sprintf("[%s] %s (%s) Winner: %s", r.Class, r.Name, r.Date.Format(DateLayout), r.WinnerText())
}

// IsRange reports whether a date cell holds a "start - end" range
func IsRange(dateCell string) bool {
	return strings.Contains(dateCell, RangeSeparator)
}

// FromRow converts one table row into races. A single date yields one race,
// a range yields a START and an END race sharing class and winner.
func FromRow(dateCell, name, winner, class, year string) ([]*Race, error) {
	if !IsRange(dateCell) {
		date, err := ParseDate(dateCell, year)
		if err != nil {
			return nil, err
		}
		return []*Race{New(date, name, class, winner)}, nil
	}

	startText, endText, _ := strings.Cut(dateCell, RangeSeparator)

	start, err := ParseDate(startText, year)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endText, year)
	if err != nil {
		return nil, err
	}

	return []*Race{
		New(start, name+StartSuffix, class, winner),
		New(end, name+EndSuffix, class, winner),
	}, nil
}
