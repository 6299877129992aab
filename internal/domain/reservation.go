package domain

import "time"

// ReservationWindow is how long a basket line holds a claim on stock.
const ReservationWindow = time.Hour

type LineStatus string

const (
	LineActive   LineStatus = "Active"
	LineInactive LineStatus = "Inactive"
)

// Window is the closed interval [From, To] used for virtual reservations.
type Window struct {
	From time.Time
	To   time.Time
}

func WindowAt(now time.Time) Window {
	return Window{From: now.Add(-ReservationWindow), To: now}
}

// Contains matches SQL BETWEEN: both ends are inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func (w Window) Classify(dateAdded time.Time) LineStatus {
	if w.Contains(dateAdded) {
		return LineActive
	}
	return LineInactive
}
