package services

import "time"

// Clock supplies the current time. Basket lines are stamped and reservation
// windows are computed from the same Clock.
type Clock func() time.Time

// SystemClock returns UTC wall time truncated to whole seconds, matching
// DATETIME precision.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
