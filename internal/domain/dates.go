package domain

import (
	"strconv"
	"time"
)

// FormatDate renders t like "16th October 2026".
func FormatDate(t time.Time) string {
	return ordinal(t.Day()) + t.Format(" January 2006")
}

// EstimatedDelivery adds whole days to from.
func EstimatedDelivery(from time.Time, days int) time.Time {
	return from.AddDate(0, 0, days)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
