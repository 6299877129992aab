package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		day      int
		expected string
	}{
		{1, "1st October 2026"},
		{2, "2nd October 2026"},
		{3, "3rd October 2026"},
		{4, "4th October 2026"},
		{11, "11th October 2026"},
		{12, "12th October 2026"},
		{13, "13th October 2026"},
		{16, "16th October 2026"},
		{21, "21st October 2026"},
		{22, "22nd October 2026"},
		{23, "23rd October 2026"},
		{31, "31st October 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			d := time.Date(2026, time.October, tt.day, 9, 30, 0, 0, time.UTC)
			assert.Equal(t, tt.expected, FormatDate(d))
		})
	}
}

func TestEstimatedDelivery(t *testing.T) {
	from := time.Date(2026, time.October, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2nd November 2026", FormatDate(EstimatedDelivery(from, 3)))
	assert.Equal(t, "30th October 2026", FormatDate(EstimatedDelivery(from, 0)))
}
