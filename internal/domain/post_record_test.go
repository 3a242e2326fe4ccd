package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsPeriodBounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	now := time.Date(2024, time.February, 29, 22, 15, 0, 0, loc)

	tests := []struct {
		period     StatsPeriod
		start, end time.Time
	}{
		{PeriodDay, time.Date(2024, 2, 29, 0, 0, 0, 0, loc), time.Date(2024, 3, 1, 0, 0, 0, 0, loc)},
		{PeriodMonth, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), time.Date(2024, 3, 1, 0, 0, 0, 0, loc)},
		{PeriodYear, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2025, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := tt.period.Bounds(now)
			assert.True(t, tt.start.Equal(start), "start = %s", start)
			assert.True(t, tt.end.Equal(end), "end = %s", end)
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.True(t, DeliveredOutcome().OK())

	failed := FailedOutcome("Bad Request: wrong file identifier")
	assert.False(t, failed.OK())
	assert.Equal(t, "failed", failed.Status.String())
	assert.Equal(t, "Bad Request: wrong file identifier", failed.Reason)
}
