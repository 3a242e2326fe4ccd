package domain

import "time"

// PostRecord is the stats row written when a post is scheduled.
type PostRecord struct {
	ID        int
	UserID    int64
	Link      string
	PublishAt time.Time
	CreatedAt time.Time
}

type StatsPeriod string

const (
	PeriodDay   StatsPeriod = "day"
	PeriodMonth StatsPeriod = "month"
	PeriodYear  StatsPeriod = "year"
)

// Bounds returns the [start, end) range of the period containing now, in now's location.
func (p StatsPeriod) Bounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodYear:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	case PeriodMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	}
}
