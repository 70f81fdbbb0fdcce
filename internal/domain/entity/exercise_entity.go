package entity

import "time"

// DateLayout is the calendar-date format used on the wire and in queries.
const DateLayout = "2006-01-02"

// Exercise is a single logged activity owned by a User.
// UserID is a soft reference checked only when the exercise is created.
type Exercise struct {
	ID          int64
	UserID      string
	Description string
	Duration    float64 // minutes
	Date        time.Time
}
