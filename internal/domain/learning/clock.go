package learning

import "time"

// Clock supplies the current time to use cases so tests can freeze it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in loc (local time when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// StartOfDay is midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateString formats t's calendar day as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(time.DateOnly)
}
