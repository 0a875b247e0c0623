package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Clock is a time of day in minutes since midnight. EndOfDay (24:00) is only
// valid as an exclusive end.
type Clock int

const EndOfDay Clock = 24 * 60

// ParseClock accepts zero-padded 24-hour "HH:MM".
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, httperr.InvalidInput("invalid_time")
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, httperr.InvalidInput("invalid_time")
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// ParseDate accepts a calendar day "YYYY-MM-DD". The result is midnight UTC
// and only its Y/M/D and weekday are meaningful.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil || d.Format(DateLayout) != s {
		return time.Time{}, httperr.InvalidInput("invalid_date")
	}
	return d, nil
}

// Overlaps is the half-open interval test: [aStart,aEnd) ∩ [bStart,bEnd) ≠ ∅.
// Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart < bEnd && bStart < aEnd
}
