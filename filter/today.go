package filter

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the only civil timezone the site supports.
const DefaultTimezone = "Pacific/Auckland"

var ErrUnknownTimezone = errors.New("unknown timezone")

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// LoadLocation wraps time.LoadLocation with ErrUnknownTimezone.
func LoadLocation(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, tz, err)
	}
	return loc, nil
}

// TodayIn returns the weekday of now's local calendar date in loc.
func TodayIn(loc *time.Location, now time.Time) time.Weekday {
	return now.In(loc).Weekday()
}

// TodayIndex returns the canonical weekday for "right now" in tz.
func TodayIndex(tz string, c Clock) (time.Weekday, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return 0, err
	}
	return TodayIn(loc, c.Now()), nil
}

// NowTimeOfDay returns the local clock reading of now in loc, truncated to the minute.
func NowTimeOfDay(loc *time.Location, now time.Time) TimeOfDay {
	local := now.In(loc)
	return TimeOfDay(local.Hour()*60 + local.Minute())
}
