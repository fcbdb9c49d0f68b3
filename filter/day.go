package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Scheme declares how a table encodes its day values.
type Scheme string

const (
	// SchemeSun0 is 0=Sunday .. 6=Saturday.
	SchemeSun0 Scheme = "sun0"
	// SchemeISO1 is the ISO weekday, 1=Monday .. 7=Sunday.
	SchemeISO1 Scheme = "iso1"
	// SchemeName only accepts day names and abbreviations.
	SchemeName Scheme = "name"
)

// RawDay is a day value tagged with the scheme of the table it came from.
type RawDay struct {
	Scheme Scheme
	Value  interface{}
}

// Normalize converts the raw value to a canonical weekday.
func (r RawDay) Normalize() (time.Weekday, bool) {
	return NormalizeDay(r.Value, r.Scheme)
}

var dayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "sundays": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "mondays": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "tuesdays": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "weds": time.Wednesday, "wednesdays": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursdays": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fridays": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "saturdays": time.Saturday,
}

// NormalizeDay converts a raw day value into the canonical 0=Sunday index.
// Names and abbreviations are accepted under every scheme. Numbers (and numeric
// strings) are interpreted according to scheme; SchemeName rejects them.
// Unrecognized values return false. An undeclared scheme panics.
func NormalizeDay(raw interface{}, scheme Scheme) (time.Weekday, bool) {
	switch scheme {
	case SchemeSun0, SchemeISO1, SchemeName:
	default:
		panic(fmt.Sprintf("filter: undeclared day scheme %q", scheme))
	}

	switch v := raw.(type) {
	case nil:
		return 0, false
	case time.Weekday:
		return v, v >= time.Sunday && v <= time.Saturday
	case int:
		return fromNumber(int64(v), scheme)
	case int32:
		return fromNumber(int64(v), scheme)
	case int64:
		return fromNumber(v, scheme)
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return fromNumber(int64(v), scheme)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return fromNumber(n, scheme)
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if d, ok := dayNames[s]; ok {
			return d, true
		}
		if d, ok := dayNames[strings.TrimSuffix(s, ".")]; ok {
			return d, true
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return fromNumber(n, scheme)
	default:
		return 0, false
	}
}

func fromNumber(n int64, scheme Scheme) (time.Weekday, bool) {
	switch scheme {
	case SchemeSun0:
		if n < 0 || n > 6 {
			return 0, false
		}
		return time.Weekday(n), true
	case SchemeISO1:
		if n < 1 || n > 7 {
			return 0, false
		}
		return time.Weekday(n % 7), true
	default:
		return 0, false
	}
}

// ISOWeekday returns the ISO 1..7 value for a canonical weekday.
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// DaySpec is the set of days a listing applies to. The zero value means every day.
type DaySpec struct {
	specific bool
	mask     uint8
}

// EveryDay matches any target day.
func EveryDay() DaySpec {
	return DaySpec{}
}

// Specific builds a spec restricted to the given days. With no days it matches nothing.
func Specific(days ...time.Weekday) DaySpec {
	s := DaySpec{specific: true}
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s.mask |= 1 << uint(d)
		}
	}
	return s
}

// IsEveryDay reports whether the spec carries no day restriction.
func (s DaySpec) IsEveryDay() bool {
	return !s.specific
}

// Contains reports whether d is in a specific set. It is false for EveryDay.
func (s DaySpec) Contains(d time.Weekday) bool {
	return s.specific && d >= time.Sunday && d <= time.Saturday && s.mask&(1<<uint(d)) != 0
}

// Days lists a specific set in ascending order; nil for EveryDay.
func (s DaySpec) Days() []time.Weekday {
	if !s.specific {
		return nil
	}
	out := []time.Weekday{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DaySpec) String() string {
	if !s.specific {
		return "every day"
	}
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}

// MarshalJSON writes null for EveryDay and the sorted index list otherwise.
func (s DaySpec) MarshalJSON() ([]byte, error) {
	if !s.specific {
		return []byte("null"), nil
	}
	idx := make([]int, 0, 7)
	for _, d := range s.Days() {
		idx = append(idx, int(d))
	}
	return json.Marshal(idx)
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (s *DaySpec) UnmarshalJSON(data []byte) error {
	var idx []int
	if err := json.Unmarshal(data, &idx); err != nil {
		return err
	}
	if idx == nil {
		*s = EveryDay()
		return nil
	}
	sort.Ints(idx)
	days := make([]time.Weekday, 0, len(idx))
	for _, i := range idx {
		days = append(days, time.Weekday(i))
	}
	*s = Specific(days...)
	return nil
}

// NormalizeDayArray normalizes every element, dropping unrecognized ones.
// A nil or empty input means every day; a non-empty input whose values are all
// unrecognized yields an empty specific set that matches nothing.
func NormalizeDayArray(raw []interface{}, scheme Scheme) DaySpec {
	if len(raw) == 0 {
		return EveryDay()
	}
	days := make([]time.Weekday, 0, len(raw))
	for _, v := range raw {
		if d, ok := NormalizeDay(v, scheme); ok {
			days = append(days, d)
		}
	}
	return Specific(days...)
}

// MatchesDay reports whether a listing with spec applies on target.
func MatchesDay(spec DaySpec, target time.Weekday) bool {
	if spec.IsEveryDay() {
		return true
	}
	return spec.Contains(target)
}
