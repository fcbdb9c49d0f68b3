package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay counts minutes since local midnight.
type TimeOfDay int

const endOfDay TimeOfDay = 24 * 60

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS"; seconds are truncated.
// "24:00" is accepted as the end of the day.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}
	h, m := nums[0], nums[1]
	if m > 59 || (len(nums) == 3 && nums[2] > 59) {
		return 0, false
	}
	if h == 24 && m == 0 && (len(nums) == 2 || nums[2] == 0) {
		return endOfDay, true
	}
	if h > 23 {
		return 0, false
	}
	return TimeOfDay(h*60 + m), true
}

// ParseTimeOfDayPtr parses an optional value; nil or malformed input gives nil.
func ParseTimeOfDayPtr(s *string) *TimeOfDay {
	if s == nil {
		return nil
	}
	t, ok := ParseTimeOfDay(*s)
	if !ok {
		return nil
	}
	return &t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// WindowMode selects how listings are matched against the current time.
type WindowMode string

const (
	WindowNow          WindowMode = "now"
	WindowIn1h         WindowMode = "in1h"
	WindowIn2h         WindowMode = "in2h"
	WindowUnrestricted WindowMode = "unrestricted"
)

// ParseWindowMode maps a query value to a mode; empty means unrestricted.
func ParseWindowMode(s string) (WindowMode, bool) {
	switch WindowMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", WindowUnrestricted, "any", "today":
		return WindowUnrestricted, true
	case WindowNow:
		return WindowNow, true
	case WindowIn1h, "1h":
		return WindowIn1h, true
	case WindowIn2h, "2h":
		return WindowIn2h, true
	}
	return "", false
}

func (m WindowMode) offset() TimeOfDay {
	switch m {
	case WindowIn1h:
		return 60
	case WindowIn2h:
		return 120
	}
	return 0
}

// MatchesWindow reports whether a listing running from start to end matches mode
// at now. A missing start or end always matches. Windows are compared within a
// single day: nothing wraps past midnight, and a target past 24:00 never matches.
func MatchesWindow(start, end *TimeOfDay, mode WindowMode, now TimeOfDay) bool {
	if start == nil || end == nil {
		return true
	}
	switch mode {
	case WindowNow, WindowIn1h, WindowIn2h:
		target := now + mode.offset()
		if target > endOfDay {
			return false
		}
		return *start <= target && target <= *end
	default:
		return true
	}
}
