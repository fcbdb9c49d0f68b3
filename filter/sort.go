package filter

import (
	"sort"
	"strings"
)

// SortListings returns a stably ordered copy of items.
//
// Deals, lunch specials and the combined view order by price ascending with
// unpriced items last, then venue name. Happy hours order by start time, with a
// missing start first, then venue name. Venue names compare case-insensitively.
func SortListings(items []Match, kind Kind) []Match {
	out := make([]Match, len(items))
	copy(out, items)

	var less func(a, b Match) bool
	if kind == KindHappyHour {
		less = lessByStart
	} else {
		less = lessByPrice
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func lessByPrice(a, b Match) bool {
	switch {
	case a.PriceCents == nil && b.PriceCents == nil:
		// unpriced items keep their relative order
		return false
	case a.PriceCents == nil:
		return false
	case b.PriceCents == nil:
		return true
	case *a.PriceCents != *b.PriceCents:
		return *a.PriceCents < *b.PriceCents
	}
	return lessByVenue(a, b)
}

func lessByStart(a, b Match) bool {
	sa, sb := startKey(a), startKey(b)
	if sa != sb {
		return sa < sb
	}
	return lessByVenue(a, b)
}

// startKey mirrors comparing "HH:MM" strings where a missing time is "".
func startKey(m Match) string {
	if m.Start == nil {
		return ""
	}
	return m.Start.String()
}

func lessByVenue(a, b Match) bool {
	return strings.ToLower(a.VenueName()) < strings.ToLower(b.VenueName())
}
