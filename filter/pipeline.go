package filter

import "time"

// Query is the ephemeral filter state of a page or the Deal Me modal.
type Query struct {
	// Kind is the page's listing kind; KindAll for the combined view.
	Kind Kind
	// TypeFilter narrows the combined view to one kind. Empty or KindAll means no filter.
	TypeFilter Kind
	// Day is a specific canonical day; nil means today.
	Day *time.Weekday
	When WindowMode
	// RadiusMeters nil means the whole region.
	RadiusMeters *float64
	User         *Coord
	// Strict is set when the user picked radius or time explicitly.
	Strict bool
}

func (q Query) typeRequested() bool {
	return q.TypeFilter != "" && q.TypeFilter != KindAll
}

// Result is the ordered list handed to presentation.
type Result struct {
	FallbackResult
	Day     time.Weekday `json:"day"`
	DayName string       `json:"day_name"`
	IsToday bool         `json:"is_today"`
}

// Run filters listings for q at instant now in loc.
// The time window only applies when the selected day is today.
func Run(listings []Listing, q Query, now time.Time, loc *time.Location) Result {
	today := TodayIn(loc, now)
	day := today
	if q.Day != nil {
		day = *q.Day
	}
	isToday := day == today
	clock := NowTimeOfDay(loc, now)

	var all, byRadiusTime, byType []Match
	for _, l := range listings {
		if q.Kind != "" && q.Kind != KindAll && l.Kind != q.Kind {
			continue
		}
		if !MatchesDay(l.Days, day) {
			continue
		}
		m := annotate(l, q.User)
		all = append(all, m)

		if isToday && !MatchesWindow(l.Start, l.End, q.When, clock) {
			continue
		}
		if !WithinRadius(m.DistanceMeters, q.RadiusMeters) {
			continue
		}
		byRadiusTime = append(byRadiusTime, m)
		if q.typeRequested() && l.Kind != q.TypeFilter {
			continue
		}
		byType = append(byType, m)
	}

	fr := ApplyFallback(FallbackInput{
		ByType:          byType,
		ByRadiusAndTime: byRadiusTime,
		All:             all,
		TypeRequested:   q.typeRequested(),
		StrictFilters:   q.Strict,
	})

	sortKind := q.Kind
	if q.typeRequested() && fr.Reason == FallbackNone {
		sortKind = q.TypeFilter
	}
	fr.Items = SortListings(fr.Items, sortKind)

	return Result{
		FallbackResult: fr,
		Day:            day,
		DayName:        day.String(),
		IsToday:        isToday,
	}
}

func annotate(l Listing, user *Coord) Match {
	m := Match{Listing: l, PriceLabel: FormatPrice(l.PriceCents)}
	if l.Start != nil {
		m.StartTime = l.Start.String()
	}
	if l.End != nil {
		m.EndTime = l.End.String()
	}
	var venueLoc *Coord
	if l.Venue != nil {
		venueLoc = l.Venue.Location
	}
	if d := DistanceTo(user, venueLoc); d != nil {
		m.DistanceMeters = d
		m.DistanceLabel = FormatDistanceBucket(*d)
	}
	return m
}
