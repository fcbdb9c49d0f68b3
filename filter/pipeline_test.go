package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auckland(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

// tuesdayAt returns an instant on Tuesday 13 Oct 2026, Auckland local time.
func tuesdayAt(t *testing.T, hhmm string) time.Time {
	t.Helper()
	v, ok := ParseTimeOfDay(hhmm)
	require.True(t, ok)
	return time.Date(2026, 10, 13, int(v)/60, int(v)%60, 0, 0, auckland(t))
}

func TestRun_TacoTuesday(t *testing.T) {
	taco := Listing{
		ID:         "taco",
		Kind:       KindDeal,
		Title:      "Taco Tuesday",
		Days:       Specific(time.Tuesday),
		PriceCents: cents(1500),
		Venue:      &Venue{Name: "La Cantina"},
	}
	wings := Listing{ID: "wings", Kind: KindDeal, Days: Specific(time.Wednesday), Venue: &Venue{Name: "Wing Bar"}}

	res := Run([]Listing{taco, wings}, Query{Kind: KindDeal}, tuesdayAt(t, "12:00"), auckland(t))

	assert.Equal(t, time.Tuesday, res.Day)
	assert.True(t, res.IsToday)
	assert.False(t, res.UsedFallback)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Taco Tuesday", res.Items[0].Title)
	assert.Equal(t, "$15.00", res.Items[0].PriceLabel)
}

func TestRun_SpecificDaySkipsTimeWindow(t *testing.T) {
	wed := time.Wednesday
	start, end := TimeOfDay(16*60), TimeOfDay(18*60)
	hh := Listing{ID: "hh", Kind: KindHappyHour, Days: Specific(time.Wednesday), Start: &start, End: &end}

	res := Run([]Listing{hh}, Query{Kind: KindHappyHour, Day: &wed, When: WindowNow}, tuesdayAt(t, "09:00"), auckland(t))
	assert.False(t, res.IsToday)
	assert.False(t, res.UsedFallback)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "16:00", res.Items[0].StartTime)
}

func TestRun_TimeWindowTodayFallsBackFull(t *testing.T) {
	start, end := TimeOfDay(16*60), TimeOfDay(18*60)
	hh := Listing{ID: "hh", Kind: KindHappyHour, Start: &start, End: &end}

	res := Run([]Listing{hh}, Query{Kind: KindHappyHour, When: WindowNow}, tuesdayAt(t, "16:30"), auckland(t))
	assert.False(t, res.UsedFallback)
	assert.Len(t, res.Items, 1)

	res = Run([]Listing{hh}, Query{Kind: KindHappyHour, When: WindowNow}, tuesdayAt(t, "19:00"), auckland(t))
	assert.True(t, res.UsedFallback)
	assert.Equal(t, FallbackFull, res.Reason)
	assert.Len(t, res.Items, 1)
}

func TestRun_DealMeMixedEncodings(t *testing.T) {
	user := &Coord{Lat: -36.8485, Lng: 174.7633}
	near := &Venue{Name: "Near Pub", Location: &Coord{Lat: -36.8485 + 1800/111195.0, Lng: 174.7633}}
	far := &Venue{Name: "Far Pub", Location: &Coord{Lat: -36.9485, Lng: 174.7633}}

	lunch := Listing{ID: "lunch", Kind: KindLunch, Days: NormalizeDayArray([]interface{}{"wednesday"}, SchemeName), PriceCents: cents(1800), Venue: near}
	happy := Listing{ID: "happy", Kind: KindHappyHour, Days: NormalizeDayArray([]interface{}{3}, SchemeISO1), PriceCents: cents(900), Venue: near}
	distant := Listing{ID: "distant", Kind: KindDeal, Venue: far}
	wednesday := time.Wednesday
	radius := 5000.0

	res := Run([]Listing{lunch, happy, distant}, Query{
		Kind:         KindAll,
		Day:          &wednesday,
		RadiusMeters: &radius,
		User:         user,
	}, tuesdayAt(t, "12:00"), auckland(t))

	require.Len(t, res.Items, 2)
	assert.Equal(t, []string{"happy", "lunch"}, ids(res.Items))
	assert.Equal(t, "<2 km away", res.Items[0].DistanceLabel)
	assert.False(t, res.UsedFallback)
}

func TestRun_DealMeTypeFallback(t *testing.T) {
	user := &Coord{Lat: -36.8485, Lng: 174.7633}
	venue := &Venue{Name: "Corner", Location: user}
	deal := Listing{ID: "deal", Kind: KindDeal, Venue: venue}
	radius := 1000.0

	res := Run([]Listing{deal}, Query{
		Kind:         KindAll,
		TypeFilter:   KindHappyHour,
		RadiusMeters: &radius,
		User:         user,
	}, tuesdayAt(t, "12:00"), auckland(t))

	assert.True(t, res.UsedFallback)
	assert.Equal(t, FallbackType, res.Reason)
	assert.Equal(t, []string{"deal"}, ids(res.Items))
	assert.Equal(t, "<250 m away", res.Items[0].DistanceLabel)
}

func TestRun_RadiusExcludesKnownDistanceOnly(t *testing.T) {
	user := &Coord{Lat: -36.8485, Lng: 174.7633}
	far := &Venue{Name: "Far", Location: &Coord{Lat: -37.5, Lng: 175.5}}
	unknown := &Venue{Name: "Unknown"}
	radius := 1000.0

	res := Run([]Listing{
		{ID: "far", Kind: KindDeal, Venue: far},
		{ID: "unknown", Kind: KindDeal, Venue: unknown},
	}, Query{Kind: KindDeal, RadiusMeters: &radius, User: user}, tuesdayAt(t, "12:00"), auckland(t))

	assert.False(t, res.UsedFallback)
	assert.Equal(t, []string{"unknown"}, ids(res.Items))
	assert.Nil(t, res.Items[0].DistanceMeters)
}

func TestRun_EmptySource(t *testing.T) {
	res := Run(nil, Query{Kind: KindDeal}, tuesdayAt(t, "12:00"), auckland(t))
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.False(t, res.UsedFallback)
}
