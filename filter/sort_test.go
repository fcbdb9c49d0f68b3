package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cents(c int) *int { return &c }

func item(id string, price *int, venue string) Match {
	return Match{Listing: Listing{ID: id, PriceCents: price, Venue: &Venue{Name: venue}}}
}

func ids(items []Match) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.ID
	}
	return out
}

func TestSortListings_DealsNullsLastAndStable(t *testing.T) {
	in := []Match{
		item("1", nil, "B"),
		item("2", cents(500), "A"),
		item("3", nil, "A"),
	}
	got := SortListings(in, KindDeal)
	assert.Equal(t, []string{"2", "1", "3"}, ids(got))
	// input untouched
	assert.Equal(t, []string{"1", "2", "3"}, ids(in))
}

func TestSortListings_PriceThenVenueName(t *testing.T) {
	in := []Match{
		item("a", cents(1500), "zebra bar"),
		item("b", cents(1500), "Apple Cafe"),
		item("c", cents(900), "Moa"),
		item("d", cents(1500), "apple cafe"),
	}
	got := SortListings(in, KindLunch)
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids(got))
}

func TestSortListings_CombinedUsesPriceRule(t *testing.T) {
	in := []Match{item("x", nil, "A"), item("y", cents(100), "Z")}
	assert.Equal(t, []string{"y", "x"}, ids(SortListings(in, KindAll)))
}

func TestSortListings_HappyHourByStart(t *testing.T) {
	withStart := func(id, start, venue string) Match {
		m := item(id, nil, venue)
		if start != "" {
			v, _ := ParseTimeOfDay(start)
			m.Start = &v
		}
		return m
	}
	in := []Match{
		withStart("late", "17:00", "Alpha"),
		withStart("early", "15:00", "Zulu"),
		withStart("none", "", "Mike"),
		withStart("tie-b", "16:00", "bravo"),
		withStart("tie-a", "16:00", "Alpha"),
	}
	got := SortListings(in, KindHappyHour)
	assert.Equal(t, []string{"none", "early", "tie-a", "tie-b", "late"}, ids(got))
}

func TestSortListings_MissingVenue(t *testing.T) {
	in := []Match{
		item("named", cents(100), "Bar"),
		{Listing: Listing{ID: "orphan", PriceCents: cents(100)}},
	}
	assert.Equal(t, []string{"orphan", "named"}, ids(SortListings(in, KindDeal)))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "", FormatPrice(nil))
	assert.Equal(t, "$15.00", FormatPrice(cents(1500)))
	assert.Equal(t, "$0.00", FormatPrice(cents(0)))
	assert.Equal(t, "$7.05", FormatPrice(cents(705)))
}
