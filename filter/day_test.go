package filter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDay_CanonicalRoundTrip(t *testing.T) {
	for i := 0; i <= 6; i++ {
		d, ok := NormalizeDay(i, SchemeSun0)
		assert.True(t, ok)
		assert.Equal(t, time.Weekday(i), d)

		d, ok = NormalizeDay(ISOWeekday(time.Weekday(i)), SchemeISO1)
		assert.True(t, ok)
		assert.Equal(t, time.Weekday(i), d, "iso value %d", ISOWeekday(time.Weekday(i)))
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name   string
		raw    interface{}
		scheme Scheme
		want   time.Weekday
		ok     bool
	}{
		{"sun0 zero is sunday", 0, SchemeSun0, time.Sunday, true},
		{"iso seven is sunday", 7, SchemeISO1, time.Sunday, true},
		{"iso one is monday", 1, SchemeISO1, time.Monday, true},
		{"iso zero rejected", 0, SchemeISO1, 0, false},
		{"sun0 seven rejected", 7, SchemeSun0, 0, false},
		{"negative rejected", -1, SchemeSun0, 0, false},
		{"json float", float64(3), SchemeISO1, time.Wednesday, true},
		{"fractional float rejected", 2.5, SchemeSun0, 0, false},
		{"json number", json.Number("5"), SchemeSun0, time.Friday, true},
		{"numeric string", "2", SchemeSun0, time.Tuesday, true},
		{"numeric string iso", " 3 ", SchemeISO1, time.Wednesday, true},
		{"numeric string under name scheme", "2", SchemeName, 0, false},
		{"number under name scheme", 2, SchemeName, 0, false},
		{"full name", "Wednesday", SchemeName, time.Wednesday, true},
		{"upper abbreviation", "TUE", SchemeName, time.Tuesday, true},
		{"tues", "tues", SchemeName, time.Tuesday, true},
		{"weds", "weds", SchemeName, time.Wednesday, true},
		{"thur", "thur", SchemeName, time.Thursday, true},
		{"thurs with dot", "Thurs.", SchemeName, time.Thursday, true},
		{"name under numeric scheme", "friday", SchemeISO1, time.Friday, true},
		{"unknown string", "funday", SchemeName, 0, false},
		{"empty string", "", SchemeSun0, 0, false},
		{"nil", nil, SchemeSun0, 0, false},
		{"unsupported type", []int{1}, SchemeSun0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDay(tt.raw, tt.scheme)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeDay_UndeclaredSchemePanics(t *testing.T) {
	assert.Panics(t, func() { NormalizeDay(1, Scheme("guess")) })
}

func TestRawDay_Normalize(t *testing.T) {
	d, ok := RawDay{Scheme: SchemeISO1, Value: 3}.Normalize()
	require.True(t, ok)
	assert.Equal(t, time.Wednesday, d)
}

func TestNormalizeDayArray(t *testing.T) {
	t.Run("nil means every day", func(t *testing.T) {
		assert.True(t, NormalizeDayArray(nil, SchemeSun0).IsEveryDay())
	})

	t.Run("empty means every day", func(t *testing.T) {
		assert.True(t, NormalizeDayArray([]interface{}{}, SchemeSun0).IsEveryDay())
	})

	t.Run("drops unknown and dedupes", func(t *testing.T) {
		spec := NormalizeDayArray([]interface{}{1, "mon", "bogus", 9, 5}, SchemeSun0)
		assert.False(t, spec.IsEveryDay())
		assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, spec.Days())
	})

	t.Run("fully unrecognized matches nothing", func(t *testing.T) {
		spec := NormalizeDayArray([]interface{}{"bogus", 42}, SchemeSun0)
		assert.False(t, spec.IsEveryDay())
		assert.Empty(t, spec.Days())
		for d := time.Sunday; d <= time.Saturday; d++ {
			assert.False(t, MatchesDay(spec, d))
		}
	})
}

func TestMatchesDay(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, MatchesDay(EveryDay(), d))
		assert.True(t, MatchesDay(DaySpec{}, d), "zero value is every day")
	}

	tuesday := Specific(time.Tuesday)
	assert.True(t, MatchesDay(tuesday, time.Tuesday))
	assert.False(t, MatchesDay(tuesday, time.Wednesday))
}

func TestMixedEncodingsConverge(t *testing.T) {
	lunch := NormalizeDayArray([]interface{}{"wednesday"}, SchemeName)
	happy := NormalizeDayArray([]interface{}{3}, SchemeISO1)

	assert.Equal(t, []time.Weekday{time.Wednesday}, lunch.Days())
	assert.Equal(t, lunch.Days(), happy.Days())
}

func TestDaySpec_JSON(t *testing.T) {
	b, err := json.Marshal(EveryDay())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Specific(time.Saturday, time.Monday))
	require.NoError(t, err)
	assert.Equal(t, "[1,6]", string(b))

	var spec DaySpec
	require.NoError(t, json.Unmarshal([]byte("[2]"), &spec))
	assert.Equal(t, []time.Weekday{time.Tuesday}, spec.Days())

	require.NoError(t, json.Unmarshal([]byte("null"), &spec))
	assert.True(t, spec.IsEveryDay())

	require.NoError(t, json.Unmarshal([]byte("[]"), &spec))
	assert.False(t, spec.IsEveryDay())
}

func TestDaySpec_String(t *testing.T) {
	assert.Equal(t, "every day", EveryDay().String())
	assert.Equal(t, "Mon,Fri", Specific(time.Friday, time.Monday).String())
}
