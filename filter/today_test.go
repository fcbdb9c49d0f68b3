package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayIndex(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Weekday
	}{
		{
			// 23:30 NZST on Saturday, the night before daylight saving starts
			name: "before dst starts",
			at:   time.Date(2026, 9, 26, 11, 30, 0, 0, time.UTC),
			want: time.Saturday,
		},
		{
			name: "after dst starts",
			at:   time.Date(2026, 9, 27, 11, 30, 0, 0, time.UTC),
			want: time.Monday,
		},
		{
			// 00:30 NZDT Wednesday; a fixed +12 offset would still say Tuesday
			name: "day boundary under daylight time",
			at:   time.Date(2026, 10, 13, 11, 30, 0, 0, time.UTC),
			want: time.Wednesday,
		},
		{
			name: "utc tuesday afternoon is tuesday night in auckland",
			at:   time.Date(2026, 10, 13, 2, 0, 0, 0, time.UTC),
			want: time.Tuesday,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TodayIndex(DefaultTimezone, FixedClock{At: tt.at})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTodayIndex_IndependentOfInstantZone(t *testing.T) {
	utc := time.Date(2026, 10, 13, 11, 30, 0, 0, time.UTC)
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	a, err := TodayIndex(DefaultTimezone, FixedClock{At: utc})
	require.NoError(t, err)
	b, err := TodayIndex(DefaultTimezone, FixedClock{At: utc.In(la)})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTodayIndex_UnknownTimezone(t *testing.T) {
	_, err := TodayIndex("Mars/Olympus_Mons", SystemClock{})
	assert.True(t, errors.Is(err, ErrUnknownTimezone))
}
