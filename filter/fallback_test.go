package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFallback(t *testing.T) {
	a, b, c := item("a", nil, "A"), item("b", nil, "B"), item("c", nil, "C")

	tests := []struct {
		name   string
		in     FallbackInput
		want   []string
		used   bool
		reason FallbackReason
	}{
		{
			name: "primary results",
			in:   FallbackInput{ByType: []Match{a}, ByRadiusAndTime: []Match{a, b}, All: []Match{a, b, c}, TypeRequested: true},
			want: []string{"a"},
		},
		{
			name:   "type relaxation",
			in:     FallbackInput{ByRadiusAndTime: []Match{a, b}, All: []Match{a, b, c}, TypeRequested: true},
			want:   []string{"a", "b"},
			used:   true,
			reason: FallbackType,
		},
		{
			name:   "no type requested skips to full",
			in:     FallbackInput{ByRadiusAndTime: []Match{a}, All: []Match{a, b, c}},
			want:   []string{"a", "b", "c"},
			used:   true,
			reason: FallbackFull,
		},
		{
			name:   "full relaxation",
			in:     FallbackInput{All: []Match{c}, TypeRequested: true},
			want:   []string{"c"},
			used:   true,
			reason: FallbackFull,
		},
		{
			name:   "full relaxation even when strict",
			in:     FallbackInput{All: []Match{c}, StrictFilters: true},
			want:   []string{"c"},
			used:   true,
			reason: FallbackFull,
		},
		{
			name: "empty source",
			in:   FallbackInput{TypeRequested: true, StrictFilters: true},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFallback(tt.in)
			assert.Equal(t, tt.want, ids(got.Items))
			assert.Equal(t, tt.used, got.UsedFallback)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestApplyFallback_NeverEmptiesNonEmptySource(t *testing.T) {
	all := []Match{item("a", nil, "A")}
	for _, typeReq := range []bool{false, true} {
		for _, strict := range []bool{false, true} {
			got := ApplyFallback(FallbackInput{All: all, TypeRequested: typeReq, StrictFilters: strict})
			assert.NotEmpty(t, got.Items)
		}
	}
}
