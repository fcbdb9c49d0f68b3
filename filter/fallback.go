package filter

// FallbackReason says which relaxation produced the items.
type FallbackReason string

const (
	FallbackNone FallbackReason = ""
	// FallbackType dropped the deal-type filter.
	FallbackType FallbackReason = "type"
	// FallbackFull dropped the radius and time filters too.
	FallbackFull FallbackReason = "full"
)

// FallbackInput carries the three progressively wider result sets.
type FallbackInput struct {
	// ByType honors type, radius and time window.
	ByType []Match
	// ByRadiusAndTime honors radius and time window across all types.
	ByRadiusAndTime []Match
	// All is every day-matched item, ignoring radius and time.
	All []Match
	// TypeRequested is set when a specific type was selected.
	TypeRequested bool
	// StrictFilters is set when the user chose radius/time explicitly.
	StrictFilters bool
}

// FallbackResult is what the page renders plus the disclosure flags.
type FallbackResult struct {
	Items        []Match        `json:"items"`
	UsedFallback bool           `json:"used_fallback"`
	Reason       FallbackReason `json:"reason,omitempty"`
}

// ApplyFallback relaxes filters until something is left to show. It only
// returns no items when All is empty.
func ApplyFallback(in FallbackInput) FallbackResult {
	if len(in.ByType) > 0 {
		return FallbackResult{Items: in.ByType}
	}
	if in.TypeRequested && len(in.ByRadiusAndTime) > 0 {
		return FallbackResult{Items: in.ByRadiusAndTime, UsedFallback: true, Reason: FallbackType}
	}
	if len(in.All) > 0 {
		// StrictFilters does not prevent the full relaxation.
		return FallbackResult{Items: in.All, UsedFallback: true, Reason: FallbackFull}
	}
	return FallbackResult{Items: []Match{}}
}
