package filter

import "math"

// EarthRadiusMeters is the mean radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Coord is a WGS84 latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c is a finite coordinate within WGS84 bounds.
func (c Coord) Valid() bool {
	return ValidLatitude(c.Lat) && ValidLongitude(c.Lng)
}

// ValidLatitude is false for NaN, infinities and anything outside [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude is false for NaN, infinities and anything outside [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// DistanceMeters is the great-circle distance between a and b.
func DistanceMeters(a, b Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// DistanceTo returns nil when either side has no coordinate.
func DistanceTo(user, venue *Coord) *float64 {
	if user == nil || venue == nil {
		return nil
	}
	d := DistanceMeters(*user, *venue)
	return &d
}

// WithinRadius passes unknown distances and a nil (whole region) radius.
func WithinRadius(distance, radius *float64) bool {
	if distance == nil || radius == nil {
		return true
	}
	return *distance <= *radius
}

var distanceBuckets = []struct {
	below float64
	label string
}{
	{250, "<250 m away"},
	{500, "<500 m away"},
	{1000, "<1 km away"},
	{2000, "<2 km away"},
	{5000, "<5 km away"},
	{10000, "<10 km away"},
}

// FormatDistanceBucket gives a deliberately coarse label for a distance.
func FormatDistanceBucket(meters float64) string {
	for _, b := range distanceBuckets {
		if meters < b.below {
			return b.label
		}
	}
	return "10+ km away"
}
