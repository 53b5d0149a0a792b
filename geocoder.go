package homespace

import "context"

// Point is a geocoded coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	// Locate returns the best match for the location text, or nil
	// when the text is empty or nothing matched. Transport failures
	// and timeouts surface as errors; callers that build records
	// treat them the same as "no match".
	Locate(ctx context.Context, location string) (*Point, error)
}
