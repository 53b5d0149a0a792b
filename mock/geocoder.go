package mock

import (
	"context"

	"github.com/apehex/homespace"
)

var _ homespace.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of homespace.Geocoder.
type Geocoder struct {
	LocateFn func(ctx context.Context, location string) (*homespace.Point, error)
}

func (g *Geocoder) Locate(ctx context.Context, location string) (*homespace.Point, error) {
	return g.LocateFn(ctx, location)
}
