// Package slog provides logging decorators for homespace services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/apehex/homespace"
)

// Ensure Geocoder implements homespace.Geocoder.
var _ homespace.Geocoder = (*Geocoder)(nil)

// Geocoder wraps a homespace.Geocoder with debug logging of lookups.
type Geocoder struct {
	next   homespace.Geocoder
	logger *slog.Logger
}

// NewGeocoder creates a new logging Geocoder.
func NewGeocoder(next homespace.Geocoder, logger *slog.Logger) *Geocoder {
	return &Geocoder{next: next, logger: logger}
}

// Locate delegates to the wrapped geocoder and logs the outcome.
func (g *Geocoder) Locate(ctx context.Context, location string) (*homespace.Point, error) {
	begin := time.Now()
	pt, err := g.next.Locate(ctx, location)
	g.logger.Debug("geocoding lookup",
		"location", location,
		"found", pt != nil,
		"duration", time.Since(begin),
		"error", err,
	)
	return pt, err
}
