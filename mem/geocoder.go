// Package mem provides in-memory decorators for homespace services.
package mem

import (
	"context"
	"sync"

	"github.com/apehex/homespace"
)

// Ensure Geocoder implements homespace.Geocoder.
var _ homespace.Geocoder = (*Geocoder)(nil)

// Geocoder caches lookup results of a wrapped Geocoder, keyed by the
// whitespace-normalized location string. Listings on a marketplace
// repeat the same handful of towns, so caching removes most external
// lookups. Negative results are cached too; lookup errors are not, so
// transient failures retry on the next record.
type Geocoder struct {
	next homespace.Geocoder

	mu    sync.RWMutex
	cache map[string]*homespace.Point
}

// NewGeocoder creates a caching decorator around next.
func NewGeocoder(next homespace.Geocoder) *Geocoder {
	return &Geocoder{
		next:  next,
		cache: make(map[string]*homespace.Point),
	}
}

// Locate returns the cached result for the location when present, and
// delegates to the wrapped geocoder otherwise.
func (g *Geocoder) Locate(ctx context.Context, location string) (*homespace.Point, error) {
	key := homespace.NormalizeSpace(location)
	if key == "" {
		return nil, nil
	}

	g.mu.RLock()
	pt, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return pt, nil
	}

	pt, err := g.next.Locate(ctx, key)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[key] = pt
	g.mu.Unlock()
	return pt, nil
}

// Len returns the number of cached locations.
func (g *Geocoder) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}
