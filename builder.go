package homespace

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"
)

// DefaultGeocodeTimeout bounds the external geocoding lookup inside a
// record build. Past the deadline the record simply has no coordinates.
const DefaultGeocodeTimeout = 5 * time.Second

// Builder assembles records from raw extracted fragments. One build is
// a single synchronous pass: field pipelines first, then the derived
// fields (vendor URL, timeline, coordinates, icon, ratings).
//
// A Builder holds no mutable state, so any number of builds may run
// concurrently as long as the Geocoder is itself safe for concurrent
// use.
type Builder struct {
	// Geocoder resolves location text to coordinates. Optional; when
	// nil, records never carry coordinates.
	Geocoder Geocoder

	// GeocodeTimeout bounds one geocoding lookup. Zero means
	// DefaultGeocodeTimeout.
	GeocodeTimeout time.Duration

	// Logger receives field-degradation warnings. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Now supplies wall-clock time; overridable in tests. Defaults
	// to time.Now.
	Now func() time.Time
}

// BuildAd builds a classified-ad record from the raw fragments of one
// listing page.
//
// Malformed fields degrade to their schema defaults with a warning;
// geocoding failures leave the coordinates absent. The only fatal
// condition is a missing listing URL, reported as EINVALID.
func (b *Builder) BuildAd(ctx context.Context, fragments map[string]RawFragments, cc CrawlContext) (*SecondHandAd, error) {
	draft := b.resolveFields(AdSchema(), fragments, cc)

	ad := &SecondHandAd{
		URL:         draft["url"],
		Vendor:      draft["vendor"],
		Title:       draft["title"],
		Price:       draft["price"],
		Condition:   draft["condition"],
		Location:    draft["location"],
		FirstPosted: draft["first_posted"],
		LastUpdated: draft["last_updated"],
		Description: draft["description"],
		Images:      draft["images"],
		Brand:       draft["brand"],
		Model:       draft["model"],
		Make:        draft["make"],
		Color:       draft["color"],
		PriceNew:    draft["price_new"],
		UserRating:  draft["user_rating"],
		Provider:    cc.Provider,
	}
	if err := ad.Validate(); err != nil {
		return nil, err
	}

	now := b.now()

	// A listing is assumed newly observed unless told otherwise.
	if ad.LastUpdated == "" {
		ad.LastUpdated = FormatDatetime(now)
	}
	if ad.FirstPosted == "" {
		ad.FirstPosted = ad.LastUpdated
	}
	ad.AgeDays = b.ageDays(now, ad.LastUpdated)

	ad.Vendor = resolveVendor(cc.BaseURL, ad.Vendor)
	ad.Icon = cc.MarkerIcon()
	ad.ValueRating = ratingOrNeutral(draft["value_rating"])
	ad.LeverageRating = ratingOrNeutral(draft["leverage_rating"])

	// Coordinates come last so a geocoding failure cannot disturb
	// the fields above. Both are set or neither is.
	if pt := b.locate(ctx, ad.Location); pt != nil {
		lat, lon := pt.Latitude, pt.Longitude
		ad.Latitude = &lat
		ad.Longitude = &lon
	}

	return ad, nil
}

// BuildLegalDocument builds a legal-document record from the raw
// fragments of one policy page.
func (b *Builder) BuildLegalDocument(_ context.Context, fragments map[string]RawFragments, cc CrawlContext) (*LegalDocument, error) {
	draft := b.resolveFields(LegalDocumentSchema(), fragments, cc)

	doc := &LegalDocument{
		URL:       draft["url"],
		Provider:  draft["provider"],
		Text:      draft["text"],
		FetchedAt: b.now().UTC(),
	}
	if doc.Provider == "" {
		doc.Provider = cc.Provider
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// resolveFields runs every field pipeline of the schema. A pipeline
// failure substitutes the field default and logs the offending fragment
// for data-quality review; it never aborts the record.
func (b *Builder) resolveFields(schema Schema, fragments map[string]RawFragments, cc CrawlContext) map[string]string {
	draft := make(map[string]string, len(schema.Fields))
	for _, spec := range schema.Fields {
		value, err := spec.Resolve(fragments[spec.Name], cc)
		if err != nil {
			b.logger().Warn("field degraded to default",
				"kind", schema.Kind,
				"provider", cc.Provider,
				"error", err,
			)
			value = spec.Default
		}
		draft[spec.Name] = value
	}
	return draft
}

// ageDays returns the whole days elapsed since the ISO-8601 timestamp,
// clamped to zero. Clock skew or bad source data must never produce a
// negative age.
func (b *Builder) ageDays(now time.Time, lastUpdated string) int {
	t, err := ParseISODatetime(lastUpdated)
	if err != nil {
		b.logger().Warn("unreadable last_updated, age defaults to 0", "error", err)
		return 0
	}
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// locate resolves the location text to coordinates, bounded by the
// geocode timeout. Empty text, no match, and lookup failures all mean
// "no location"; failures are logged, never propagated.
func (b *Builder) locate(ctx context.Context, location string) *Point {
	if location == "" || b.Geocoder == nil {
		return nil
	}

	timeout := b.GeocodeTimeout
	if timeout <= 0 {
		timeout = DefaultGeocodeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pt, err := b.Geocoder.Locate(ctx, location)
	if err != nil {
		b.logger().Warn("geolocation unavailable", "location", location, "error", err)
		return nil
	}
	return pt
}

// resolveVendor makes the vendor URL absolute by resolving it against
// the source's base URL. An unset base or an unparsable value leaves
// the vendor as extracted.
func resolveVendor(baseURL, vendor string) string {
	if baseURL == "" || vendor == "" {
		return vendor
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return vendor
	}
	ref, err := url.Parse(vendor)
	if err != nil {
		return vendor
	}
	return base.ResolveReference(ref).String()
}

// ratingOrNeutral parses an extracted rating, falling back to the
// neutral default when absent or unreadable.
func ratingOrNeutral(text string) int {
	if text == "" {
		return NeutralRating
	}
	rating, err := strconv.Atoi(text)
	if err != nil {
		return NeutralRating
	}
	return rating
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
