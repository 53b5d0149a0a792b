// Package nominatim provides a homespace.Geocoder backed by the OSM
// Nominatim search API.
package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/apehex/homespace"
	"github.com/beevik/etree"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultTimeout is the default timeout for lookup requests.
const DefaultTimeout = 5 * time.Second

// defaultUserAgent identifies the crawler per the Nominatim usage
// policy, which also caps clients at one request per second.
const defaultUserAgent = "homespace"

// Ensure Geocoder implements homespace.Geocoder at compile time.
var _ homespace.Geocoder = (*Geocoder)(nil)

// Geocoder resolves free-text locations against a Nominatim server.
// It requests exactly one match and parses the XML response. Safe for
// concurrent use; the shared limiter serializes requests to stay within
// the service's usage policy.
type Geocoder struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL points the geocoder at a different Nominatim instance.
func WithBaseURL(u string) Option {
	return func(g *Geocoder) {
		g.baseURL = u
	}
}

// WithUserAgent sets the User-Agent sent with lookups.
func WithUserAgent(ua string) Option {
	return func(g *Geocoder) {
		g.userAgent = ua
	}
}

// WithTimeout sets the timeout for lookup requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(g *Geocoder) {
		g.timeout = d
	}
}

// NewGeocoder creates a new Geocoder.
func NewGeocoder(opts ...Option) *Geocoder {
	g := &Geocoder{
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client = &http.Client{Timeout: g.timeout}
	return g
}

// Locate resolves the location text to coordinates. Empty text and "no
// match" both return nil without error; transport failures and
// non-success responses return EUNAVAILABLE.
func (g *Geocoder) Locate(ctx context.Context, location string) (*homespace.Point, error) {
	location = homespace.NormalizeSpace(location)
	if location == "" {
		return nil, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding rate wait: %v", err)
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("format", "xml")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, homespace.Errorf(homespace.EINVALID, "geocoding request: %v", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding lookup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding lookup: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding response: %v", err)
	}

	return parseSearchResults(body)
}

// parseSearchResults reads the first place of a Nominatim XML response.
// An empty result set means "no match", not an error.
func parseSearchResults(body []byte) (*homespace.Point, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding response: %v", err)
	}

	place := doc.FindElement("//place")
	if place == nil {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(place.SelectAttrValue("lat", ""), 64)
	if err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding response: bad latitude: %v", err)
	}
	lon, err := strconv.ParseFloat(place.SelectAttrValue("lon", ""), 64)
	if err != nil {
		return nil, homespace.Errorf(homespace.EUNAVAILABLE, "geocoding response: bad longitude: %v", err)
	}

	return &homespace.Point{Latitude: lat, Longitude: lon}, nil
}
