package homespace

// SourceKind distinguishes the two record kinds a source can produce.
type SourceKind string

// Supported source kinds.
const (
	SourceKindAd    SourceKind = "ad"
	SourceKindLegal SourceKind = "legal"
)

// Source describes one configured crawl target: a marketplace search
// page or a provider's legal document.
type Source struct {
	// Name is the free-form provider identifier (e.g., "craigslist",
	// "protonmail").
	Name string

	// Kind selects the record schema: classified ads or a legal
	// document.
	Kind SourceKind

	// URL is the entry page: a search/listing page for ad sources,
	// the document itself for legal sources.
	URL string

	// BaseURL resolves relative links extracted from the source's
	// pages. Defaults to the scheme and host of URL when empty.
	BaseURL string

	// DatetimeFormat is the strftime format the source serializes
	// dates with.
	DatetimeFormat string

	// Icon identifies the map marker for this source's records.
	Icon string

	// Selectors maps record field names to selector expressions
	// evaluated against a fetched page.
	Selectors map[string]string

	// Links is the selector locating ad detail links on a listing
	// page. Only meaningful for ad sources.
	Links string
}

// Validate returns an error if the source is not crawlable.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source %q: url required", s.Name)
	}
	switch s.Kind {
	case SourceKindAd, SourceKindLegal:
	default:
		return Errorf(EINVALID, "source %q: unknown kind %q", s.Name, s.Kind)
	}
	if s.Kind == SourceKindAd && s.Links == "" {
		return Errorf(EINVALID, "source %q: ad sources need a links selector", s.Name)
	}
	return nil
}

// Context derives the crawl context handed to record builds for this
// source.
func (s *Source) Context() CrawlContext {
	return CrawlContext{
		BaseURL:        s.BaseURL,
		DatetimeFormat: s.DatetimeFormat,
		Icon:           s.Icon,
		Provider:       s.Name,
		Selectors:      s.Selectors,
	}
}
