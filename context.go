package homespace

// DefaultIcon is the map marker used when a source does not declare one.
const DefaultIcon = "marker"

// CrawlContext carries the per-source configuration a record build needs:
// how the site serializes dates, where relative links resolve to, and
// which map icon its records get. It is supplied by the crawl
// orchestrator and never mutated by the core, so a single value may be
// shared by any number of concurrent builds.
type CrawlContext struct {
	// BaseURL resolves relative vendor links. When empty, relative
	// vendor URLs are left as extracted.
	BaseURL string

	// DatetimeFormat is the strftime format the source serializes
	// dates with. Empty means DefaultDatetimeFormat.
	DatetimeFormat string

	// Icon identifies the map marker for records of this source.
	// Empty means DefaultIcon.
	Icon string

	// Provider is a free-form source identifier.
	Provider string

	// Selectors maps record field names to source-specific selector
	// expressions. Opaque to the core; evaluated by the selector layer.
	Selectors map[string]string
}

// MarkerIcon returns the configured icon, or DefaultIcon when unset.
func (c CrawlContext) MarkerIcon() string {
	if c.Icon == "" {
		return DefaultIcon
	}
	return c.Icon
}
