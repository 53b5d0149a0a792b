package homespace

// FragmentExtractor evaluates a source's selector map against a fetched
// page and returns the raw fragments per field, in document order.
//
// Selector expressions are CSS selectors, optionally suffixed with
// "@attr" to take an attribute value instead of the element text, or
// "@html" to take the element's inner HTML.
type FragmentExtractor interface {
	ExtractFragments(html string, selectors map[string]string) (map[string]RawFragments, error)
}

// LinkExtractor finds ad detail links on a marketplace listing page.
type LinkExtractor interface {
	// ExtractLinks returns the absolute URLs matched by the selector,
	// deduplicated, with relative hrefs resolved against baseURL and
	// external hosts filtered out.
	ExtractLinks(html string, baseURL string, selector string) ([]string, error)
}

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, with
	// boilerplate (nav, footer, cookie banners) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages. Used as the fallback
// for legal sources that do not configure a text selector.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
