package homespace

import "context"

// Fetcher retrieves raw HTML from URLs. Retries, proxies, and
// user-agent handling live behind this boundary; the record core never
// performs network fetches itself.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
