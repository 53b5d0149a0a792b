package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/apehex/homespace"
)

// ExtractLinks returns the absolute URLs matched by the selector on a
// listing page. Relative hrefs are resolved against baseURL, duplicates
// are collapsed keeping first occurrence order, and links to other
// hosts are filtered out.
func (e *Extractor) ExtractLinks(html string, baseURL string, selector string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, homespace.Errorf(homespace.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, homespace.Errorf(homespace.EINVALID, "failed to parse HTML: %v", err)
	}

	sel, attr := splitExpr(selector)
	if attr == "" {
		attr = "href"
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find(sel).Each(func(_ int, node *goquery.Selection) {
		href, exists := node.Attr(attr)
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if !isSameHost(base, resolved) {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves a relative href against a base URL, stripping
// fragments and filtering self-referential links.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
