// Package goquery evaluates source selector maps against fetched HTML,
// producing the raw fragments the record builder consumes.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/apehex/homespace"
)

// Ensure Extractor implements the domain interfaces at compile time.
var (
	_ homespace.FragmentExtractor = (*Extractor)(nil)
	_ homespace.LinkExtractor     = (*Extractor)(nil)
)

// Extractor evaluates CSS selectors against HTML documents.
//
// A selector expression is a CSS selector, optionally suffixed with
// "@attr" to take an attribute value per match ("img@src"), or "@html"
// to take each match's inner HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFragments applies the selector map to the page and returns the
// matched fragments per field, in document order. Fields whose selector
// matches nothing get no entry; the builder substitutes schema defaults.
func (e *Extractor) ExtractFragments(html string, selectors map[string]string) (map[string]homespace.RawFragments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, homespace.Errorf(homespace.EINVALID, "failed to parse HTML: %v", err)
	}

	fragments := make(map[string]homespace.RawFragments, len(selectors))
	for field, expr := range selectors {
		selector, attr := splitExpr(expr)
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			value, ok := fragmentValue(sel, attr)
			if !ok {
				return
			}
			fragments[field] = append(fragments[field], value)
		})
	}
	return fragments, nil
}

// fragmentValue reads one fragment from a matched node.
func fragmentValue(sel *goquery.Selection, attr string) (string, bool) {
	switch attr {
	case "":
		return sel.Text(), true
	case "html":
		inner, err := sel.Html()
		if err != nil {
			return "", false
		}
		return inner, true
	default:
		return sel.Attr(attr)
	}
}

// splitExpr separates a selector expression into the CSS selector and
// the optional attribute suffix.
func splitExpr(expr string) (selector, attr string) {
	if idx := strings.LastIndex(expr, "@"); idx != -1 {
		return expr[:idx], expr[idx+1:]
	}
	return expr, ""
}
