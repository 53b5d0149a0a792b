package mock

import "github.com/apehex/homespace"

var _ homespace.FragmentExtractor = (*FragmentExtractor)(nil)

// FragmentExtractor is a mock implementation of homespace.FragmentExtractor.
type FragmentExtractor struct {
	ExtractFragmentsFn func(html string, selectors map[string]string) (map[string]homespace.RawFragments, error)
}

func (e *FragmentExtractor) ExtractFragments(html string, selectors map[string]string) (map[string]homespace.RawFragments, error) {
	return e.ExtractFragmentsFn(html, selectors)
}

var _ homespace.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of homespace.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string, selector string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string, selector string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL, selector)
}

var _ homespace.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of homespace.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*homespace.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*homespace.ExtractResult, error) {
	return e.ExtractFn(html)
}
