package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/apehex/homespace"
	"github.com/apehex/homespace/crawl"
	"github.com/apehex/homespace/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adSource() homespace.Source {
	return homespace.Source{
		Name:    "market",
		Kind:    homespace.SourceKindAd,
		URL:     "https://market.example.com/search",
		BaseURL: "https://market.example.com",
		Icon:    "sofa",
		Links:   "a.ad",
		Selectors: map[string]string{
			"title": "h1",
			"price": ".price",
		},
	}
}

func legalSource() homespace.Source {
	return homespace.Source{
		Name: "provider",
		Kind: homespace.SourceKindLegal,
		URL:  "https://provider.example.com/privacy",
		Selectors: map[string]string{
			"text": "main@html",
		},
	}
}

func TestCrawler_Run_AdSource(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return "<html>" + url + "</html>", nil
		},
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(_ string, baseURL string, selector string) ([]string, error) {
			assert.Equal(t, "https://market.example.com", baseURL)
			assert.Equal(t, "a.ad", selector)
			return []string{
				"https://market.example.com/ads/1",
				"https://market.example.com/ads/2",
			}, nil
		},
	}
	fragments := &mock.FragmentExtractor{
		ExtractFragmentsFn: func(string, map[string]string) (map[string]homespace.RawFragments, error) {
			return map[string]homespace.RawFragments{
				"title": {"Wooden desk"},
			}, nil
		},
	}

	var mu sync.Mutex
	var saved []*homespace.SecondHandAd
	ads := &mock.AdService{
		SaveAdFn: func(_ context.Context, ad *homespace.SecondHandAd) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append(saved, ad)
			return nil
		},
	}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   fragments,
		Links:       links,
		Builder:     &homespace.Builder{},
		Ads:         ads,
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{adSource()})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Zero(t, result.Failed)

	require.Len(t, saved, 2)
	urls := []string{saved[0].URL, saved[1].URL}
	assert.ElementsMatch(t, []string{
		"https://market.example.com/ads/1",
		"https://market.example.com/ads/2",
	}, urls)
	assert.Equal(t, "Wooden desk", saved[0].Title)
	assert.Equal(t, "sofa", saved[0].Icon)
	assert.Equal(t, "market", saved[0].Provider)
}

func TestCrawler_Run_AdSource_SkipsSeenURLs(t *testing.T) {
	t.Parallel()

	var fetched []string
	var mu sync.Mutex
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			mu.Lock()
			fetched = append(fetched, url)
			mu.Unlock()
			return "<html></html>", nil
		},
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(string, string, string) ([]string, error) {
			return []string{"https://market.example.com/ads/1"}, nil
		},
	}
	fragments := &mock.FragmentExtractor{
		ExtractFragmentsFn: func(string, map[string]string) (map[string]homespace.RawFragments, error) {
			return map[string]homespace.RawFragments{}, nil
		},
	}
	ads := &mock.AdService{
		SaveAdFn: func(context.Context, *homespace.SecondHandAd) error { return nil },
	}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   fragments,
		Links:       links,
		Builder:     &homespace.Builder{},
		Ads:         ads,
		RetryDelays: []time.Duration{},
	}

	// Same source twice: the ad appears on both listing pages but is
	// only processed once.
	result, err := c.Run(context.Background(), []homespace.Source{adSource(), adSource()})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)

	// Two listing fetches, one ad fetch.
	assert.Len(t, fetched, 3)
}

func TestCrawler_Run_AdSource_BadAdDegradesToFailureCount(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if url == "https://market.example.com/ads/broken" {
				return "", errors.New("HTTP 500")
			}
			return "<html></html>", nil
		},
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(string, string, string) ([]string, error) {
			return []string{
				"https://market.example.com/ads/1",
				"https://market.example.com/ads/broken",
			}, nil
		},
	}
	fragments := &mock.FragmentExtractor{
		ExtractFragmentsFn: func(string, map[string]string) (map[string]homespace.RawFragments, error) {
			return map[string]homespace.RawFragments{}, nil
		},
	}
	ads := &mock.AdService{
		SaveAdFn: func(context.Context, *homespace.SecondHandAd) error { return nil },
	}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   fragments,
		Links:       links,
		Builder:     &homespace.Builder{},
		Ads:         ads,
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{adSource()})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.Failed)
}

func TestCrawler_Run_LegalSource(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			assert.Equal(t, "https://provider.example.com/privacy", url)
			return "<html><main><p>We collect nothing.</p></main></html>", nil
		},
	}
	fragments := &mock.FragmentExtractor{
		ExtractFragmentsFn: func(_ string, selectors map[string]string) (map[string]homespace.RawFragments, error) {
			assert.Equal(t, "main@html", selectors["text"])
			return map[string]homespace.RawFragments{
				"text": {"<p>We collect nothing.</p>"},
			}, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			assert.Equal(t, "<p>We collect nothing.</p>", html)
			return "We collect nothing.", nil
		},
	}

	var stored *homespace.LegalDocument
	legal := &mock.LegalDocumentService{
		CreateLegalDocumentFn: func(_ context.Context, doc *homespace.LegalDocument) (bool, error) {
			stored = doc
			return true, nil
		},
	}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   fragments,
		Converter:   converter,
		Builder:     &homespace.Builder{},
		Legal:       legal,
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{legalSource()})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)

	require.NotNil(t, stored)
	// The crawler seeds the url fragment with the page it fetched.
	assert.Equal(t, "https://provider.example.com/privacy", stored.URL)
	assert.Equal(t, "provider", stored.Provider)
	assert.Equal(t, "We collect nothing.", stored.Text)
}

func TestCrawler_Run_LegalSource_UnchangedVersion(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "<html></html>", nil
		},
	}
	fragments := &mock.FragmentExtractor{
		ExtractFragmentsFn: func(string, map[string]string) (map[string]homespace.RawFragments, error) {
			return map[string]homespace.RawFragments{"text": {"same old policy"}}, nil
		},
	}
	legal := &mock.LegalDocumentService{
		CreateLegalDocumentFn: func(context.Context, *homespace.LegalDocument) (bool, error) {
			return false, nil
		},
	}

	src := legalSource()
	src.Selectors = map[string]string{"text": "main"}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   fragments,
		Builder:     &homespace.Builder{},
		Legal:       legal,
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{src})

	require.NoError(t, err)
	assert.Zero(t, result.Saved)
	assert.Equal(t, 1, result.Unchanged)
}

func TestCrawler_Run_LegalSource_FallbackExtraction(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "<html>raw page</html>", nil
		},
	}
	extractor := &mock.Extractor{
		ExtractFn: func(html string) (*homespace.ExtractResult, error) {
			return &homespace.ExtractResult{ContentHTML: "<p>policy body</p>"}, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(string) (string, error) {
			return "policy body", nil
		},
	}
	legal := &mock.LegalDocumentService{
		CreateLegalDocumentFn: func(_ context.Context, doc *homespace.LegalDocument) (bool, error) {
			assert.Equal(t, "policy body", doc.Text)
			return true, nil
		},
	}

	src := legalSource()
	src.Selectors = nil

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   &mock.FragmentExtractor{},
		Extractor:   extractor,
		Converter:   converter,
		Builder:     &homespace.Builder{},
		Legal:       legal,
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{src})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
}

func TestCrawler_Run_UnreachableSourceCountsAsFailed(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Fragments:   &mock.FragmentExtractor{},
		Builder:     &homespace.Builder{},
		Legal:       &mock.LegalDocumentService{},
		RetryDelays: []time.Duration{},
	}

	result, err := c.Run(context.Background(), []homespace.Source{legalSource()})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestCrawler_Run_InvalidSource(t *testing.T) {
	t.Parallel()

	c := &crawl.Crawler{
		Fetcher:   &mock.Fetcher{},
		Fragments: &mock.FragmentExtractor{},
		Builder:   &homespace.Builder{},
	}

	_, err := c.Run(context.Background(), []homespace.Source{{Name: "x", URL: "https://example.com", Kind: "blog"}})

	require.Error(t, err)
	assert.Equal(t, homespace.EINVALID, homespace.ErrorCode(err))
}
