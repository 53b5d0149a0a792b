// Package crawl orchestrates the monitoring run: fetching configured
// sources, extracting raw fragments, building records, and persisting
// them.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/apehex/homespace"
	"github.com/apehex/homespace/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of ad pages processed in flight per
// source.
const DefaultConcurrency = 4

// expectedURLs sizes the frontier's seen-filter.
const expectedURLs = 100_000

// Crawler fetches configured sources and turns their pages into stored
// records. Build failures degrade to counters; a crawl never aborts
// because one listing or one policy page was broken.
type Crawler struct {
	Fetcher   homespace.Fetcher
	Fragments homespace.FragmentExtractor
	Links     homespace.LinkExtractor
	Builder   *homespace.Builder
	Ads       homespace.AdService
	Legal     homespace.LegalDocumentService

	// Extractor is the fallback for legal sources without a text
	// selector. Optional.
	Extractor homespace.Extractor

	// Converter canonicalizes legal content HTML to markdown before
	// storage. Optional; without it the raw fragment text is stored.
	Converter homespace.Converter

	// Limiter throttles requests per domain. Optional.
	Limiter *DomainLimiter

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Concurrency bounds in-flight ad pages per source. Zero means
	// DefaultConcurrency.
	Concurrency int

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl run.
type Result struct {
	// Saved counts stored records (new ad observations and new legal
	// document versions).
	Saved int

	// Unchanged counts legal documents whose text did not change
	// since the last stored version.
	Unchanged int

	// Failed counts pages that could not be fetched or built.
	Failed int
}

// Run crawls every source and returns aggregate counts. Only a context
// cancellation stops the run early.
func (c *Crawler) Run(ctx context.Context, sources []homespace.Source) (*Result, error) {
	seen := bloom.NewFilter(expectedURLs, 0.01)

	result := &Result{}
	for i := range sources {
		source := &sources[i]
		if err := source.Validate(); err != nil {
			return nil, err
		}

		var err error
		switch source.Kind {
		case homespace.SourceKindLegal:
			err = c.crawlLegal(ctx, source, result)
		case homespace.SourceKindAd:
			err = c.crawlAds(ctx, source, seen, result)
		}
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			c.logger().Warn("source failed", "source", source.Name, "error", err)
			result.Failed++
		}
	}
	return result, nil
}

// crawlLegal fetches one legal document, extracts its text, and stores
// a new version when the text changed.
func (c *Crawler) crawlLegal(ctx context.Context, source *homespace.Source, result *Result) error {
	html, err := c.fetch(ctx, source.URL)
	if err != nil {
		return err
	}

	fragments, htmlText, err := c.legalFragments(html, source)
	if err != nil {
		return err
	}
	if len(fragments["url"]) == 0 {
		fragments["url"] = homespace.RawFragments{source.URL}
	}

	if htmlText && c.Converter != nil {
		converted := make(homespace.RawFragments, 0, len(fragments["text"]))
		for _, fragment := range fragments["text"] {
			markdown, err := c.Converter.Convert(fragment)
			if err != nil {
				c.logger().Warn("markdown conversion failed, storing raw text",
					"source", source.Name, "error", err)
				markdown = fragment
			}
			converted = append(converted, markdown)
		}
		fragments["text"] = converted
	}

	doc, err := c.Builder.BuildLegalDocument(ctx, fragments, source.Context())
	if err != nil {
		return err
	}

	created, err := c.Legal.CreateLegalDocument(ctx, doc)
	if err != nil {
		return err
	}
	if created {
		result.Saved++
		c.logger().Info("new legal document version",
			"provider", doc.Provider, "url", doc.URL, "hash", doc.ContentHash)
	} else {
		result.Unchanged++
	}
	return nil
}

// legalFragments extracts the raw fragments for a legal source. Sources
// without selectors fall back to main-content extraction. The htmlText
// result reports whether the text fragments are HTML and still need
// markdown conversion.
func (c *Crawler) legalFragments(html string, source *homespace.Source) (map[string]homespace.RawFragments, bool, error) {
	if len(source.Selectors) > 0 {
		fragments, err := c.Fragments.ExtractFragments(html, source.Selectors)
		if err != nil {
			return nil, false, err
		}
		return fragments, strings.HasSuffix(source.Selectors["text"], "@html"), nil
	}

	if c.Extractor == nil {
		return nil, false, homespace.Errorf(homespace.EINVALID,
			"source %q: no selectors and no content extractor", source.Name)
	}
	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, false, err
	}
	return map[string]homespace.RawFragments{
		"text": {extracted.ContentHTML},
	}, true, nil
}

// crawlAds fetches one marketplace listing page, discovers the ad
// links on it, and processes each unseen ad concurrently.
func (c *Crawler) crawlAds(ctx context.Context, source *homespace.Source, seen *bloom.Filter, result *Result) error {
	listing, err := c.fetch(ctx, source.URL)
	if err != nil {
		return err
	}

	baseURL := source.BaseURL
	if baseURL == "" {
		baseURL = source.URL
	}
	links, err := c.Links.ExtractLinks(listing, baseURL, source.Links)
	if err != nil {
		return err
	}

	cc := source.Context()

	var saved, failed atomic.Int64

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, link := range links {
		if seen.Test(link) {
			continue
		}
		seen.Add(link)

		g.Go(func() error {
			if err := c.processAd(gctx, link, source, cc); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger().Warn("ad failed", "source", source.Name, "url", link, "error", err)
				failed.Add(1)
				return nil
			}
			saved.Add(1)
			return nil
		})
	}

	err = g.Wait()
	result.Saved += int(saved.Load())
	result.Failed += int(failed.Load())
	return err
}

// processAd fetches one ad page, builds the record, and stores it.
func (c *Crawler) processAd(ctx context.Context, adURL string, source *homespace.Source, cc homespace.CrawlContext) error {
	html, err := c.fetch(ctx, adURL)
	if err != nil {
		return err
	}

	fragments, err := c.Fragments.ExtractFragments(html, source.Selectors)
	if err != nil {
		return err
	}
	if len(fragments["url"]) == 0 {
		fragments["url"] = homespace.RawFragments{adURL}
	}

	ad, err := c.Builder.BuildAd(ctx, fragments, cc)
	if err != nil {
		return err
	}
	return c.Ads.SaveAd(ctx, ad)
}

// fetch retrieves a page, honoring the per-domain rate limit and the
// retry schedule.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return fetchWithRetry(ctx, pageURL, c.Fetcher.Fetch, delays)
}

// domainOf returns the host of a URL, or the URL itself when it does
// not parse. An unparsable URL still gets rate-limited, just under its
// own key.
func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Host
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
