package main

import (
	"fmt"

	"github.com/apehex/homespace"
)

// Run executes the ads command.
func (c *AdsCmd) Run(deps *Dependencies) error {
	filter := homespace.AdFilter{Limit: c.Limit}
	if c.Provider != "" {
		filter.Provider = &c.Provider
	}

	ads, err := deps.Ads.FindAds(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", homespace.ErrorMessage(err))
		return err
	}

	if len(ads) == 0 {
		fmt.Fprintln(deps.Stdout, "No ads found. Use 'homespace crawl' to collect some.")
		return nil
	}

	for _, ad := range ads {
		title := ad.Title
		if title == "" {
			title = ad.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n     %s\n", ad.Provider, ad.Price, title, ad.URL)
	}

	return nil
}
