package main

import (
	"fmt"

	"github.com/apehex/homespace"
	"github.com/apehex/homespace/yaml"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	sources, err := yaml.LoadSources(c.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", homespace.ErrorMessage(err))
		return err
	}

	if len(c.Only) > 0 {
		sources = filterSources(sources, c.Only)
		if len(sources) == 0 {
			return homespace.Errorf(homespace.ENOTFOUND,
				"none of the requested sources are configured in %q", c.Sources)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", homespace.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d saved, %d unchanged, %d failed\n",
		result.Saved, result.Unchanged, result.Failed)
	return nil
}

func filterSources(sources []homespace.Source, names []string) []homespace.Source {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var filtered []homespace.Source
	for _, source := range sources {
		if wanted[source.Name] {
			filtered = append(filtered, source)
		}
	}
	return filtered
}
