// Package yaml loads crawl source configuration from YAML files.
package yaml

import (
	"io"
	"os"

	"github.com/apehex/homespace"
	"gopkg.in/yaml.v3"
)

// sourcesFile mirrors the on-disk layout:
//
//	sources:
//	  - name: craigslist
//	    kind: ad
//	    url: https://city.craigslist.org/search/fua
//	    base_url: https://city.craigslist.org
//	    datetime_format: "%Y-%m-%d %H:%M"
//	    icon: sofa
//	    links: a.result-title@href
//	    selectors:
//	      title: "#titletextonly"
//	      price: .price
type sourcesFile struct {
	Sources []sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Name           string            `yaml:"name"`
	Kind           string            `yaml:"kind"`
	URL            string            `yaml:"url"`
	BaseURL        string            `yaml:"base_url"`
	DatetimeFormat string            `yaml:"datetime_format"`
	Icon           string            `yaml:"icon"`
	Links          string            `yaml:"links"`
	Selectors      map[string]string `yaml:"selectors"`
}

// LoadSources reads and validates the source list from a YAML file.
func LoadSources(path string) ([]homespace.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, homespace.Errorf(homespace.ENOTFOUND, "sources file: %v", err)
	}
	defer f.Close()

	return ParseSources(f)
}

// ParseSources reads and validates the source list from YAML content.
func ParseSources(r io.Reader) ([]homespace.Source, error) {
	var file sourcesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, homespace.Errorf(homespace.EPARSE, "sources file: %v", err)
	}

	sources := make([]homespace.Source, 0, len(file.Sources))
	for _, entry := range file.Sources {
		source := homespace.Source{
			Name:           entry.Name,
			Kind:           homespace.SourceKind(entry.Kind),
			URL:            entry.URL,
			BaseURL:        entry.BaseURL,
			DatetimeFormat: entry.DatetimeFormat,
			Icon:           entry.Icon,
			Links:          entry.Links,
			Selectors:      entry.Selectors,
		}
		if err := source.Validate(); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}
