package main

import (
	"fmt"

	"github.com/apehex/homespace"
)

// Run executes the legal command.
func (c *LegalCmd) Run(deps *Dependencies) error {
	filter := homespace.LegalDocumentFilter{Limit: c.Limit}
	if c.Provider != "" {
		filter.Provider = &c.Provider
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	docs, err := deps.Legal.FindLegalDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", homespace.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No legal documents found. Use 'homespace crawl' to collect some.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			doc.FetchedAt.Format("2006-01-02 15:04"), doc.Provider, doc.ContentHash, doc.URL)
		if c.Full {
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintln(deps.Stdout, doc.Text)
			fmt.Fprintln(deps.Stdout)
		}
	}

	return nil
}
