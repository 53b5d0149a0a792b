package main

import (
	"context"
	"io"

	"github.com/apehex/homespace"
	"github.com/apehex/homespace/crawl"
	"github.com/apehex/homespace/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Ads     homespace.AdService
	Legal   homespace.LegalDocumentService
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl configured sources and store the records"`
	Ads   AdsCmd   `cmd:"" help:"List stored classified-ad observations"`
	Legal LegalCmd `cmd:"" help:"List stored legal document versions"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Sources     string   `arg:"" help:"Path to the YAML source configuration"`
	Only        []string `short:"o" name:"only" help:"Crawl only the named sources (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent ad pages per source"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain"`
	NoGeocode   bool     `help:"Skip coordinate resolution"`
}

// AdsCmd is the "ads" subcommand.
type AdsCmd struct {
	Provider string `short:"p" help:"Filter by provider name"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of ads to show"`
}

// LegalCmd is the "legal" subcommand.
type LegalCmd struct {
	Provider string `short:"p" help:"Filter by provider name"`
	URL      string `help:"Filter by document URL"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of versions to show"`
	Full     bool   `help:"Print the full document text"`
}
