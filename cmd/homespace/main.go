package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/apehex/homespace"
	"github.com/apehex/homespace/crawl"
	"github.com/apehex/homespace/goquery"
	"github.com/apehex/homespace/htmltomarkdown"
	homehttp "github.com/apehex/homespace/http"
	"github.com/apehex/homespace/mem"
	"github.com/apehex/homespace/nominatim"
	homeslog "github.com/apehex/homespace/slog"
	"github.com/apehex/homespace/sqlite"
	"github.com/apehex/homespace/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	AdService    homespace.AdService
	LegalService homespace.LegalDocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("homespace"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'homespace --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HOMESPACE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.AdService = sqlite.NewAdService(m.DB)
	m.LegalService = sqlite.NewLegalDocumentService(m.DB)
	deps.DB = m.DB
	deps.Ads = m.AdService
	deps.Legal = m.LegalService

	if cmd == "crawl" {
		var geocoder homespace.Geocoder
		if !cli.Crawl.NoGeocode {
			// Nominatim behind an in-memory cache, with lookups
			// logged at debug level.
			geocoder = homeslog.NewGeocoder(
				mem.NewGeocoder(nominatim.NewGeocoder(
					nominatim.WithUserAgent(userAgent),
				)),
				logger,
			)
		}

		extractor := goquery.NewExtractor()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     homehttp.NewFetcher(homehttp.WithUserAgent(userAgent)),
			Fragments:   extractor,
			Links:       extractor,
			Builder:     &homespace.Builder{Geocoder: geocoder, Logger: logger},
			Ads:         m.AdService,
			Legal:       m.LegalService,
			Extractor:   trafilatura.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Limiter:     crawl.NewDomainLimiter(cli.Crawl.RPS),
			Logger:      logger,
			Concurrency: cli.Crawl.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// userAgent identifies the crawler to the sites and services it calls.
const userAgent = "homespace/1.0 (+https://github.com/apehex/homespace)"

func defaultDBPath() string {
	if path := os.Getenv("HOMESPACE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "homespace.db"
	}
	dir := filepath.Join(home, ".homespace")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "homespace.db")
}
