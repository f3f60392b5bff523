package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/goquery"
	hnhttp "github.com/ethanol1310/hotnews/http"
	"github.com/ethanol1310/hotnews/rod"
	hnslog "github.com/ethanol1310/hotnews/slog"
	"github.com/ethanol1310/hotnews/sqlite"
	"github.com/ethanol1310/hotnews/tuoitre"
	"github.com/ethanol1310/hotnews/vnexpress"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
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
	RunService hotnews.RunService
	Sources    hotnews.SourceRegistry
	Fetcher    hotnews.PageFetcher
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
		kong.Name("hotnews"),
		kong.Description("Rank Vietnamese news articles by the likes their comments collected."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hotnews --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cmd == "crawl" && cli.Crawl.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set HOTNEWS_CONFIG or --config to a readable YAML file")
		return err
	}
	deps.Config = cfg

	sources, err := m.sources(deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	deps.Sources = sources

	if cmd == "history" || cmd == "show" || (cmd == "crawl" && cli.Crawl.Save) {
		if err := m.openRuns(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.DB = m.DB
		deps.Runs = m.RunService
	}

	if cmd == "crawl" {
		crawler, closeFn, err := m.newCrawler(&cli.Crawl, cfg, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer closeFn()
		deps.Crawler = crawler
	}

	return kongCtx.Run(deps)
}

func (m *Main) sources(logger *slog.Logger) (hotnews.SourceRegistry, error) {
	if m.Sources != nil {
		return m.Sources, nil
	}

	vne, err := vnexpress.NewSource()
	if err != nil {
		return nil, err
	}
	registry := crawl.NewRegistry(vne, tuoitre.NewSource())
	return hnslog.NewLoggingRegistry(registry, logger), nil
}

func (m *Main) openRuns(stderr io.Writer) error {
	if m.RunService != nil {
		return nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set HOTNEWS_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.RunService = sqlite.NewRunService(m.DB)
	return nil
}

// newCrawler wires the fetchers for a crawl. Listing and article pages go
// through the browser when requested; comment APIs always use plain HTTP.
func (m *Main) newCrawler(c *CrawlCmd, cfg *Config, logger *slog.Logger) (*crawl.Crawler, func(), error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = hnhttp.DefaultUserAgent
	}

	closeFn := func() {}

	var api hotnews.PageFetcher
	if m.Fetcher != nil {
		api = m.Fetcher
	} else {
		opts := []hnhttp.Option{hnhttp.WithUserAgent(userAgent)}
		if timeout > 0 {
			opts = append(opts, hnhttp.WithTimeout(timeout))
		}
		api = hnhttp.NewFetcher(opts...)
	}

	pages := api
	if c.Browser && m.Fetcher == nil {
		opts := []rod.Option{rod.WithUserAgent(userAgent)}
		if timeout > 0 {
			opts = append(opts, rod.WithTimeout(timeout))
		}
		if c.Chrome != "" {
			opts = append(opts, rod.WithManagerOptions(rod.WithBrowserBin(c.Chrome)))
		}
		if c.NoSandbox {
			opts = append(opts, rod.WithManagerOptions(rod.WithNoSandbox()))
		}
		browser, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, nil, err
		}
		pages = browser
		closeFn = func() { _ = browser.Close() }
	}

	rps := c.RPS
	if rps <= 0 {
		rps = cfg.RPS
	}
	if rps > 0 {
		limiter := crawl.NewDomainLimiter(rps)
		pages = crawl.NewLimitedFetcher(pages, limiter)
		api = crawl.NewLimitedFetcher(api, limiter)
	}

	if c.Verbose {
		pages = hnslog.NewLoggingFetcher(pages, logger.With("fetcher", "page"))
		api = hnslog.NewLoggingFetcher(api, logger.With("fetcher", "api"))
	}

	return &crawl.Crawler{
		Fetcher:    pages,
		APIFetcher: api,
		Parser:     goquery.NewParser(),
	}, closeFn, nil
}

func defaultDBPath() string {
	if path := os.Getenv("HOTNEWS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hotnews.db"
	}
	dir := filepath.Join(home, ".hotnews")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "hotnews.db")
}
