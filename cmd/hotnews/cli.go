package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Config  *Config
	DB      *sqlite.DB
	Runs    hotnews.RunService
	Sources hotnews.SourceRegistry
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `type:"path" env:"HOTNEWS_CONFIG" help:"YAML config file with per-source overrides"`

	Crawl   CrawlCmd   `cmd:"" help:"Rank a source's articles by comment likes"`
	History HistoryCmd `cmd:"" help:"List saved rankings"`
	Show    ShowCmd    `cmd:"" help:"Print a saved ranking"`
	Sources SourcesCmd `cmd:"" help:"List supported news sources"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Source   string   `arg:"" help:"News source (vnexpress, tuoitre)"`
	From     string   `required:"" help:"First publication day, YYYY-MM-DD"`
	To       string   `required:"" help:"Last publication day, YYYY-MM-DD"`
	Top      int      `short:"n" default:"10" help:"Number of articles to print and save (0 for all)"`
	Category []string `short:"c" help:"Restrict vnexpress to these category IDs (repeatable)"`
	Save     bool     `short:"s" help:"Save the ranking to the run history"`
	Out      string   `short:"o" type:"path" help:"Also write the ranking to a file (.md or .json)"`

	MaxCommentPages int `help:"Comment requests per article (0 uses the config or 200, negative is unlimited)"`
	Partitions      int `help:"Partitions crawled at once (0 keeps the source default)"`
	Pages           int `help:"Listing pages processed at once per partition (0 keeps the source default)"`
	Articles        int `help:"Articles processed at once (0 keeps the source default)"`

	RPS       float64       `name:"rps" help:"Requests per second per host (0 is unlimited)"`
	Browser   bool          `help:"Render listing and article pages in headless Chrome"`
	Chrome    string        `type:"path" env:"HOTNEWS_CHROME" help:"Chrome or Chromium binary used with --browser"`
	NoSandbox bool          `help:"Run Chrome without its sandbox (needed as root in containers)"`
	Timeout   time.Duration `help:"Per-request timeout (default 10s)"`
	Verbose   bool          `short:"v" help:"Log every request and article"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Source string `help:"Only runs of this source"`
	URL    string `name:"url" help:"Only runs that ranked this article URL"`
	Limit  int    `short:"l" default:"20" help:"Maximum number of runs"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID  string `arg:"" help:"Run ID"`
	Top int    `short:"n" help:"Number of articles to print (0 prints all)"`
	Out string `short:"o" type:"path" help:"Also write the ranking to a file (.md or .json)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
