// Command seoreport analyzes a page from the terminal and manages saved
// analyses.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/config"
	"github.com/seo-optimizer/seoreport/logging"
	"github.com/seo-optimizer/seoreport/render"
	"github.com/seo-optimizer/seoreport/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewMain().Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", analyzer.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Now is the clock used for output filenames and saved timestamps.
	Now func() time.Time

	// Fetcher overrides the HTTP fetcher built from the configuration.
	Fetcher analyzer.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("seoreport"),
		kong.Description("Analyze web pages for on-page SEO."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"formats": strings.Join(append(render.Formats(), "md"), ",")},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'seoreport --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.DataDir != "" {
		cfg.DataDir = cli.DataDir
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "seoreport",
		Writer: stderr,
	})
	if err != nil {
		return err
	}

	store, err := storage.NewStore(cfg.AnalysesDir(), storage.WithLogger(logger), storage.WithClock(m.now))
	if err != nil {
		return err
	}
	logger.Debug("using data directory", "analyses_dir", store.Dir())

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Store:    store,
		Analyzer: m.newAnalyzer(cfg, logger),
		Now:      m.now,
	}
	return kongCtx.Run(deps)
}

func (m *Main) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Main) newAnalyzer(cfg *config.Config, logger *log.Logger) *analyzer.Analyzer {
	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = analyzer.NewHTTPFetcher(
			analyzer.WithFetchTimeout(cfg.FetchTimeout),
			analyzer.WithUserAgent(cfg.UserAgent),
		)
	}
	return analyzer.New(
		analyzer.WithFetcher(fetcher),
		analyzer.WithParallel(cfg.Parallel),
		analyzer.WithLogger(logger),
		analyzer.WithClock(m.now),
	)
}
