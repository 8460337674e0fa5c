package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"filmseek/internal/config"
	"filmseek/internal/eventbus"
	"filmseek/internal/ingest"
	"filmseek/internal/parse"
	"filmseek/internal/scrape"
	"filmseek/internal/searchclient"
	"filmseek/internal/server"
	"filmseek/internal/store"
	"filmseek/internal/ui"
)

func main() {
	app := &cli.App{
		Name:           "filmseek",
		Usage:          "Search a movie index from the terminal",
		DefaultCommand: "tui",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (defaults to the user config dir)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "Run the interactive search widget",
				Action: tuiCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search-url",
						Usage: "Base URL of the search service (overrides config)",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the search HTTP service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides config)",
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Index directory (overrides config)",
					},
				},
			},
			{
				Name:   "populate",
				Usage:  "Load a JSON movie dump into the index",
				Action: populateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dump",
						Aliases:  []string{"d"},
						Usage:    "Path to the JSON dump file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Index directory (overrides config)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Indexing worker count",
						Value: 4,
					},
				},
			},
			{
				Name:   "parse",
				Usage:  "Extract index entries from documents into a dump",
				Action: parseCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "in",
						Usage: "Inbox directory of documents to process",
						Value: "in",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Directory the dump is written into",
						Value: "out",
					},
					&cli.StringFlag{
						Name:  "old",
						Usage: "Archive directory for processed documents",
						Value: "old",
					},
					&cli.StringSliceFlag{
						Name:  "keyword",
						Usage: "Title line must contain one of these (default: first non-empty line)",
					},
					&cli.StringFlag{
						Name:  "link-base",
						Usage: "Base URL for rebuilding document source links",
					},
				},
			},
			{
				Name:   "scrape",
				Usage:  "Extract document links from an HTML page",
				Action: scrapeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Page URL to fetch",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Local HTML file to read instead of fetching",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only keep links starting with this prefix",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	svc := config.NewConfigService()
	if path := c.String("config"); path != "" {
		return svc.LoadFromPath(path)
	}
	return svc.Load()
}

func tuiCommand(c *cli.Context) error {
	// The terminal belongs to the UI, so diagnostics go to a file
	logFile, err := os.OpenFile("filmseek.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if u := c.String("search-url"); u != "" {
		cfg.SearchURL = u
	}

	bus := eventbus.New()
	subscribeDiagnostics(bus)

	client := searchclient.New(cfg.SearchURL)
	model := ui.NewModel(cfg, client, bus)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Triggers.Button {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// subscribeDiagnostics wires the pipeline's event stream into the log
// file. This is the developer-facing channel; the UI itself only ever
// shows the generic error text.
func subscribeDiagnostics(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchRequestedEvent); ok {
			log.Printf("Search requested (%s): %q seq=%d", ev.Trigger, ev.Query, ev.Seq)
		}
	})
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchCompletedEvent); ok {
			log.Printf("Search completed: %q seq=%d results=%d stale=%v", ev.Query, ev.Seq, ev.ResultCount, ev.Stale)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search failed: %q seq=%d err=%v", ev.Query, ev.Seq, ev.Err)
		}
	})
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func serveCommand(c *cli.Context) error {
	logger := newLogger()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr
	if a := c.String("addr"); a != "" {
		addr = a
	}
	storePath := cfg.StorePath
	if p := c.String("store"); p != "" {
		storePath = p
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(st, logger, cfg.UISettings.MaxResults)
	return srv.Start(ctx, addr)
}

func populateCommand(c *cli.Context) error {
	logger := newLogger()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	storePath := cfg.StorePath
	if p := c.String("store"); p != "" {
		storePath = p
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	loader := ingest.NewLoader(st, logger, c.Int("workers"))
	report, err := loader.LoadFile(c.String("dump"))
	if err != nil {
		return err
	}

	fmt.Printf("indexed %d movies (%d skipped)\n", report.Loaded, report.Skipped)
	return nil
}

func parseCommand(c *cli.Context) error {
	p := parse.NewParser(newLogger(), c.StringSlice("keyword"), c.String("link-base"))

	report, err := p.Run(c.String("in"), c.String("out"), c.String("old"))
	if err != nil {
		return err
	}

	fmt.Printf("parsed %d documents (%d duplicates, %d without title)\n",
		report.Parsed, report.Duplicates, report.Untitled)
	return nil
}

func scrapeCommand(c *cli.Context) error {
	pageURL := c.String("url")
	file := c.String("file")
	prefix := c.String("prefix")

	var (
		links []string
		err   error
	)
	switch {
	case file != "":
		links, err = scrape.LinksFromFile(file, prefix)
	case pageURL != "":
		links, err = scrape.LinksFromURL(pageURL, prefix)
	default:
		return fmt.Errorf("either --url or --file is required")
	}
	if err != nil {
		return err
	}

	for _, link := range links {
		fmt.Println(link)
	}
	return nil
}
