package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"

	"go-indeed-automation/internal/browser"
	"go-indeed-automation/internal/checkpoint"
	"go-indeed-automation/internal/config"
	"go-indeed-automation/internal/network"
	"go-indeed-automation/internal/queries"
	"go-indeed-automation/internal/reporter"
	"go-indeed-automation/internal/scraper/indeed"
	"go-indeed-automation/internal/sink"
)

type CLI struct {
	Config   string `help:"Path to the settings file." default:"configs/settings.yaml"`
	Queries  string `help:"Override the queries file from settings."`
	Headless bool   `help:"Run the browser headless."`
	Proxy    bool   `help:"Route the browser through a proxy from the proxies file."`
	Verbose  bool   `help:"Enable debug logging."`
	Install  bool   `help:"Install the browser binaries and exit."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("indeed-scraper"),
		kong.Description("Indeed job listing extraction pipeline."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	log := newLogger(cli.Verbose)
	banner()

	if cli.Install {
		if err := browser.Install(); err != nil {
			log.Fatal().Err(err).Msg("could not install browser binaries")
		}
		log.Info().Msg("browser binaries installed")
		return
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load settings")
	}
	if cli.Queries != "" {
		cfg.QueriesFile = cli.Queries
	}
	// threads_count sizes the future worker pool; the active path is
	// single-threaded, one session per query.
	log.Info().Int("threads_count", cfg.ThreadsCount).Msg("settings loaded")

	cities, err := queries.Load(cfg.QueriesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load queries")
	}
	log.Info().Int("queries", len(cities)).Msg("query list loaded")

	records, err := sink.NewCSVSink(cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not prepare output directory")
	}
	checkpoints, err := checkpoint.NewStore(cfg.StateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not prepare state directory")
	}

	notify, err := reporter.New(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Warn().Err(err).Msg("telegram reporter disabled")
		notify = nil
	}

	userAgents := loadProvider(cfg.UserAgentsFile, "user agents", log)
	var proxies *network.Provider
	if cli.Proxy {
		proxies = loadProvider(cfg.ProxiesFile, "proxies", log)
	}

	scr := indeed.New(cfg.BaseURL, records, checkpoints, log)

	ctx := context.Background()
	for _, city := range cities {
		runErr := runQuery(ctx, cli, scr, userAgents, proxies, city, log)
		if runErr != nil {
			log.Error().Err(runErr).Str("query", city).Msg("query aborted")
		}
		if err := notify.QueryDone(city, records.Path(city), runErr); err != nil {
			log.Warn().Err(err).Msg("could not send telegram report")
		}
	}
	log.Info().Msg("run finished")
}

// runQuery drives one city on its own browser session.
func runQuery(ctx context.Context, cli CLI, scr *indeed.Scraper, userAgents, proxies *network.Provider, city string, log zerolog.Logger) error {
	opts := browser.Options{Headless: cli.Headless}
	if userAgents != nil {
		if ua, err := userAgents.Pick(); err == nil {
			opts.UserAgent = ua
		}
	}
	if proxies != nil {
		if proxy, err := proxies.Pick(); err == nil {
			opts.Proxy = proxy
		}
	}

	mgr, err := browser.NewManager(opts, log)
	if err != nil {
		return err
	}
	defer mgr.Close()

	session, err := mgr.NewSession()
	if err != nil {
		return err
	}

	log.Info().Str("query", city).Str("scraper", scr.Name()).Msg("scraping jobs")
	return scr.Scrape(ctx, session, city)
}

func loadProvider(path, kind string, log zerolog.Logger) *network.Provider {
	provider, err := network.NewProvider(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msgf("no %s file, continuing without", kind)
		return nil
	}
	log.Info().Int("entries", provider.Len()).Msgf("%s loaded", kind)
	return provider
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}}
	if f, err := os.OpenFile("indeed-scraper.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		writers = append(writers, f)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

func banner() {
	_ = pterm.DefaultBigText.WithLetters(putils.LettersFromString("Indeed")).Render()
	pterm.Println(pterm.Gray("paginated job listing extraction"))
}
