package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// Options configure one browser session. UserAgent and Proxy are consumed
// once, at construction.
type Options struct {
	Headless  bool
	UserAgent string
	Proxy     string
}

// Manager owns the Playwright runtime and one Chromium instance.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
	log     zerolog.Logger
}

// Install provisions the browser binaries. Run once before the first session.
func Install() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

func NewManager(opts Options, log zerolog.Logger) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--start-maximized",
			"--disable-extensions",
			"--disable-blink-features=AutomationControlled",
			"--ignore-certificate-errors",
		},
	}
	if opts.Proxy != "" {
		launch.Proxy = &playwright.Proxy{Server: opts.Proxy}
	}

	chromium, err := pw.Chromium.Launch(launch)
	if err != nil {
		stopErr := pw.Stop()
		if stopErr != nil {
			log.Warn().Err(stopErr).Msg("could not stop playwright after failed launch")
		}
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &Manager{pw: pw, browser: chromium, opts: opts, log: log}, nil
}

// NewSession opens a fresh browser context and page wired into a Driver.
func (m *Manager) NewSession() (*Session, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if m.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(m.opts.UserAgent)
	}

	browserCtx, err := m.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return NewSession(page), nil
}

// Close tears the browser down. Teardown failures are logged and swallowed:
// cleanup must never abort the run.
func (m *Manager) Close() {
	m.log.Info().Msg("closing browser")
	if err := m.browser.Close(); err != nil {
		m.log.Warn().Err(err).Msg("issue while closing browser")
	}
	if err := m.pw.Stop(); err != nil {
		m.log.Warn().Err(err).Msg("issue while stopping playwright")
	}
}
