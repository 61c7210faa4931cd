// Package browser owns the lifecycle of one Playwright browser session.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/swagshop/uitest/internal/config"
)

// ErrUnsupportedBrowser is returned by Open for unknown browser kinds.
var ErrUnsupportedBrowser = errors.New("unsupported browser kind")

// Chromium launch args that keep headless runs stable in containers.
var chromiumStabilityArgs = []string{
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
}

// Options configures a new session.
type Options struct {
	Kind            string
	Headless        bool
	DefaultTimeout  time.Duration
	PageLoadTimeout time.Duration
}

// OptionsFromConfig derives session options from the suite configuration.
func OptionsFromConfig(cfg *config.SuiteConfig) Options {
	return Options{
		Kind:            cfg.Browser,
		Headless:        cfg.Headless,
		DefaultTimeout:  cfg.DefaultTimeout,
		PageLoadTimeout: cfg.PageLoadTimeout,
	}
}

// Session is one live browser automation connection. A Session is exclusively
// owned by the test that created it and must be closed unconditionally,
// including on test failure.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	log     *zap.Logger
	closed  bool
}

// Open launches a new browser of the requested kind and returns a Session
// bound to a fresh page with a fixed 1280x900 viewport and the configured
// default waits applied.
func Open(opts Options, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch opts.Kind {
	case config.BrowserChromium, config.BrowserFirefox, config.BrowserWebkit:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBrowser, opts.Kind)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}

	var browserType playwright.BrowserType
	switch opts.Kind {
	case config.BrowserFirefox:
		browserType = pw.Firefox
	case config.BrowserWebkit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
		launch.Args = chromiumStabilityArgs
	}

	b, err := browserType.Launch(launch)
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Warn("failed to stop playwright", zap.Error(stopErr))
		}
		return nil, fmt.Errorf("could not launch %s: %w", opts.Kind, err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 900},
	})
	if err != nil {
		closeAndStop(b, pw, log)
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		closeAndStop(b, pw, log)
		return nil, fmt.Errorf("could not open page: %w", err)
	}

	if opts.DefaultTimeout > 0 {
		page.SetDefaultTimeout(float64(opts.DefaultTimeout.Milliseconds()))
	}
	if opts.PageLoadTimeout > 0 {
		page.SetDefaultNavigationTimeout(float64(opts.PageLoadTimeout.Milliseconds()))
	}

	log.Info("browser session opened",
		zap.String("kind", opts.Kind),
		zap.Bool("headless", opts.Headless))

	return &Session{pw: pw, browser: b, context: ctx, page: page, log: log}, nil
}

// Page returns the session's single page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Close tears the session down. Teardown failures are logged and swallowed:
// cleanup must never mask the outcome of the test that owned the session.
// Calling Close more than once is a no-op.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.Warn("failed to close page", zap.Error(err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.log.Warn("failed to close browser context", zap.Error(err))
		}
	}
	closeAndStop(s.browser, s.pw, s.log)
	s.log.Info("browser session closed")
}

func closeAndStop(b playwright.Browser, pw *playwright.Playwright, log *zap.Logger) {
	if b != nil {
		if err := b.Close(); err != nil {
			log.Warn("failed to close browser", zap.Error(err))
		}
	}
	if pw != nil {
		if err := pw.Stop(); err != nil {
			log.Warn("failed to stop playwright", zap.Error(err))
		}
	}
}
