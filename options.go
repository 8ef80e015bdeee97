package stockpdf

import (
	"time"

	"go.uber.org/zap"
)

// config holds the settings shared by [Renderer] and [Converter].
type config struct {
	template Template
	layout   Layout
	style    Style
	backend  Backend
	logger   *zap.Logger
}

func defaultConfig() config {
	return config{
		template: DefaultTemplate(),
		layout:   DefaultLayout(),
		style:    DefaultStyle(),
		backend:  FPDFBackend{},
		logger:   zap.NewNop(),
	}
}

// Option configures a [Renderer] or a [Converter].
type Option func(*config)

// WithTemplate sets where rows are read from in the uploaded sheet.
// Renderers ignore it.
func WithTemplate(t Template) Option {
	return func(c *config) {
		c.template = t
	}
}

// WithLayout sets the page geometry. Zero fields keep their defaults.
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithStyle sets colors and fonts.
func WithStyle(s Style) Option {
	return func(c *config) {
		c.style = s
	}
}

// WithBackend selects how the laid out document is painted. The default
// is [FPDFBackend].
func WithBackend(b Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// chromeConfig holds internal configuration for a [ChromeBackend].
type chromeConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
}

func defaultChromeConfig() chromeConfig {
	return chromeConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// ChromeOption configures a [ChromeBackend].
type ChromeOption func(*chromeConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) ChromeOption {
	return func(c *chromeConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for painting one document.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) ChromeOption {
	return func(c *chromeConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() ChromeOption {
	return func(c *chromeConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a compatible Chromium build when no explicit
// path is configured.
func WithAutoDownload() ChromeOption {
	return func(c *chromeConfig) {
		c.autoDownload = true
	}
}
