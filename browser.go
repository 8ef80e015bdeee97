package stockpdf

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// chromeExecutable picks the browser binary for a ChromeBackend. An
// explicit path wins; otherwise, with auto download enabled, rod's
// launcher fetches a pinned Chromium into its cache (~/.cache/rod/browser
// on Unix). An empty result lets chromedp search the usual locations.
func chromeExecutable(cfg chromeConfig) (string, error) {
	if cfg.chromePath != "" {
		return cfg.chromePath, nil
	}
	if !cfg.autoDownload {
		return "", nil
	}
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("stockpdf: downloading browser: %w", err)
	}
	return path, nil
}
