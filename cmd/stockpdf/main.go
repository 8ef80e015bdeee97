// stockpdf turns stock spreadsheets into dark-themed PDF reports.
//
// Usage:
//
//	stockpdf serve [--addr :8080]
//	stockpdf render [options] <stock.xlsx>
//	stockpdf inspect [options] <file.pdf>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stockpdf "github.com/porticus-lab/go-stock-pdf"
	"github.com/porticus-lab/go-stock-pdf/internal/config"
)

var (
	verbose    bool
	layoutPath string
	backend    string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:           "stockpdf",
		Short:         "Render stock spreadsheets as PDF reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Development logging at debug level")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", cfg.Render.LayoutFile, "YAML file overriding template, layout and style")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", cfg.Render.Backend, "PDF backend: fpdf or chrome")

	rootCmd.AddCommand(newServeCmd(cfg), newRenderCmd(cfg), newInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newConverter builds the conversion pipeline from the layout file and
// backend selection shared by serve and render.
func newConverter(cfg *config.Config, logger *zap.Logger) (*stockpdf.Converter, error) {
	lf, err := config.LoadLayoutFile(layoutPath)
	if err != nil {
		return nil, err
	}
	opts := append(lf.Options(), stockpdf.WithLogger(logger))

	var chrome *stockpdf.ChromeBackend
	switch backend {
	case config.BackendFPDF:
	case config.BackendChrome:
		copts := []stockpdf.ChromeOption{
			stockpdf.WithChromePath(cfg.Chrome.Path),
			stockpdf.WithTimeout(cfg.Chrome.Timeout),
		}
		if cfg.Chrome.NoSandbox {
			copts = append(copts, stockpdf.WithNoSandbox())
		}
		if cfg.Chrome.AutoDownload {
			copts = append(copts, stockpdf.WithAutoDownload())
		}
		chrome, err = stockpdf.NewChromeBackend(copts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, stockpdf.WithBackend(chrome))
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", backend, config.BackendFPDF, config.BackendChrome)
	}

	conv, err := stockpdf.NewConverter(opts...)
	if err != nil {
		if chrome != nil {
			chrome.Close()
		}
		return nil, err
	}
	logger.Debug("converter.ready", zap.String("backend", backend), zap.String("layout", layoutPath))
	return conv, nil
}
