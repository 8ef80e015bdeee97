// Package server exposes the spreadsheet to PDF conversion over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	stockpdf "github.com/porticus-lab/go-stock-pdf"
)

const generatePath = "/api/generate-pdf"

// Converter is the conversion pipeline behind the upload endpoint.
// *stockpdf.Converter satisfies it.
type Converter interface {
	Convert(ctx context.Context, data []byte) (*stockpdf.Result, error)
}

// Options tunes the HTTP boundary.
type Options struct {
	// MaxUploadBytes caps the request body. Zero means 32 MiB.
	MaxUploadBytes int64
	// UploadField is the multipart field holding the spreadsheet.
	UploadField string
	// Filename is sent in the attachment Content-Disposition.
	Filename string
	// Title is shown on the upload form.
	Title string
}

func (o Options) withDefaults() Options {
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 32 << 20
	}
	if o.UploadField == "" {
		o.UploadField = "archivo"
	}
	if o.Filename == "" {
		o.Filename = "stock.pdf"
	}
	if o.Title == "" {
		o.Title = stockpdf.DefaultLayout().Title
	}
	return o
}

// Server routes the upload form and the conversion endpoint.
type Server struct {
	conv   Converter
	opts   Options
	logger *zap.Logger
	mux    *http.ServeMux
}

// New builds a Server. A nil logger discards output.
func New(conv Converter, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		conv:   conv,
		opts:   opts.withDefaults(),
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/style.css", s.handleStyle)
	s.mux.HandleFunc(generatePath, s.handleGenerate)
	return s
}

// Handler returns the routes wrapped in request id, access log and panic
// recovery middleware.
func (s *Server) Handler() http.Handler {
	return requestID(accessLog(s.logger, recoverer(s.logger, s.mux)))
}

// Run serves srv until SIGINT or SIGTERM arrives or ctx is done, then
// runs cleanup and shuts down, giving in-flight requests up to timeout to
// finish.
func Run(ctx context.Context, srv *http.Server, logger *zap.Logger, cleanup func(), timeout time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listen", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if cleanup != nil {
			cleanup()
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("server.shutdown", zap.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown", zap.Error(err))
	}
	// In-flight conversions are done or abandoned by now.
	if cleanup != nil {
		cleanup()
	}
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("server.stopped")
	return nil
}
