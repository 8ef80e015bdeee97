package stockpdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Renderer lays rows out as a paginated table and paints the result.
// A Renderer holds no per-document state; it is safe for concurrent use
// as long as its [Backend] is.
type Renderer struct {
	layout  Layout
	style   Style
	backend Backend
	logger  *zap.Logger
}

// NewRenderer creates a Renderer. It fails only if the layout cannot
// paginate.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return newRenderer(cfg)
}

func newRenderer(cfg config) (*Renderer, error) {
	if err := cfg.layout.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		layout:  cfg.layout.resolved(),
		style:   cfg.style.resolved(),
		backend: cfg.backend,
		logger:  cfg.logger,
	}, nil
}

// Layout returns the resolved layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render produces the PDF for rows. An empty slice renders a single page
// with the title and header band. Any backend failure is reported as
// [ErrRender].
func (r *Renderer) Render(ctx context.Context, rows []Row) (*Result, error) {
	start := time.Now()

	plan := Paginate(len(rows), r.layout)
	doc := Compose(rows, plan, r.layout, r.style, newCoreMetrics())

	data, err := r.backend.Paint(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	r.logger.Debug("render.ok",
		zap.Int("rows", len(rows)),
		zap.Int("pages", plan.Pages),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Result{data: data, plan: plan}, nil
}

// Close releases the backend if it holds resources.
func (r *Renderer) Close() error {
	if c, ok := r.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Render renders rows with a temporary [Renderer].
func Render(ctx context.Context, rows []Row, opts ...Option) (*Result, error) {
	r, err := NewRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, rows)
}
