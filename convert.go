package stockpdf

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Converter turns uploaded spreadsheet bytes into a stock report PDF. It
// runs extraction to completion and then renders, with no state shared
// between calls.
//
// Call [Converter.Close] when the Converter is no longer needed if its
// backend holds resources, such as a [ChromeBackend].
type Converter struct {
	template Template
	renderer *Renderer
	logger   *zap.Logger
}

// NewConverter creates a Converter with the given options.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.template.Validate(); err != nil {
		return nil, err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return &Converter{template: cfg.template, renderer: r, logger: cfg.logger}, nil
}

// Template returns the extraction template.
func (c *Converter) Template() Template {
	return c.template
}

// Layout returns the resolved page layout.
func (c *Converter) Layout() Layout {
	return c.renderer.Layout()
}

// Convert extracts rows from data and renders them. Input problems are
// reported as [ErrInvalidUpload], [ErrParse] or [ErrNoSheet]; painting
// problems as [ErrRender]. No partial document is ever returned.
func (c *Converter) Convert(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()

	rows, err := Extract(data, c.template)
	if err != nil {
		return nil, err
	}
	res, err := c.renderer.Render(ctx, rows)
	if err != nil {
		return nil, err
	}

	c.logger.Info("convert.ok",
		zap.Int("input_bytes", len(data)),
		zap.Int("rows", res.Rows()),
		zap.Int("pages", res.Pages()),
		zap.Int("output_bytes", res.Len()),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return res, nil
}

// Close releases backend resources. Close is idempotent.
func (c *Converter) Close() error {
	return c.renderer.Close()
}

// Convert converts spreadsheet bytes using a temporary [Converter].
func Convert(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.Convert(ctx, data)
}
