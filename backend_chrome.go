package stockpdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeBackend paints documents as absolutely positioned HTML and prints
// them with headless Chrome through the DevTools protocol.
//
// A ChromeBackend keeps one browser process alive and opens a tab per
// document. It is safe for concurrent use. Call [ChromeBackend.Close] to
// release the browser.
type ChromeBackend struct {
	cfg           chromeConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeBackend starts a headless browser with the given options.
func NewChromeBackend(opts ...ChromeOption) (*ChromeBackend, error) {
	cfg := defaultChromeConfig()
	for _, o := range opts {
		o(&cfg)
	}

	execPath, err := chromeExecutable(cfg)
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("stockpdf: starting browser: %w", err)
	}

	return &ChromeBackend{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases the browser process. Close is idempotent.
func (c *ChromeBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Paint implements Backend.
func (c *ChromeBackend) Paint(ctx context.Context, doc *Document) ([]byte, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := writeHTML(&html, doc); err != nil {
		return nil, fmt.Errorf("building html: %w", err)
	}

	f, err := os.CreateTemp("", "stockpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.Write(html.Bytes()); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// The tab context is rooted at the browser, so tie it to the caller's
	// deadline by hand.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(ptToInches(doc.Width)).
				WithPaperHeight(ptToInches(doc.Height)).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return buf, nil
}

func (c *ChromeBackend) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

var pageTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.PageSize}}; margin: 0; }
html, body { margin: 0; padding: 0; }
.page { position: relative; overflow: hidden; break-after: page; }
.page:last-child { break-after: auto; }
.box, .label { position: absolute; }
.label { white-space: pre; line-height: 1; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page" style="{{$.PageBox}}">
{{- range .Boxes}}<div class="box" style="{{.}}"></div>{{end}}
{{- range .Labels}}<div class="label" style="{{.Style}}">{{.Text}}</div>{{end}}
</div>
{{- end}}
</body>
</html>
`))

type htmlLabel struct {
	Style template.CSS
	Text  string
}

type htmlPage struct {
	Boxes  []template.CSS
	Labels []htmlLabel
}

// writeHTML renders doc as one fixed-size div per page. Coordinates are
// carried over in points so the printed PDF matches the fpdf output.
func writeHTML(w *bytes.Buffer, doc *Document) error {
	data := struct {
		Title    string
		PageSize template.CSS
		PageBox  template.CSS
		Pages    []htmlPage
	}{
		Title:    doc.Title,
		PageSize: template.CSS(fmt.Sprintf("%.2fpt %.2fpt", doc.Width, doc.Height)),
		PageBox:  template.CSS(fmt.Sprintf("width:%.2fpt;height:%.2fpt", doc.Width, doc.Height)),
	}
	for _, p := range doc.Pages {
		var hp htmlPage
		for _, b := range p.Boxes {
			hp.Boxes = append(hp.Boxes, template.CSS(fmt.Sprintf(
				"left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt;background:%s",
				b.X, b.Y, b.W, b.H, b.Fill.Hex())))
		}
		for _, l := range p.Labels {
			hp.Labels = append(hp.Labels, htmlLabel{
				Style: template.CSS(fmt.Sprintf(
					"left:%.2fpt;top:%.2fpt;font-size:%.2fpt;%s;color:%s",
					l.X, l.Y-l.Font.Size*0.8, l.Font.Size, cssFont(l.Font), l.Color.Hex())),
				Text: l.Text,
			})
		}
		data.Pages = append(data.Pages, hp)
	}
	return pageTemplate.Execute(w, data)
}

// cssFont maps a core font onto a CSS font declaration.
func cssFont(f Font) string {
	family := "Helvetica, Arial, sans-serif"
	switch f.Family {
	case "Times", "times":
		family = `"Times New Roman", Times, serif`
	case "Courier", "courier":
		family = `"Courier New", Courier, monospace`
	}
	weight, slant := "normal", "normal"
	for _, r := range f.Style {
		switch r {
		case 'B', 'b':
			weight = "bold"
		case 'I', 'i':
			slant = "italic"
		}
	}
	return fmt.Sprintf("font-family:%s;font-weight:%s;font-style:%s", family, weight, slant)
}
