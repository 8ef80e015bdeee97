package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stockpdf "github.com/porticus-lab/go-stock-pdf"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"STOCKPDF_ADDR", "STOCKPDF_MAX_UPLOAD", "STOCKPDF_UPLOAD_FIELD", "STOCKPDF_FILENAME",
		"STOCKPDF_SHUTDOWN_TIMEOUT", "STOCKPDF_BACKEND", "STOCKPDF_LAYOUT_FILE",
		"STOCKPDF_CHROME_PATH", "STOCKPDF_NO_SANDBOX", "STOCKPDF_AUTO_DOWNLOAD", "STOCKPDF_CHROME_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "archivo", cfg.Server.UploadField)
	assert.Equal(t, "stock.pdf", cfg.Server.Filename)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendFPDF, cfg.Render.Backend)
	assert.Empty(t, cfg.Render.LayoutFile)
	assert.False(t, cfg.Chrome.NoSandbox)
	assert.Equal(t, 30*time.Second, cfg.Chrome.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STOCKPDF_ADDR", "127.0.0.1:9000")
	t.Setenv("STOCKPDF_MAX_UPLOAD", "1024")
	t.Setenv("STOCKPDF_BACKEND", "Chrome")
	t.Setenv("STOCKPDF_NO_SANDBOX", "true")
	t.Setenv("STOCKPDF_SHUTDOWN_TIMEOUT", "2s")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, BackendChrome, cfg.Render.Backend)
	assert.True(t, cfg.Chrome.NoSandbox)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("STOCKPDF_MAX_UPLOAD", "lots")
	t.Setenv("STOCKPDF_NO_SANDBOX", "maybe")
	t.Setenv("STOCKPDF_SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.False(t, cfg.Chrome.NoSandbox)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"empty field", func(c *Config) { c.Server.UploadField = "" }},
		{"empty filename", func(c *Config) { c.Server.Filename = "" }},
		{"unknown backend", func(c *Config) { c.Render.Backend = "wkhtmltopdf" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			cfg.Render.Backend = BackendFPDF
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseLayoutFileOverridesOnlyGivenKeys(t *testing.T) {
	lf, err := ParseLayoutFile([]byte(`
template:
  skip_rows: 3
  columns: [1, 2, 3, 4]
layout:
  title: Inventario
  orientation: landscape
style:
  background: "#000000"
  row_fills: ["#111111", "#222222"]
  row_font: {family: Courier, size: 10}
`))
	require.NoError(t, err)

	assert.Equal(t, stockpdf.Template{SkipRows: 3, Columns: [4]int{1, 2, 3, 4}}, lf.Template)
	assert.Equal(t, "Inventario", lf.Layout.Title)
	assert.Equal(t, stockpdf.Landscape, lf.Layout.Orientation)
	assert.Equal(t, stockpdf.DefaultLayout().RowHeight, lf.Layout.RowHeight)
	assert.Equal(t, stockpdf.DefaultLayout().Headers, lf.Layout.Headers)
	assert.Equal(t, "#000000", lf.Style.Background.Hex())
	assert.Equal(t, "#222222", lf.Style.RowFills[1].Hex())
	assert.Equal(t, stockpdf.DefaultStyle().TitleColor, lf.Style.TitleColor)
	assert.Equal(t, stockpdf.Font{Family: "Courier", Size: 10}, lf.Style.RowFont)
	assert.Len(t, lf.Options(), 3)
}

func TestParseLayoutFileEmpty(t *testing.T) {
	lf, err := ParseLayoutFile(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayoutFile(), lf)
}

func TestParseLayoutFileErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "layout:\n  titel: x\n",
		"bad color":       "style:\n  background: teal\n",
		"negative skip":   "template:\n  skip_rows: -1\n",
		"three columns":   "template:\n  columns: [0, 1, 2]\n",
		"row too tall":    "layout:\n  row_height: 900\n",
		"bad orientation": "layout:\n  orientation: sideways\n",
		"unknown font":    "style:\n  row_font: {family: Comic, size: 11}\n",
		"bad font style":  "style:\n  title_font: {family: Times, style: X, size: 20}\n",
		"zero font size":  "style:\n  header_font: {family: Courier, size: 0}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayoutFile([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadLayoutFile(t *testing.T) {
	lf, err := LoadLayoutFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayoutFile(), lf)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  title: Depósito\n"), 0o644))
	lf, err = LoadLayoutFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Depósito", lf.Layout.Title)

	_, err = LoadLayoutFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
