package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	stockpdf "github.com/porticus-lab/go-stock-pdf"
)

// LayoutFile overrides the extraction template and the report look. Keys
// left out of the file keep their default values.
//
//	template:
//	  skip_rows: 9
//	  columns: [0, 2, 5, 7]
//	layout:
//	  title: Stock de Productos
//	  row_height: 28
//	style:
//	  background: "#181c23"
//	  row_fills: ["#23272e", "#181c23"]
type LayoutFile struct {
	Template stockpdf.Template `yaml:"template"`
	Layout   stockpdf.Layout   `yaml:"layout"`
	Style    stockpdf.Style    `yaml:"style"`
}

// DefaultLayoutFile returns the values used when no file is configured.
func DefaultLayoutFile() *LayoutFile {
	return &LayoutFile{
		Template: stockpdf.DefaultTemplate(),
		Layout:   stockpdf.DefaultLayout(),
		Style:    stockpdf.DefaultStyle(),
	}
}

// LoadLayoutFile reads the YAML file at path. An empty path yields the
// defaults.
func LoadLayoutFile(path string) (*LayoutFile, error) {
	if path == "" {
		return DefaultLayoutFile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading layout file: %w", err)
	}
	lf, err := ParseLayoutFile(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return lf, nil
}

// ParseLayoutFile decodes YAML on top of the defaults. Unknown keys are
// rejected so typos do not pass silently.
func ParseLayoutFile(data []byte) (*LayoutFile, error) {
	lf := DefaultLayoutFile()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(lf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := lf.Template.Validate(); err != nil {
		return nil, err
	}
	if err := lf.Layout.Validate(); err != nil {
		return nil, err
	}
	if err := lf.Style.Validate(); err != nil {
		return nil, err
	}
	return lf, nil
}

// Options turns the file into converter options.
func (f *LayoutFile) Options() []stockpdf.Option {
	return []stockpdf.Option{
		stockpdf.WithTemplate(f.Template),
		stockpdf.WithLayout(f.Layout),
		stockpdf.WithStyle(f.Style),
	}
}
