package stockpdf

import "fmt"

// Template describes where the product table sits inside the uploaded
// spreadsheet. The defaults match the stock report exported by the
// upstream inventory tool: nine preamble rows, then data in columns
// A, C, F and H.
type Template struct {
	// SkipRows is the number of leading rows ignored unconditionally.
	SkipRows int `yaml:"skip_rows"`

	// Columns holds the zero-based column indexes projected into
	// code, description, category and stock, in that order.
	Columns [4]int `yaml:"columns"`
}

// DefaultTemplate returns the stock report template.
func DefaultTemplate() Template {
	return Template{
		SkipRows: 9,
		Columns:  [4]int{0, 2, 5, 7},
	}
}

// Validate reports whether t can be applied to a sheet.
func (t Template) Validate() error {
	if t.SkipRows < 0 {
		return fmt.Errorf("stockpdf: template skip rows must not be negative, got %d", t.SkipRows)
	}
	for i, c := range t.Columns {
		if c < 0 {
			return fmt.Errorf("stockpdf: template column %d must not be negative, got %d", i, c)
		}
	}
	return nil
}
