package stockpdf

import (
	"io"
	"os"
)

// Result holds a generated PDF together with what the layout decided
// about it.
//
// It is safe to call its methods multiple times; the underlying data is
// never modified.
type Result struct {
	data []byte
	plan Plan
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// Pages returns the number of pages in the document.
func (r *Result) Pages() int {
	return r.plan.Pages
}

// Rows returns the number of data rows drawn.
func (r *Result) Rows() int {
	return len(r.plan.Rows)
}

// Plan returns the row-to-page assignment used for the document.
func (r *Result) Plan() Plan {
	return r.plan
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}
