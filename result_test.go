package stockpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var samplePDF = []byte("%PDF-1.3\nfake content for testing\n%%EOF")

func newResult(data []byte, rows int) *Result {
	return &Result{data: data, plan: Paginate(rows, DefaultLayout())}
}

func TestResult_Bytes(t *testing.T) {
	r := newResult(samplePDF, 3)
	if !bytes.Equal(r.Bytes(), samplePDF) {
		t.Error("Bytes() returned different content")
	}
}

func TestResult_Len(t *testing.T) {
	r := newResult(samplePDF, 0)
	if r.Len() != len(samplePDF) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(samplePDF))
	}
}

func TestResult_PagesAndRows(t *testing.T) {
	r := newResult(samplePDF, 30)
	if r.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", r.Pages())
	}
	if r.Rows() != 30 {
		t.Errorf("Rows() = %d, want 30", r.Rows())
	}
	if got := len(r.Plan().PageRows(1)); got != 6 {
		t.Errorf("rows on page 2 = %d, want 6", got)
	}
}

func TestResult_WriteTo(t *testing.T) {
	r := newResult(samplePDF, 1)
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(samplePDF)) {
		t.Errorf("WriteTo returned %d, want %d", n, len(samplePDF))
	}
	if !bytes.Equal(buf.Bytes(), samplePDF) {
		t.Error("WriteTo wrote different content")
	}
}

func TestResult_WriteToFile(t *testing.T) {
	r := newResult(samplePDF, 1)
	path := filepath.Join(t.TempDir(), "stock.pdf")

	if err := r.WriteToFile(path, 0o644); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, samplePDF) {
		t.Error("file content does not match")
	}
}

func TestResult_WriteToFile_InvalidPath(t *testing.T) {
	r := newResult(samplePDF, 1)
	if err := r.WriteToFile(filepath.Join(t.TempDir(), "missing", "stock.pdf"), 0o644); err == nil {
		t.Error("expected error for missing directory")
	}
}
