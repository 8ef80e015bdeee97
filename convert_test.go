package stockpdf

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func stockCells(n int) map[string]any {
	cells := map[string]any{"A1": "Listado de stock", "A9": "Código"}
	for i := 0; i < n; i++ {
		r := 10 + i
		cells[fmt.Sprintf("A%d", r)] = fmt.Sprintf("P%03d", i)
		cells[fmt.Sprintf("C%d", r)] = fmt.Sprintf("Producto %d", i)
		cells[fmt.Sprintf("F%d", r)] = "Ferretería"
		cells[fmt.Sprintf("H%d", r)] = i
	}
	return cells
}

func TestConvert_EndToEnd(t *testing.T) {
	data := buildXLSX(t, stockCells(30))
	res, err := Convert(context.Background(), data)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Rows() != 30 || res.Pages() != 2 {
		t.Errorf("Rows/Pages = %d/%d, want 30/2", res.Rows(), res.Pages())
	}
	pages := readPages(t, res.Bytes())
	if len(pages) != 2 {
		t.Fatalf("pdf pages = %d, want 2", len(pages))
	}
	if !hasLine(pages[0], "P000\tProducto 0\tFerretería\t0") {
		t.Errorf("page 1 text:\n%s", pages[0].Text())
	}
	if !hasLine(pages[1], "P029\tProducto 29\tFerretería\t29") {
		t.Errorf("page 2 text:\n%s", pages[1].Text())
	}
}

func TestConvert_NoDataRows(t *testing.T) {
	res, err := Convert(context.Background(), buildXLSX(t, map[string]any{"A1": "sólo encabezado"}))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Rows() != 0 || res.Pages() != 1 {
		t.Errorf("Rows/Pages = %d/%d, want 0/1", res.Rows(), res.Pages())
	}
}

func TestConvert_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", []byte{}, ErrInvalidUpload},
		{"not a spreadsheet", []byte("%PDF-1.4 not a sheet"), ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Convert(context.Background(), tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Error("partial result returned on error")
			}
		})
	}
}

func TestConvert_RenderError(t *testing.T) {
	data := buildXLSX(t, stockCells(1))
	_, err := Convert(context.Background(), data, WithBackend(failingBackend{err: errors.New("boom")}))
	if !errors.Is(err, ErrRender) {
		t.Fatalf("err = %v, want ErrRender", err)
	}
}

func TestConverter_CustomTemplate(t *testing.T) {
	data := buildXLSX(t, map[string]any{
		"A1": "code", "B1": "name", "C1": "group", "D1": "qty",
		"A2": "X1", "B2": "Widget", "C2": "Tools", "D2": 5,
	})
	conv, err := NewConverter(WithTemplate(Template{SkipRows: 1, Columns: [4]int{0, 1, 2, 3}}))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	if got := conv.Template().SkipRows; got != 1 {
		t.Errorf("Template().SkipRows = %d", got)
	}
	res, err := conv.Convert(context.Background(), data)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !hasLine(readPages(t, res.Bytes())[0], "X1\tWidget\tTools\t5") {
		t.Error("custom template row not rendered")
	}
}

func TestNewConverter_Invalid(t *testing.T) {
	if _, err := NewConverter(WithTemplate(Template{SkipRows: -1})); err == nil {
		t.Error("expected template error")
	}
	if _, err := NewConverter(WithLayout(Layout{ContinuationTop: 900})); err == nil {
		t.Error("expected layout error")
	}
}

func TestConverter_Layout(t *testing.T) {
	conv, err := NewConverter(WithLayout(Layout{Title: "Inventario"}))
	if err != nil {
		t.Fatal(err)
	}
	l := conv.Layout()
	if l.Title != "Inventario" || l.RowHeight != 28 {
		t.Errorf("Layout() = %+v", l)
	}
}

func TestConverter_Logging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	conv, err := NewConverter(WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	data := buildXLSX(t, stockCells(3))
	if _, err := conv.Convert(context.Background(), data); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("convert.ok").All()
	if len(entries) != 1 {
		t.Fatalf("convert.ok entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["rows"] != int64(3) || fields["pages"] != int64(1) || fields["input_bytes"] != int64(len(data)) {
		t.Errorf("fields = %v", fields)
	}
	// Debug render details stay below the configured level.
	if n := logs.FilterMessage("render.ok").Len(); n != 0 {
		t.Errorf("render.ok logged %d times at info level", n)
	}
}
