package stockpdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildXLSX writes cells into the first sheet of a new workbook. Keys are
// cell references such as "A10".
func buildXLSX(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ref, v := range cells {
		if err := f.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", ref, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_ConcreteSheet(t *testing.T) {
	cells := map[string]any{
		"A1": "Inventario", "A9": "Código",
		"A10": "P001", "C10": "Tornillo 5mm", "F10": "Ferretería", "H10": 120,
		// row 11 left blank
		"A12": "P002", "C12": "Tuerca", "F12": "Ferretería", "H12": 80,
		// values outside the projected columns do not keep a row alive
		"B13": "ignored", "D13": "ignored",
	}
	rows, err := Extract(buildXLSX(t, cells), DefaultTemplate())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []Row{
		{"P001", "Tornillo 5mm", "Ferretería", "120"},
		{"P002", "Tuerca", "Ferretería", "80"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Extract = %q, want %q", rows, want)
	}
}

func TestExtract_FewerThanTenRows(t *testing.T) {
	cells := map[string]any{}
	for i := 1; i <= 9; i++ {
		cells[fmt.Sprintf("A%d", i)] = i
	}
	rows, err := Extract(buildXLSX(t, cells), DefaultTemplate())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("Extract = %#v, want empty non-nil slice", rows)
	}
}

func TestExtract_PartialRowsKept(t *testing.T) {
	cells := map[string]any{
		"H10": 7,
		"C11": "solo descripción",
	}
	rows, err := Extract(buildXLSX(t, cells), DefaultTemplate())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []Row{{"", "", "", "7"}, {"", "solo descripción", "", ""}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Extract = %q, want %q", rows, want)
	}
}

func TestExtract_CustomTemplate(t *testing.T) {
	cells := map[string]any{
		"A1": "code", "B1": "desc",
		"A2": "X1", "B2": "Widget", "C2": "Tools", "D2": 3,
	}
	tpl := Template{SkipRows: 1, Columns: [4]int{0, 1, 2, 3}}
	rows, err := Extract(buildXLSX(t, cells), tpl)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if want := []Row{{"X1", "Widget", "Tools", "3"}}; !reflect.DeepEqual(rows, want) {
		t.Errorf("Extract = %q, want %q", rows, want)
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrInvalidUpload},
		{"plain text", []byte("code,description\nP001,Tornillo\n"), ErrParse},
		{"broken zip", []byte("PK\x03\x04 this is not a workbook"), ErrParse},
		{"broken ole", append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...), ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, DefaultTemplate())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !IsInputError(err) {
				t.Errorf("IsInputError(%v) = false", err)
			}
		})
	}
}

func TestExtract_InvalidTemplate(t *testing.T) {
	data := buildXLSX(t, map[string]any{"A10": "x"})
	if _, err := Extract(data, Template{SkipRows: -1}); err == nil {
		t.Fatal("expected error for negative skip rows")
	}
	if _, err := Extract(data, Template{Columns: [4]int{0, -2, 1, 1}}); err == nil {
		t.Fatal("expected error for negative column")
	}
}

func TestExtract_XLS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "Table.xls"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Extract(data, Template{SkipRows: 1, Columns: [4]int{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := make([]Row, 0, 11)
	for i := 1; i <= 11; i++ {
		want = append(want, Row{fmt.Sprintf("code%d", i), fmt.Sprintf("name%d", i), fmt.Sprintf("description%d", i), ""})
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q\nwant %q", got, want)
	}

	got, err = Extract(data, Template{Columns: [4]int{0, 1, 2, 3}})
	if err != nil {
		t.Fatalf("Extract without skip: %v", err)
	}
	if len(got) != 12 || got[0] != (Row{"Code", "Name", "Description", ""}) {
		t.Errorf("header row = %q of %d rows", got[0], len(got))
	}

	// Columns past the data project to blank rows, which are dropped.
	got, err = Extract(data, Template{Columns: [4]int{3, 4, 5, 6}})
	if err != nil {
		t.Fatalf("Extract blank columns: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("rows = %q, want empty non-nil slice", got)
	}
}

func TestProject(t *testing.T) {
	grid := [][]string{
		{"skip"},
		{"a", "b", "c", "d", "e", "f", "g", "h"},
		{},
		{"", "", "", "", "", "", "", ""},
		{"only-a"},
		nil,
		{"", "", "", "", "", "", "", "h"},
	}
	got := Project(grid, Template{SkipRows: 1, Columns: [4]int{0, 2, 5, 7}})
	want := []Row{
		{"a", "c", "f", "h"},
		{"only-a", "", "", ""},
		{"", "", "", "h"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Project = %q, want %q", got, want)
	}
}

func TestProject_SkipBeyondGrid(t *testing.T) {
	got := Project([][]string{{"a"}, {"b"}}, Template{SkipRows: 9})
	if got == nil || len(got) != 0 {
		t.Errorf("Project = %#v, want empty non-nil slice", got)
	}
}

func TestRowAccessors(t *testing.T) {
	r := Row{"P1", "Desc", "Cat", "5"}
	if r.Code() != "P1" || r.Description() != "Desc" || r.Category() != "Cat" || r.Stock() != "5" {
		t.Errorf("accessors = %q %q %q %q", r.Code(), r.Description(), r.Category(), r.Stock())
	}
	if r.IsBlank() {
		t.Error("IsBlank() = true for populated row")
	}
	if !(Row{}).IsBlank() {
		t.Error("IsBlank() = false for zero row")
	}
}
