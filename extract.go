package stockpdf

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Extract reads the first sheet of an .xlsx or .xls workbook and projects
// it through tpl. Rows before tpl.SkipRows are ignored and rows whose four
// projected cells are all empty are dropped; the remaining rows keep their
// sheet order.
//
// A sheet with fewer rows than tpl.SkipRows+1 yields an empty slice, not an
// error.
func Extract(data []byte, tpl Template) ([]Row, error) {
	if len(data) == 0 {
		return nil, ErrInvalidUpload
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	grid, err := firstSheet(data)
	if err != nil {
		return nil, err
	}
	return Project(grid, tpl), nil
}

// Project applies tpl to an already decoded sheet grid. Missing cells
// become empty strings.
func Project(grid [][]string, tpl Template) []Row {
	rows := make([]Row, 0)
	for i := tpl.SkipRows; i < len(grid); i++ {
		src := grid[i]
		var r Row
		for j, col := range tpl.Columns {
			if col < len(src) {
				r[j] = src[col]
			}
		}
		if r.IsBlank() {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// firstSheet decodes the first sheet, by position, into display strings.
func firstSheet(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return firstSheetXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return firstSheetXLS(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized file signature", ErrParse)
	}
}

func firstSheetXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrParse, sheets[0], err)
	}
	return rows, nil
}
