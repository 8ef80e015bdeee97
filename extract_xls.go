package stockpdf

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// firstSheetXLS reads a legacy BIFF workbook. The decoder panics on some
// malformed inputs, so panics are turned into parse errors.
func firstSheetXLS(data []byte) (grid [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			grid = nil
			err = fmt.Errorf("%w: xls decoder: %v", ErrParse, rec)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoSheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheet
	}

	grid = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := rowAt(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// rowAt returns row i of sheet, or nil when the sheet has no record for
// it. WorkSheet.Row dereferences missing rows, so gaps show up as a panic.
func rowAt(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
