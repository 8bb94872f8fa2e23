// Package xlsx moves grid data in and out of Excel workbooks via excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/deep-bhut-zeuslearning/excel/a1"
	"github.com/deep-bhut-zeuslearning/excel/grid"
)

// Excel column widths are in character units and row heights in points;
// the grid tracks pixels.
const (
	pxPerWidthUnit = 7.0
	pxPerPoint     = 96.0 / 72.0
)

// Import reads one worksheet into a fresh store with the given hard
// bounds. Cell values come in as their formatted display strings along
// with bold/italic font attributes; rows and columns beyond the bounds are
// silently truncated.
func Import(path, sheetName string, maxRows, maxCols int) (*grid.Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	store := grid.New(len(rows), 1, maxRows, maxCols)
	for r, row := range rows {
		if r >= maxRows {
			break
		}
		for c, val := range row {
			if c >= maxCols {
				break
			}
			if val == "" {
				continue
			}
			store.SetValue(r, c, val)
			if st := cellStyle(f, sheetName, a1.CellLabel(r, c)); !st.IsDefault() {
				store.SetStyle(r, c, st)
			}
		}
		if h, err := f.GetRowHeight(sheetName, r+1); err == nil && h > 0 {
			store.SetRowHeight(r, int(h*pxPerPoint))
		}
	}
	for c := 0; c < store.ColumnCount(); c++ {
		if w, err := f.GetColWidth(sheetName, a1.ColumnLabel(c)); err == nil && w > 0 {
			store.SetColumnWidth(c, int(w*pxPerWidthUnit))
		}
	}
	return store, nil
}

// cellStyle maps a worksheet cell's font attributes onto a grid style.
// Unstyled or unreadable cells yield the default style.
func cellStyle(f *excelize.File, sheetName, ref string) grid.Style {
	idx, err := f.GetCellStyle(sheetName, ref)
	if err != nil || idx == 0 {
		return grid.Style{}
	}
	st, err := f.GetStyle(idx)
	if err != nil || st == nil || st.Font == nil {
		return grid.Style{}
	}
	out := grid.Style{Bold: st.Font.Bold, Italic: st.Font.Italic}
	if st.Font.Size > 0 {
		out.FontSize = int(st.Font.Size)
	}
	return out
}

// Export writes the store to a new workbook at path. Values, bold/italic
// styling, column widths and row heights are carried over.
func Export(store *grid.Store, path, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	styleIDs := make(map[grid.Style]int)
	for _, c := range store.Cells() {
		ref := a1.CellLabel(c.Row, c.Col)
		if err := f.SetCellValue(sheetName, ref, c.Value); err != nil {
			return fmt.Errorf("set %s: %w", ref, err)
		}
		if c.Style.IsDefault() {
			continue
		}
		id, ok := styleIDs[c.Style]
		if !ok {
			font := &excelize.Font{Bold: c.Style.Bold, Italic: c.Style.Italic}
			if c.Style.FontSize > 0 {
				font.Size = float64(c.Style.FontSize)
			}
			var err error
			id, err = f.NewStyle(&excelize.Style{Font: font})
			if err != nil {
				return fmt.Errorf("build style: %w", err)
			}
			styleIDs[c.Style] = id
		}
		if err := f.SetCellStyle(sheetName, ref, ref, id); err != nil {
			return fmt.Errorf("style %s: %w", ref, err)
		}
	}

	for i := 0; i < store.RowCount(); i++ {
		if h := store.RowHeight(i); h != grid.DefaultRowHeight {
			if err := f.SetRowHeight(sheetName, i+1, float64(h)/pxPerPoint); err != nil {
				return fmt.Errorf("row height %d: %w", i+1, err)
			}
		}
	}
	for i := 0; i < store.ColumnCount(); i++ {
		if w := store.ColumnWidth(i); w != grid.DefaultColumnWidth {
			label := a1.ColumnLabel(i)
			if err := f.SetColWidth(sheetName, label, label, float64(w)/pxPerWidthUnit); err != nil {
				return fmt.Errorf("col width %s: %w", label, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
