// Package selection tracks which grid coordinates are considered selected.
// It owns no cell data; consumers (statistics, bulk edits, rendering)
// resolve selected coordinates against the store themselves.
package selection

import (
	"github.com/deep-bhut-zeuslearning/excel/a1"
)

// Range is a single rectangular selected region. A range can additionally
// be flagged as a full-row or full-column selection; the two flags are
// mutually exclusive.
type Range struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int

	IsRowSelection    bool
	IsColumnSelection bool
}

// NewRange builds a plain rectangular range with corners normalized so
// start <= end on both axes.
func NewRange(r0, c0, r1, c1 int) *Range {
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	return &Range{StartRow: r0, EndRow: r1, StartCol: c0, EndCol: c1}
}

// NewCellRange builds a single-cell range.
func NewCellRange(row, col int) *Range {
	return NewRange(row, col, row, col)
}

// NewColumnRange builds a column-mode selection spanning columns
// [c0, c1] over the full height of a grid with rowCount rows.
func NewColumnRange(c0, c1, rowCount int) *Range {
	r := NewRange(0, c0, rowCount-1, c1)
	r.IsColumnSelection = true
	return r
}

// NewRowRange builds a row-mode selection spanning rows [r0, r1] over the
// full width of a grid with colCount columns.
func NewRowRange(r0, r1, colCount int) *Range {
	r := NewRange(r0, 0, r1, colCount-1)
	r.IsRowSelection = true
	return r
}

// Contains reports whether the coordinate lies inside the range.
func (r *Range) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// ContainsRow reports whether the row index lies inside the range's rows.
func (r *Range) ContainsRow(row int) bool {
	return row >= r.StartRow && row <= r.EndRow
}

// ContainsColumn reports whether the column index lies inside the range's
// columns.
func (r *Range) ContainsColumn(col int) bool {
	return col >= r.StartCol && col <= r.EndCol
}

// SingleCell reports whether the range covers exactly one cell.
func (r *Range) SingleCell() bool {
	return r.StartRow == r.EndRow && r.StartCol == r.EndCol
}

// CellCount returns the number of coordinates covered by the range.
func (r *Range) CellCount() int {
	return (r.EndRow - r.StartRow + 1) * (r.EndCol - r.StartCol + 1)
}

// ExpandTo grows the range in place so it covers the given coordinate,
// keeping the opposite corner anchored. Row/column-mode ranges keep their
// mode; only the free axis moves.
func (r *Range) ExpandTo(row, col int) {
	if !r.IsColumnSelection {
		if row < r.StartRow {
			r.StartRow = row
		}
		if row > r.EndRow {
			r.EndRow = row
		}
	}
	if !r.IsRowSelection {
		if col < r.StartCol {
			r.StartCol = col
		}
		if col > r.EndCol {
			r.EndCol = col
		}
	}
}

// Label renders the range in A1 notation: "A1" for a single cell,
// "A1:C3" for a rectangle, "A" / "A:C" for column selections and
// "1" / "1:3" for row selections.
func (r *Range) Label() string {
	switch {
	case r.IsColumnSelection:
		if r.StartCol == r.EndCol {
			return a1.ColumnLabel(r.StartCol)
		}
		return a1.ColumnLabel(r.StartCol) + ":" + a1.ColumnLabel(r.EndCol)
	case r.IsRowSelection:
		if r.StartRow == r.EndRow {
			return a1.RowLabel(r.StartRow)
		}
		return a1.RowLabel(r.StartRow) + ":" + a1.RowLabel(r.EndRow)
	case r.SingleCell():
		return a1.CellLabel(r.StartRow, r.StartCol)
	default:
		return a1.CellLabel(r.StartRow, r.StartCol) + ":" + a1.CellLabel(r.EndRow, r.EndCol)
	}
}
