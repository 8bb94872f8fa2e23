package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-bhut-zeuslearning/excel/formula"
)

func newTestStore() *Store {
	return New(100, 26, 1000, 100)
}

func TestValueDefaultsEmpty(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, "", s.Value(0, 0))
	assert.Equal(t, "", s.Value(50, 10))
	// out of bounds never throws, just returns ""
	assert.Equal(t, "", s.Value(-1, 0))
	assert.Equal(t, "", s.Value(99999, 99999))
}

func TestSetValueRoundTrip(t *testing.T) {
	s := newTestStore()
	require.True(t, s.SetValue(3, 4, "hello"))
	assert.Equal(t, "hello", s.Value(3, 4))
	assert.Equal(t, 1, s.CellCount())
}

func TestSetValueOutOfMaxBoundsIsNoop(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.SetValue(1000, 0, "x"))
	assert.False(t, s.SetValue(0, 100, "x"))
	assert.False(t, s.SetValue(-1, 0, "x"))
	assert.Equal(t, 0, s.CellCount())
}

func TestSetValueGrowsCapacity(t *testing.T) {
	s := newTestStore()
	require.Equal(t, 100, s.RowCount())
	require.True(t, s.SetValue(500, 50, "deep"))
	assert.Equal(t, 501, s.RowCount())
	assert.Equal(t, 51, s.ColumnCount())
	assert.Equal(t, "deep", s.Value(500, 50))
}

func TestDeleteAbsentCellIsIdempotent(t *testing.T) {
	s := newTestStore()
	s.SetValue(1, 1, "keep")
	before := s.CellCount()
	require.True(t, s.SetValue(5, 5, ""))
	assert.Equal(t, before, s.CellCount())
}

func TestEmptyValueRemovesCell(t *testing.T) {
	s := newTestStore()
	s.SetValue(2, 2, "gone soon")
	require.Equal(t, 1, s.CellCount())
	s.SetValue(2, 2, "")
	assert.Equal(t, 0, s.CellCount())
}

func TestStyleOnlyCellOccupiesSlot(t *testing.T) {
	s := newTestStore()
	require.True(t, s.SetStyle(1, 1, Style{Bold: true}))
	assert.Equal(t, 1, s.CellCount())
	assert.Equal(t, "", s.Value(1, 1))

	// clearing the value of a styled cell keeps the slot
	s.SetValue(1, 1, "v")
	s.SetValue(1, 1, "")
	assert.Equal(t, 1, s.CellCount())
	assert.True(t, s.CellAt(1, 1).Style.Bold)

	// resetting the style releases it
	require.True(t, s.SetStyle(1, 1, Style{}))
	assert.Equal(t, 0, s.CellCount())
}

func TestCellAtAbsentIsTransient(t *testing.T) {
	s := newTestStore()
	c := s.CellAt(7, 7)
	assert.True(t, c.IsDefault())
	assert.Equal(t, 0, s.CellCount())

	// mutating the transient cell must not leak into storage
	c.Value = "stray"
	assert.Equal(t, "", s.Value(7, 7))
}

func TestEnsureCapacityMonotoneAndIdempotent(t *testing.T) {
	s := newTestStore()
	s.EnsureCapacity(200, 40)
	assert.Equal(t, 200, s.RowCount())
	assert.Equal(t, 40, s.ColumnCount())
	s.EnsureCapacity(150, 30) // never shrinks
	assert.Equal(t, 200, s.RowCount())
	assert.Equal(t, 40, s.ColumnCount())
	s.EnsureCapacity(99999, 99999) // capped at max
	assert.Equal(t, 1000, s.RowCount())
	assert.Equal(t, 100, s.ColumnCount())
}

func TestInsertRowShiftsCells(t *testing.T) {
	s := newTestStore()
	s.SetValue(5, 2, "A")
	s.SetValue(6, 2, "B")

	require.True(t, s.InsertRow(5))

	assert.Equal(t, "", s.Value(5, 2))
	assert.Equal(t, "A", s.Value(6, 2))
	assert.Equal(t, "B", s.Value(7, 2))
	assert.Equal(t, 101, s.RowCount())
}

func TestInsertRowPreservesCellIdentity(t *testing.T) {
	s := newTestStore()
	s.SetValue(5, 0, "A")
	held := s.CellAt(5, 0)

	require.True(t, s.InsertRow(3))

	// the same object moved, it was not replaced
	assert.Equal(t, 6, held.Row)
	assert.Same(t, held, s.CellAt(6, 0))
}

func TestInsertDeleteRowInverse(t *testing.T) {
	s := newTestStore()
	s.SetValue(2, 1, "x")
	s.SetValue(9, 3, "y")
	rows := s.RowCount()

	require.True(t, s.InsertRow(4))
	require.True(t, s.DeleteRow(4))

	assert.Equal(t, rows, s.RowCount())
	assert.Equal(t, "x", s.Value(2, 1))
	assert.Equal(t, "y", s.Value(9, 3))
	assert.Equal(t, 2, s.CellCount())
}

func TestDeleteRowOrphansCells(t *testing.T) {
	s := newTestStore()
	s.SetValue(4, 0, "doomed")
	s.SetValue(5, 0, "survivor")

	require.True(t, s.DeleteRow(4))

	assert.Equal(t, "survivor", s.Value(4, 0))
	assert.Equal(t, 1, s.CellCount())
}

func TestInsertRowBoundaries(t *testing.T) {
	s := New(2, 2, 3, 3)
	assert.False(t, s.InsertRow(-1))
	assert.False(t, s.InsertRow(5))
	assert.True(t, s.InsertRow(2)) // append position is legal
	// now at max capacity
	assert.False(t, s.InsertRow(0))
}

func TestDeleteRowBoundaries(t *testing.T) {
	s := New(2, 2, 10, 10)
	assert.False(t, s.DeleteRow(-1))
	assert.False(t, s.DeleteRow(2))
	assert.True(t, s.DeleteRow(1))
	// a grid never drops below one row
	assert.False(t, s.DeleteRow(0))
}

func TestInsertColumnShiftsCells(t *testing.T) {
	s := newTestStore()
	s.SetValue(0, 3, "C")
	s.SetValue(0, 4, "D")

	require.True(t, s.InsertColumn(3))

	assert.Equal(t, "", s.Value(0, 3))
	assert.Equal(t, "C", s.Value(0, 4))
	assert.Equal(t, "D", s.Value(0, 5))
}

func TestDeleteColumnShiftsCells(t *testing.T) {
	s := newTestStore()
	s.SetValue(0, 3, "C")
	s.SetValue(0, 4, "D")

	require.True(t, s.DeleteColumn(3))

	assert.Equal(t, "D", s.Value(0, 3))
	assert.Equal(t, 1, s.CellCount())
}

func TestMetadataIndexInvariant(t *testing.T) {
	s := newTestStore()
	s.InsertRow(10)
	s.DeleteRow(3)
	s.InsertColumn(2)
	s.DeleteColumn(0)
	for i := 0; i < s.RowCount(); i++ {
		assert.Equal(t, i, s.RowMetaAt(i).Index)
	}
	for i := 0; i < s.ColumnCount(); i++ {
		assert.Equal(t, i, s.ColumnMetaAt(i).Index)
	}
}

func TestRowHeightAndColumnWidth(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, DefaultRowHeight, s.RowHeight(0))
	assert.True(t, s.SetRowHeight(0, 40))
	assert.Equal(t, 40, s.RowHeight(0))
	assert.False(t, s.SetRowHeight(0, 0))
	assert.False(t, s.SetRowHeight(-1, 40))
	assert.Equal(t, DefaultRowHeight, s.RowHeight(-1))

	assert.True(t, s.SetColumnWidth(2, 150))
	assert.Equal(t, 150, s.ColumnWidth(2))
	assert.False(t, s.SetColumnWidth(999, 150))
}

func TestCellsInRangeRowMajor(t *testing.T) {
	s := newTestStore()
	s.SetValue(1, 1, "b")
	s.SetValue(0, 1, "a2")
	s.SetValue(0, 0, "a1")
	s.SetValue(5, 5, "outside")

	cells := s.CellsInRange(0, 0, 2, 2)
	require.Len(t, cells, 3)
	assert.Equal(t, "a1", cells[0].Value)
	assert.Equal(t, "a2", cells[1].Value)
	assert.Equal(t, "b", cells[2].Value)

	// reversed corners normalize
	assert.Len(t, s.CellsInRange(2, 2, 0, 0), 3)
}

func TestSetRangeAndClearRange(t *testing.T) {
	s := newTestStore()
	s.SetRange(0, 0, 1, 1, "fill")
	assert.Equal(t, 4, s.CellCount())
	assert.Equal(t, "fill", s.Value(1, 1))

	s.ClearRange(0, 0, 1, 0)
	assert.Equal(t, 2, s.CellCount())
	assert.Equal(t, "", s.Value(1, 0))
	assert.Equal(t, "fill", s.Value(1, 1))
}

func TestFindCells(t *testing.T) {
	s := newTestStore()
	s.SetValue(0, 0, "Revenue")
	s.SetValue(1, 0, "revenue forecast")
	s.SetValue(2, 0, "costs")

	found := s.FindCells("revenue", false)
	require.Len(t, found, 2)
	assert.Equal(t, 0, found[0].Row)
	assert.Equal(t, 1, found[1].Row)

	found = s.FindCells("revenue", true)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Row)

	assert.Empty(t, s.FindCells("", false))
}

func TestFormulaEvaluationKeepsRaw(t *testing.T) {
	s := newTestStore()
	s.SetEvaluator(formula.New())
	s.SetValue(0, 0, "10")
	s.SetValue(0, 1, "20")

	require.True(t, s.SetValue(1, 0, "=SUM(A1,B1)"))
	assert.Equal(t, "30", s.Value(1, 0))
	assert.Equal(t, "=SUM(A1,B1)", s.CellAt(1, 0).Raw)
}

func TestMalformedFormulaStoredAsText(t *testing.T) {
	s := newTestStore()
	s.SetEvaluator(formula.New())
	require.True(t, s.SetValue(0, 0, "=WHAT("))
	assert.Equal(t, "=WHAT(", s.Value(0, 0))
}

func TestOnChangeObserver(t *testing.T) {
	s := newTestStore()
	fired := 0
	s.OnChange(func() { fired++ })
	s.SetValue(0, 0, "x")
	s.InsertRow(0)
	s.DeleteRow(0)
	assert.Equal(t, 3, fired)
}
