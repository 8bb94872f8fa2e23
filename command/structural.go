package command

import (
	"fmt"

	"github.com/deep-bhut-zeuslearning/excel/a1"
	"github.com/deep-bhut-zeuslearning/excel/grid"
)

// InsertRow splices an empty row at Index. Undo deletes the inserted row,
// which is empty by construction.
type InsertRow struct {
	Store *grid.Store
	Index int

	executed bool
}

func (c *InsertRow) Name() string { return fmt.Sprintf("insert row %d", c.Index+1) }

func (c *InsertRow) Execute() bool {
	if !c.Store.InsertRow(c.Index) {
		return false
	}
	c.executed = true
	return true
}

func (c *InsertRow) Undo() bool {
	if !c.executed {
		return false
	}
	return c.Store.DeleteRow(c.Index)
}

// DeleteRow removes the row at Index. The store orphans the row's cells
// irreversibly, so the command snapshots both the cells and the row
// metadata before deleting.
type DeleteRow struct {
	Store *grid.Store
	Index int

	cells    []grid.Cell
	height   int
	executed bool
}

func (c *DeleteRow) Name() string { return fmt.Sprintf("delete row %d", c.Index+1) }

func (c *DeleteRow) Execute() bool {
	cells := c.cells[:0]
	for _, cell := range c.Store.CellsInRange(c.Index, 0, c.Index, c.Store.ColumnCount()-1) {
		cells = append(cells, *cell)
	}
	height := c.Store.RowHeight(c.Index)
	if !c.Store.DeleteRow(c.Index) {
		return false
	}
	c.cells = cells
	c.height = height
	c.executed = true
	return true
}

func (c *DeleteRow) Undo() bool {
	if !c.executed {
		return false
	}
	if !c.Store.InsertRow(c.Index) {
		return false
	}
	c.Store.SetRowHeight(c.Index, c.height)
	for _, cell := range c.cells {
		c.Store.PutCell(cell)
	}
	return true
}

// InsertColumn splices an empty column at Index.
type InsertColumn struct {
	Store *grid.Store
	Index int

	executed bool
}

func (c *InsertColumn) Name() string { return fmt.Sprintf("insert column %s", a1.ColumnLabel(c.Index)) }

func (c *InsertColumn) Execute() bool {
	if !c.Store.InsertColumn(c.Index) {
		return false
	}
	c.executed = true
	return true
}

func (c *InsertColumn) Undo() bool {
	if !c.executed {
		return false
	}
	return c.Store.DeleteColumn(c.Index)
}

// DeleteColumn removes the column at Index, snapshotting its cells and
// width first.
type DeleteColumn struct {
	Store *grid.Store
	Index int

	cells    []grid.Cell
	width    int
	executed bool
}

func (c *DeleteColumn) Name() string { return fmt.Sprintf("delete column %s", a1.ColumnLabel(c.Index)) }

func (c *DeleteColumn) Execute() bool {
	cells := c.cells[:0]
	for _, cell := range c.Store.CellsInRange(0, c.Index, c.Store.RowCount()-1, c.Index) {
		cells = append(cells, *cell)
	}
	width := c.Store.ColumnWidth(c.Index)
	if !c.Store.DeleteColumn(c.Index) {
		return false
	}
	c.cells = cells
	c.width = width
	c.executed = true
	return true
}

func (c *DeleteColumn) Undo() bool {
	if !c.executed {
		return false
	}
	if !c.Store.InsertColumn(c.Index) {
		return false
	}
	c.Store.SetColumnWidth(c.Index, c.width)
	for _, cell := range c.cells {
		c.Store.PutCell(cell)
	}
	return true
}

// ResizeRow sets a row's height. The prior height is captured at
// construction from the live metadata record, matching how interactive
// resizes snapshot the size the drag started from.
type ResizeRow struct {
	store  *grid.Store
	index  int
	height int
	prev   int
}

// NewResizeRow captures the row's current height and returns the command.
func NewResizeRow(store *grid.Store, index, height int) *ResizeRow {
	return &ResizeRow{store: store, index: index, height: height, prev: store.RowHeight(index)}
}

func (c *ResizeRow) Name() string { return fmt.Sprintf("resize row %d", c.index+1) }

func (c *ResizeRow) Execute() bool {
	return c.store.SetRowHeight(c.index, c.height)
}

func (c *ResizeRow) Undo() bool {
	return c.store.SetRowHeight(c.index, c.prev)
}

// ResizeColumn sets a column's width, capturing the prior width at
// construction.
type ResizeColumn struct {
	store *grid.Store
	index int
	width int
	prev  int
}

// NewResizeColumn captures the column's current width and returns the
// command.
func NewResizeColumn(store *grid.Store, index, width int) *ResizeColumn {
	return &ResizeColumn{store: store, index: index, width: width, prev: store.ColumnWidth(index)}
}

func (c *ResizeColumn) Name() string { return fmt.Sprintf("resize column %s", a1.ColumnLabel(c.index)) }

func (c *ResizeColumn) Execute() bool {
	return c.store.SetColumnWidth(c.index, c.width)
}

func (c *ResizeColumn) Undo() bool {
	return c.store.SetColumnWidth(c.index, c.prev)
}
