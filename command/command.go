// Package command wraps every grid mutation as a reversible operation and
// provides the bounded undo/redo stack that mediates them. Commands report
// success as a boolean and never panic past the stack boundary.
package command

import (
	"fmt"

	"github.com/deep-bhut-zeuslearning/excel/a1"
	"github.com/deep-bhut-zeuslearning/excel/grid"
)

// Command is one reversible mutation against a grid store. A command
// cycles between applied and reverted indefinitely; Undo before the first
// successful Execute is an error and returns false, since the captured
// prior state would be absent.
type Command interface {
	Execute() bool
	Undo() bool
	Name() string
}

// SetValue writes one cell value. The old value is captured at execute
// time, not at construction, so a queued command still reverses correctly
// when other edits land in between.
type SetValue struct {
	Store *grid.Store
	Row   int
	Col   int
	Value string

	prev     grid.Cell
	executed bool
}

func (c *SetValue) Name() string {
	return fmt.Sprintf("set %s", a1.CellLabel(c.Row, c.Col))
}

func (c *SetValue) Execute() bool {
	prev := *c.Store.CellAt(c.Row, c.Col)
	if !c.Store.SetValue(c.Row, c.Col, c.Value) {
		return false
	}
	c.prev = prev
	c.executed = true
	return true
}

func (c *SetValue) Undo() bool {
	if !c.executed {
		return false
	}
	return c.Store.PutCell(c.prev)
}

// SetStyle updates one cell's presentation attributes.
type SetStyle struct {
	Store *grid.Store
	Row   int
	Col   int
	Style grid.Style

	prev     grid.Cell
	executed bool
}

func (c *SetStyle) Name() string {
	return fmt.Sprintf("style %s", a1.CellLabel(c.Row, c.Col))
}

func (c *SetStyle) Execute() bool {
	prev := *c.Store.CellAt(c.Row, c.Col)
	if !c.Store.SetStyle(c.Row, c.Col, c.Style) {
		return false
	}
	c.prev = prev
	c.executed = true
	return true
}

func (c *SetStyle) Undo() bool {
	if !c.executed {
		return false
	}
	return c.Store.PutCell(c.prev)
}

// SetRange writes the same value to every cell of a rectangle.
type SetRange struct {
	Store          *grid.Store
	R0, C0, R1, C1 int
	Value          string

	prev     []grid.Cell
	executed bool
}

func (c *SetRange) Name() string {
	return fmt.Sprintf("fill %s:%s", a1.CellLabel(c.R0, c.C0), a1.CellLabel(c.R1, c.C1))
}

func (c *SetRange) Execute() bool {
	c.prev = c.prev[:0]
	for _, cell := range c.Store.CellsInRange(c.R0, c.C0, c.R1, c.C1) {
		c.prev = append(c.prev, *cell)
	}
	c.Store.SetRange(c.R0, c.C0, c.R1, c.C1, c.Value)
	c.executed = true
	return true
}

func (c *SetRange) Undo() bool {
	if !c.executed {
		return false
	}
	c.Store.ClearRange(c.R0, c.C0, c.R1, c.C1)
	for _, cell := range c.prev {
		c.Store.PutCell(cell)
	}
	return true
}

// ClearRange removes every stored cell inside a rectangle, snapshotting
// the cleared cells for undo.
type ClearRange struct {
	Store          *grid.Store
	R0, C0, R1, C1 int

	prev     []grid.Cell
	executed bool
}

func (c *ClearRange) Name() string {
	return fmt.Sprintf("clear %s:%s", a1.CellLabel(c.R0, c.C0), a1.CellLabel(c.R1, c.C1))
}

func (c *ClearRange) Execute() bool {
	c.prev = c.prev[:0]
	for _, cell := range c.Store.CellsInRange(c.R0, c.C0, c.R1, c.C1) {
		c.prev = append(c.prev, *cell)
	}
	c.Store.ClearRange(c.R0, c.C0, c.R1, c.C1)
	c.executed = true
	return true
}

func (c *ClearRange) Undo() bool {
	if !c.executed {
		return false
	}
	for _, cell := range c.prev {
		c.Store.PutCell(cell)
	}
	return true
}
