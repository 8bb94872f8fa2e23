// Package grid implements the sparse spreadsheet data store. The store is
// the single source of truth for cell values, presentation attributes and
// row/column structural metadata, and is the only place shifting logic for
// structural edits lives.
//
// The store is synchronous and not safe for concurrent use; callers that
// share a store across goroutines must serialize access (see sheet.Sheet).
// All bounds and capacity violations are silent no-ops or boolean false,
// never panics or errors.
package grid

import (
	"sort"
	"strings"
)

// Default metadata values applied to new rows and columns.
const (
	DefaultRowHeight   = 24
	DefaultColumnWidth = 100
)

// RowMeta describes one row of the grid.
type RowMeta struct {
	Index    int  `json:"index"`
	Height   int  `json:"height"`
	Hidden   bool `json:"hidden,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// ColumnMeta describes one column of the grid.
type ColumnMeta struct {
	Index    int  `json:"index"`
	Width    int  `json:"width"`
	Hidden   bool `json:"hidden,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// Evaluator turns a formula input (leading "=") into a display value.
// The value callback reads current cell values from the calling store.
// Implementations must not mutate the store through the callback.
type Evaluator interface {
	Evaluate(input string, value func(row, col int) string) (string, error)
}

type coord struct {
	row, col int
}

// Store is the sparse coordinate-addressed cell store.
type Store struct {
	maxRows, maxCols int

	rows []RowMeta
	cols []ColumnMeta

	cells map[coord]*Cell

	eval      Evaluator
	observers []func()
}

// New creates a store with the given initial and maximum dimensions.
// Initial counts are clamped into [1, max].
func New(rows, cols, maxRows, maxCols int) *Store {
	if maxRows < 1 {
		maxRows = 1
	}
	if maxCols < 1 {
		maxCols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows > maxRows {
		rows = maxRows
	}
	if cols > maxCols {
		cols = maxCols
	}
	s := &Store{
		maxRows: maxRows,
		maxCols: maxCols,
		cells:   make(map[coord]*Cell),
	}
	for i := 0; i < rows; i++ {
		s.rows = append(s.rows, RowMeta{Index: i, Height: DefaultRowHeight})
	}
	for i := 0; i < cols; i++ {
		s.cols = append(s.cols, ColumnMeta{Index: i, Width: DefaultColumnWidth})
	}
	return s
}

// SetEvaluator installs the external formula evaluator used by SetValue
// for inputs starting with "=". A nil evaluator stores formula text as-is.
func (s *Store) SetEvaluator(e Evaluator) {
	s.eval = e
}

// OnChange registers a callback invoked after every successful mutation.
// Callbacks must not mutate the store.
func (s *Store) OnChange(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// RowCount returns the current number of rows.
func (s *Store) RowCount() int { return len(s.rows) }

// ColumnCount returns the current number of columns.
func (s *Store) ColumnCount() int { return len(s.cols) }

// MaxRows returns the hard row ceiling.
func (s *Store) MaxRows() int { return s.maxRows }

// MaxCols returns the hard column ceiling.
func (s *Store) MaxCols() int { return s.maxCols }

// CellCount returns the number of occupied storage slots.
func (s *Store) CellCount() int { return len(s.cells) }

// RowMetaAt returns the live metadata record for a row, or nil when the
// index is out of range. The pointer stays valid until the row is deleted.
func (s *Store) RowMetaAt(index int) *RowMeta {
	if index < 0 || index >= len(s.rows) {
		return nil
	}
	return &s.rows[index]
}

// ColumnMetaAt returns the live metadata record for a column, or nil when
// the index is out of range.
func (s *Store) ColumnMetaAt(index int) *ColumnMeta {
	if index < 0 || index >= len(s.cols) {
		return nil
	}
	return &s.cols[index]
}

// RowHeight returns the height of a row, or the default for out-of-range
// indices.
func (s *Store) RowHeight(index int) int {
	if m := s.RowMetaAt(index); m != nil {
		return m.Height
	}
	return DefaultRowHeight
}

// ColumnWidth returns the width of a column, or the default for
// out-of-range indices.
func (s *Store) ColumnWidth(index int) int {
	if m := s.ColumnMetaAt(index); m != nil {
		return m.Width
	}
	return DefaultColumnWidth
}

// SetRowHeight updates a row's height. Returns false for invalid indices
// or non-positive heights.
func (s *Store) SetRowHeight(index, height int) bool {
	m := s.RowMetaAt(index)
	if m == nil || height <= 0 {
		return false
	}
	m.Height = height
	s.notify()
	return true
}

// SetColumnWidth updates a column's width. Returns false for invalid
// indices or non-positive widths.
func (s *Store) SetColumnWidth(index, width int) bool {
	m := s.ColumnMetaAt(index)
	if m == nil || width <= 0 {
		return false
	}
	m.Width = width
	s.notify()
	return true
}

// Value returns the display value at (row, col), or "" for absent or
// out-of-bounds coordinates. Never fails.
func (s *Store) Value(row, col int) string {
	if c, ok := s.cells[coord{row, col}]; ok {
		return c.Value
	}
	return ""
}

// CellAt returns the stored cell at (row, col). Absent coordinates yield a
// transient default cell that is NOT inserted into storage, so callers can
// read default attributes without growing the map.
func (s *Store) CellAt(row, col int) *Cell {
	if c, ok := s.cells[coord{row, col}]; ok {
		return c
	}
	return &Cell{Row: row, Col: col}
}

// has reports whether a slot is occupied.
func (s *Store) has(row, col int) bool {
	_, ok := s.cells[coord{row, col}]
	return ok
}

// inMax reports whether a coordinate is inside the hard bounds.
func (s *Store) inMax(row, col int) bool {
	return row >= 0 && col >= 0 && row < s.maxRows && col < s.maxCols
}

// EnsureCapacity grows the current row/column counts to cover at least
// (rows, cols), capped at the hard maxima. It never shrinks and is
// idempotent.
func (s *Store) EnsureCapacity(rows, cols int) {
	if rows > s.maxRows {
		rows = s.maxRows
	}
	if cols > s.maxCols {
		cols = s.maxCols
	}
	for len(s.rows) < rows {
		s.rows = append(s.rows, RowMeta{Index: len(s.rows), Height: DefaultRowHeight})
	}
	for len(s.cols) < cols {
		s.cols = append(s.cols, ColumnMeta{Index: len(s.cols), Width: DefaultColumnWidth})
	}
}

// SetValue writes a display value at (row, col). Out-of-max coordinates
// are a silent no-op returning false. Writing "" removes the stored cell
// unless it still carries custom presentation. Inputs starting with "="
// are routed through the evaluator and the evaluated result is stored as
// the value; the original text is kept in Cell.Raw so the formula stays
// editable.
func (s *Store) SetValue(row, col int, value string) bool {
	if !s.inMax(row, col) {
		return false
	}
	s.EnsureCapacity(row+1, col+1)

	display := value
	raw := ""
	if strings.HasPrefix(value, "=") {
		raw = value
		if s.eval != nil {
			if res, err := s.eval.Evaluate(value, s.Value); err == nil {
				display = res
			}
		}
	}

	key := coord{row, col}
	c, exists := s.cells[key]
	if !exists {
		if display == "" && raw == "" {
			// deleting an absent cell leaves the store untouched
			return true
		}
		c = &Cell{Row: row, Col: col}
		s.cells[key] = c
	}
	c.Value = display
	c.Raw = raw
	if c.IsDefault() {
		delete(s.cells, key)
	}
	s.notify()
	return true
}

// SetStyle updates the presentation attributes at (row, col), creating the
// cell lazily and removing it when the result is fully default.
func (s *Store) SetStyle(row, col int, st Style) bool {
	if !s.inMax(row, col) {
		return false
	}
	s.EnsureCapacity(row+1, col+1)
	key := coord{row, col}
	c, exists := s.cells[key]
	if !exists {
		if st.IsDefault() {
			return true
		}
		c = &Cell{Row: row, Col: col}
		s.cells[key] = c
	}
	c.Style = st
	if c.IsDefault() {
		delete(s.cells, key)
	}
	s.notify()
	return true
}

// PutCell restores a full cell snapshot (value, raw input and style) at its
// own coordinates. Used by undo paths to re-materialize orphaned cells.
func (s *Store) PutCell(snapshot Cell) bool {
	if !s.inMax(snapshot.Row, snapshot.Col) {
		return false
	}
	s.EnsureCapacity(snapshot.Row+1, snapshot.Col+1)
	key := coord{snapshot.Row, snapshot.Col}
	if snapshot.IsDefault() {
		delete(s.cells, key)
		s.notify()
		return true
	}
	cp := snapshot
	s.cells[key] = &cp
	s.notify()
	return true
}

// clampRect normalizes and clips a rectangle to the current grid shape.
func (s *Store) clampRect(r0, c0, r1, c1 int) (int, int, int, int, bool) {
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if r1 < 0 || c1 < 0 || r0 >= len(s.rows) || c0 >= len(s.cols) {
		return 0, 0, 0, 0, false
	}
	if r0 < 0 {
		r0 = 0
	}
	if c0 < 0 {
		c0 = 0
	}
	if r1 >= len(s.rows) {
		r1 = len(s.rows) - 1
	}
	if c1 >= len(s.cols) {
		c1 = len(s.cols) - 1
	}
	return r0, c0, r1, c1, true
}

// CellsInRange returns the stored cells inside the rectangle in row-major
// order. Empty slots are skipped, never synthesized.
func (s *Store) CellsInRange(r0, c0, r1, c1 int) []*Cell {
	r0, c0, r1, c1, ok := s.clampRect(r0, c0, r1, c1)
	if !ok {
		return nil
	}
	var out []*Cell
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if cell, ok := s.cells[coord{r, c}]; ok {
				out = append(out, cell)
			}
		}
	}
	return out
}

// SetRange writes the same value to every coordinate of the rectangle,
// row-major.
func (s *Store) SetRange(r0, c0, r1, c1 int, value string) {
	r0, c0, r1, c1, ok := s.clampRect(r0, c0, r1, c1)
	if !ok {
		return
	}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			s.SetValue(r, c, value)
		}
	}
}

// ClearRange removes every stored cell inside the rectangle, including
// style-only cells.
func (s *Store) ClearRange(r0, c0, r1, c1 int) {
	r0, c0, r1, c1, ok := s.clampRect(r0, c0, r1, c1)
	if !ok {
		return
	}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			delete(s.cells, coord{r, c})
		}
	}
	s.notify()
}

// FindCells returns stored cells whose value contains the search string.
// Only occupied slots are scanned; empty cells never match. Results are in
// row-major order.
func (s *Store) FindCells(search string, caseSensitive bool) []*Cell {
	if search == "" {
		return nil
	}
	needle := search
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	var out []*Cell
	for _, c := range s.cells {
		hay := c.Value
		if !caseSensitive {
			hay = strings.ToLower(hay)
		}
		if strings.Contains(hay, needle) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Cells returns every stored cell in row-major order. Intended for
// persistence and export.
func (s *Store) Cells() []*Cell {
	out := make([]*Cell, 0, len(s.cells))
	for _, c := range s.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// reindex rebuilds the coordinate index after cells had their Row/Col
// mutated in place, and fixes up metadata Index fields.
func (s *Store) reindex() {
	rebuilt := make(map[coord]*Cell, len(s.cells))
	for _, c := range s.cells {
		rebuilt[coord{c.Row, c.Col}] = c
	}
	s.cells = rebuilt
	for i := range s.rows {
		s.rows[i].Index = i
	}
	for i := range s.cols {
		s.cols[i].Index = i
	}
}

// InsertRow splices a default row at index, shifting stored cells at or
// beyond it down by one. Cell objects are mutated in place so outstanding
// references stay valid. Fails without mutation when the index is invalid
// or the grid is at max row capacity.
func (s *Store) InsertRow(index int) bool {
	if index < 0 || index > len(s.rows) || len(s.rows) >= s.maxRows {
		return false
	}
	for _, c := range s.cells {
		if c.Row >= index {
			c.Row++
		}
	}
	s.rows = append(s.rows, RowMeta{})
	copy(s.rows[index+1:], s.rows[index:])
	s.rows[index] = RowMeta{Index: index, Height: DefaultRowHeight}
	s.reindex()
	s.notify()
	return true
}

// DeleteRow removes the row at index. Stored cells exactly on the row are
// orphaned (callers needing undo must snapshot them first); cells beyond
// it shift up in place. Fails when the index is invalid or the deletion
// would leave the grid without rows.
func (s *Store) DeleteRow(index int) bool {
	if index < 0 || index >= len(s.rows) || len(s.rows) <= 1 {
		return false
	}
	for key, c := range s.cells {
		if c.Row == index {
			delete(s.cells, key)
		} else if c.Row > index {
			c.Row--
		}
	}
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	s.reindex()
	s.notify()
	return true
}

// InsertColumn splices a default column at index, shifting stored cells at
// or beyond it right by one. Same in-place mutation contract as InsertRow.
func (s *Store) InsertColumn(index int) bool {
	if index < 0 || index > len(s.cols) || len(s.cols) >= s.maxCols {
		return false
	}
	for _, c := range s.cells {
		if c.Col >= index {
			c.Col++
		}
	}
	s.cols = append(s.cols, ColumnMeta{})
	copy(s.cols[index+1:], s.cols[index:])
	s.cols[index] = ColumnMeta{Index: index, Width: DefaultColumnWidth}
	s.reindex()
	s.notify()
	return true
}

// DeleteColumn removes the column at index, orphaning its stored cells and
// shifting later cells left in place. Same failure contract as DeleteRow.
func (s *Store) DeleteColumn(index int) bool {
	if index < 0 || index >= len(s.cols) || len(s.cols) <= 1 {
		return false
	}
	for key, c := range s.cells {
		if c.Col == index {
			delete(s.cells, key)
		} else if c.Col > index {
			c.Col--
		}
	}
	s.cols = append(s.cols[:index], s.cols[index+1:]...)
	s.reindex()
	s.notify()
	return true
}
