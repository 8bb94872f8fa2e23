package selection

// Coord is one selected coordinate pair.
type Coord struct {
	Row int
	Col int
}

// Bounds reports the current grid shape. The selection queries it live so
// full-row/column selections stay consistent when the grid grows after the
// selection was created.
type Bounds func() (rows, cols int)

// Selection is an ordered collection of ranges plus one active range (the
// anchor for extension and the display/edit target). Duplicate ranges are
// permitted. After construction there is always at least a default
// single-cell selection; only Clear empties it.
type Selection struct {
	ranges      []*Range
	active      *Range
	bounds      Bounds
	multiSelect bool
}

// New creates a selection over a grid described by bounds, seeded with a
// single-cell selection at the origin.
func New(bounds Bounds) *Selection {
	if bounds == nil {
		bounds = func() (int, int) { return 1, 1 }
	}
	s := &Selection{bounds: bounds}
	s.SelectCell(0, 0, false)
	return s
}

// SetMultiSelect toggles multi-range mode. When off, every select call
// replaces the whole selection regardless of its add flag.
func (s *Selection) SetMultiSelect(on bool) {
	s.multiSelect = on
}

// MultiSelect reports whether multi-range mode is on.
func (s *Selection) MultiSelect() bool {
	return s.multiSelect
}

// Ranges returns the underlying range sequence in insertion order.
func (s *Selection) Ranges() []*Range {
	return s.ranges
}

// Active returns the active range, or nil after Clear.
func (s *Selection) Active() *Range {
	return s.active
}

// push appends a range and makes it active, clearing first unless the
// selection is additive.
func (s *Selection) push(r *Range, add bool) {
	if !add || !s.multiSelect {
		s.ranges = s.ranges[:0]
	}
	s.ranges = append(s.ranges, r)
	s.active = r
}

// SelectCell selects a single cell.
func (s *Selection) SelectCell(row, col int, add bool) {
	s.push(NewCellRange(row, col), add)
}

// SelectRange selects a rectangle.
func (s *Selection) SelectRange(r0, c0, r1, c1 int, add bool) {
	s.push(NewRange(r0, c0, r1, c1), add)
}

// SelectColumn selects one full column.
func (s *Selection) SelectColumn(col int, add bool) {
	s.SelectColumnRange(col, col, add)
}

// SelectColumnRange selects a span of full columns.
func (s *Selection) SelectColumnRange(c0, c1 int, add bool) {
	rows, _ := s.bounds()
	s.push(NewColumnRange(c0, c1, rows), add)
}

// SelectRow selects one full row.
func (s *Selection) SelectRow(row int, add bool) {
	s.SelectRowRange(row, row, add)
}

// SelectRowRange selects a span of full rows.
func (s *Selection) SelectRowRange(r0, r1 int, add bool) {
	_, cols := s.bounds()
	s.push(NewRowRange(r0, r1, cols), add)
}

// SelectAll selects the whole current grid as one rectangle.
func (s *Selection) SelectAll() {
	rows, cols := s.bounds()
	s.push(NewRange(0, 0, rows-1, cols-1), false)
}

// ExtendTo grows the active range in place to cover the coordinate. The
// rectangle always grows from the original anchor corner; no second range
// is created. Without an active range this falls back to SelectCell.
func (s *Selection) ExtendTo(row, col int) {
	if s.active == nil {
		s.SelectCell(row, col, false)
		return
	}
	s.active.ExpandTo(row, col)
}

// ToggleCell removes the first range containing the coordinate, or adds a
// single-cell range when no range contains it. Removal deselects the
// entire containing range, not just the one cell; this coarse granularity
// is inherited from range-based storage and kept deliberately.
func (s *Selection) ToggleCell(row, col int) {
	for i, r := range s.ranges {
		if r.Contains(row, col) {
			s.ranges = append(s.ranges[:i], s.ranges[i+1:]...)
			if s.active == r {
				s.active = nil
				if n := len(s.ranges); n > 0 {
					s.active = s.ranges[n-1]
				}
			}
			return
		}
	}
	s.push(NewCellRange(row, col), true)
}

// Clear empties the selection entirely. Any subsequent select call
// re-populates it.
func (s *Selection) Clear() {
	s.ranges = s.ranges[:0]
	s.active = nil
}

// IsSelected reports whether any range covers the coordinate.
func (s *Selection) IsSelected(row, col int) bool {
	for _, r := range s.ranges {
		if r.Contains(row, col) {
			return true
		}
	}
	return false
}

// IsRowSelected reports whether some row-mode range covers the index. A
// plain rectangle spanning the full grid width does not count.
func (s *Selection) IsRowSelected(row int) bool {
	for _, r := range s.ranges {
		if r.IsRowSelection && r.ContainsRow(row) {
			return true
		}
	}
	return false
}

// IsColumnSelected reports whether some column-mode range covers the
// index.
func (s *Selection) IsColumnSelected(col int) bool {
	for _, r := range s.ranges {
		if r.IsColumnSelection && r.ContainsColumn(col) {
			return true
		}
	}
	return false
}

// SelectedCells flattens the selection into coordinate pairs, row-major
// within each range, range by range in insertion order. The result is
// silently truncated at maxCells; callers processing huge selections must
// accept partial results. A non-positive maxCells returns nil.
func (s *Selection) SelectedCells(maxCells int) []Coord {
	if maxCells <= 0 {
		return nil
	}
	var out []Coord
	for _, r := range s.ranges {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for col := r.StartCol; col <= r.EndCol; col++ {
				if len(out) >= maxCells {
					return out
				}
				out = append(out, Coord{Row: row, Col: col})
			}
		}
	}
	return out
}

// Labels renders every range label in insertion order.
func (s *Selection) Labels() []string {
	out := make([]string, 0, len(s.ranges))
	for _, r := range s.ranges {
		out = append(out, r.Label())
	}
	return out
}
