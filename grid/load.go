package grid

import (
	"fmt"
	"strconv"
)

// Field is one named scalar of a bulk-load record. Fields are ordered, so
// records preserve the column layout of the source data.
type Field struct {
	Name  string
	Value any
}

// Record is one uniform-shape row of bulk-load input.
type Record []Field

// LoadRecords replaces the store contents with tabular data. The first
// record's field order becomes the row 0 header labels; each record then
// becomes one grid row with values coerced to their display string form
// (nil/absent becomes ""). Data beyond the hard bounds is silently
// truncated.
//
// This bypasses the formula evaluator and any command history; callers
// that keep an undo stack for this store must clear it after loading.
func (s *Store) LoadRecords(records []Record) {
	s.cells = make(map[coord]*Cell)
	if len(records) == 0 {
		s.notify()
		return
	}

	s.EnsureCapacity(len(records)+1, len(records[0]))

	for col, f := range records[0] {
		s.putPlain(0, col, f.Name)
	}
	for i, rec := range records {
		row := i + 1
		if row >= s.maxRows {
			break
		}
		for col, f := range rec {
			if col >= s.maxCols {
				break
			}
			s.putPlain(row, col, displayString(f.Value))
		}
	}
	s.notify()
}

// putPlain stores a display value without formula evaluation or observer
// notification.
func (s *Store) putPlain(row, col int, value string) {
	if value == "" || !s.inMax(row, col) {
		return
	}
	s.cells[coord{row, col}] = &Cell{Row: row, Col: col, Value: value}
}

// displayString coerces a record scalar to its display form.
func displayString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
