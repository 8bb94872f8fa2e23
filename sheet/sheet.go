// Package sheet groups a grid store with its undo history under one named,
// persistable unit and provides the manager that owns all sheets.
package sheet

import (
	"encoding/json"
	"sync"

	"github.com/deep-bhut-zeuslearning/excel/command"
	"github.com/deep-bhut-zeuslearning/excel/grid"
)

// Sheet is one named grid with its command history. All mutations must go
// through Apply so they stay undoable; Load-style direct mutations clear
// the history themselves.
type Sheet struct {
	ID    string
	Name  string
	Owner string

	Store   *grid.Store
	History *command.Stack

	mu sync.RWMutex
}

// New creates a sheet around a fresh store.
func New(id, name, owner string, store *grid.Store, historyLimit int) *Sheet {
	return &Sheet{
		ID:      id,
		Name:    name,
		Owner:   owner,
		Store:   store,
		History: command.NewStack(historyLimit),
	}
}

// Apply executes a command through the sheet's history under the write
// lock.
func (s *Sheet) Apply(cmd command.Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History.Execute(cmd)
}

// Undo reverts the most recent command.
func (s *Sheet) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History.Undo()
}

// Redo re-applies the most recently undone command.
func (s *Sheet) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History.Redo()
}

// LoadRecords bulk-loads tabular data directly into the store. This
// bypasses the command stack, so the history is cleared to avoid dangling
// references to the pre-load structure.
func (s *Sheet) LoadRecords(records []grid.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Store.LoadRecords(records)
	s.History.Clear()
}

// Read runs fn under the read lock. The callback must not mutate the
// store.
func (s *Sheet) Read(fn func(*grid.Store)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.Store)
}

// snapshot is the persisted form of a sheet.
type snapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	MaxRows int    `json:"max_rows"`
	MaxCols int    `json:"max_cols"`

	RowHeights map[int]int `json:"row_heights,omitempty"`
	ColWidths  map[int]int `json:"col_widths,omitempty"`
	Cells      []grid.Cell `json:"cells"`
}

func (s *Sheet) snapshotLocked() snapshot {
	st := s.Store
	snap := snapshot{
		ID:      s.ID,
		Name:    s.Name,
		Owner:   s.Owner,
		Rows:    st.RowCount(),
		Cols:    st.ColumnCount(),
		MaxRows: st.MaxRows(),
		MaxCols: st.MaxCols(),
	}
	for i := 0; i < st.RowCount(); i++ {
		if h := st.RowHeight(i); h != grid.DefaultRowHeight {
			if snap.RowHeights == nil {
				snap.RowHeights = make(map[int]int)
			}
			snap.RowHeights[i] = h
		}
	}
	for i := 0; i < st.ColumnCount(); i++ {
		if w := st.ColumnWidth(i); w != grid.DefaultColumnWidth {
			if snap.ColWidths == nil {
				snap.ColWidths = make(map[int]int)
			}
			snap.ColWidths[i] = w
		}
	}
	for _, c := range st.Cells() {
		snap.Cells = append(snap.Cells, *c)
	}
	return snap
}

// MarshalJSON encodes the sheet under the read lock so concurrent edits
// cannot tear the snapshot.
func (s *Sheet) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.snapshotLocked())
}

// fromSnapshot rebuilds a sheet from its persisted form.
func fromSnapshot(snap snapshot, eval grid.Evaluator, historyLimit int) *Sheet {
	store := grid.New(snap.Rows, snap.Cols, snap.MaxRows, snap.MaxCols)
	store.SetEvaluator(eval)
	for i, h := range snap.RowHeights {
		store.SetRowHeight(i, h)
	}
	for i, w := range snap.ColWidths {
		store.SetColumnWidth(i, w)
	}
	for _, c := range snap.Cells {
		store.PutCell(c)
	}
	return New(snap.ID, snap.Name, snap.Owner, store, historyLimit)
}
