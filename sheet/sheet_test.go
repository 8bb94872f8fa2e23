package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deep-bhut-zeuslearning/excel/command"
	"github.com/deep-bhut-zeuslearning/excel/formula"
	"github.com/deep-bhut-zeuslearning/excel/grid"
)

func testOptions() Options {
	return Options{Rows: 10, Cols: 10, MaxRows: 100, MaxCols: 100, Evaluator: formula.New()}
}

func TestSheetApplyUndoRedo(t *testing.T) {
	m := NewManager(t.TempDir(), testOptions())
	s := m.Create("Budget", "alice")

	require.True(t, s.Apply(&command.SetValue{Store: s.Store, Row: 0, Col: 0, Value: "100"}))
	require.True(t, s.Undo())
	assert.Equal(t, "", s.Store.Value(0, 0))
	require.True(t, s.Redo())
	assert.Equal(t, "100", s.Store.Value(0, 0))
}

func TestSheetLoadRecordsClearsHistory(t *testing.T) {
	m := NewManager(t.TempDir(), testOptions())
	s := m.Create("Data", "alice")
	s.Apply(&command.SetValue{Store: s.Store, Row: 0, Col: 0, Value: "x"})
	require.True(t, s.History.CanUndo())

	s.LoadRecords([]grid.Record{{{Name: "col", Value: "v"}}})
	assert.False(t, s.History.CanUndo())
	assert.Equal(t, "col", s.Store.Value(0, 0))
	assert.Equal(t, "v", s.Store.Value(1, 0))
}

func TestManagerCreateGetList(t *testing.T) {
	m := NewManager(t.TempDir(), testOptions())
	b := m.Create("Bravo", "bob")
	a := m.Create("Alpha", "alice")

	assert.Same(t, a, m.Get(a.ID))
	assert.Nil(t, m.Get("missing"))

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Bravo", list[1].Name)
	_ = b
}

func TestManagerRename(t *testing.T) {
	m := NewManager(t.TempDir(), testOptions())
	s := m.Create("Old", "alice")
	require.True(t, m.Rename(s.ID, "New"))
	assert.Equal(t, "New", m.Get(s.ID).Name)
	assert.False(t, m.Rename("missing", "x"))
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(t.TempDir(), testOptions())
	s := m.Create("Gone", "alice")
	require.True(t, m.Delete(s.ID))
	assert.Nil(t, m.Get(s.ID))
	assert.False(t, m.Delete(s.ID))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, testOptions())

	s := m.Create("Quarter", "alice")
	s.Apply(&command.SetValue{Store: s.Store, Row: 0, Col: 0, Value: "10"})
	s.Apply(&command.SetValue{Store: s.Store, Row: 0, Col: 1, Value: "20"})
	s.Apply(&command.SetValue{Store: s.Store, Row: 1, Col: 0, Value: "=SUM(A1,B1)"})
	s.Apply(&command.SetStyle{Store: s.Store, Row: 0, Col: 0, Style: grid.Style{Bold: true}})
	s.Store.SetRowHeight(2, 48)
	s.Store.SetColumnWidth(1, 160)
	m.Save(s)

	reloaded := NewManager(dir, testOptions())
	reloaded.Load()
	got := reloaded.Get(s.ID)
	require.NotNil(t, got)

	assert.Equal(t, "Quarter", got.Name)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, "10", got.Store.Value(0, 0))
	assert.Equal(t, "30", got.Store.Value(1, 0))
	assert.Equal(t, "=SUM(A1,B1)", got.Store.CellAt(1, 0).Raw)
	assert.True(t, got.Store.CellAt(0, 0).Style.Bold)
	assert.Equal(t, 48, got.Store.RowHeight(2))
	assert.Equal(t, 160, got.Store.ColumnWidth(1))
}

func TestLoadSkipsUsersFileAndGarbage(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, testOptions())
	m.Create("Real", "alice")

	writeFile(t, dir, "users.json", `{"not": "a sheet"}`)
	writeFile(t, dir, "broken.json", `{{{`)

	reloaded := NewManager(dir, testOptions())
	reloaded.Load()
	assert.Len(t, reloaded.List(), 1)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissingDirIsFreshStart(t *testing.T) {
	m := NewManager("/nonexistent/path/for/tests", testOptions())
	m.Load()
	assert.Empty(t, m.List())
}
