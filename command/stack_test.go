package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackUndoRedoLaw(t *testing.T) {
	s := newTestStore()
	st := NewStack(0)

	require.True(t, st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "a"}))
	require.True(t, st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "b"}))
	assert.Equal(t, "b", s.Value(0, 0))
	assert.Equal(t, 2, st.UndoDepth())

	require.True(t, st.Undo())
	assert.Equal(t, "a", s.Value(0, 0))
	require.True(t, st.Undo())
	assert.Equal(t, "", s.Value(0, 0))
	assert.False(t, st.CanUndo())

	require.True(t, st.Redo())
	require.True(t, st.Redo())
	assert.Equal(t, "b", s.Value(0, 0))
	assert.False(t, st.CanRedo())
}

func TestUndoOnEmptyStack(t *testing.T) {
	st := NewStack(5)
	assert.False(t, st.Undo())
	assert.False(t, st.Redo())
}

func TestExecuteClearsRedo(t *testing.T) {
	s := newTestStore()
	st := NewStack(10)
	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "a"})
	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "b"})
	require.True(t, st.Undo())
	require.True(t, st.CanRedo())

	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "c"})
	assert.False(t, st.CanRedo())
	assert.Equal(t, "c", s.Value(0, 0))
}

func TestHistoryBoundTrimsOldest(t *testing.T) {
	s := newTestStore()
	const limit = 5
	st := NewStack(limit)

	for i := 0; i < limit+3; i++ {
		require.True(t, st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: fmt.Sprintf("v%d", i)}))
	}
	assert.Equal(t, limit, st.UndoDepth())

	for st.CanUndo() {
		require.True(t, st.Undo())
	}
	// the oldest edits were trimmed, so undo bottoms out at their result
	assert.Equal(t, "v2", s.Value(0, 0))
}

func TestFailedExecuteNotRecorded(t *testing.T) {
	s := newTestStore()
	st := NewStack(10)
	assert.False(t, st.Execute(&SetValue{Store: s, Row: 9999, Col: 0, Value: "x"}))
	assert.Equal(t, 0, st.UndoDepth())
}

func TestPausedExecutionBypassesHistory(t *testing.T) {
	s := newTestStore()
	st := NewStack(10)
	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "recorded"})
	require.True(t, st.Undo())
	require.True(t, st.Redo())

	st.Pause()
	assert.True(t, st.Paused())
	require.True(t, st.Execute(&SetValue{Store: s, Row: 1, Col: 1, Value: "silent"}))
	assert.Equal(t, "silent", s.Value(1, 1))
	assert.Equal(t, 1, st.UndoDepth())
	st.Resume()

	st.Execute(&SetValue{Store: s, Row: 2, Col: 2, Value: "again"})
	assert.Equal(t, 2, st.UndoDepth())
}

func TestStackClear(t *testing.T) {
	s := newTestStore()
	st := NewStack(10)
	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "a"})
	st.Undo()
	st.Execute(&SetValue{Store: s, Row: 0, Col: 0, Value: "b"})
	st.Clear()
	assert.False(t, st.CanUndo())
	assert.False(t, st.CanRedo())
}

// panicking blows up on execute.
type panicking struct{}

func (panicking) Name() string  { return "panicking" }
func (panicking) Execute() bool { panic("boom") }
func (panicking) Undo() bool    { return true }

func TestPanicBecomesFailure(t *testing.T) {
	st := NewStack(10)
	assert.False(t, st.Execute(panicking{}))
	assert.Equal(t, 0, st.UndoDepth())
}

func TestGroupExecutesInOrder(t *testing.T) {
	s := newTestStore()
	g := NewGroup("fill two",
		&SetValue{Store: s, Row: 0, Col: 0, Value: "first"},
		&SetValue{Store: s, Row: 0, Col: 1, Value: "second"},
	)
	require.True(t, g.Execute())
	assert.Equal(t, "first", s.Value(0, 0))
	assert.Equal(t, "second", s.Value(0, 1))

	require.True(t, g.Undo())
	assert.Equal(t, 0, s.CellCount())
	assert.Equal(t, "fill two", g.Name())
}

func TestGroupRollsBackOnPartialFailure(t *testing.T) {
	s := newTestStore()
	s.SetValue(0, 0, "before")

	g := NewGroup("partial",
		&SetValue{Store: s, Row: 0, Col: 0, Value: "applied"},
		&SetValue{Store: s, Row: 9999, Col: 0, Value: "fails"},
		&SetValue{Store: s, Row: 1, Col: 0, Value: "never runs"},
	)
	assert.False(t, g.Execute())
	// the applied prefix was rolled back, the tail never ran
	assert.Equal(t, "before", s.Value(0, 0))
	assert.Equal(t, 1, s.CellCount())
}

func TestGroupInStack(t *testing.T) {
	s := newTestStore()
	st := NewStack(10)

	g := NewGroup("batch")
	g.Add(&SetValue{Store: s, Row: 1, Col: 0, Value: "x"})
	g.Add(&SetValue{Store: s, Row: 2, Col: 0, Value: "y"})
	require.True(t, st.Execute(g))
	assert.Equal(t, 1, st.UndoDepth())

	require.True(t, st.Undo())
	assert.Equal(t, 0, s.CellCount())
	require.True(t, st.Redo())
	assert.Equal(t, "y", s.Value(2, 0))
}

func TestGroupPanicDuringExecuteRollsBack(t *testing.T) {
	s := newTestStore()
	g := NewGroup("explosive",
		&SetValue{Store: s, Row: 0, Col: 0, Value: "applied"},
		panicking{},
	)
	assert.False(t, g.Execute())
	assert.Equal(t, 0, s.CellCount())
}

func TestStructuralGroupRoundTrip(t *testing.T) {
	s := newTestStore()
	s.SetValue(5, 2, "anchor")

	g := NewGroup("restructure",
		&InsertRow{Store: s, Index: 3},
		&InsertColumn{Store: s, Index: 0},
	)
	st := NewStack(10)
	require.True(t, st.Execute(g))
	assert.Equal(t, "anchor", s.Value(6, 3))

	require.True(t, st.Undo())
	assert.Equal(t, "anchor", s.Value(5, 2))
	assert.Equal(t, 20, s.RowCount())
	assert.Equal(t, 10, s.ColumnCount())
}
