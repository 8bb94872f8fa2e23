package command

// DefaultMaxHistory bounds the undo stack when no explicit limit is given.
const DefaultMaxHistory = 100

// Stack is the undo/redo history. Executing a new command clears the redo
// stack (branching history is not supported), and the undo stack is
// trimmed from the oldest end when it exceeds the limit, so old commands
// become permanently un-undoable.
type Stack struct {
	undo   []Command
	redo   []Command
	limit  int
	paused bool
}

// NewStack creates a stack with the given history limit; non-positive
// limits fall back to DefaultMaxHistory.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultMaxHistory
	}
	return &Stack{limit: limit}
}

// Execute runs the command. On success it is pushed onto the undo stack
// and the redo stack is cleared; on failure nothing is recorded. While the
// stack is paused the command still runs but is never pushed, for
// operations that must bypass history.
func (s *Stack) Execute(cmd Command) bool {
	if !runSafe(cmd.Execute, cmd.Name(), "execute") {
		return false
	}
	if s.paused {
		return true
	}
	s.undo = append(s.undo, cmd)
	if len(s.undo) > s.limit {
		s.undo = append(s.undo[:0], s.undo[len(s.undo)-s.limit:]...)
	}
	s.redo = s.redo[:0]
	return true
}

// Undo reverts the most recent command. On success it moves to the redo
// stack; on failure it is pushed back unchanged and Undo returns false
// (undo failure is non-fatal).
func (s *Stack) Undo() bool {
	n := len(s.undo)
	if n == 0 {
		return false
	}
	cmd := s.undo[n-1]
	s.undo = s.undo[:n-1]
	if !runSafe(cmd.Undo, cmd.Name(), "undo") {
		s.undo = append(s.undo, cmd)
		return false
	}
	s.redo = append(s.redo, cmd)
	return true
}

// Redo re-executes the most recently undone command, symmetric to Undo.
func (s *Stack) Redo() bool {
	n := len(s.redo)
	if n == 0 {
		return false
	}
	cmd := s.redo[n-1]
	s.redo = s.redo[:n-1]
	if !runSafe(cmd.Execute, cmd.Name(), "redo") {
		s.redo = append(s.redo, cmd)
		return false
	}
	s.undo = append(s.undo, cmd)
	return true
}

// Pause suspends history recording; commands executed while paused run but
// are not undoable.
func (s *Stack) Pause() { s.paused = true }

// Resume re-enables history recording.
func (s *Stack) Resume() { s.paused = false }

// Paused reports whether recording is suspended.
func (s *Stack) Paused() bool { return s.paused }

// Clear drops both stacks. Required after direct store mutation that
// bypasses commands (bulk load, clear-all), since recorded commands would
// reference a stale structural state.
func (s *Stack) Clear() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}

// CanUndo reports whether an undoable command exists.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redoable command exists.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of undoable commands.
func (s *Stack) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of redoable commands.
func (s *Stack) RedoDepth() int { return len(s.redo) }
