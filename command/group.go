package command

import "log/slog"

// Group is a flat composite command with all-or-nothing semantics. Execute
// runs sub-commands in order; if one fails, the already-applied prefix is
// undone in reverse before the group reports failure. Undo reverses the
// whole group; if a sub-undo fails, the already-undone suffix is
// re-executed to restore the pre-undo state (best-effort rollback of the
// rollback). Panics inside recovery sequences are caught and logged, never
// propagated.
type Group struct {
	Label    string
	Commands []Command

	executed bool
}

// NewGroup builds a composite from the given sub-commands.
func NewGroup(label string, cmds ...Command) *Group {
	return &Group{Label: label, Commands: cmds}
}

// Add appends a sub-command.
func (g *Group) Add(cmd Command) {
	g.Commands = append(g.Commands, cmd)
}

func (g *Group) Name() string {
	if g.Label != "" {
		return g.Label
	}
	return "group"
}

func (g *Group) Execute() bool {
	for i, cmd := range g.Commands {
		if !runSafe(cmd.Execute, cmd.Name(), "execute") {
			for j := i - 1; j >= 0; j-- {
				if !runSafe(g.Commands[j].Undo, g.Commands[j].Name(), "rollback") {
					slog.Error("group rollback left partial state", "group", g.Name(), "command", g.Commands[j].Name())
				}
			}
			return false
		}
	}
	g.executed = true
	return true
}

func (g *Group) Undo() bool {
	if !g.executed {
		return false
	}
	for i := len(g.Commands) - 1; i >= 0; i-- {
		if !runSafe(g.Commands[i].Undo, g.Commands[i].Name(), "undo") {
			for j := i + 1; j < len(g.Commands); j++ {
				if !runSafe(g.Commands[j].Execute, g.Commands[j].Name(), "reapply") {
					slog.Error("group undo recovery left partial state", "group", g.Name(), "command", g.Commands[j].Name())
				}
			}
			return false
		}
	}
	return true
}

// runSafe invokes a command step, converting any panic into a logged
// failure so the boolean-result contract holds at the group and stack
// boundaries.
func runSafe(step func() bool, name, phase string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("command panicked", "command", name, "phase", phase, "panic", r)
			ok = false
		}
	}()
	return step()
}
