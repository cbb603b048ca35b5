package desk

import "time"

// History is a pair of stacks of reversible actions. The log is linear:
// committing a new action discards the redo stack, so there is no
// branching journal and a permanent delete becomes unrecoverable once
// anything is committed after its undo window closes.
type History struct {
	undo []Action
	redo []Action
}

// Commit pushes a completed action and clears all redo state.
func (h *History) Commit(a Action) {
	h.undo = append(h.undo, a)
	h.redo = nil
}

// PopUndo removes and returns the most recent action, if any.
func (h *History) PopUndo() (Action, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return a, true
}

// PushRedo records an undone action for replay.
func (h *History) PushRedo(a Action) {
	h.redo = append(h.redo, a)
}

// PopRedo removes and returns the most recently undone action, if any.
func (h *History) PopRedo() (Action, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return a, true
}

// PushUndo puts a redone action back on the undo stack without
// touching redo state.
func (h *History) PushUndo(a Action) {
	h.undo = append(h.undo, a)
}

// CanUndo reports whether there is anything to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is anything to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// ActionSummary is the read-only view of a logged action.
type ActionSummary struct {
	Kind        ActionKind `json:"kind"`
	Description string     `json:"description"`
	At          time.Time  `json:"at"`
}

// Summaries lists the undo stack oldest-first.
func (h *History) Summaries() []ActionSummary {
	out := make([]ActionSummary, len(h.undo))
	for i, a := range h.undo {
		out[i] = ActionSummary{Kind: a.Kind(), Description: a.Description(), At: a.When()}
	}
	return out
}
