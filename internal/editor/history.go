package editor

import "bouncecure/internal/domain"

// DefaultHistoryLimit bounds each of the undo and redo stacks.
const DefaultHistoryLimit = 20

// History holds two bounded stacks of full page-collection snapshots.
// Recording a new snapshot clears the redo stack.
type History struct {
	limit   int
	undo    [][]domain.Page
	redo    [][]domain.Page
	version uint64
}

// NewHistory creates a History bounded to limit entries per stack.
// A non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Limit() int { return h.limit }

// Version changes whenever either stack changes. Gestures compare it to
// detect that their pre-gesture snapshot went stale.
func (h *History) Version() uint64 { return h.version }

// Record pushes a deep copy of pages onto the undo stack and clears redo.
func (h *History) Record(pages []domain.Page) {
	h.undo = h.push(h.undo, domain.ClonePages(pages))
	h.redo = nil
	h.version++
}

// Undo pops the newest undo snapshot, pushing current onto redo.
func (h *History) Undo(current []domain.Page) ([]domain.Page, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	snap := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, domain.ClonePages(current))
	h.version++
	return domain.ClonePages(snap), true
}

// Redo pops the newest redo snapshot, pushing current onto undo.
func (h *History) Redo(current []domain.Page) ([]domain.Page, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	snap := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, domain.ClonePages(current))
	h.version++
	return domain.ClonePages(snap), true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the depth of both stacks.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.undo, h.redo = nil, nil
	h.version++
}

// Stacks returns deep copies of both stacks, oldest first.
func (h *History) Stacks() (undo, redo [][]domain.Page) {
	return cloneStack(h.undo), cloneStack(h.redo)
}

// Restore replaces both stacks, keeping only the newest limit entries of each.
func (h *History) Restore(undo, redo [][]domain.Page) {
	h.undo = trim(cloneStack(undo), h.limit)
	h.redo = trim(cloneStack(redo), h.limit)
	h.version++
}

func (h *History) push(stack [][]domain.Page, snap []domain.Page) [][]domain.Page {
	stack = append(stack, snap)
	return trim(stack, h.limit)
}

func trim(stack [][]domain.Page, limit int) [][]domain.Page {
	if over := len(stack) - limit; over > 0 {
		stack = append([][]domain.Page(nil), stack[over:]...)
	}
	return stack
}

func cloneStack(stack [][]domain.Page) [][]domain.Page {
	if stack == nil {
		return nil
	}
	out := make([][]domain.Page, len(stack))
	for i, s := range stack {
		out[i] = domain.ClonePages(s)
	}
	return out
}
