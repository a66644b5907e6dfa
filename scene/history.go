package scene

// Snapshot captures a scene at a point in time. The element map is copied
// shallowly: because store mutators replace elements instead of editing them,
// a snapshot stays intact through later mutations.
type Snapshot struct {
	name     string
	elements map[string]*Element
	hidden   map[string]bool
	locked   map[string]bool
}

// Snapshot captures the current scene.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		name:     s.Name,
		elements: make(map[string]*Element, len(s.elements)),
		hidden:   make(map[string]bool, len(s.hidden)),
		locked:   make(map[string]bool, len(s.locked)),
	}
	for id, e := range s.elements {
		snap.elements[id] = e
	}
	for id := range s.hidden {
		snap.hidden[id] = true
	}
	for id := range s.locked {
		snap.locked[id] = true
	}
	return snap
}

// Restore puts the scene back into the captured state. The snapshot itself
// stays valid and can be restored again.
func (s *Store) Restore(snap *Snapshot) {
	s.Name = snap.name
	s.elements = make(map[string]*Element, len(snap.elements))
	s.hidden = make(map[string]bool, len(snap.hidden))
	s.locked = make(map[string]bool, len(snap.locked))
	for id, e := range snap.elements {
		s.elements[id] = e
	}
	for id := range snap.hidden {
		s.hidden[id] = true
	}
	for id := range snap.locked {
		s.locked[id] = true
	}
}

// History holds the undo and redo stacks of scene snapshots. Both stacks are
// unbounded. Coalescing rapid same-gesture mutations into one undo step is
// the caller's job, by saving once per gesture rather than per frame.
type History struct {
	past   []*Snapshot
	future []*Snapshot
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Save pushes the pre-mutation snapshot onto the undo stack and clears the
// redo stack.
func (h *History) Save(snap *Snapshot) {
	h.past = append(h.past, snap)
	h.future = nil
}

// CanUndo returns true if an undo step is available.
func (h *History) CanUndo() bool {
	return 0 < len(h.past)
}

// CanRedo returns true if a redo step is available.
func (h *History) CanRedo() bool {
	return 0 < len(h.future)
}

// Undo exchanges the current state for the most recent undo snapshot, pushing
// current onto the redo stack. ok is false when there is nothing to undo.
func (h *History) Undo(current *Snapshot) (*Snapshot, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return snap, true
}

// Redo exchanges the current state for the most recent redo snapshot, pushing
// current back onto the undo stack. ok is false when there is nothing to redo.
func (h *History) Redo(current *Snapshot) (*Snapshot, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return snap, true
}

// Transaction wraps one undoable gesture on a store: Begin captures the
// pre-state, Commit records it as a single undo step, and Cancel rolls the
// store back without touching history. Commit and Cancel are one-shot.
type Transaction struct {
	store   *Store
	history *History
	pre     *Snapshot
	done    bool
}

// Begin starts a transaction by capturing the current scene.
func Begin(store *Store, history *History) *Transaction {
	return &Transaction{store: store, history: history, pre: store.Snapshot()}
}

// Commit records the pre-state as one undo step.
func (tx *Transaction) Commit() {
	if tx.done {
		return
	}
	tx.done = true
	tx.history.Save(tx.pre)
}

// Cancel restores the store to the pre-state, discarding the gesture.
func (tx *Transaction) Cancel() {
	if tx.done {
		return
	}
	tx.done = true
	tx.store.Restore(tx.pre)
}
