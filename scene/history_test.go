package scene

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestHistoryUndoRedo(t *testing.T) {
	s := NewStore()
	h := NewHistory()
	test.That(t, !h.CanUndo())
	test.That(t, !h.CanRedo())

	h.Save(s.Snapshot())
	a := s.Add(rectElement(0.0, 0.0, 10.0, 10.0))

	h.Save(s.Snapshot())
	b := s.Add(rectElement(20.0, 0.0, 10.0, 10.0))
	test.That(t, h.CanUndo())

	snap, ok := h.Undo(s.Snapshot())
	test.That(t, ok)
	s.Restore(snap)
	test.That(t, s.Has(a))
	test.That(t, !s.Has(b))
	test.That(t, h.CanRedo())

	snap, ok = h.Undo(s.Snapshot())
	test.That(t, ok)
	s.Restore(snap)
	test.T(t, s.Len(), 0)

	_, ok = h.Undo(s.Snapshot())
	test.That(t, !ok)

	snap, ok = h.Redo(s.Snapshot())
	test.That(t, ok)
	s.Restore(snap)
	test.That(t, s.Has(a))
	test.That(t, !s.Has(b))

	snap, ok = h.Redo(s.Snapshot())
	test.That(t, ok)
	s.Restore(snap)
	test.That(t, s.Has(b))

	_, ok = h.Redo(s.Snapshot())
	test.That(t, !ok)
}

func TestHistorySaveClearsRedo(t *testing.T) {
	s := NewStore()
	h := NewHistory()

	h.Save(s.Snapshot())
	s.Add(rectElement(0.0, 0.0, 10.0, 10.0))

	snap, _ := h.Undo(s.Snapshot())
	s.Restore(snap)
	test.That(t, h.CanRedo())

	h.Save(s.Snapshot())
	s.Add(rectElement(20.0, 0.0, 10.0, 10.0))
	test.That(t, !h.CanRedo())
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore()
	a := s.Add(rectElement(0.0, 0.0, 10.0, 10.0))
	b := s.Add(rectElement(20.0, 0.0, 10.0, 10.0))

	snap := s.Snapshot()
	_, err := s.Group("g", a, b)
	test.Error(t, err)
	s.SetHidden(a, true)
	test.That(t, s.Get(a).ParentID != "")

	// the snapshot still sees the ungrouped scene
	s.Restore(snap)
	test.T(t, s.Get(a).ParentID, "")
	test.T(t, s.Len(), 2)
	test.That(t, !s.IsHidden(a))
}

func TestTransaction(t *testing.T) {
	s := NewStore()
	h := NewHistory()
	a := s.Add(rectElement(0.0, 0.0, 10.0, 10.0))

	// canceled gestures leave no trace
	tx := Begin(s, h)
	s.Remove(a)
	tx.Cancel()
	test.That(t, s.Has(a))
	test.That(t, !h.CanUndo())
	tx.Commit()
	test.That(t, !h.CanUndo())

	// committed gestures are one undo step
	tx = Begin(s, h)
	s.Duplicate(a)
	s.SetHidden(a, true)
	tx.Commit()
	test.T(t, s.Len(), 2)
	test.That(t, h.CanUndo())

	snap, ok := h.Undo(s.Snapshot())
	test.That(t, ok)
	s.Restore(snap)
	test.T(t, s.Len(), 1)
	test.That(t, !s.IsHidden(a))
}
