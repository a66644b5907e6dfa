package scene

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pictor-app/pictor"
)

// DuplicateOffset is the translation applied to duplicated elements so the
// copy does not sit exactly on the original.
const DuplicateOffset = 16.0

// Store is the id-keyed arena of scene elements together with the hidden and
// locked id sets. Mutators never edit a stored element in place: they clone
// the element and replace the map entry, so snapshots taken earlier keep
// observing the old data.
type Store struct {
	Name string

	elements map[string]*Element
	hidden   map[string]bool
	locked   map[string]bool
}

// NewStore returns an empty scene.
func NewStore() *Store {
	return &Store{
		elements: map[string]*Element{},
		hidden:   map[string]bool{},
		locked:   map[string]bool{},
	}
}

// Len returns the number of elements.
func (s *Store) Len() int {
	return len(s.elements)
}

// Has returns true if the element exists.
func (s *Store) Has(id string) bool {
	_, ok := s.elements[id]
	return ok
}

// Get returns the element or nil. The returned element must be treated as
// read-only; use the store's mutators to change it.
func (s *Store) Get(id string) *Element {
	return s.elements[id]
}

// Elements returns all elements in ascending z-index order.
func (s *Store) Elements() []*Element {
	elems := make([]*Element, 0, len(s.elements))
	for _, e := range s.elements {
		elems = append(elems, e)
	}
	sort.Slice(elems, func(i, j int) bool {
		if elems[i].ZIndex != elems[j].ZIndex {
			return elems[i].ZIndex < elems[j].ZIndex
		}
		return elems[i].ID < elems[j].ID
	})
	return elems
}

// MaxZIndex returns the highest z-index in the scene, or zero when empty.
func (s *Store) MaxZIndex() int {
	max := 0
	for _, e := range s.elements {
		if max < e.ZIndex {
			max = e.ZIndex
		}
	}
	return max
}

// Add inserts the element above everything else and returns its id. A missing
// id is generated, and a set ParentID links the element into that group.
func (s *Store) Add(e *Element) string {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.ZIndex = s.MaxZIndex() + 1
	parentID := e.ParentID
	e.ParentID = ""
	s.elements[e.ID] = e
	if parentID != "" {
		s.link(e.ID, parentID)
	}
	return e.ID
}

// clone replaces the map entry by a private copy and returns it, so a pending
// mutation does not show through snapshots holding the old pointer.
func (s *Store) clone(id string) *Element {
	e, ok := s.elements[id]
	if !ok {
		return nil
	}
	c := e.Clone()
	s.elements[id] = c
	return c
}

// link makes child a member of the group parentID, or a top-level element when
// parentID is empty. Together with unlink it is the only place that edits
// ChildIDs and ParentID, keeping both directions consistent.
func (s *Store) link(childID, parentID string) {
	s.unlink(childID)
	child := s.clone(childID)
	if child == nil {
		return
	}
	if parentID != "" {
		parent := s.clone(parentID)
		if parent == nil || parent.Type != TypeGroup || parent.Group == nil {
			return
		}
		parent.Group.ChildIDs = append(parent.Group.ChildIDs, childID)
	}
	child.ParentID = parentID
}

// unlink removes child from its current group, if any.
func (s *Store) unlink(childID string) {
	child, ok := s.elements[childID]
	if !ok || child.ParentID == "" {
		return
	}
	if parent := s.clone(child.ParentID); parent != nil && parent.Type == TypeGroup && parent.Group != nil {
		childIDs := parent.Group.ChildIDs[:0:0]
		for _, id := range parent.Group.ChildIDs {
			if id != childID {
				childIDs = append(childIDs, id)
			}
		}
		parent.Group.ChildIDs = childIDs
	}
	s.clone(childID).ParentID = ""
}

// Remove deletes the elements and, for groups, all their descendants. Unknown
// ids are ignored.
func (s *Store) Remove(ids ...string) {
	targets := []string{}
	for _, id := range ids {
		if s.Has(id) {
			targets = append(targets, id)
			targets = append(targets, s.descendants(id)...)
		}
	}
	for _, id := range targets {
		if !s.Has(id) {
			continue
		}
		s.unlink(id)
		delete(s.elements, id)
		delete(s.hidden, id)
		delete(s.locked, id)
	}
}

// descendants returns all elements below id in breadth-first order. A visited
// set guards against cycles in malformed data.
func (s *Store) descendants(id string) []string {
	out := []string{}
	visited := map[string]bool{id: true}
	queue := []string{id}
	for 0 < len(queue) {
		e, ok := s.elements[queue[0]]
		queue = queue[1:]
		if !ok || e.Type != TypeGroup || e.Group == nil {
			continue
		}
		for _, childID := range e.Group.ChildIDs {
			if !visited[childID] {
				visited[childID] = true
				out = append(out, childID)
				queue = append(queue, childID)
			}
		}
	}
	return out
}

// Duplicate copies the elements, descendants included, into fresh ids placed
// above everything else and offset by DuplicateOffset. It returns the ids of
// the new top-level copies in the z-order of their originals.
func (s *Store) Duplicate(ids ...string) []string {
	targets := s.topmost(ids)
	newIDs := make([]string, 0, len(targets))
	for _, id := range targets {
		orig := s.elements[id]
		newIDs = append(newIDs, s.duplicateSubtree(id, orig.ParentID))
	}
	return newIDs
}

// topmost filters ids down to existing elements none of whose ancestors are
// themselves in ids, ordered by ascending z-index.
func (s *Store) topmost(ids []string) []string {
	selected := map[string]bool{}
	for _, id := range ids {
		if s.Has(id) {
			selected[id] = true
		}
	}
	out := []string{}
	for id := range selected {
		covered := false
		visited := map[string]bool{}
		for parentID := s.elements[id].ParentID; parentID != "" && !visited[parentID]; {
			visited[parentID] = true
			if selected[parentID] {
				covered = true
				break
			}
			parent, ok := s.elements[parentID]
			if !ok {
				break
			}
			parentID = parent.ParentID
		}
		if !covered {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.elements[out[i]].ZIndex < s.elements[out[j]].ZIndex
	})
	return out
}

func (s *Store) duplicateSubtree(id, parentID string) string {
	orig := s.elements[id]
	c := orig.Clone()
	c.ID = uuid.NewString()
	c.ParentID = parentID
	offsetElement(c)

	childIDs := []string{}
	if c.Type == TypeGroup && c.Group != nil {
		childIDs = c.Group.ChildIDs
		c.Group.ChildIDs = nil
	}
	s.Add(c)
	for _, childID := range childIDs {
		if s.Has(childID) {
			s.duplicateSubtree(childID, c.ID)
		}
	}
	return c.ID
}

// offsetElement nudges the element's own geometry; group offsets come from
// their duplicated children.
func offsetElement(e *Element) {
	switch e.Type {
	case TypePath:
		if e.Path != nil {
			e.Path.SetCommands(pictor.Translate(e.Path.Commands(), DuplicateOffset, DuplicateOffset))
		}
	case TypeShape:
		if e.Shape != nil {
			e.Shape.X += DuplicateOffset
			e.Shape.Y += DuplicateOffset
		}
	case TypeText:
		if e.Text != nil {
			e.Text.X += DuplicateOffset
			e.Text.Y += DuplicateOffset
		}
	}
}

// Group collects the elements into a new group and returns its id. The ids
// must name at least two existing elements; they are grouped in ascending
// z-order, the group takes the highest child z-index so it renders where its
// topmost child was, and it is linked under the first child's former parent.
// An empty name is synthesized.
func (s *Store) Group(name string, ids ...string) (string, error) {
	children := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if s.Has(id) && !seen[id] {
			seen[id] = true
			children = append(children, id)
		}
	}
	if len(children) < 2 {
		return "", fmt.Errorf("group needs at least two elements, got %d", len(children))
	}
	sort.Slice(children, func(i, j int) bool {
		return s.elements[children[i]].ZIndex < s.elements[children[j]].ZIndex
	})

	maxZ := 0
	for _, id := range children {
		if z := s.elements[id].ZIndex; maxZ < z {
			maxZ = z
		}
	}
	if name == "" {
		name = fmt.Sprintf("Group %d", s.countGroups()+1)
	}

	parentID := s.elements[children[0]].ParentID
	g := NewGroupElement(name)
	g.ZIndex = maxZ
	s.elements[g.ID] = g
	if parentID != "" {
		s.link(g.ID, parentID)
	}
	for _, id := range children {
		s.link(id, g.ID)
	}
	return g.ID, nil
}

func (s *Store) countGroups() int {
	n := 0
	for _, e := range s.elements {
		if e.Type == TypeGroup {
			n++
		}
	}
	return n
}

// Ungroup dissolves the groups, reparenting every child to the group's former
// parent without touching geometry, and returns the freed child ids.
func (s *Store) Ungroup(ids ...string) []string {
	freed := []string{}
	for _, id := range ids {
		g, ok := s.elements[id]
		if !ok || g.Type != TypeGroup || g.Group == nil {
			continue
		}
		parentID := g.ParentID
		childIDs := append([]string{}, g.Group.ChildIDs...)
		for _, childID := range childIDs {
			if s.Has(childID) {
				s.link(childID, parentID)
				freed = append(freed, childID)
			}
		}
		s.unlink(id)
		delete(s.elements, id)
		delete(s.hidden, id)
		delete(s.locked, id)
	}
	return freed
}

// SetHidden sets the hidden state of the element and all its descendants.
// The group value overwrites whatever descendant state was there before.
func (s *Store) SetHidden(id string, hidden bool) {
	s.setFlag(s.hidden, id, hidden)
}

// SetLocked sets the locked state of the element and all its descendants.
func (s *Store) SetLocked(id string, locked bool) {
	s.setFlag(s.locked, id, locked)
}

func (s *Store) setFlag(set map[string]bool, id string, on bool) {
	if !s.Has(id) {
		return
	}
	targets := append([]string{id}, s.descendants(id)...)
	for _, id := range targets {
		if on {
			set[id] = true
		} else {
			delete(set, id)
		}
	}
}

// IsHidden returns true if the element is hidden.
func (s *Store) IsHidden(id string) bool {
	return s.hidden[id]
}

// IsLocked returns true if the element is locked.
func (s *Store) IsLocked(id string) bool {
	return s.locked[id]
}

// Hidden returns the hidden ids in sorted order.
func (s *Store) Hidden() []string {
	return sortedIDs(s.hidden)
}

// Locked returns the locked ids in sorted order.
func (s *Store) Locked() []string {
	return sortedIDs(s.locked)
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ElementBounds returns the bounding box of the element, stroke-aware for
// paths and shapes and the union over children for groups. ok is false for
// empty groups and elements without geometry.
func (s *Store) ElementBounds(id string) (pictor.Rect, bool) {
	return s.elementBounds(id, map[string]bool{})
}

func (s *Store) elementBounds(id string, visited map[string]bool) (pictor.Rect, bool) {
	if visited[id] {
		return pictor.Rect{}, false
	}
	visited[id] = true

	e, ok := s.elements[id]
	if !ok {
		return pictor.Rect{}, false
	}
	switch e.Type {
	case TypePath:
		if e.Path == nil {
			break
		}
		return e.Path.Bounds(1.0)
	case TypeShape:
		if e.Shape == nil {
			break
		}
		strokeWidth := e.Shape.StrokeWidth
		if e.Shape.StrokeColor == pictor.None {
			strokeWidth = 0.0
		}
		return pictor.Bounds(e.Shape.Commands(), strokeWidth, 1.0)
	case TypeText:
		if e.Text == nil {
			break
		}
		// rough box in lieu of font metrics, half an em per rune
		w := 0.6 * e.Text.FontSize * float64(len([]rune(e.Text.Content)))
		return pictor.Rect{e.Text.X, e.Text.Y - e.Text.FontSize, e.Text.X + w, e.Text.Y}, true
	case TypeGroup:
		if e.Group == nil {
			break
		}
		var rect pictor.Rect
		found := false
		for _, childID := range e.Group.ChildIDs {
			if r, ok := s.elementBounds(childID, visited); ok {
				if !found {
					rect, found = r, true
				} else {
					rect = rect.Add(r)
				}
			}
		}
		return rect, found
	}
	return pictor.Rect{}, false
}
