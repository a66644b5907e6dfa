package scene

// Document is the serializable form of a scene: the elements in ascending
// z-index order plus the hidden and locked id sets and the document name.
// Marshaling it to JSON and loading it back reproduces the scene graph.
type Document struct {
	Name     string     `json:"name"`
	Elements []*Element `json:"elements"`
	Hidden   []string   `json:"hidden,omitempty"`
	Locked   []string   `json:"locked,omitempty"`
}

// Document returns the scene as a document. Elements are deep-copied, so the
// document does not alias the store.
func (s *Store) Document() *Document {
	doc := &Document{
		Name:   s.Name,
		Hidden: s.Hidden(),
		Locked: s.Locked(),
	}
	for _, e := range s.Elements() {
		doc.Elements = append(doc.Elements, e.Clone())
	}
	return doc
}

// FromDocument builds a scene from a document, restoring group membership.
// References that do not hold up are filtered instead of kept: child ids
// pointing at missing elements are dropped, an element claimed by two groups
// stays with the first, and a parent id the parent does not confirm is
// cleared. Hidden and locked ids of missing elements are dropped.
func FromDocument(doc *Document) *Store {
	s := NewStore()
	if doc == nil {
		return s
	}
	s.Name = doc.Name
	for _, e := range doc.Elements {
		if e == nil || e.ID == "" || s.Has(e.ID) {
			continue
		}
		s.elements[e.ID] = e.Clone()
	}

	// ChildIDs is the source of truth for membership
	claimed := map[string]string{}
	for _, g := range s.Elements() {
		if g.Type != TypeGroup || g.Group == nil {
			continue
		}
		childIDs := []string{}
		for _, childID := range g.Group.ChildIDs {
			if childID == g.ID || !s.Has(childID) {
				continue
			}
			if owner, ok := claimed[childID]; ok && owner != g.ID {
				continue
			}
			claimed[childID] = g.ID
			childIDs = append(childIDs, childID)
		}
		g.Group.ChildIDs = childIDs
	}
	for _, e := range s.Elements() {
		e.ParentID = claimed[e.ID]
	}

	for _, id := range doc.Hidden {
		if s.Has(id) {
			s.hidden[id] = true
		}
	}
	for _, id := range doc.Locked {
		if s.Has(id) {
			s.locked[id] = true
		}
	}
	return s
}
