package scene

import (
	"github.com/pictor-app/pictor"
)

// SubpathRef addresses one subpath of a path element.
type SubpathRef struct {
	ElementID string
	Subpath   int
}

// PointRef addresses one editable point: the command at index Command within
// subpath Subpath of a path element, in the role of its anchor or one of its
// control points.
type PointRef struct {
	ElementID string
	Subpath   int
	Command   int
	Role      pictor.PointRole
}

// Selection is the current selection at its three granularities. Point
// selection is only meaningful while exactly one element is selected, and
// subpath selection only on paths with at least two subpaths.
type Selection struct {
	Elements []string
	Subpaths []SubpathRef
	Points   []PointRef
}

// IsEmpty returns true when nothing is selected.
func (sel Selection) IsEmpty() bool {
	return len(sel.Elements) == 0 && len(sel.Subpaths) == 0 && len(sel.Points) == 0
}

// Scope returns the deletion scope the selection resolves to.
func (sel Selection) Scope() DeletionScope {
	return ResolveDeletionScope(len(sel.Points), len(sel.Subpaths), len(sel.Elements))
}

// Normalize drops references that no longer hold against the store: unknown
// ids, out-of-range subpath and command indexes, point references while the
// selection spans more than one element, and subpath references on paths with
// fewer than two subpaths.
func (sel Selection) Normalize(s *Store) Selection {
	out := Selection{}
	seen := map[string]bool{}
	for _, id := range sel.Elements {
		if s.Has(id) && !seen[id] {
			seen[id] = true
			out.Elements = append(out.Elements, id)
		}
	}
	for _, ref := range sel.Subpaths {
		if p := pathOf(s, ref.ElementID); p != nil && 2 <= len(p.SubPaths) && 0 <= ref.Subpath && ref.Subpath < len(p.SubPaths) {
			out.Subpaths = append(out.Subpaths, ref)
		}
	}
	if len(out.Elements) == 1 {
		for _, ref := range sel.Points {
			if ref.ElementID != out.Elements[0] {
				continue
			}
			p := pathOf(s, ref.ElementID)
			if p == nil || ref.Subpath < 0 || len(p.SubPaths) <= ref.Subpath {
				continue
			}
			sp := p.SubPaths[ref.Subpath]
			if ref.Command < 0 || len(sp) <= ref.Command {
				continue
			}
			if validRole(sp[ref.Command].Kind, ref.Role) {
				out.Points = append(out.Points, ref)
			}
		}
	}
	return out
}

func pathOf(s *Store, id string) *pictor.PathData {
	if e := s.Get(id); e != nil && e.Type == TypePath {
		return e.Path
	}
	return nil
}

func validRole(kind pictor.CommandKind, role pictor.PointRole) bool {
	switch kind {
	case pictor.MoveToCmd, pictor.LineToCmd:
		return role == pictor.Anchor
	case pictor.CubicToCmd:
		return role == pictor.Anchor || role == pictor.Control1 || role == pictor.Control2
	}
	return false
}

// DeletionScope is the granularity a delete action applies to.
type DeletionScope int

const (
	DeleteNothing DeletionScope = iota
	DeletePoints
	DeleteSubpaths
	DeleteElements
)

func (scope DeletionScope) String() string {
	switch scope {
	case DeleteNothing:
		return "nothing"
	case DeletePoints:
		return "points"
	case DeleteSubpaths:
		return "subpaths"
	case DeleteElements:
		return "elements"
	}
	return "?"
}

// ResolveDeletionScope picks the deletion granularity by strict priority:
// points when any are selected, else subpaths, else elements. A single delete
// never cascades across granularities.
func ResolveDeletionScope(points, subpaths, elements int) DeletionScope {
	if 0 < points {
		return DeletePoints
	} else if 0 < subpaths {
		return DeleteSubpaths
	} else if 0 < elements {
		return DeleteElements
	}
	return DeleteNothing
}

// Delete removes exactly the resolved tier of the selection from the scene
// and returns the emptied selection. Deleting the last subpath or all anchor
// points of a path removes the element itself.
func (s *Store) Delete(sel Selection) Selection {
	sel = sel.Normalize(s)
	switch sel.Scope() {
	case DeletePoints:
		s.deletePoints(sel.Points)
	case DeleteSubpaths:
		s.deleteSubpaths(sel.Subpaths)
	case DeleteElements:
		s.Remove(sel.Elements...)
	}
	return Selection{}
}

// deletePoints removes the commands whose anchors are selected and flattens
// cubics whose control points are selected into straight lines.
func (s *Store) deletePoints(refs []PointRef) {
	remove := map[string]map[[2]int]bool{}
	straighten := map[string]map[[2]int]bool{}
	for _, ref := range refs {
		set := straighten
		if ref.Role == pictor.Anchor {
			set = remove
		}
		if set[ref.ElementID] == nil {
			set[ref.ElementID] = map[[2]int]bool{}
		}
		set[ref.ElementID][[2]int{ref.Subpath, ref.Command}] = true
	}

	for id := range union(remove, straighten) {
		e := s.clone(id)
		if e == nil || e.Type != TypePath || e.Path == nil {
			continue
		}
		subPaths := []pictor.SubPath{}
		for i, sp := range e.Path.SubPaths {
			kept := pictor.SubPath{}
			for j, cmd := range sp {
				key := [2]int{i, j}
				if remove[id][key] {
					continue
				}
				if straighten[id][key] && cmd.Kind == pictor.CubicToCmd {
					cmd = pictor.LineTo(cmd.P.X, cmd.P.Y)
				}
				kept = append(kept, cmd)
			}
			if sp := repairSubPath(kept); 0 < len(sp) {
				subPaths = append(subPaths, sp)
			}
		}
		e.Path.SubPaths = subPaths
		if e.Path.Empty() {
			s.Remove(id)
		}
	}
}

func union(a, b map[string]map[[2]int]bool) map[string]bool {
	ids := map[string]bool{}
	for id := range a {
		ids[id] = true
	}
	for id := range b {
		ids[id] = true
	}
	return ids
}

// repairSubPath makes a subpath well-formed again after command removal: the
// first remaining drawing command becomes the MoveTo, and a contour without
// any line or curve left is dropped.
func repairSubPath(sp pictor.SubPath) pictor.SubPath {
	for 0 < len(sp) && sp[0].Kind == pictor.CloseCmd {
		sp = sp[1:]
	}
	if len(sp) == 0 {
		return nil
	}
	if sp[0].Kind != pictor.MoveToCmd {
		sp[0] = pictor.MoveTo(sp[0].P.X, sp[0].P.Y)
	}
	for _, cmd := range sp {
		if cmd.Kind == pictor.LineToCmd || cmd.Kind == pictor.CubicToCmd {
			return sp
		}
	}
	return nil
}

// deleteSubpaths removes the selected subpaths; an element losing its last
// subpath is removed.
func (s *Store) deleteSubpaths(refs []SubpathRef) {
	doomed := map[string]map[int]bool{}
	for _, ref := range refs {
		if doomed[ref.ElementID] == nil {
			doomed[ref.ElementID] = map[int]bool{}
		}
		doomed[ref.ElementID][ref.Subpath] = true
	}
	for id, indexes := range doomed {
		e := s.clone(id)
		if e == nil || e.Type != TypePath || e.Path == nil {
			continue
		}
		subPaths := []pictor.SubPath{}
		for i, sp := range e.Path.SubPaths {
			if !indexes[i] {
				subPaths = append(subPaths, sp)
			}
		}
		e.Path.SubPaths = subPaths
		if e.Path.Empty() {
			s.Remove(id)
		}
	}
}
