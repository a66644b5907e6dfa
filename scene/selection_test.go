package scene

import (
	"fmt"
	"testing"

	"github.com/pictor-app/pictor"
	"github.com/tdewolff/test"
)

func TestResolveDeletionScope(t *testing.T) {
	var tts = []struct {
		points, subpaths, elements int
		scope                      DeletionScope
	}{
		{3, 1, 2, DeletePoints},
		{0, 2, 2, DeleteSubpaths},
		{0, 0, 2, DeleteElements},
		{1, 0, 0, DeletePoints},
		{0, 0, 0, DeleteNothing},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, ResolveDeletionScope(tt.points, tt.subpaths, tt.elements), tt.scope)
		})
	}
}

func TestSelectionNormalize(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0), pictor.CubicTo(12.0, 2.0, 12.0, 8.0, 10.0, 10.0)})
	a := s.Add(NewPathElement(data))
	b := s.Add(rectElement(20.0, 0.0, 10.0, 10.0))

	sel := Selection{
		Elements: []string{a, "stale", a},
		Points: []PointRef{
			{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Anchor},
			{ElementID: a, Subpath: 0, Command: 2, Role: pictor.Control2},
			{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Control1},
			{ElementID: a, Subpath: 0, Command: 9, Role: pictor.Anchor},
			{ElementID: a, Subpath: 3, Command: 0, Role: pictor.Anchor},
			{ElementID: b, Subpath: 0, Command: 0, Role: pictor.Anchor},
		},
	}
	out := sel.Normalize(s)
	test.T(t, out.Elements, []string{a})
	test.T(t, out.Points, []PointRef{
		{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Anchor},
		{ElementID: a, Subpath: 0, Command: 2, Role: pictor.Control2},
	})

	// point selection needs exactly one selected element
	sel.Elements = []string{a, b}
	out = sel.Normalize(s)
	test.T(t, len(out.Points), 0)

	// subpath selection needs two or more subpaths
	sel = Selection{Subpaths: []SubpathRef{{ElementID: a, Subpath: 0}}}
	test.T(t, len(sel.Normalize(s).Subpaths), 0)

	multi := pictor.NewPathData()
	multi.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(1.0, 0.0), pictor.MoveTo(5.0, 5.0), pictor.LineTo(6.0, 5.0)})
	m := s.Add(NewPathElement(multi))
	sel = Selection{Subpaths: []SubpathRef{{ElementID: m, Subpath: 1}, {ElementID: m, Subpath: 7}}}
	test.T(t, sel.Normalize(s).Subpaths, []SubpathRef{{ElementID: m, Subpath: 1}})
}

func TestDeleteElements(t *testing.T) {
	s := NewStore()
	a := s.Add(rectElement(0.0, 0.0, 10.0, 10.0))
	b := s.Add(rectElement(20.0, 0.0, 10.0, 10.0))
	c := s.Add(rectElement(40.0, 0.0, 10.0, 10.0))

	out := s.Delete(Selection{Elements: []string{a, b}})
	test.That(t, out.IsEmpty())
	test.That(t, !s.Has(a))
	test.That(t, !s.Has(b))
	test.That(t, s.Has(c))
}

func TestDeleteSubpaths(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{
		pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0),
		pictor.MoveTo(20.0, 0.0), pictor.LineTo(30.0, 0.0),
	})
	a := s.Add(NewPathElement(data))

	s.Delete(Selection{Subpaths: []SubpathRef{{ElementID: a, Subpath: 0}}})
	test.That(t, s.Has(a))
	test.T(t, len(s.Get(a).Path.SubPaths), 1)
	test.T(t, s.Get(a).Path.SubPaths[0][0], pictor.MoveTo(20.0, 0.0))
}

func TestDeleteLastSubpath(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{
		pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0),
		pictor.MoveTo(20.0, 0.0), pictor.LineTo(30.0, 0.0),
	})
	a := s.Add(NewPathElement(data))

	s.Delete(Selection{Subpaths: []SubpathRef{{ElementID: a, Subpath: 0}, {ElementID: a, Subpath: 1}}})
	test.That(t, !s.Has(a))
}

func TestDeletePoints(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0), pictor.LineTo(10.0, 10.0), pictor.LineTo(0.0, 10.0)})
	a := s.Add(NewPathElement(data))

	s.Delete(Selection{
		Elements: []string{a},
		Points:   []PointRef{{ElementID: a, Subpath: 0, Command: 2, Role: pictor.Anchor}},
	})
	test.That(t, s.Has(a))
	test.T(t, s.Get(a).Path.SubPaths[0], pictor.SubPath{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0), pictor.LineTo(0.0, 10.0)})
}

func TestDeleteFirstPoint(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0), pictor.LineTo(10.0, 10.0)})
	a := s.Add(NewPathElement(data))

	// the next anchor takes over as the MoveTo
	s.Delete(Selection{
		Elements: []string{a},
		Points:   []PointRef{{ElementID: a, Subpath: 0, Command: 0, Role: pictor.Anchor}},
	})
	test.T(t, s.Get(a).Path.SubPaths[0], pictor.SubPath{pictor.MoveTo(10.0, 0.0), pictor.LineTo(10.0, 10.0)})
}

func TestDeleteAllPoints(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0)})
	a := s.Add(NewPathElement(data))

	s.Delete(Selection{
		Elements: []string{a},
		Points: []PointRef{
			{ElementID: a, Subpath: 0, Command: 0, Role: pictor.Anchor},
			{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Anchor},
		},
	})
	test.That(t, !s.Has(a))
}

func TestDeleteControlPoint(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.CubicTo(2.0, 5.0, 8.0, 5.0, 10.0, 0.0)})
	a := s.Add(NewPathElement(data))

	// deleting a control point straightens the segment
	s.Delete(Selection{
		Elements: []string{a},
		Points:   []PointRef{{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Control1}},
	})
	test.T(t, s.Get(a).Path.SubPaths[0], pictor.SubPath{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0)})
}

func TestDeletePriority(t *testing.T) {
	s := NewStore()
	data := pictor.NewPathData()
	data.SetCommands([]pictor.Command{pictor.MoveTo(0.0, 0.0), pictor.LineTo(10.0, 0.0), pictor.LineTo(10.0, 10.0)})
	a := s.Add(NewPathElement(data))

	// points win over elements; the element must survive
	s.Delete(Selection{
		Elements: []string{a},
		Points:   []PointRef{{ElementID: a, Subpath: 0, Command: 1, Role: pictor.Anchor}},
	})
	test.That(t, s.Has(a))
	test.T(t, len(s.Get(a).Path.SubPaths[0]), 2)
}
