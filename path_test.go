package pictor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestCommandJSON(t *testing.T) {
	b, err := json.Marshal(MoveTo(1.5, 2.0))
	test.Error(t, err)
	test.String(t, string(b), `{"kind":"M","p":{"x":1.5,"y":2}}`)

	b, err = json.Marshal(CubicTo(1.0, 2.0, 3.0, 4.0, 5.0, 6.0))
	test.Error(t, err)
	test.String(t, string(b), `{"kind":"C","c1":{"x":1,"y":2},"c2":{"x":3,"y":4},"p":{"x":5,"y":6}}`)

	b, err = json.Marshal(Close())
	test.Error(t, err)
	test.String(t, string(b), `{"kind":"Z"}`)

	var cmd Command
	test.Error(t, json.Unmarshal([]byte(`{"kind":"L","p":{"x":10,"y":20}}`), &cmd))
	test.T(t, cmd, LineTo(10.0, 20.0))

	test.That(t, json.Unmarshal([]byte(`{"kind":"X"}`), &cmd) != nil)
}

func TestParseSVGPath(t *testing.T) {
	var tts = []struct {
		path string
		cmds []Command
	}{
		{"M10 0L20 10Z", []Command{MoveTo(10.0, 0.0), LineTo(20.0, 10.0), Close()}},
		{"m10 0l10 10z", []Command{MoveTo(10.0, 0.0), LineTo(20.0, 10.0), Close()}},
		{"M10 0 20 10", []Command{MoveTo(10.0, 0.0), LineTo(20.0, 10.0)}},
		{"m10 0 10 10", []Command{MoveTo(10.0, 0.0), LineTo(20.0, 10.0)}},
		{"M0 0H10V10", []Command{MoveTo(0.0, 0.0), LineTo(10.0, 0.0), LineTo(10.0, 10.0)}},
		{"M0 0h10v10", []Command{MoveTo(0.0, 0.0), LineTo(10.0, 0.0), LineTo(10.0, 10.0)}},
		{"M0 0C1 2 3 4 5 6", []Command{MoveTo(0.0, 0.0), CubicTo(1.0, 2.0, 3.0, 4.0, 5.0, 6.0)}},
		{"M0 0c1 2 3 4 5 6", []Command{MoveTo(0.0, 0.0), CubicTo(1.0, 2.0, 3.0, 4.0, 5.0, 6.0)}},
		{"M0 0C1 2 3 4 5 6S9 10 11 12", []Command{MoveTo(0.0, 0.0), CubicTo(1.0, 2.0, 3.0, 4.0, 5.0, 6.0), CubicTo(7.0, 8.0, 9.0, 10.0, 11.0, 12.0)}},
		{"M0 0Q1.5 0 3 0", []Command{MoveTo(0.0, 0.0), CubicTo(1.0, 0.0, 2.0, 0.0, 3.0, 0.0)}},
		{"M0 0Q3 0 3 3T6 6", []Command{MoveTo(0.0, 0.0), CubicTo(2.0, 0.0, 3.0, 1.0, 3.0, 3.0), CubicTo(3.0, 5.0, 4.0, 6.0, 6.0, 6.0)}},
		{"M0 0 L10 0", []Command{MoveTo(0.0, 0.0), LineTo(10.0, 0.0)}},
		{"M0,0 L10,0", []Command{MoveTo(0.0, 0.0), LineTo(10.0, 0.0)}},
		{"", []Command{}},
		{"   ", []Command{}},
	}
	for _, tt := range tts {
		t.Run(tt.path, func(t *testing.T) {
			cmds, err := ParseSVGPath(tt.path)
			test.Error(t, err)
			test.T(t, cmds, tt.cmds)
		})
	}
}

func TestParseSVGPathArc(t *testing.T) {
	// half circle from (0,0) to (20,0) over the top
	cmds, err := ParseSVGPath("M0 0A10 10 0 0 1 20 0")
	test.Error(t, err)
	test.That(t, 2 <= len(cmds))
	test.T(t, cmds[0], MoveTo(0.0, 0.0))
	for _, cmd := range cmds[1:] {
		test.T(t, cmd.Kind, CubicToCmd)
	}
	end := cmds[len(cmds)-1].P
	test.Float(t, end.X, 20.0)
	test.Float(t, end.Y, 0.0)

	// zero radius degrades to a line
	cmds, err = ParseSVGPath("M0 0A0 0 0 0 1 20 0")
	test.Error(t, err)
	test.T(t, cmds, []Command{MoveTo(0.0, 0.0), LineTo(20.0, 0.0)})
}

func TestParseSVGPathErrors(t *testing.T) {
	var tts = []string{
		"M",
		"M10",
		"M10 0L",
		"L10 0",
		"M0 0X10 0",
		"M0 0Z10 0",
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			_, err := ParseSVGPath(tt)
			test.That(t, err != nil)
		})
	}
}

func TestPathString(t *testing.T) {
	var tts = []string{
		"M10 0L20 10Z",
		"M0.5 0.25C1 2 3 4 5 6",
		"M0 0L10 0M20 0L30 0Z",
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			cmds, err := ParseSVGPath(tt)
			test.Error(t, err)
			test.String(t, PathString(cmds), tt)
		})
	}
}

func TestSubPathReverse(t *testing.T) {
	sp := SubPath{MoveTo(0.0, 0.0), LineTo(10.0, 0.0), CubicTo(15.0, 0.0, 20.0, 5.0, 20.0, 10.0)}
	test.T(t, sp.Reverse(), SubPath{MoveTo(20.0, 10.0), CubicTo(20.0, 5.0, 15.0, 0.0, 10.0, 0.0), LineTo(0.0, 0.0)})

	sp = SubPath{MoveTo(0.0, 0.0), LineTo(10.0, 0.0), LineTo(10.0, 10.0), Close()}
	test.T(t, sp.Reverse(), SubPath{MoveTo(0.0, 0.0), LineTo(10.0, 10.0), LineTo(10.0, 0.0), Close()})

	test.T(t, SubPath{}.Reverse(), SubPath{})
	test.T(t, SubPath{MoveTo(1.0, 2.0)}.Reverse(), SubPath{MoveTo(1.0, 2.0)})
}

func TestSubPathReverseRoundTrip(t *testing.T) {
	cmds, err := ParseSVGPath("M0 0L10 0C15 0 20 5 20 10L10 20Z")
	test.Error(t, err)
	sp := SubPath(cmds)
	test.T(t, sp.Reverse().Reverse(), sp)
	test.That(t, sp.Reverse().Closed())
	test.T(t, sp.Reverse().Start(), sp.Start())
}

func TestSplitSubpaths(t *testing.T) {
	cmds := []Command{MoveTo(0.0, 0.0), LineTo(1.0, 0.0), Close(), MoveTo(5.0, 5.0), CubicTo(6.0, 5.0, 7.0, 6.0, 7.0, 7.0)}
	spans := SplitSubpaths(cmds)
	test.T(t, len(spans), 2)
	test.T(t, spans[0].Start, 0)
	test.T(t, len(spans[0].Commands), 3)
	test.T(t, spans[1].Start, 3)
	test.T(t, len(spans[1].Commands), 2)

	// commands before the first MoveTo are dropped
	spans = SplitSubpaths([]Command{LineTo(1.0, 1.0), MoveTo(0.0, 0.0), LineTo(2.0, 2.0)})
	test.T(t, len(spans), 1)
	test.T(t, spans[0].Start, 1)

	test.T(t, len(SplitSubpaths(nil)), 0)
}

func TestEditablePoints(t *testing.T) {
	cmds := []Command{MoveTo(0.0, 0.0), CubicTo(1.0, 1.0, 2.0, 2.0, 3.0, 3.0), LineTo(4.0, 4.0), Close()}
	refs := EditablePoints(cmds)
	test.T(t, len(refs), 5)
	test.T(t, refs[0], PointRef{Point{0.0, 0.0}, 0, Anchor})
	test.T(t, refs[1], PointRef{Point{1.0, 1.0}, 1, Control1})
	test.T(t, refs[2], PointRef{Point{2.0, 2.0}, 1, Control2})
	test.T(t, refs[3], PointRef{Point{3.0, 3.0}, 1, Anchor})
	test.T(t, refs[4], PointRef{Point{4.0, 4.0}, 2, Anchor})
}

func TestBounds(t *testing.T) {
	cmds := []Command{MoveTo(0.0, 0.0), LineTo(10.0, 0.0), CubicTo(10.0, 20.0, 0.0, 20.0, 0.0, 0.0)}
	rect, ok := Bounds(cmds, 0.0, 1.0)
	test.That(t, ok)
	test.T(t, rect, Rect{0.0, 0.0, 10.0, 20.0})

	rect, ok = Bounds(cmds, 2.0, 1.0)
	test.That(t, ok)
	test.T(t, rect, Rect{-1.0, -1.0, 11.0, 21.0})

	// bounds area grows with the stroke width
	wide, _ := Bounds(cmds, 4.0, 1.0)
	test.That(t, rect.Area() < wide.Area())

	// the canvas scale expands the stroke margin
	rect, ok = Bounds(cmds, 2.0, 2.0)
	test.That(t, ok)
	test.T(t, rect, Rect{-2.0, -2.0, 12.0, 22.0})

	_, ok = Bounds(nil, 0.0, 1.0)
	test.That(t, !ok)
	_, ok = Bounds([]Command{Close()}, 0.0, 1.0)
	test.That(t, !ok)
}

func TestPathData(t *testing.T) {
	p := NewPathData()
	test.That(t, p.Empty())
	test.T(t, p.FillColor, "#000000")
	test.T(t, p.StrokeColor, None)

	p.SetCommands([]Command{MoveTo(1.005, 2.004), LineTo(1.0/3.0, 2.0/3.0), Close(), MoveTo(5.0, 5.0), LineTo(6.0, 6.0)})
	test.T(t, len(p.SubPaths), 2)
	test.T(t, p.SubPaths[0][1], LineTo(0.33, 0.67))
	test.That(t, p.SubPaths[0].Closed())
	test.That(t, !p.SubPaths[1].Closed())
	test.That(t, !p.Empty())

	cmds := p.Commands()
	test.T(t, len(cmds), 5)
	test.T(t, cmds[3], MoveTo(5.0, 5.0))

	q := p.Copy()
	q.SubPaths[0][1] = LineTo(9.0, 9.0)
	test.T(t, p.SubPaths[0][1], LineTo(0.33, 0.67))
}

func TestPathDataBounds(t *testing.T) {
	p := NewPathData()
	p.SetCommands(Rectangle(0.0, 0.0, 10.0, 10.0))

	rect, ok := p.Bounds(1.0)
	test.That(t, ok)
	test.T(t, rect, Rect{0.0, 0.0, 10.0, 10.0})

	// stroke "none" adds no margin regardless of width
	p.StrokeWidth = 4.0
	rect, _ = p.Bounds(1.0)
	test.T(t, rect, Rect{0.0, 0.0, 10.0, 10.0})

	p.StrokeColor = "#ff0000"
	rect, _ = p.Bounds(1.0)
	test.T(t, rect, Rect{-2.0, -2.0, 12.0, 12.0})
}

func TestCommandKindString(t *testing.T) {
	var tts = []struct {
		kind CommandKind
		s    string
	}{
		{MoveToCmd, "M"},
		{LineToCmd, "L"},
		{CubicToCmd, "C"},
		{CloseCmd, "Z"},
		{CommandKind(9), "CommandKind(9)"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, tt.kind.String(), tt.s)
		})
	}
}
