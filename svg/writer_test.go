package svg

import (
	"bytes"
	"testing"

	"github.com/pictor-app/pictor"
	"github.com/pictor-app/pictor/scene"
	"github.com/tdewolff/test"
)

func TestWriteDocument(t *testing.T) {
	s := scene.NewStore()
	e := scene.NewPathElement(nil)
	e.Path.SetCommands(pictor.Rectangle(0.0, 0.0, 10.0, 10.0))
	e.Path.FillColor = "#ff0000"
	s.Add(e)

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="10" height="10" viewBox="0 0 10 10" xmlns="http://www.w3.org/2000/svg"><path d="M0 0L10 0L10 10L0 10Z" fill="#ff0000"/></svg>`)
}

func TestWriteStroke(t *testing.T) {
	s := scene.NewStore()
	e := scene.NewPathElement(nil)
	e.Path.SetCommands([]pictor.Command{pictor.MoveTo(1.0, 1.0), pictor.LineTo(9.0, 1.0)})
	e.Path.FillColor = pictor.None
	e.Path.StrokeColor = "#0000ff"
	e.Path.StrokeWidth = 2.0
	e.Path.StrokeLinecap = pictor.RoundCap
	e.Path.StrokeDasharray = "4 2"
	s.Add(e)

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="10" height="2" viewBox="0 0 10 2" xmlns="http://www.w3.org/2000/svg"><path d="M1 1L9 1" fill="none" stroke="#0000ff" stroke-width="2" stroke-linecap="round" stroke-dasharray="4 2"/></svg>`)
}

func TestWriteGroup(t *testing.T) {
	s := scene.NewStore()
	a := scene.NewPathElement(nil)
	a.Path.SetCommands(pictor.Rectangle(0.0, 0.0, 10.0, 10.0))
	aid := s.Add(a)
	b := scene.NewPathElement(nil)
	b.Path.SetCommands(pictor.Rectangle(20.0, 0.0, 10.0, 10.0))
	bid := s.Add(b)
	_, err := s.Group("layer", aid, bid)
	test.Error(t, err)

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="30" height="10" viewBox="0 0 30 10" xmlns="http://www.w3.org/2000/svg"><g data-name="layer"><path d="M0 0L10 0L10 10L0 10Z"/><path d="M20 0L30 0L30 10L20 10Z"/></g></svg>`)
}

func TestWriteHidden(t *testing.T) {
	s := scene.NewStore()
	a := scene.NewPathElement(nil)
	a.Path.SetCommands(pictor.Rectangle(0.0, 0.0, 10.0, 10.0))
	aid := s.Add(a)
	b := scene.NewPathElement(nil)
	b.Path.SetCommands(pictor.Rectangle(5.0, 5.0, 10.0, 10.0))
	b.Path.FillColor = "#00ff00"
	s.Add(b)
	s.SetHidden(aid, true)

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="10" height="10" viewBox="5 5 10 10" xmlns="http://www.w3.org/2000/svg"><path d="M5 5L15 5L15 15L5 15Z" fill="#00ff00"/></svg>`)
}

func TestWriteShape(t *testing.T) {
	s := scene.NewStore()
	s.Add(scene.NewShapeElement(&scene.ShapeData{Shape: scene.RectShape, X: 1.0, Y: 2.0, W: 3.0, H: 4.0, FillColor: "#00ff00"}))

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="3" height="4" viewBox="1 2 3 4" xmlns="http://www.w3.org/2000/svg"><rect x="1" y="2" width="3" height="4" fill="#00ff00"/></svg>`)
}

func TestWriteEllipseShape(t *testing.T) {
	s := scene.NewStore()
	s.Add(scene.NewShapeElement(&scene.ShapeData{Shape: scene.EllipseShape, X: 0.0, Y: 0.0, W: 10.0, H: 6.0}))

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="10" height="6" viewBox="0 0 10 6" xmlns="http://www.w3.org/2000/svg"><ellipse cx="5" cy="3" rx="5" ry="3"/></svg>`)
}

func TestWriteText(t *testing.T) {
	s := scene.NewStore()
	s.Add(scene.NewTextElement(&scene.TextData{X: 5.0, Y: 10.0, Content: "a < b", FontSize: 16.0, FontFamily: "serif"}))

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))
	test.String(t, buf.String(), `<svg version="1.1" width="48" height="16" viewBox="5 -6 48 16" xmlns="http://www.w3.org/2000/svg"><text x="5" y="10" font-size="16" font-family="serif">a &lt; b</text></svg>`)
}

func TestWriteRoundTrip(t *testing.T) {
	s := scene.NewStore()
	a := scene.NewPathElement(nil)
	a.Path.SetCommands(pictor.Rectangle(0.0, 0.0, 10.0, 10.0))
	a.Path.FillColor = "#ff0000"
	a.Path.FillOpacity = 0.5
	s.Add(a)
	// keep the stroke-aware union bounds at the origin so that the viewBox
	// transform of the re-parsed document is the identity
	b := scene.NewPathElement(nil)
	b.Path.SetCommands(pictor.Ellipse(30.0, 6.0, 5.0, 5.0))
	b.Path.FillColor = pictor.None
	b.Path.StrokeColor = "#00cc00"
	b.Path.StrokeWidth = 2.0
	s.Add(b)

	buf := &bytes.Buffer{}
	test.Error(t, WriteDocument(buf, s))

	g, err := Parse(buf)
	test.Error(t, err)
	paths := g.Paths()
	test.T(t, len(paths), 2)
	test.T(t, paths[0].FillColor, "#ff0000")
	test.T(t, paths[0].FillOpacity, 0.5)
	r0, _ := paths[0].Bounds(1.0)
	test.T(t, r0, pictor.Rect{0.0, 0.0, 10.0, 10.0})
	test.T(t, paths[1].StrokeColor, "#00cc00")
	test.T(t, paths[1].StrokeWidth, 2.0)
	r1, _ := paths[1].Bounds(1.0)
	test.T(t, r1, pictor.Rect{24.0, 0.0, 36.0, 12.0})
}

func TestWriteMinified(t *testing.T) {
	s := scene.NewStore()
	e := scene.NewPathElement(nil)
	e.Path.SetCommands(pictor.Rectangle(0.0, 0.0, 10.0, 10.0))
	e.Path.FillColor = "#ff0000"
	s.Add(e)

	plain := &bytes.Buffer{}
	test.Error(t, WriteDocument(plain, s))
	minified := &bytes.Buffer{}
	test.Error(t, WriteDocumentMinified(minified, s))
	test.That(t, minified.Len() <= plain.Len())

	g, err := Parse(minified)
	test.Error(t, err)
	test.T(t, len(g.Paths()), 1)
}
