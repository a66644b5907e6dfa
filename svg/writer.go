package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pictor-app/pictor"
	"github.com/pictor-app/pictor/scene"
	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
)

type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", pictor.Precision, f)
	s = string(minify.Decimal([]byte(s), pictor.Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

type docWriter struct {
	w io.Writer
	s *scene.Store

	children map[string][]*scene.Element
}

// WriteDocument writes the document's visible elements as an SVG image.
// Elements are written in ascending z order with groups as <g> containers,
// and style attributes are only written when they differ from the SVG
// defaults.
func WriteDocument(w io.Writer, s *scene.Store) error {
	dw := docWriter{w: w, s: s, children: map[string][]*scene.Element{}}

	var r pictor.Rect
	ok := false
	for _, e := range s.Elements() {
		dw.children[e.ParentID] = append(dw.children[e.ParentID], e)
		if e.Type == scene.TypeGroup || s.IsHidden(e.ID) {
			continue
		}
		if b, has := s.ElementBounds(e.ID); has {
			if !ok {
				r, ok = b, true
			} else {
				r = r.Add(b)
			}
		}
	}

	fmt.Fprintf(w, `<svg version="1.1" width="%v" height="%v" viewBox="%v %v %v %v" xmlns="http://www.w3.org/2000/svg">`,
		dec(r.W()), dec(r.H()), dec(r.X0), dec(r.Y0), dec(r.W()), dec(r.H()))
	for _, e := range dw.children[""] {
		dw.element(e)
	}
	_, err := fmt.Fprintf(w, "</svg>")
	return err
}

// WriteDocumentMinified writes the document as a minified SVG image.
func WriteDocumentMinified(w io.Writer, s *scene.Store) error {
	buf := &bytes.Buffer{}
	if err := WriteDocument(buf, s); err != nil {
		return err
	}
	m := minify.New()
	m.AddFunc("image/svg+xml", minifysvg.Minify)
	return m.Minify("image/svg+xml", w, buf)
}

func (dw *docWriter) element(e *scene.Element) {
	if dw.s.IsHidden(e.ID) {
		return
	}
	switch e.Type {
	case scene.TypeGroup:
		if e.Group != nil && e.Group.Name != "" {
			fmt.Fprintf(dw.w, `<g data-name="%s">`, attrEscaper.Replace(e.Group.Name))
		} else {
			fmt.Fprintf(dw.w, `<g>`)
		}
		for _, c := range dw.children[e.ID] {
			dw.element(c)
		}
		fmt.Fprintf(dw.w, `</g>`)
	case scene.TypePath:
		dw.path(e.Path)
	case scene.TypeShape:
		dw.shape(e.Shape)
	case scene.TypeText:
		dw.text(e.Text)
	}
}

func (dw *docWriter) path(p *pictor.PathData) {
	if p == nil || p.Empty() {
		return
	}
	fmt.Fprintf(dw.w, `<path d="%s`, pictor.PathString(p.Commands()))
	if p.FillColor != "#000000" {
		fmt.Fprintf(dw.w, `" fill="%s`, attrEscaper.Replace(p.FillColor))
	}
	if p.FillColor != pictor.None {
		if p.FillOpacity != 1.0 {
			fmt.Fprintf(dw.w, `" fill-opacity="%v`, dec(p.FillOpacity))
		}
		if p.FillRule == pictor.EvenOdd {
			fmt.Fprintf(dw.w, `" fill-rule="evenodd`)
		}
	}
	if p.StrokeColor != pictor.None && p.StrokeColor != "" && 0.0 < p.StrokeWidth {
		fmt.Fprintf(dw.w, `" stroke="%s`, attrEscaper.Replace(p.StrokeColor))
		if p.StrokeWidth != 1.0 {
			fmt.Fprintf(dw.w, `" stroke-width="%v`, dec(p.StrokeWidth))
		}
		if p.StrokeOpacity != 1.0 {
			fmt.Fprintf(dw.w, `" stroke-opacity="%v`, dec(p.StrokeOpacity))
		}
		if p.StrokeLinecap != "" && p.StrokeLinecap != pictor.ButtCap {
			fmt.Fprintf(dw.w, `" stroke-linecap="%s`, p.StrokeLinecap)
		}
		if p.StrokeLinejoin != "" && p.StrokeLinejoin != pictor.MiterJoin {
			fmt.Fprintf(dw.w, `" stroke-linejoin="%s`, p.StrokeLinejoin)
		}
		if p.StrokeDasharray != "" {
			fmt.Fprintf(dw.w, `" stroke-dasharray="%s`, attrEscaper.Replace(p.StrokeDasharray))
		}
	}
	fmt.Fprintf(dw.w, `"/>`)
}

func (dw *docWriter) shape(sd *scene.ShapeData) {
	if sd == nil {
		return
	}
	switch sd.Shape {
	case scene.EllipseShape:
		fmt.Fprintf(dw.w, `<ellipse cx="%v" cy="%v" rx="%v" ry="%v`,
			dec(sd.X+sd.W/2.0), dec(sd.Y+sd.H/2.0), dec(sd.W/2.0), dec(sd.H/2.0))
	default:
		fmt.Fprintf(dw.w, `<rect x="%v" y="%v" width="%v" height="%v`,
			dec(sd.X), dec(sd.Y), dec(sd.W), dec(sd.H))
	}
	if sd.FillColor != "" && sd.FillColor != "#000000" {
		fmt.Fprintf(dw.w, `" fill="%s`, attrEscaper.Replace(sd.FillColor))
	}
	if sd.StrokeColor != "" && sd.StrokeColor != pictor.None && 0.0 < sd.StrokeWidth {
		fmt.Fprintf(dw.w, `" stroke="%s`, attrEscaper.Replace(sd.StrokeColor))
		if sd.StrokeWidth != 1.0 {
			fmt.Fprintf(dw.w, `" stroke-width="%v`, dec(sd.StrokeWidth))
		}
	}
	if sd.Opacity != 0.0 && sd.Opacity != 1.0 {
		fmt.Fprintf(dw.w, `" opacity="%v`, dec(sd.Opacity))
	}
	fmt.Fprintf(dw.w, `"/>`)
}

func (dw *docWriter) text(t *scene.TextData) {
	if t == nil || t.Content == "" {
		return
	}
	fmt.Fprintf(dw.w, `<text x="%v" y="%v`, dec(t.X), dec(t.Y))
	if t.FontSize != 0.0 {
		fmt.Fprintf(dw.w, `" font-size="%v`, dec(t.FontSize))
	}
	if t.FontFamily != "" {
		fmt.Fprintf(dw.w, `" font-family="%s`, attrEscaper.Replace(t.FontFamily))
	}
	if t.Fill != "" && t.Fill != "#000000" {
		fmt.Fprintf(dw.w, `" fill="%s`, attrEscaper.Replace(t.Fill))
	}
	if t.Opacity != 0.0 && t.Opacity != 1.0 {
		fmt.Fprintf(dw.w, `" opacity="%v`, dec(t.Opacity))
	}
	fmt.Fprintf(dw.w, `">`)
	xml.EscapeText(dw.w, []byte(t.Content))
	fmt.Fprintf(dw.w, `</text>`)
}
