package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pictor-app/pictor"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// drawState carries the inherited presentation attributes and the accumulated
// transform while walking the document tree.
type drawState struct {
	m             pictor.Matrix
	strokeWidth   float64
	strokeColor   string
	strokeOpacity float64
	fillColor     string
	fillOpacity   float64
	opacity       float64
	linecap       pictor.Linecap
	linejoin      pictor.Linejoin
	fillRule      pictor.FillRule
	dasharray     string
}

// rootState returns the SVG defaults: a black fill and no stroke.
func rootState() drawState {
	return drawState{
		m:             pictor.Identity,
		strokeWidth:   1.0,
		strokeColor:   pictor.None,
		strokeOpacity: 1.0,
		fillColor:     "#000000",
		fillOpacity:   1.0,
		opacity:       1.0,
		linecap:       pictor.ButtCap,
		linejoin:      pictor.MiterJoin,
		fillRule:      pictor.NonZero,
	}
}

type svgParser struct {
	z *parse.Input

	graphic                 *Graphic
	width, height, diagonal float64

	states []drawState
	groups []*Node
	skip   int

	err error
}

func (svg *svgParser) state() drawState {
	if len(svg.states) == 0 {
		return rootState()
	}
	return svg.states[len(svg.states)-1]
}

func (svg *svgParser) parseDimension(v string, parent float64) float64 {
	if len(v) == 0 {
		return 0.0
	}

	nn, _ := parse.Dimension([]byte(v))
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		if svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad dimension: %w: %s", err, v)
		}
		return 0.0
	}

	dim := v[nn:]
	switch strings.ToLower(dim) {
	case "cm":
		return num * 10.0 * 96.0 / 25.4
	case "mm":
		return num * 96.0 / 25.4
	case "q":
		return num * 0.25 * 96.0 / 25.4
	case "in":
		return num * 96.0
	case "pc":
		return num * 96.0 / 6.0
	case "pt":
		return num * 96.0 / 72.0
	case "", "px":
		return num
	case "%":
		return num * parent / 100.0
	}
	if svg.err == nil {
		svg.err = parse.NewErrorLexer(svg.z, "unknown dimension: %s", dim)
	}
	return 0.0
}

func (svg *svgParser) parseNumber(v string) float64 {
	num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		if svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad number: %w: %s", err, v)
		}
		return 0.0
	}
	return num
}

func (svg *svgParser) parsePoints(v string) []float64 {
	v = strings.ReplaceAll(v, "\n", ",")
	v = strings.ReplaceAll(v, "\t", ",")
	v = strings.ReplaceAll(v, " ", ",")

	vals := []float64{}
	for _, item := range strings.Split(v, ",") {
		if 0 < len(item) {
			val, err := strconv.ParseFloat(item, 64)
			if err != nil && svg.err == nil {
				svg.err = parse.NewErrorLexer(svg.z, "bad number array: %w: %s", err, v)
			}
			vals = append(vals, val)
		}
	}
	return vals
}

func (svg *svgParser) parseTransform(v string) pictor.Matrix {
	i, j := 0, 0
	m := pictor.Identity
	var fun string
	for i < len(v) {
		if v[i] == '(' {
			fun = strings.ToLower(strings.TrimSpace(v[j:i]))
			j = i + 1
		} else if v[i] == ')' {
			d := svg.parsePoints(v[j:i])
			switch fun {
			case "matrix":
				if len(d) != 6 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform matrix")
					}
				} else {
					m = m.Mul(pictor.Matrix{{d[0], d[2], d[4]}, {d[1], d[3], d[5]}})
				}
			case "translate":
				if len(d) != 1 && len(d) != 2 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform translate")
					}
				} else if len(d) == 1 {
					m = m.Translate(d[0], 0.0)
				} else {
					m = m.Translate(d[0], d[1])
				}
			case "scale":
				if len(d) != 1 && len(d) != 2 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform scale")
					}
				} else if len(d) == 1 {
					m = m.Scale(d[0], d[0])
				} else {
					m = m.Scale(d[0], d[1])
				}
			case "rotate":
				if len(d) != 1 && len(d) != 3 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform rotate")
					}
				} else if len(d) == 1 {
					m = m.Rotate(d[0])
				} else {
					m = m.RotateAbout(d[0], d[1], d[2])
				}
			case "skewx":
				if len(d) != 1 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform skewX")
					}
				} else {
					m = m.Mul(pictor.Matrix{{1.0, math.Tan(d[0] * math.Pi / 180.0), 0.0}, {0.0, 1.0, 0.0}})
				}
			case "skewy":
				if len(d) != 1 {
					if svg.err == nil {
						svg.err = parse.NewErrorLexer(svg.z, "bad transform skewY")
					}
				} else {
					m = m.Mul(pictor.Matrix{{1.0, 0.0, 0.0}, {math.Tan(d[0] * math.Pi / 180.0), 1.0, 0.0}})
				}
			}
			j = i + 1
		}
		i++
	}
	return m
}

func (svg *svgParser) setAttribute(st *drawState, key, val string) {
	switch key {
	case "fill":
		if val != "" {
			st.fillColor = val
		}
	case "stroke":
		if val != "" {
			st.strokeColor = val
		}
	case "stroke-width":
		st.strokeWidth = svg.parseDimension(val, svg.diagonal)
	case "stroke-opacity":
		st.strokeOpacity = svg.parseNumber(val)
	case "fill-opacity":
		st.fillOpacity = svg.parseNumber(val)
	case "opacity":
		// group opacity multiplies into the children
		st.opacity *= svg.parseNumber(val)
	case "stroke-linecap":
		if val == "butt" {
			st.linecap = pictor.ButtCap
		} else if val == "round" {
			st.linecap = pictor.RoundCap
		} else if val == "square" {
			st.linecap = pictor.SquareCap
		}
	case "stroke-linejoin":
		if val == "miter" {
			st.linejoin = pictor.MiterJoin
		} else if val == "round" {
			st.linejoin = pictor.RoundJoin
		} else if val == "bevel" {
			st.linejoin = pictor.BevelJoin
		}
	case "fill-rule":
		if val == "evenodd" {
			st.fillRule = pictor.EvenOdd
		} else if val == "nonzero" {
			st.fillRule = pictor.NonZero
		}
	case "stroke-dasharray":
		if val == "none" {
			st.dasharray = ""
		} else {
			st.dasharray = val
		}
	case "transform":
		st.m = st.m.Mul(svg.parseTransform(val))
	}
}

func (svg *svgParser) applyAttributes(st *drawState, attrs map[string]string, attrNames []string) {
	for _, key := range attrNames {
		val := attrs[key]
		if key == "style" {
			for _, item := range strings.Split(val, ";") {
				if keyVal := strings.Split(item, ":"); len(keyVal) == 2 {
					svg.setAttribute(st, strings.TrimSpace(keyVal[0]), strings.TrimSpace(keyVal[1]))
				}
			}
		} else {
			svg.setAttribute(st, key, val)
		}
	}
}

// append adds a node to the open group, or to the root when none is open.
func (svg *svgParser) append(n Node) {
	if 0 < len(svg.groups) {
		g := svg.groups[len(svg.groups)-1]
		g.Children = append(g.Children, n)
	} else {
		svg.graphic.Elements = append(svg.graphic.Elements, n)
	}
}

// leaf folds the state's transform into the commands and adds a path node
// carrying the state's styling.
func (svg *svgParser) leaf(cmds []pictor.Command, st drawState) {
	if len(cmds) == 0 {
		return
	}
	width := st.strokeWidth
	if !st.m.IsIdentity() {
		cmds = pictor.TransformBy(cmds, st.m)
		width = pictor.ScaleStrokeWidth(st.strokeWidth, st.m.Det(), 1.0)
	}

	p := pictor.NewPathData()
	p.SetCommands(cmds)
	if p.Empty() {
		return
	}
	p.StrokeWidth = width
	p.StrokeColor = st.strokeColor
	p.StrokeOpacity = st.strokeOpacity * st.opacity
	p.FillColor = st.fillColor
	p.FillOpacity = st.fillOpacity * st.opacity
	p.StrokeLinecap = st.linecap
	p.StrokeLinejoin = st.linejoin
	p.FillRule = st.fillRule
	p.StrokeDasharray = st.dasharray
	svg.append(Node{Path: p})
}

// root handles the opening svg tag: the document dimensions, and the viewBox
// mapped onto them as a transform.
func (svg *svgParser) root(attrs map[string]string, attrNames []string, void bool) {
	var err error
	var viewbox [4]float64
	var width, height float64
	hasViewbox := false
	if _, ok := attrs["viewBox"]; ok {
		vals := strings.Split(attrs["viewBox"], " ")
		if len(vals) != 4 {
			if svg.err == nil {
				svg.err = parse.NewErrorLexer(svg.z, "bad viewBox")
			}
		} else {
			hasViewbox = true
			for i := 0; i < 4; i++ {
				viewbox[i], err = strconv.ParseFloat(vals[i], 64)
				if err != nil && svg.err == nil {
					svg.err = parse.NewErrorLexer(svg.z, "bad viewBox: %w", err)
				}
			}
		}
	}
	if _, ok := attrs["width"]; ok {
		width = svg.parseDimension(attrs["width"], 0.0)
	} else {
		width = viewbox[2] - viewbox[0]
	}
	if _, ok := attrs["height"]; ok {
		height = svg.parseDimension(attrs["height"], 0.0)
	} else {
		height = viewbox[3] - viewbox[1]
	}

	svg.width, svg.height = width, height
	svg.diagonal = math.Sqrt((width*width + height*height) / 2.0)
	svg.graphic = &Graphic{Width: width, Height: height}

	st := rootState()
	if hasViewbox && 0.0 < viewbox[2]-viewbox[0] && 0.0 < viewbox[3]-viewbox[1] && 0.0 < width && 0.0 < height {
		st.m = pictor.Identity.Scale(width/(viewbox[2]-viewbox[0]), height/(viewbox[3]-viewbox[1])).Translate(-viewbox[0], -viewbox[1])
	}
	svg.applyAttributes(&st, attrs, attrNames)
	if !void {
		svg.states = append(svg.states, st)
	}
}

// skipped lists the container tags whose contents do not contribute visible
// geometry.
func skipped(tag string) bool {
	switch tag {
	case "defs", "symbol", "marker", "mask", "clipPath", "pattern",
		"linearGradient", "radialGradient", "filter", "style", "text",
		"title", "desc", "metadata":
		return true
	}
	return false
}

func (svg *svgParser) startTag(tag string, attrs map[string]string, attrNames []string, void bool) {
	if 0 < svg.skip {
		if !void {
			svg.skip++
		}
		return
	}
	if skipped(tag) {
		if !void {
			svg.skip++
		}
		return
	}

	st := svg.state()
	svg.applyAttributes(&st, attrs, attrNames)

	if tag == "g" {
		name := attrs["data-name"]
		if name == "" {
			name = attrs["id"]
		}
		if void {
			svg.append(Node{Name: name})
			return
		}
		svg.groups = append(svg.groups, &Node{Name: name})
		svg.states = append(svg.states, st)
		return
	}

	switch tag {
	case "circle":
		cx := svg.parseDimension(attrs["cx"], svg.width)
		cy := svg.parseDimension(attrs["cy"], svg.height)
		r := svg.parseDimension(attrs["r"], svg.diagonal)
		svg.leaf(pictor.Circle(cx, cy, r), st)
	case "ellipse":
		cx := svg.parseDimension(attrs["cx"], svg.width)
		cy := svg.parseDimension(attrs["cy"], svg.height)
		rx := svg.parseDimension(attrs["rx"], svg.width)
		ry := svg.parseDimension(attrs["ry"], svg.height)
		svg.leaf(pictor.Ellipse(cx, cy, rx, ry), st)
	case "path":
		cmds, err := pictor.ParseSVGPath(attrs["d"])
		if err != nil && svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad path: %w", err)
		}
		svg.leaf(cmds, st)
	case "polygon", "polyline":
		points := svg.parsePoints(attrs["points"])
		pts := make([]pictor.Point, 0, len(points)/2)
		for i := 0; i+1 < len(points); i += 2 {
			pts = append(pts, pictor.Point{X: points[i], Y: points[i+1]})
		}
		if tag == "polygon" {
			svg.leaf(pictor.Polygon(pts), st)
		} else {
			svg.leaf(pictor.Polyline(pts), st)
		}
	case "line":
		x1 := svg.parseDimension(attrs["x1"], svg.width)
		y1 := svg.parseDimension(attrs["y1"], svg.height)
		x2 := svg.parseDimension(attrs["x2"], svg.width)
		y2 := svg.parseDimension(attrs["y2"], svg.height)
		svg.leaf(pictor.Line(x1, y1, x2, y2), st)
	case "rect":
		x := svg.parseDimension(attrs["x"], svg.width)
		y := svg.parseDimension(attrs["y"], svg.height)
		width := svg.parseDimension(attrs["width"], svg.width)
		height := svg.parseDimension(attrs["height"], svg.height)
		rx := svg.parseDimension(attrs["rx"], svg.width)
		ry := svg.parseDimension(attrs["ry"], svg.height)
		if rx == 0.0 && ry == 0.0 {
			svg.leaf(pictor.Rectangle(x, y, width, height), st)
		} else {
			if rx == 0.0 {
				rx = ry
			} else if ry == 0.0 {
				ry = rx
			}
			svg.leaf(pictor.RoundedRectangle(x, y, width, height, rx, ry), st)
		}
	}

	if !void {
		svg.states = append(svg.states, st)
	}
}

func (svg *svgParser) endTag(tag string) {
	if 0 < svg.skip {
		svg.skip--
		return
	}
	if tag == "g" && 0 < len(svg.groups) {
		g := svg.groups[len(svg.groups)-1]
		svg.groups = svg.groups[:len(svg.groups)-1]
		svg.append(*g)
	}
	if 0 < len(svg.states) {
		svg.states = svg.states[:len(svg.states)-1]
	}
}

// Parse reads an SVG document into a Graphic. Transform attributes and the
// viewBox mapping are folded into the path coordinates, so the resulting tree
// carries plain geometry. The first error is reported, alongside whatever was
// parsed up to that point.
func Parse(r io.Reader) (*Graphic, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	l := xml.NewLexer(z)
	svg := svgParser{z: z}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return svg.graphic, l.Err()
			} else if svg.err != nil {
				return svg.graphic, svg.err
			} else if svg.graphic == nil {
				return nil, fmt.Errorf("expected SVG tag")
			}
			// close groups an unclosed document left open
			for 0 < len(svg.groups) {
				g := svg.groups[len(svg.groups)-1]
				svg.groups = svg.groups[:len(svg.groups)-1]
				svg.append(*g)
			}
			return svg.graphic, nil
		case xml.StartTagToken:
			attrs := map[string]string{}
			attrNames := []string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				val = val[1 : len(val)-1]
				attrNames = append(attrNames, string(l.Text()))
				attrs[string(l.Text())] = string(val)
			}

			tag := string(data[1:])
			void := tt == xml.StartTagCloseVoidToken
			if svg.graphic == nil {
				if tag != "svg" {
					return nil, fmt.Errorf("expected SVG tag")
				}
				svg.root(attrs, attrNames, void)
			} else {
				svg.startTag(tag, attrs, attrNames, void)
			}
		case xml.EndTagToken:
			svg.endTag(string(data[2 : len(data)-1]))
		}
	}
}
