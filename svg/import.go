package svg

import (
	"fmt"

	"github.com/pictor-app/pictor"
	"github.com/pictor-app/pictor/scene"
)

// Layout defaults for import placement.
const (
	DefaultMargin      = 160.0
	DefaultMaxRowWidth = 12288.0
)

// Options control how imported graphics are transformed and placed.
// TargetWidth and TargetHeight only apply when Resize is set. Zero Margin and
// MaxRowWidth fall back to the defaults.
type Options struct {
	TargetWidth  float64
	TargetHeight float64
	Resize       bool
	Union        bool
	Frame        bool
	Margin       float64
	MaxRowWidth  float64
}

// Result lists what a batch import produced. IDs holds every created element
// id in creation order, ready to be used as the selection.
type Result struct {
	Paths    int
	IDs      []string
	Warnings []string
}

// Importer places parsed graphics onto a document's canvas. Graphics are laid
// out left to right, wrapping to a new row when the current one exceeds the
// maximum row width. The cursor persists across calls so consecutive imports
// do not overlap.
type Importer struct {
	store *scene.Store
	opts  Options

	x, y      float64
	rowHeight float64
}

// NewImporter returns an importer placing graphics into store.
func NewImporter(store *scene.Store, opts Options) *Importer {
	if opts.Margin <= 0.0 {
		opts.Margin = DefaultMargin
	}
	if opts.MaxRowWidth <= 0.0 {
		opts.MaxRowWidth = DefaultMaxRowWidth
	}
	return &Importer{store: store, opts: opts}
}

// Import places each graphic into the document and returns the created ids.
// Graphics without path geometry are skipped with a warning.
func (imp *Importer) Import(graphics ...*Graphic) *Result {
	res := &Result{}
	for i, g := range graphics {
		imp.importGraphic(i, g, res)
	}
	return res
}

func (imp *Importer) importGraphic(i int, g *Graphic, res *Result) {
	name := ""
	var paths []*pictor.PathData
	if g != nil {
		name = g.Name
		paths = g.Paths()
	}
	if name == "" {
		name = fmt.Sprintf("graphic %d", i+1)
	}
	if len(paths) == 0 {
		res.Warnings = append(res.Warnings, name+": no paths")
		return
	}

	// resize to the target dimensions, scaling stroke widths along
	width, height := g.Width, g.Height
	if imp.opts.Resize && 0.0 < g.Width && 0.0 < g.Height && 0.0 < imp.opts.TargetWidth && 0.0 < imp.opts.TargetHeight {
		sx := imp.opts.TargetWidth / g.Width
		sy := imp.opts.TargetHeight / g.Height
		for _, p := range paths {
			p.SetCommands(pictor.Transform(p.Commands(), pictor.TransformOptions{ScaleX: sx, ScaleY: sy}))
			p.StrokeWidth = pictor.ScaleStrokeWidth(p.StrokeWidth, sx, sy)
		}
		width, height = imp.opts.TargetWidth, imp.opts.TargetHeight
	}

	// union collapses the graphic into a single path; a failed union keeps
	// the original set
	flat := !hasGroups(g.Elements)
	if imp.opts.Union && 2 <= len(paths) {
		if u := pictor.Union(paths); u != nil {
			paths = []*pictor.PathData{u}
			flat = true
		}
	}

	var bounds pictor.Rect
	ok := false
	for _, p := range paths {
		if r, has := p.Bounds(1.0); has {
			if !ok {
				bounds, ok = r, true
			} else {
				bounds = bounds.Add(r)
			}
		}
	}
	if !ok {
		res.Warnings = append(res.Warnings, name+": no geometry")
		return
	}

	if imp.opts.MaxRowWidth < imp.x+bounds.W() && 0.0 < imp.x {
		imp.x = 0.0
		imp.y += imp.rowHeight + imp.opts.Margin
		imp.rowHeight = 0.0
	}
	dx, dy := imp.x-bounds.X0, imp.y-bounds.Y0
	for _, p := range paths {
		p.SetCommands(pictor.Translate(p.Commands(), dx, dy))
	}

	if imp.opts.Frame && 0.0 < width && 0.0 < height {
		frame := pictor.NewPathData()
		frame.SetCommands(pictor.Translate(pictor.Rectangle(0.0, 0.0, width, height), dx, dy))
		frame.FillColor = pictor.None
		frame.StrokeColor = "#000000"
		frame.StrokeWidth = 1.0
		res.IDs = append(res.IDs, imp.store.Add(scene.NewPathElement(frame)))
		res.Paths++
	}

	if flat {
		for _, p := range paths {
			res.IDs = append(res.IDs, imp.store.Add(scene.NewPathElement(p)))
			res.Paths++
		}
	} else {
		imp.insertNodes(g.Elements, "", res)
	}

	imp.x += bounds.W() + imp.opts.Margin
	if imp.rowHeight < bounds.H() {
		imp.rowHeight = bounds.H()
	}
}

// insertNodes mirrors the parsed tree in the scene: groups become group
// elements and path leaves become path elements, in document order with
// parents created before their children.
func (imp *Importer) insertNodes(nodes []Node, parentID string, res *Result) {
	for _, n := range nodes {
		if n.Path != nil {
			e := scene.NewPathElement(n.Path)
			e.ParentID = parentID
			res.IDs = append(res.IDs, imp.store.Add(e))
			res.Paths++
		} else {
			g := scene.NewGroupElement(n.Name)
			g.ParentID = parentID
			id := imp.store.Add(g)
			res.IDs = append(res.IDs, id)
			imp.insertNodes(n.Children, id, res)
		}
	}
}
