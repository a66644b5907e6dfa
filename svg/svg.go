// Package svg reads and writes SVG documents. Parse turns an SVG file into a
// tree of groups and path leaves with all transforms folded into the
// coordinates, Importer places parsed graphics onto a document's canvas, and
// WriteDocument exports a document as an SVG image again.
package svg

import (
	"github.com/pictor-app/pictor"
)

// Node is one node of a parsed graphic: a group holding child nodes, or a
// path leaf when Path is non-nil.
type Node struct {
	Name     string
	Children []Node
	Path     *pictor.PathData
}

// IsGroup returns true if the node is a group.
func (n Node) IsGroup() bool {
	return n.Path == nil
}

// Graphic is a parsed SVG document. Width and Height are in user units (px),
// Elements is the document-order tree of groups and paths. Name is not part
// of the SVG itself; callers may set it to the file name for reporting.
type Graphic struct {
	Name     string
	Width    float64
	Height   float64
	Elements []Node
}

// Paths returns the graphic's path leaves in document order. The returned
// pointers are the tree's own leaves, transforming them also changes the
// tree.
func (g *Graphic) Paths() []*pictor.PathData {
	var paths []*pictor.PathData
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Path != nil {
				paths = append(paths, n.Path)
			} else {
				walk(n.Children)
			}
		}
	}
	walk(g.Elements)
	return paths
}

// hasGroups returns true if any node in the tree is a group.
func hasGroups(nodes []Node) bool {
	for _, n := range nodes {
		if n.IsGroup() {
			return true
		}
	}
	return false
}
