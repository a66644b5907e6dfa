// Package scene implements the element tree of a drawing: styled paths,
// groups, primitive shapes and text, ordered by a global z-index and organized
// through id-based group membership. Stores are mutated copy-on-write so that
// history snapshots can share element data safely.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pictor-app/pictor"
)

// ElementType discriminates the element variants.
type ElementType string

const (
	TypePath  ElementType = "path"
	TypeGroup ElementType = "group"
	TypeShape ElementType = "shape"
	TypeText  ElementType = "text"
)

// Element is a single scene node. Exactly one of Path, Group, Shape, Text is
// non-nil, matching Type. ZIndex orders rendering across the entire scene, not
// per parent. ParentID refers to an owning group by id, or is empty for
// top-level elements.
type Element struct {
	ID       string
	Type     ElementType
	ZIndex   int
	ParentID string

	Path  *pictor.PathData
	Group *GroupData
	Shape *ShapeData
	Text  *TextData
}

// GroupData is the group variant. ChildIDs lists the member element ids in
// display order; every member's ParentID refers back to the group.
type GroupData struct {
	Name     string   `json:"name"`
	ChildIDs []string `json:"childIds"`
	Expanded bool     `json:"isExpanded"`
}

// ShapeKind is the primitive kind of a shape element.
type ShapeKind string

const (
	RectShape    ShapeKind = "rect"
	EllipseShape ShapeKind = "ellipse"
)

// ShapeData is the primitive shape variant, a rectangle or ellipse fitted to
// the box at (X,Y) with size (W,H).
type ShapeData struct {
	Shape       ShapeKind `json:"shape"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	W           float64   `json:"w"`
	H           float64   `json:"h"`
	StrokeWidth float64   `json:"strokeWidth"`
	StrokeColor string    `json:"strokeColor"`
	FillColor   string    `json:"fillColor"`
	Opacity     float64   `json:"opacity"`
}

// Commands returns the outline of the shape as path commands.
func (s *ShapeData) Commands() []pictor.Command {
	if s.Shape == EllipseShape {
		return pictor.Ellipse(s.X+s.W/2.0, s.Y+s.H/2.0, s.W/2.0, s.H/2.0)
	}
	return pictor.Rectangle(s.X, s.Y, s.W, s.H)
}

// TextData is the text variant. Position is the baseline origin.
type TextData struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Fill       string  `json:"fill"`
	Opacity    float64 `json:"opacity"`
}

// NewPathElement returns a path element with a fresh id around data.
func NewPathElement(data *pictor.PathData) *Element {
	if data == nil {
		data = pictor.NewPathData()
	}
	return &Element{ID: uuid.NewString(), Type: TypePath, Path: data}
}

// NewGroupElement returns an empty group element with a fresh id.
func NewGroupElement(name string) *Element {
	return &Element{ID: uuid.NewString(), Type: TypeGroup, Group: &GroupData{Name: name, Expanded: true}}
}

// NewShapeElement returns a shape element with a fresh id around data.
func NewShapeElement(data *ShapeData) *Element {
	return &Element{ID: uuid.NewString(), Type: TypeShape, Shape: data}
}

// NewTextElement returns a text element with a fresh id around data.
func NewTextElement(data *TextData) *Element {
	return &Element{ID: uuid.NewString(), Type: TypeText, Text: data}
}

// Clone returns a deep copy of the element sharing nothing with the original.
func (e *Element) Clone() *Element {
	c := *e
	switch e.Type {
	case TypePath:
		if e.Path != nil {
			c.Path = e.Path.Copy()
		}
	case TypeGroup:
		if e.Group != nil {
			g := *e.Group
			g.ChildIDs = append([]string{}, e.Group.ChildIDs...)
			c.Group = &g
		}
	case TypeShape:
		if e.Shape != nil {
			shape := *e.Shape
			c.Shape = &shape
		}
	case TypeText:
		if e.Text != nil {
			text := *e.Text
			c.Text = &text
		}
	}
	return &c
}

type elementJSON struct {
	ID       string          `json:"id"`
	Type     ElementType     `json:"type"`
	ZIndex   int             `json:"zIndex"`
	ParentID string          `json:"parentId,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// MarshalJSON writes the element as {id, type, zIndex, parentId, data} with
// data holding the variant's fields.
func (e *Element) MarshalJSON() ([]byte, error) {
	var data interface{}
	switch e.Type {
	case TypePath:
		data = e.Path
	case TypeGroup:
		data = e.Group
	case TypeShape:
		data = e.Shape
	case TypeText:
		data = e.Text
	default:
		return nil, fmt.Errorf("bad element type: %q", e.Type)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementJSON{e.ID, e.Type, e.ZIndex, e.ParentID, raw})
}

// UnmarshalJSON reads the {id, type, zIndex, parentId, data} form and fills
// the variant matching type.
func (e *Element) UnmarshalJSON(b []byte) error {
	var v elementJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = Element{ID: v.ID, Type: v.Type, ZIndex: v.ZIndex, ParentID: v.ParentID}
	switch v.Type {
	case TypePath:
		e.Path = pictor.NewPathData()
		if 0 < len(v.Data) {
			return json.Unmarshal(v.Data, e.Path)
		}
	case TypeGroup:
		e.Group = &GroupData{}
		if 0 < len(v.Data) {
			return json.Unmarshal(v.Data, e.Group)
		}
	case TypeShape:
		e.Shape = &ShapeData{}
		if 0 < len(v.Data) {
			return json.Unmarshal(v.Data, e.Shape)
		}
	case TypeText:
		e.Text = &TextData{}
		if 0 < len(v.Data) {
			return json.Unmarshal(v.Data, e.Text)
		}
	default:
		return fmt.Errorf("bad element type: %q", v.Type)
	}
	return nil
}
