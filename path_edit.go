package pictor

// PointRole says which coordinate of a command a PointRef addresses.
type PointRole int

const (
	Anchor PointRole = iota
	Control1
	Control2
)

func (role PointRole) String() string {
	switch role {
	case Anchor:
		return "anchor"
	case Control1:
		return "control1"
	case Control2:
		return "control2"
	}
	return "?"
}

// PointRef addresses one editable coordinate within a command stream, with
// Command the index of the owning command.
type PointRef struct {
	Point   Point
	Command int
	Role    PointRole
}

// EditablePoints returns one reference per anchor point and per cubic control
// point, in command order. Close commands contribute nothing. The editor uses
// these as its draggable handles.
func EditablePoints(cmds []Command) []PointRef {
	refs := []PointRef{}
	for i, cmd := range cmds {
		switch cmd.Kind {
		case MoveToCmd, LineToCmd:
			refs = append(refs, PointRef{cmd.P, i, Anchor})
		case CubicToCmd:
			refs = append(refs, PointRef{cmd.C1, i, Control1})
			refs = append(refs, PointRef{cmd.C2, i, Control2})
			refs = append(refs, PointRef{cmd.P, i, Anchor})
		}
	}
	return refs
}

// SubPathSpan is a subpath located within a flattened command stream, with
// Start the index of its MoveTo.
type SubPathSpan struct {
	Start    int
	Commands SubPath
}

// SplitSubpaths splits a command stream at each MoveTo. Commands that precede
// the first MoveTo are dropped. The returned spans alias cmds.
func SplitSubpaths(cmds []Command) []SubPathSpan {
	spans := []SubPathSpan{}
	start := -1
	for i, cmd := range cmds {
		if cmd.Kind == MoveToCmd {
			if 0 <= start {
				spans = append(spans, SubPathSpan{start, SubPath(cmds[start:i])})
			}
			start = i
		}
	}
	if 0 <= start {
		spans = append(spans, SubPathSpan{start, SubPath(cmds[start:])})
	}
	return spans
}

// Bounds returns the axis-aligned bounding box over all anchor and control
// points, expanded by half the stroke width times scale. Taking the control
// point hull over-approximates the tight cubic extent, which suffices for
// selection handles and placement. ok is false if cmds contains no points.
func Bounds(cmds []Command, strokeWidth, scale float64) (Rect, bool) {
	ok := false
	var rect Rect
	add := func(p Point) {
		if !ok {
			rect = Rect{p.X, p.Y, p.X, p.Y}
			ok = true
		} else {
			rect = rect.AddPoint(p)
		}
	}
	for _, cmd := range cmds {
		switch cmd.Kind {
		case MoveToCmd, LineToCmd:
			add(cmd.P)
		case CubicToCmd:
			add(cmd.C1)
			add(cmd.C2)
			add(cmd.P)
		}
	}
	if !ok {
		return Rect{}, false
	}
	if 0.0 < strokeWidth {
		rect = rect.Expand(strokeWidth / 2.0 * scale)
	}
	return rect, true
}
