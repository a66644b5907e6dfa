package pictor

import (
	"fmt"
	"strconv"
)

// CommandKind is the type of a path command.
type CommandKind int

const (
	MoveToCmd CommandKind = iota
	LineToCmd
	CubicToCmd
	CloseCmd
)

var cmdLetters = [...]string{"M", "L", "C", "Z"}

func (kind CommandKind) String() string {
	if kind < 0 || len(cmdLetters) <= int(kind) {
		return fmt.Sprintf("CommandKind(%d)", int(kind))
	}
	return cmdLetters[kind]
}

// MarshalText writes the SVG command letter so that persisted paths stay
// compact and readable.
func (kind CommandKind) MarshalText() ([]byte, error) {
	if kind < 0 || len(cmdLetters) <= int(kind) {
		return nil, fmt.Errorf("bad path command: %d", int(kind))
	}
	return []byte(cmdLetters[kind]), nil
}

// UnmarshalText parses the SVG command letter.
func (kind *CommandKind) UnmarshalText(text []byte) error {
	for i, letter := range cmdLetters {
		if string(text) == letter {
			*kind = CommandKind(i)
			return nil
		}
	}
	return fmt.Errorf("bad path command: %q", text)
}

// Command is a single path command. P is the end point of the segment and is
// unused for CloseCmd, which connects back to the subpath's starting point.
// C1 and C2 are the control points and are only meaningful for CubicToCmd.
type Command struct {
	Kind CommandKind `json:"kind"`
	C1   Point       `json:"c1,omitzero"`
	C2   Point       `json:"c2,omitzero"`
	P    Point       `json:"p,omitzero"`
}

// MoveTo returns a command that starts a new subpath at (x,y).
func MoveTo(x, y float64) Command {
	return Command{Kind: MoveToCmd, P: Point{x, y}}
}

// LineTo returns a command that draws a straight line towards (x,y).
func LineTo(x, y float64) Command {
	return Command{Kind: LineToCmd, P: Point{x, y}}
}

// CubicTo returns a command that draws a cubic bezier towards (x,y), with
// (x1,y1) and (x2,y2) the first and second control points.
func CubicTo(x1, y1, x2, y2, x, y float64) Command {
	return Command{Kind: CubicToCmd, C1: Point{x1, y1}, C2: Point{x2, y2}, P: Point{x, y}}
}

// Close returns a command that closes the current subpath.
func Close() Command {
	return Command{Kind: CloseCmd}
}

// Round rounds the command's coordinates to Precision decimal places.
func (cmd Command) Round() Command {
	cmd.C1 = Point{Round(cmd.C1.X), Round(cmd.C1.Y)}
	cmd.C2 = Point{Round(cmd.C2.X), Round(cmd.C2.Y)}
	cmd.P = Point{Round(cmd.P.X), Round(cmd.P.Y)}
	return cmd
}

// transform applies matrix m to the command's points.
func (cmd Command) transform(m Matrix) Command {
	switch cmd.Kind {
	case MoveToCmd, LineToCmd:
		cmd.P = m.Dot(cmd.P)
	case CubicToCmd:
		cmd.C1 = m.Dot(cmd.C1)
		cmd.C2 = m.Dot(cmd.C2)
		cmd.P = m.Dot(cmd.P)
	}
	return cmd
}

////////////////////////////////////////////////////////////////

// SubPath is a contiguous run of commands starting with exactly one MoveTo
// and optionally terminated by a Close.
type SubPath []Command

// Closed returns true if the subpath ends with a Close command.
func (sp SubPath) Closed() bool {
	return 0 < len(sp) && sp[len(sp)-1].Kind == CloseCmd
}

// Start returns the subpath's starting point.
func (sp SubPath) Start() Point {
	if len(sp) == 0 {
		return Point{}
	}
	return sp[0].P
}

// End returns the subpath's final on-curve point. For closed subpaths this is
// the starting point.
func (sp SubPath) End() Point {
	if len(sp) == 0 {
		return Point{}
	} else if sp.Closed() {
		return sp[0].P
	}
	return sp[len(sp)-1].P
}

// Reverse returns the subpath traversed in the opposite direction. The
// geometry is unchanged, closed subpaths stay closed, and the control points
// of cubic segments swap roles.
func (sp SubPath) Reverse() SubPath {
	if len(sp) == 0 {
		return SubPath{}
	}

	closed := sp.Closed()
	body := sp
	if closed {
		body = sp[:len(sp)-1]
	}
	if len(body) == 0 || body[0].Kind != MoveToCmd {
		return append(SubPath{}, sp...)
	}

	start, end := body[0].P, body[len(body)-1].P
	rev := make(SubPath, 0, len(sp)+1)
	if closed {
		// keep the starting point, the closing edge is traversed first
		rev = append(rev, Command{Kind: MoveToCmd, P: start})
		if !start.Equals(end) {
			rev = append(rev, Command{Kind: LineToCmd, P: end})
		}
	} else {
		rev = append(rev, Command{Kind: MoveToCmd, P: end})
	}
	for i := len(body) - 1; 1 <= i; i-- {
		prev := body[i-1].P
		switch body[i].Kind {
		case LineToCmd:
			rev = append(rev, Command{Kind: LineToCmd, P: prev})
		case CubicToCmd:
			rev = append(rev, Command{Kind: CubicToCmd, C1: body[i].C2, C2: body[i].C1, P: prev})
		}
	}
	if closed {
		if last := rev[len(rev)-1]; last.Kind == LineToCmd && last.P.Equals(start) {
			rev = rev[:len(rev)-1]
		}
		rev = append(rev, Command{Kind: CloseCmd})
	}
	return rev
}

////////////////////////////////////////////////////////////////

// Linecap is the style of stroke endings.
type Linecap string

const (
	ButtCap   Linecap = "butt"
	RoundCap  Linecap = "round"
	SquareCap Linecap = "square"
)

// Linejoin is the style of stroke corners.
type Linejoin string

const (
	MiterJoin Linejoin = "miter"
	RoundJoin Linejoin = "round"
	BevelJoin Linejoin = "bevel"
)

// FillRule is the algorithm that determines the interior of a path.
type FillRule string

const (
	NonZero FillRule = "nonzero"
	EvenOdd FillRule = "evenodd"
)

// None is the sentinel color that disables a fill or stroke.
const None = "none"

// PathData is the geometry and styling payload of a path element. Colors are
// CSS color strings, with None disabling the fill or stroke. All coordinates
// are kept at Precision decimal places.
type PathData struct {
	SubPaths        []SubPath `json:"subPaths"`
	StrokeWidth     float64   `json:"strokeWidth"`
	StrokeColor     string    `json:"strokeColor"`
	StrokeOpacity   float64   `json:"strokeOpacity"`
	FillColor       string    `json:"fillColor"`
	FillOpacity     float64   `json:"fillOpacity"`
	StrokeLinecap   Linecap   `json:"strokeLinecap,omitempty"`
	StrokeLinejoin  Linejoin  `json:"strokeLinejoin,omitempty"`
	FillRule        FillRule  `json:"fillRule,omitempty"`
	StrokeDasharray string    `json:"strokeDasharray,omitempty"`
}

// NewPathData returns an empty path with the default styling: a black fill
// and no stroke.
func NewPathData() *PathData {
	return &PathData{
		StrokeWidth:    1.0,
		StrokeColor:    None,
		StrokeOpacity:  1.0,
		FillColor:      "#000000",
		FillOpacity:    1.0,
		StrokeLinecap:  ButtCap,
		StrokeLinejoin: MiterJoin,
		FillRule:       NonZero,
	}
}

// Empty returns true if the path contains no commands.
func (p *PathData) Empty() bool {
	for _, sp := range p.SubPaths {
		if 0 < len(sp) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the path.
func (p *PathData) Copy() *PathData {
	q := *p
	q.SubPaths = make([]SubPath, len(p.SubPaths))
	for i, sp := range p.SubPaths {
		q.SubPaths[i] = append(SubPath{}, sp...)
	}
	return &q
}

// Commands returns all subpath commands flattened into a single stream.
func (p *PathData) Commands() []Command {
	n := 0
	for _, sp := range p.SubPaths {
		n += len(sp)
	}
	cmds := make([]Command, 0, n)
	for _, sp := range p.SubPaths {
		cmds = append(cmds, sp...)
	}
	return cmds
}

// SetCommands splits cmds at each MoveTo and replaces the path's subpaths.
// All coordinates are rounded to Precision decimal places. Commands that
// precede the first MoveTo are dropped.
func (p *PathData) SetCommands(cmds []Command) {
	spans := SplitSubpaths(cmds)
	p.SubPaths = make([]SubPath, len(spans))
	for i, span := range spans {
		sp := make(SubPath, len(span.Commands))
		for j, cmd := range span.Commands {
			sp[j] = cmd.Round()
		}
		p.SubPaths[i] = sp
	}
}

// Bounds returns the path's stroke-aware bounding box at the given canvas
// scale, or false if the path has no geometry.
func (p *PathData) Bounds(scale float64) (Rect, bool) {
	width := 0.0
	if p.StrokeColor != None && 0.0 < p.StrokeWidth {
		width = p.StrokeWidth
	}
	return Bounds(p.Commands(), width, scale)
}

// PathString writes commands as an SVG path data string, the format used for
// copying paths between documents.
func PathString(cmds []Command) string {
	buf := make([]byte, 0, len(cmds)*16)
	coord := func(f float64) {
		buf = strconv.AppendFloat(buf, f, 'f', -1, 64)
	}
	for _, cmd := range cmds {
		switch cmd.Kind {
		case MoveToCmd, LineToCmd:
			if cmd.Kind == MoveToCmd {
				buf = append(buf, 'M')
			} else {
				buf = append(buf, 'L')
			}
			coord(cmd.P.X)
			buf = append(buf, ' ')
			coord(cmd.P.Y)
		case CubicToCmd:
			buf = append(buf, 'C')
			coord(cmd.C1.X)
			buf = append(buf, ' ')
			coord(cmd.C1.Y)
			buf = append(buf, ' ')
			coord(cmd.C2.X)
			buf = append(buf, ' ')
			coord(cmd.C2.Y)
			buf = append(buf, ' ')
			coord(cmd.P.X)
			buf = append(buf, ' ')
			coord(cmd.P.Y)
		case CloseCmd:
			buf = append(buf, 'Z')
		}
	}
	return string(buf)
}
