package pictor

import (
	"math"
)

// TransformOptions describe an affine transformation of path geometry with
// separate pivots for rotation and scaling. The rotation about
// (RotationCenterX,RotationCenterY) is applied first, the scaling about
// (OriginX,OriginY) second. Zero scale factors are treated as 1 so that the
// zero value requests no scaling.
type TransformOptions struct {
	ScaleX          float64
	ScaleY          float64
	OriginX         float64
	OriginY         float64
	Rotation        float64 // degrees counter-clockwise
	RotationCenterX float64
	RotationCenterY float64
}

// Matrix returns the transformation matrix that the options describe.
func (opts TransformOptions) Matrix() Matrix {
	sx, sy := opts.ScaleX, opts.ScaleY
	if sx == 0.0 {
		sx = 1.0
	}
	if sy == 0.0 {
		sy = 1.0
	}

	m := Identity
	if !Equal(sx, 1.0) || !Equal(sy, 1.0) {
		m = m.ScaleAbout(sx, sy, opts.OriginX, opts.OriginY)
	}
	if !Equal(opts.Rotation, 0.0) {
		m = m.RotateAbout(opts.Rotation, opts.RotationCenterX, opts.RotationCenterY)
	}
	return m
}

// Transform applies the transformation to every anchor and control point and
// returns the resulting commands rounded to Precision decimal places. The
// stroke width is not touched, callers pair this with ScaleStrokeWidth.
func Transform(cmds []Command, opts TransformOptions) []Command {
	return TransformBy(cmds, opts.Matrix())
}

// TransformBy applies an affine matrix to every anchor and control point and
// returns the resulting commands rounded to Precision decimal places.
func TransformBy(cmds []Command, m Matrix) []Command {
	out := make([]Command, len(cmds))
	for i, cmd := range cmds {
		out[i] = cmd.transform(m).Round()
	}
	return out
}

// Translate moves every anchor and control point by (dx,dy).
func Translate(cmds []Command, dx, dy float64) []Command {
	d := Point{dx, dy}
	out := make([]Command, len(cmds))
	for i, cmd := range cmds {
		switch cmd.Kind {
		case MoveToCmd, LineToCmd:
			cmd.P = cmd.P.Add(d)
		case CubicToCmd:
			cmd.C1 = cmd.C1.Add(d)
			cmd.C2 = cmd.C2.Add(d)
			cmd.P = cmd.P.Add(d)
		}
		out[i] = cmd.Round()
	}
	return out
}

// ScaleStrokeWidth scales a stroke width by the geometric mean of the two
// scale factors, so that non-uniform scaling thickens the stroke with the
// square root of the area change. Zero scale factors are treated as 1.
func ScaleStrokeWidth(width, sx, sy float64) float64 {
	if sx == 0.0 {
		sx = 1.0
	}
	if sy == 0.0 {
		sy = 1.0
	}
	return Round(width * math.Sqrt(math.Abs(sx*sy)))
}
