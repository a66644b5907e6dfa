package pictor

import (
	"math"
)

// Rectangle returns a closed rectangle with its top-left corner at (x,y).
func Rectangle(x, y, w, h float64) []Command {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return nil
	}
	return []Command{
		MoveTo(x, y),
		LineTo(x+w, y),
		LineTo(x+w, y+h),
		LineTo(x, y+h),
		Close(),
	}
}

// RoundedRectangle returns a rectangle with its top-left corner at (x,y) and
// corners rounded by radii rx and ry, drawn as cubic bezier quarter turns.
func RoundedRectangle(x, y, w, h, rx, ry float64) []Command {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return nil
	} else if rx <= 0.0 || ry <= 0.0 {
		return Rectangle(x, y, w, h)
	}

	rx = math.Min(rx, w/2.0)
	ry = math.Min(ry, h/2.0)
	kx, ky := kappa*rx, kappa*ry
	return []Command{
		MoveTo(x+rx, y),
		LineTo(x+w-rx, y),
		CubicTo(x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry),
		LineTo(x+w, y+h-ry),
		CubicTo(x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h),
		LineTo(x+rx, y+h),
		CubicTo(x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry),
		LineTo(x, y+ry),
		CubicTo(x, y+ry-ky, x+rx-kx, y, x+rx, y),
		Close(),
	}
}

// Ellipse returns a closed ellipse centered at (cx,cy), drawn as four cubic
// bezier quadrants.
func Ellipse(cx, cy, rx, ry float64) []Command {
	if Equal(rx, 0.0) || Equal(ry, 0.0) {
		return nil
	}

	kx, ky := kappa*rx, kappa*ry
	return []Command{
		MoveTo(cx+rx, cy),
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry),
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy),
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry),
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy),
		Close(),
	}
}

// Circle returns a closed circle of radius r centered at (cx,cy).
func Circle(cx, cy, r float64) []Command {
	return Ellipse(cx, cy, r, r)
}

// Line returns an open segment from (x1,y1) to (x2,y2).
func Line(x1, y1, x2, y2 float64) []Command {
	if Equal(x1, x2) && Equal(y1, y2) {
		return nil
	}
	return []Command{
		MoveTo(x1, y1),
		LineTo(x2, y2),
	}
}

// Polyline returns an open polyline through pts.
func Polyline(pts []Point) []Command {
	if len(pts) < 2 {
		return nil
	}

	cmds := make([]Command, 0, len(pts))
	cmds = append(cmds, MoveTo(pts[0].X, pts[0].Y))
	for _, p := range pts[1:] {
		cmds = append(cmds, LineTo(p.X, p.Y))
	}
	return cmds
}

// Polygon returns a closed polygon through pts.
func Polygon(pts []Point) []Command {
	cmds := Polyline(pts)
	if cmds == nil {
		return nil
	}
	return append(cmds, Close())
}
