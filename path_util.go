package pictor

import (
	"math"
)

// kappa is the distance from an endpoint of a unit-circle quadrant to its
// cubic bezier control point, 4*(sqrt(2)-1)/3.
const kappa = 0.5522847498307935

// arcToCenter changes between the SVG arc format to the center and angles format,
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func arcToCenter(x1, y1, rx, ry, rot float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64) {
	if x1 == x2 && y1 == y2 {
		return x1, y1, 0.0, 0.0
	}

	rot *= math.Pi / 180.0
	x1p := math.Cos(rot)*(x1-x2)/2.0 + math.Sin(rot)*(y1-y2)/2.0
	y1p := -math.Sin(rot)*(x1-x2)/2.0 + math.Cos(rot)*(y1-y2)/2.0

	// scale up the radii when the ellipse cannot reach the end point
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if 1.0 < radiiCheck {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := math.Cos(rot)*cxp - math.Sin(rot)*cyp + (x1+x2)/2.0
	cy := math.Sin(rot)*cxp + math.Cos(rot)*cyp + (y1+y2)/2.0

	// specify U and V vectors; theta = arccos(U*V / sqrt(U*U + V*V))
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(ux / math.Sqrt(ux*ux+uy*uy))
	if uy < 0.0 {
		theta = -theta
	}
	theta *= 180.0 / math.Pi

	delta := math.Acos((ux*vx + uy*vy) / math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy)))
	if ux*vy-uy*vx < 0.0 {
		delta = -delta
	}
	delta *= 180.0 / math.Pi
	if !sweep && 0.0 < delta {
		delta -= 360.0
	} else if sweep && delta < 0.0 {
		delta += 360.0
	}
	return cx, cy, theta, theta + delta
}

// ellipsePos returns the point on the ellipse at angle theta in radians, with
// phi the counter-clockwise rotation of the ellipse in radians.
func ellipsePos(cx, cy, rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		cx + rx*cosphi*costheta - ry*sinphi*sintheta,
		cy + rx*sinphi*costheta + ry*cosphi*sintheta,
	}
}

// ellipseDeriv returns the velocity along the ellipse at angle theta in radians.
func ellipseDeriv(rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		-rx*cosphi*sintheta - ry*sinphi*costheta,
		-rx*sinphi*sintheta + ry*cosphi*costheta,
	}
}

// arcToCubics approximates an elliptical arc between angles theta0 and theta1
// in degrees by cubic bezier segments of at most a quarter turn each. The
// start point is not emitted.
func arcToCubics(cx, cy, rx, ry, rot, theta0, theta1 float64) []Command {
	phi := rot * math.Pi / 180.0
	theta0 *= math.Pi / 180.0
	theta1 *= math.Pi / 180.0

	n := int(math.Ceil(math.Abs(theta1-theta0) / (0.5 * math.Pi)))
	if n == 0 {
		return nil
	}
	dtheta := (theta1 - theta0) / float64(n)
	alpha := math.Sin(dtheta) * (math.Sqrt(4.0+3.0*math.Pow(math.Tan(dtheta/2.0), 2.0)) - 1.0) / 3.0

	cmds := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		ta := theta0 + float64(i)*dtheta
		tb := ta + dtheta
		start := ellipsePos(cx, cy, rx, ry, phi, ta)
		end := ellipsePos(cx, cy, rx, ry, phi, tb)
		c1 := start.Add(ellipseDeriv(rx, ry, phi, ta).Mul(alpha))
		c2 := end.Sub(ellipseDeriv(rx, ry, phi, tb).Mul(alpha))
		cmds = append(cmds, Command{Kind: CubicToCmd, C1: c1, C2: c2, P: end})
	}
	return cmds
}

////////////////////////////////////////////////////////////////

// quadToCubic raises a quadratic bezier to the equivalent cubic and returns
// its control points.
func quadToCubic(p0, p1, p2 Point) (Point, Point) {
	return p0.Interpolate(p1, 2.0/3.0), p2.Interpolate(p1, 2.0/3.0)
}

func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

// cubicFlat returns true if both control points deviate at most flatness from
// the chord p0-p3.
func cubicFlat(p0, p1, p2, p3 Point, flatness float64) bool {
	chord := p3.Sub(p0)
	n := chord.Length()
	if Equal(n, 0.0) {
		return p1.Sub(p0).Length() <= flatness && p2.Sub(p0).Length() <= flatness
	}
	d1 := math.Abs(chord.PerpDot(p1.Sub(p0))) / n
	d2 := math.Abs(chord.PerpDot(p2.Sub(p0))) / n
	return d1 <= flatness && d2 <= flatness
}

// flattenCubic appends points that approximate the cubic within flatness,
// excluding p0, by recursive subdivision at t=0.5.
func flattenCubic(pts []Point, p0, p1, p2, p3 Point, flatness float64, depth int) []Point {
	if 16 <= depth || cubicFlat(p0, p1, p2, p3, flatness) {
		return append(pts, p3)
	}
	q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(p0, p1, p2, p3, 0.5)
	pts = flattenCubic(pts, q0, q1, q2, q3, flatness, depth+1)
	return flattenCubic(pts, r0, r1, r2, r3, flatness, depth+1)
}

// perpendicularDistance returns the distance from p to the infinite line
// through a and b, or to a itself when a and b coincide.
func perpendicularDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	n := ab.Length()
	if Equal(n, 0.0) {
		return p.Sub(a).Length()
	}
	return math.Abs(ab.PerpDot(p.Sub(a))) / n
}
