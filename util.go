package pictor

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for floating point comparisons.
const Epsilon = 1e-10

// Tolerance is the maximum deviation allowed when flattening cubic beziers
// to line segments.
const Tolerance = 0.01

// Precision is the number of decimal places kept for all coordinates stored
// in a PathData. Rounding on every mutation keeps persisted and exported
// output stable and diff-friendly.
const Precision = 2

var precScale = math.Pow(10.0, Precision)

// Equal returns true if a and b are equal within tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Round rounds f to Precision decimal places.
func Round(f float64) float64 {
	return math.Round(f*precScale) / precScale
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in the canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal within tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular
// and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if
// aligned and |OP|*|OQ| if perpendicular.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie.
// t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

// Rot rotates the line OP by phi radians around point p0.
func (p Point) Rot(phi float64, p0 Point) Point {
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		p0.X + cosphi*(p.X-p0.X) - sinphi*(p.Y-p0.Y),
		p0.Y + sinphi*(p.X-p0.X) + cosphi*(p.Y-p0.Y),
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle between (X0,Y0) and (X1,Y1), where
// X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// W returns the width of the rectangle.
func (r Rect) W() float64 {
	return r.X1 - r.X0
}

// H returns the height of the rectangle.
func (r Rect) H() float64 {
	return r.Y1 - r.Y0
}

// Empty returns true if the rectangle has zero area.
func (r Rect) Empty() bool {
	return Equal(r.X0, r.X1) || Equal(r.Y0, r.Y1)
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return (r.X1 - r.X0) * (r.Y1 - r.Y0)
}

// Add returns the smallest rectangle containing both rectangles.
func (r Rect) Add(q Rect) Rect {
	return Rect{
		math.Min(r.X0, q.X0),
		math.Min(r.Y0, q.Y0),
		math.Max(r.X1, q.X1),
		math.Max(r.Y1, q.Y1),
	}
}

// AddPoint returns the smallest rectangle containing the rectangle and p.
func (r Rect) AddPoint(p Point) Rect {
	return Rect{
		math.Min(r.X0, p.X),
		math.Min(r.Y0, p.Y),
		math.Max(r.X1, p.X),
		math.Max(r.Y1, p.Y),
	}
}

// Expand grows the rectangle by d on all sides.
func (r Rect) Expand(d float64) Rect {
	return Rect{r.X0 - d, r.Y0 - d, r.X1 + d, r.Y1 + d}
}

// Translate moves the rectangle by (dx,dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Contains returns true if (x,y) lies inside or on the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return r.X0 <= x && x <= r.X1 && r.Y0 <= y && y <= r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.X0, r.Y0, r.X1, r.Y1)
}

////////////////////////////////////////////////////////////////

// Matrix is a 2D affine transformation matrix. Concatenating transformation
// methods evaluates right-to-left, ie. in Identity.Rotate(30).Translate(20,0)
// the translation is applied first and the rotation second.
type Matrix [2][3]float64

// Identity is the identity transformation matrix.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mul multiplies the current matrix by q, ie. q is applied before m.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Dot applies the transformation to point p.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// Translate adds a translation by (x,y).
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Scale adds a scaling by (x,y) about the origin.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// Rotate adds a counter-clockwise rotation of rot degrees about the origin.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

// RotateAbout adds a counter-clockwise rotation of rot degrees about (x,y).
func (m Matrix) RotateAbout(rot, x, y float64) Matrix {
	return m.Translate(x, y).Rotate(rot).Translate(-x, -y)
}

// ScaleAbout adds a scaling by (sx,sy) about (x,y).
func (m Matrix) ScaleAbout(sx, sy, x, y float64) Matrix {
	return m.Translate(x, y).Scale(sx, sy).Translate(-x, -y)
}

// Det returns the determinant of the matrix.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inv returns the inverse transformation, or Identity if the matrix is
// singular.
func (m Matrix) Inv() Matrix {
	det := m.Det()
	if Equal(det, 0.0) {
		return Identity
	}
	return Matrix{{
		m[1][1] / det,
		-m[0][1] / det,
		-(m[1][1]*m[0][2] - m[0][1]*m[1][2]) / det,
	}, {
		-m[1][0] / det,
		m[0][0] / det,
		-(-m[1][0]*m[0][2] + m[0][0]*m[1][2]) / det,
	}}
}

// IsIdentity returns true if the matrix is the identity within Epsilon.
func (m Matrix) IsIdentity() bool {
	return Equal(m[0][0], 1.0) && Equal(m[0][1], 0.0) && Equal(m[0][2], 0.0) &&
		Equal(m[1][0], 0.0) && Equal(m[1][1], 1.0) && Equal(m[1][2], 0.0)
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g, %g, %g; %g, %g, %g; 0, 0, 1]",
		m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}
