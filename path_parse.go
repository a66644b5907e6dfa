package pictor

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// ParseSVGPath parses an SVG path data string into commands. Horizontal and
// vertical lines become regular lines, quadratic beziers are raised to cubics,
// and elliptical arcs are approximated by cubics, so that only MoveTo, LineTo,
// CubicTo and Close remain. All coordinates are rounded to Precision decimal
// places.
func ParseSVGPath(s string) ([]Command, error) {
	path := []byte(s)
	cmds := []Command{}

	i := 0
	num := func() (float64, bool) {
		i += skipCommaWhitespace(path[i:])
		f, n := strconv.ParseFloat(path[i:])
		if n == 0 {
			return 0.0, false
		}
		i += n
		return f, true
	}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // last control point, for S/T reflection
	x, y := 0.0, 0.0     // current position
	x0, y0 := 0.0, 0.0   // subpath start

	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("bad path: expected command at position %d", i+1)
		} else if cmd == 'M' {
			// subsequent coordinate pairs of a moveto are implicit linetos
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
		if prevCmd == 0 && cmd != 'M' && cmd != 'm' {
			return nil, fmt.Errorf("bad path: must start with moveto")
		}

		pos := i
		ok := true
		switch cmd {
		case 'M', 'm':
			var a, b float64
			if a, ok = num(); ok {
				b, ok = num()
			}
			if ok {
				if cmd == 'm' {
					a += x
					b += y
				}
				cmds = append(cmds, MoveTo(a, b))
				x, y = a, b
				x0, y0 = a, b
			}
		case 'Z', 'z':
			cmds = append(cmds, Close())
			x, y = x0, y0
		case 'L', 'l':
			var a, b float64
			if a, ok = num(); ok {
				b, ok = num()
			}
			if ok {
				if cmd == 'l' {
					a += x
					b += y
				}
				cmds = append(cmds, LineTo(a, b))
				x, y = a, b
			}
		case 'H', 'h':
			var a float64
			if a, ok = num(); ok {
				if cmd == 'h' {
					a += x
				}
				cmds = append(cmds, LineTo(a, y))
				x = a
			}
		case 'V', 'v':
			var b float64
			if b, ok = num(); ok {
				if cmd == 'v' {
					b += y
				}
				cmds = append(cmds, LineTo(x, b))
				y = b
			}
		case 'C', 'c':
			var a, b, c, d, e, f float64
			if a, ok = num(); ok {
				if b, ok = num(); ok {
					if c, ok = num(); ok {
						if d, ok = num(); ok {
							if e, ok = num(); ok {
								f, ok = num()
							}
						}
					}
				}
			}
			if ok {
				if cmd == 'c' {
					a += x
					b += y
					c += x
					d += y
					e += x
					f += y
				}
				cmds = append(cmds, CubicTo(a, b, c, d, e, f))
				cpx, cpy = c, d
				x, y = e, f
			}
		case 'S', 's':
			var c, d, e, f float64
			if c, ok = num(); ok {
				if d, ok = num(); ok {
					if e, ok = num(); ok {
						f, ok = num()
					}
				}
			}
			if ok {
				if cmd == 's' {
					c += x
					d += y
					e += x
					f += y
				}
				a, b := x, y
				if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
					a, b = 2.0*x-cpx, 2.0*y-cpy
				}
				cmds = append(cmds, CubicTo(a, b, c, d, e, f))
				cpx, cpy = c, d
				x, y = e, f
			}
		case 'Q', 'q':
			var a, b, c, d float64
			if a, ok = num(); ok {
				if b, ok = num(); ok {
					if c, ok = num(); ok {
						d, ok = num()
					}
				}
			}
			if ok {
				if cmd == 'q' {
					a += x
					b += y
					c += x
					d += y
				}
				c1, c2 := quadToCubic(Point{x, y}, Point{a, b}, Point{c, d})
				cmds = append(cmds, CubicTo(c1.X, c1.Y, c2.X, c2.Y, c, d))
				cpx, cpy = a, b
				x, y = c, d
			}
		case 'T', 't':
			var c, d float64
			if c, ok = num(); ok {
				d, ok = num()
			}
			if ok {
				if cmd == 't' {
					c += x
					d += y
				}
				a, b := x, y
				if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
					a, b = 2.0*x-cpx, 2.0*y-cpy
				}
				c1, c2 := quadToCubic(Point{x, y}, Point{a, b}, Point{c, d})
				cmds = append(cmds, CubicTo(c1.X, c1.Y, c2.X, c2.Y, c, d))
				cpx, cpy = a, b
				x, y = c, d
			}
		case 'A', 'a':
			var a, b, c, d, e, f, g float64
			if a, ok = num(); ok {
				if b, ok = num(); ok {
					if c, ok = num(); ok {
						if d, ok = num(); ok {
							if e, ok = num(); ok {
								if f, ok = num(); ok {
									g, ok = num()
								}
							}
						}
					}
				}
			}
			if ok {
				if cmd == 'a' {
					f += x
					g += y
				}
				rx, ry := math.Abs(a), math.Abs(b)
				large := math.Abs(d-1.0) < Epsilon
				sweep := math.Abs(e-1.0) < Epsilon
				if Equal(rx, 0.0) || Equal(ry, 0.0) {
					cmds = append(cmds, LineTo(f, g))
				} else {
					cx, cy, theta0, theta1 := arcToCenter(x, y, rx, ry, c, large, sweep, f, g)
					cmds = append(cmds, arcToCubics(cx, cy, rx, ry, c, theta0, theta1)...)
				}
				x, y = f, g
			}
		default:
			return nil, fmt.Errorf("bad path: unknown command %q at position %d", string(cmd), pos)
		}
		if !ok {
			return nil, fmt.Errorf("bad path: expected number at position %d", i+1)
		}
		prevCmd = cmd
	}
	for i := range cmds {
		cmds[i] = cmds[i].Round()
	}
	return cmds, nil
}
