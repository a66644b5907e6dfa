package pictor

// Simplify reduces the number of points in polyline stretches using the
// Douglas-Peucker algorithm, with tolerance the maximum allowed perpendicular
// deviation of removed points. Only maximal runs of consecutive LineTo
// commands are thinned; cubic segments and their anchors are always kept, as
// are the first and last points of every run. A tolerance of zero returns a
// copy of the input.
func Simplify(cmds []Command, tolerance float64) []Command {
	if tolerance <= 0.0 {
		return append([]Command{}, cmds...)
	}

	out := make([]Command, 0, len(cmds))
	var pos, start Point
	i := 0
	for i < len(cmds) {
		cmd := cmds[i]
		if cmd.Kind == LineToCmd {
			j := i
			for j < len(cmds) && cmds[j].Kind == LineToCmd {
				j++
			}

			pts := make([]Point, 0, j-i+1)
			pts = append(pts, pos)
			for k := i; k < j; k++ {
				pts = append(pts, cmds[k].P)
			}
			for _, p := range douglasPeucker(pts, tolerance)[1:] {
				out = append(out, Command{Kind: LineToCmd, P: p})
			}
			pos = pts[len(pts)-1]
			i = j
			continue
		}

		switch cmd.Kind {
		case MoveToCmd:
			pos = cmd.P
			start = cmd.P
		case CubicToCmd:
			pos = cmd.P
		case CloseCmd:
			pos = start
		}
		out = append(out, cmd)
		i++
	}
	return out
}

// douglasPeucker recursively splits the polyline at the point farthest from
// the chord between its end points, dropping all interior points once they
// deviate at most tolerance. The end points always survive.
func douglasPeucker(pts []Point, tolerance float64) []Point {
	if len(pts) < 3 {
		return pts
	}

	dmax, idx := 0.0, 0
	for i := 1; i < len(pts)-1; i++ {
		if d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1]); dmax < d {
			dmax, idx = d, i
		}
	}
	if dmax <= tolerance {
		return []Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:idx+1], tolerance)
	right := douglasPeucker(pts[idx:], tolerance)
	return append(left[:len(left):len(left)], right[1:]...)
}
