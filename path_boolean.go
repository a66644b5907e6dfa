package pictor

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ringSet is the flattened outline of one input path, one ring per subpath.
// Its filled area follows the even-odd rule over the rings.
type ringSet []orb.Ring

// contains returns true if pt lies inside the set's filled area.
func (set ringSet) contains(pt orb.Point) bool {
	in := false
	for _, ring := range set {
		if planar.RingContains(ring, pt) {
			in = !in
		}
	}
	return in
}

// pathRings flattens every subpath into a polygon ring, approximating cubics
// within Tolerance. Open subpaths are treated as closed. Rings are left open,
// the wrap-around edge is implied.
func pathRings(p *PathData) ringSet {
	if p == nil {
		return nil
	}

	rings := ringSet{}
	for _, sp := range p.SubPaths {
		pts := []Point{}
		var pos Point
		for _, cmd := range sp {
			switch cmd.Kind {
			case MoveToCmd, LineToCmd:
				pts = append(pts, cmd.P)
				pos = cmd.P
			case CubicToCmd:
				pts = flattenCubic(pts, pos, cmd.C1, cmd.C2, cmd.P, Tolerance, 0)
				pos = cmd.P
			}
		}

		ring := orb.Ring{}
		for _, pt := range pts {
			if 0 < len(ring) {
				last := ring[len(ring)-1]
				if Equal(last[0], pt.X) && Equal(last[1], pt.Y) {
					continue
				}
			}
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if 1 < len(ring) {
			first, last := ring[0], ring[len(ring)-1]
			if Equal(first[0], last[0]) && Equal(first[1], last[1]) {
				ring = ring[:len(ring)-1]
			}
		}
		if 3 <= len(ring) {
			rings = append(rings, ring)
		}
	}
	return rings
}

// boolEdge is a line segment of an input outline, with owner the input index.
type boolEdge struct {
	a, b  orb.Point
	owner int
}

// segmentIntersect returns the parameters at which segments a0-a1 and b0-b1
// cross, with ok false if they are parallel or do not touch.
func segmentIntersect(a0, a1, b0, b1 orb.Point) (float64, float64, bool) {
	dax, day := a1[0]-a0[0], a1[1]-a0[1]
	dbx, dby := b1[0]-b0[0], b1[1]-b0[1]
	denom := dax*dby - day*dbx
	if math.Abs(denom) < Epsilon {
		return 0.0, 0.0, false
	}

	dx, dy := b0[0]-a0[0], b0[1]-a0[1]
	ta := (dx*dby - dy*dbx) / denom
	tb := (dx*day - dy*dax) / denom
	if ta < -Epsilon || 1.0+Epsilon < ta || tb < -Epsilon || 1.0+Epsilon < tb {
		return 0.0, 0.0, false
	}
	return ta, tb, true
}

// splitEdge splits edge a-b at every crossing with the outlines of the other
// inputs and returns the resulting sub-edges in order.
func splitEdge(a, b orb.Point, owner int, sets []ringSet) []boolEdge {
	ts := []float64{0.0, 1.0}
	for j, set := range sets {
		if j == owner {
			continue
		}
		for _, ring := range set {
			for k := range ring {
				c, d := ring[k], ring[(k+1)%len(ring)]
				if t, _, ok := segmentIntersect(a, b, c, d); ok {
					ts = append(ts, t)
				}
			}
		}
	}
	sort.Float64s(ts)

	edges := []boolEdge{}
	for i := 0; i+1 < len(ts); i++ {
		t0, t1 := ts[i], ts[i+1]
		if t1-t0 < Epsilon {
			continue
		}
		p0 := orb.Point{a[0] + (b[0]-a[0])*t0, a[1] + (b[1]-a[1])*t0}
		p1 := orb.Point{a[0] + (b[0]-a[0])*t1, a[1] + (b[1]-a[1])*t1}
		edges = append(edges, boolEdge{p0, p1, owner})
	}
	return edges
}

// stitch chains edges end to start into closed rings. Chains that dead-end
// before returning to their starting point are dropped.
func stitch(edges []boolEdge) []orb.Ring {
	type key [2]int64
	quant := func(p orb.Point) key {
		return key{int64(math.Round(p[0] * 1e6)), int64(math.Round(p[1] * 1e6))}
	}

	next := map[key][]int{}
	for i, e := range edges {
		k := quant(e.a)
		next[k] = append(next[k], i)
	}

	used := make([]bool, len(edges))
	rings := []orb.Ring{}
	for i := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		start := quant(edges[i].a)
		ring := orb.Ring{edges[i].a}
		cur := edges[i]
		closed := false
		for step := 0; step <= len(edges); step++ {
			k := quant(cur.b)
			if k == start {
				closed = true
				break
			}
			ring = append(ring, cur.b)

			found := -1
			for _, j := range next[k] {
				if !used[j] {
					found = j
					break
				}
			}
			if found < 0 {
				break
			}
			used[found] = true
			cur = edges[found]
		}
		if closed && 3 <= len(ring) {
			rings = append(rings, ring)
		}
	}
	return rings
}

// orientRings sets rings at even containment depth counter-clockwise and
// rings at odd depth clockwise, so that nested rings cut holes under the
// nonzero rule. Depth is probed at an edge midpoint, which unlike the ring's
// vertices cannot coincide with a meeting point of two rings.
func orientRings(rings []orb.Ring) {
	for i := range rings {
		pt := orb.Point{
			(rings[i][0][0] + rings[i][1][0]) / 2.0,
			(rings[i][0][1] + rings[i][1][1]) / 2.0,
		}
		depth := 0
		for j := range rings {
			if j != i && planar.RingContains(rings[j], pt) {
				depth++
			}
		}
		// Orientation assumes a closed ring, ours leave the wrap-around
		// edge implied
		closed := append(append(orb.Ring{}, rings[i]...), rings[i][0])
		ccw := closed.Orientation() == orb.CCW
		if depth%2 == 0 && !ccw || depth%2 == 1 && ccw {
			rings[i].Reverse()
		}
	}
}

// Union merges two or more paths into a single path covering their combined
// filled area, with the styling of the first input. All subpaths are
// flattened to polygon rings, the ring edges are split at every crossing
// between inputs, and the pieces that lie inside another input are discarded
// before the remainder is stitched back into closed rings. The result is nil
// when fewer than two paths are given or when no closed outline remains,
// which callers treat as a signal to keep the inputs as they are.
func Union(paths []*PathData) *PathData {
	if len(paths) < 2 {
		return nil
	}
	var style *PathData
	for _, p := range paths {
		if p != nil {
			style = p
			break
		}
	}
	if style == nil {
		return nil
	}

	sets := make([]ringSet, len(paths))
	for i, p := range paths {
		sets[i] = pathRings(p)
	}

	kept := []boolEdge{}
	for i, set := range sets {
		for _, ring := range set {
			for k := range ring {
				a, b := ring[k], ring[(k+1)%len(ring)]
				for _, e := range splitEdge(a, b, i, sets) {
					mid := orb.Point{(e.a[0] + e.b[0]) / 2.0, (e.a[1] + e.b[1]) / 2.0}
					inside := false
					for j, other := range sets {
						if j != e.owner && other.contains(mid) {
							inside = true
							break
						}
					}
					if !inside {
						kept = append(kept, e)
					}
				}
			}
		}
	}

	rings := stitch(kept)
	if len(rings) == 0 {
		return nil
	}
	orientRings(rings)

	cmds := []Command{}
	for _, ring := range rings {
		cmds = append(cmds, MoveTo(ring[0][0], ring[0][1]))
		for _, pt := range ring[1:] {
			cmds = append(cmds, LineTo(pt[0], pt[1]))
		}
		cmds = append(cmds, Close())
	}

	out := *style
	out.SetCommands(cmds)
	return &out
}
