package validate

import (
	"math"

	"github.com/paulmach/orb"
)

type segment struct {
	a, b  orb.Point
	ring  int
	index int
}

// selfIntersects reports whether any two non-adjacent edges of p cross,
// overlap, or touch with an endpoint inside the other edge. Within one ring
// non-adjacent edges may not share a vertex either, so a pinched ring counts.
// Rings may still meet each other at a single vertex. Zero-length edges from
// repeated vertices are skipped.
func selfIntersects(p orb.Polygon) bool {
	var segs []segment
	edges := make([]int, len(p))
	for ri, ring := range p {
		for i := 0; i+1 < len(ring); i++ {
			if ring[i] == ring[i+1] {
				continue
			}
			segs = append(segs, segment{a: ring[i], b: ring[i+1], ring: ri, index: edges[ri]})
			edges[ri]++
		}
	}

	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			s, t := segs[i], segs[j]
			if s.ring == t.ring {
				if t.index == s.index+1 || (s.index == 0 && t.index == edges[s.ring]-1) {
					continue
				}
				if sharesVertex(s, t) {
					return true
				}
			}
			if intersects(s.a, s.b, t.a, t.b) {
				return true
			}
		}
	}

	return false
}

func sharesVertex(s, t segment) bool {
	return s.a == t.a || s.a == t.b || s.b == t.a || s.b == t.b
}

func orient(a, b, c orb.Point) int {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func intersects(p1, p2, q1, q2 orb.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	if d1 == 0 && d2 == 0 && d3 == 0 && d4 == 0 {
		return collinearOverlap(p1, p2, q1, q2)
	}

	return touchesInterior(p1, q1, q2, d1) ||
		touchesInterior(p2, q1, q2, d2) ||
		touchesInterior(q1, p1, p2, d3) ||
		touchesInterior(q2, p1, p2, d4)
}

// touchesInterior reports whether collinear point p lies strictly inside a-b.
func touchesInterior(p, a, b orb.Point, d int) bool {
	if d != 0 || p == a || p == b {
		return false
	}
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

// collinearOverlap reports whether two collinear segments share more than a point.
func collinearOverlap(p1, p2, q1, q2 orb.Point) bool {
	axis := 0
	if math.Abs(p2[0]-p1[0])+math.Abs(q2[0]-q1[0]) < math.Abs(p2[1]-p1[1])+math.Abs(q2[1]-q1[1]) {
		axis = 1
	}
	lo := math.Max(math.Min(p1[axis], p2[axis]), math.Min(q1[axis], q2[axis]))
	hi := math.Min(math.Max(p1[axis], p2[axis]), math.Max(q1[axis], q2[axis]))
	return hi > lo
}
