package geo

import "github.com/paulmach/orb"

// DefaultMaxDepth bounds recursion over nested geometries.
const DefaultMaxDepth = 10

// Walk calls fn for every terminal coordinate of g in document order.
// Nesting deeper than maxDepth is not visited.
func Walk(g orb.Geometry, maxDepth int, fn func(p orb.Point)) {
	walk(g, 0, maxDepth, fn)
}

func walk(g orb.Geometry, depth, maxDepth int, fn func(p orb.Point)) {
	if g == nil || depth > maxDepth {
		return
	}

	switch g := g.(type) {
	case orb.Point:
		fn(g)
	case orb.MultiPoint:
		for _, p := range g {
			fn(p)
		}
	case orb.LineString:
		for _, p := range g {
			fn(p)
		}
	case orb.Ring:
		for _, p := range g {
			fn(p)
		}
	case orb.MultiLineString:
		for _, ls := range g {
			walk(ls, depth+1, maxDepth, fn)
		}
	case orb.Polygon:
		for _, r := range g {
			walk(r, depth+1, maxDepth, fn)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			walk(p, depth+1, maxDepth, fn)
		}
	case orb.Collection:
		for _, c := range g {
			walk(c, depth+1, maxDepth, fn)
		}
	case orb.Bound:
		walk(g.ToRing(), depth+1, maxDepth, fn)
	}
}

// MapPoints returns a copy of g with fn applied to every coordinate.
// Nesting and ring closure are kept as they are in g. Members nested deeper
// than DefaultMaxDepth, which Walk does not visit, become empty collections.
func MapPoints(g orb.Geometry, fn func(p orb.Point) orb.Point) orb.Geometry {
	return mapPoints(g, 0, fn)
}

func mapPoints(g orb.Geometry, depth int, fn func(p orb.Point) orb.Point) orb.Geometry {
	if g != nil && depth > DefaultMaxDepth {
		return orb.Collection{}
	}

	switch g := g.(type) {
	case nil:
		return nil
	case orb.Point:
		return fn(g)
	case orb.MultiPoint:
		return mapSlice(g, fn)
	case orb.LineString:
		return mapSlice(g, fn)
	case orb.Ring:
		return mapSlice(g, fn)
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = mapSlice(ls, fn)
		}
		return out
	case orb.Polygon:
		return mapPolygon(g, fn)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = mapPolygon(p, fn)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, c := range g {
			out[i] = mapPoints(c, depth+1, fn)
		}
		return out
	case orb.Bound:
		return mapPoints(g.ToPolygon(), depth, fn)
	}
	return orb.Clone(g)
}

func mapPolygon(p orb.Polygon, fn func(orb.Point) orb.Point) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = mapSlice(r, fn)
	}
	return out
}

func mapSlice[S ~[]orb.Point](in S, fn func(orb.Point) orb.Point) S {
	if in == nil {
		return nil
	}
	out := make(S, len(in))
	for i, p := range in {
		out[i] = fn(p)
	}
	return out
}

// CountVertices returns the number of terminal coordinates in g.
func CountVertices(g orb.Geometry) int {
	n := 0
	Walk(g, DefaultMaxDepth, func(orb.Point) { n++ })
	return n
}

// CountDocumentVertices sums CountVertices over every feature of d.
func CountDocumentVertices(d *Document) int {
	n := 0
	for _, f := range d.Features() {
		n += CountVertices(f.Geometry)
	}
	return n
}
