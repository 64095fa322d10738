// Package simplify reduces the vertex count of geometry documents with the
// Douglas-Peucker algorithm.
package simplify

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	orbsimplify "github.com/paulmach/orb/simplify"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/geo"
)

// Conventional tolerance range in degrees. Values outside are accepted.
const (
	MinTolerance = 0.0001
	MaxTolerance = 0.1
)

var (
	ErrTolerance  = errors.New("tolerance must be a positive number")
	ErrDegenerate = errors.New("simplified geometry is degenerate")
)

// Stats reports vertex counts before and after simplification.
type Stats struct {
	Original   int `json:"original" yaml:"original"`
	Simplified int `json:"simplified" yaml:"simplified"`
	Failed     int `json:"failed" yaml:"failed"`
}

// Reduction is the share of removed vertices in percent, zero for empty input.
func (s Stats) Reduction() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Original-s.Simplified) / float64(s.Original) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf("vertices reduced from %d to %d (%.1f%%)", s.Original, s.Simplified, s.Reduction())
}

// Document simplifies each feature of d independently and returns a new
// document of the same shape. A feature that cannot be simplified is kept
// unchanged.
func Document(d *geo.Document, tolerance float64) (*geo.Document, Stats, error) {
	if !(tolerance > 0) {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrTolerance, tolerance)
	}
	if tolerance < MinTolerance || tolerance > MaxTolerance {
		log.Debug().
			Float64("tolerance", tolerance).
			Msg("Tolerance outside the conventional range")
	}

	var stats Stats
	simplifier := orbsimplify.DouglasPeucker(tolerance)

	out := d.Map(func(i int, f *geojson.Feature) *geojson.Feature {
		before := geo.CountVertices(f.Geometry)
		stats.Original += before

		res := geo.CloneFeature(f)
		g, err := Geometry(simplifier, f.Geometry)
		if err != nil {
			log.Warn().
				Err(err).
				Int("feature", i+1).
				Str("type", typeName(f.Geometry)).
				Msg("Simplification failed, keeping original geometry")
			stats.Failed++
			stats.Simplified += before
			return res
		}

		res.Geometry = g
		res.BBox = nil
		stats.Simplified += geo.CountVertices(g)
		return res
	})

	return out, stats, nil
}

// Simplifier is implemented by the orb simplifiers.
type Simplifier interface {
	Simplify(g orb.Geometry) orb.Geometry
}

// Geometry simplifies a copy of g. It fails for a nil input and for results
// that lost their shape, dropped a ring or gained vertices.
func Geometry(s Simplifier, g orb.Geometry) (res orb.Geometry, err error) {
	if g == nil {
		return nil, ErrDegenerate
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("simplify %s: %v", g.GeoJSONType(), r)
		}
	}()

	res = s.Simplify(orb.Clone(g))
	if res == nil || degenerate(res) {
		return nil, ErrDegenerate
	}
	if !sameRings(g, res) {
		return nil, fmt.Errorf("%w: ring dropped", ErrDegenerate)
	}
	if geo.CountVertices(res) > geo.CountVertices(g) {
		return nil, fmt.Errorf("%w: vertex count grew", ErrDegenerate)
	}

	return res, nil
}

func degenerate(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.LineString:
		return len(g) < 2
	case orb.MultiLineString:
		if len(g) == 0 {
			return true
		}
		for _, ls := range g {
			if degenerate(ls) {
				return true
			}
		}
	case orb.Ring:
		return len(g) < 4
	case orb.Polygon:
		if len(g) == 0 {
			return true
		}
		for _, r := range g {
			if degenerate(r) {
				return true
			}
		}
	case orb.MultiPolygon:
		if len(g) == 0 {
			return true
		}
		for _, p := range g {
			if degenerate(p) {
				return true
			}
		}
	case orb.Collection:
		for _, c := range g {
			if c == nil || degenerate(c) {
				return true
			}
		}
	}
	return false
}

// sameRings reports whether every polygon of b has as many rings as the
// matching polygon of a.
func sameRings(a, b orb.Geometry) bool {
	switch a := a.(type) {
	case orb.Polygon:
		bp, ok := b.(orb.Polygon)
		return ok && len(a) == len(bp)
	case orb.MultiPolygon:
		bm, ok := b.(orb.MultiPolygon)
		if !ok || len(a) != len(bm) {
			return false
		}
		for i := range a {
			if len(a[i]) != len(bm[i]) {
				return false
			}
		}
	case orb.Collection:
		bc, ok := b.(orb.Collection)
		if !ok || len(a) != len(bc) {
			return false
		}
		for i := range a {
			if !sameRings(a[i], bc[i]) {
				return false
			}
		}
	}
	return true
}

func typeName(g orb.Geometry) string {
	if g == nil {
		return "none"
	}
	return g.GeoJSONType()
}
