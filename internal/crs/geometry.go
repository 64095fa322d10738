package crs

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/geo"
)

// Transform converts a single coordinate.
func Transform(p orb.Point, from, to CRS) orb.Point {
	lng, lat := TransformCoord(p[0], p[1], from, to)
	return orb.Point{lng, lat}
}

// TransformGeometry returns a copy of g with every coordinate converted.
func TransformGeometry(g orb.Geometry, from, to CRS) orb.Geometry {
	fn := resolve(from, to)
	return geo.MapPoints(g, func(p orb.Point) orb.Point {
		lng, lat := fn(p[0], p[1])
		return orb.Point{lng, lat}
	})
}

// TransformDocument returns a copy of d with every feature geometry
// converted. Properties are copied unchanged.
func TransformDocument(d *geo.Document, from, to CRS) *geo.Document {
	fn := resolve(from, to)
	return d.Map(func(_ int, f *geojson.Feature) *geojson.Feature {
		out := geo.CloneFeature(f)
		out.BBox = nil
		out.Geometry = geo.MapPoints(f.Geometry, func(p orb.Point) orb.Point {
			lng, lat := fn(p[0], p[1])
			return orb.Point{lng, lat}
		})
		return out
	})
}

// resolve picks the scalar conversion once for a whole walk, so an
// unsupported pair is logged once rather than per coordinate.
func resolve(from, to CRS) Func {
	if from == to {
		return identity
	}
	fn, ok := Lookup(from, to)
	if !ok {
		log.Warn().
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("Unsupported coordinate conversion, keeping input")
		return identity
	}
	return fn
}

func identity(lng, lat float64) (float64, float64) {
	return lng, lat
}
