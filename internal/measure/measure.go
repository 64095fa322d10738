// Package measure computes per-feature statistics of geometry documents.
package measure

import (
	"errors"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"github.com/woozymasta/geoconv/internal/geo"
)

// Stats describes one feature. Area is reported for polygonal geometries
// and Length for linear ones, both on the WGS84 sphere.
type Stats struct {
	Type     string    `json:"type" yaml:"type"`
	BBox     []float64 `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Centroid orb.Point `json:"centroid" yaml:"centroid"`
	Feature  int       `json:"feature" yaml:"feature"`
	Vertices int       `json:"vertices" yaml:"vertices"`
	Area     float64   `json:"area_m2,omitempty" yaml:"area_m2,omitempty"`
	Length   float64   `json:"length_m,omitempty" yaml:"length_m,omitempty"`
}

// Summary aggregates the statistics of a document.
type Summary struct {
	BBox     []float64 `json:"bbox,omitempty" yaml:"bbox,omitempty"`
	Features []Stats   `json:"features" yaml:"features"`
	Vertices int       `json:"vertices" yaml:"vertices"`
	Area     float64   `json:"area_m2" yaml:"area_m2"`
	Length   float64   `json:"length_m" yaml:"length_m"`
}

// Document measures every feature of d in order.
func Document(d *geo.Document) *Summary {
	s := &Summary{}

	var (
		bound orb.Bound
		seen  bool
	)

	for i, f := range d.Features() {
		st := Geometry(f.Geometry)
		st.Feature = i + 1
		s.Features = append(s.Features, st)

		s.Vertices += st.Vertices
		s.Area += st.Area
		s.Length += st.Length

		if st.Vertices == 0 {
			continue
		}
		if !seen {
			bound, seen = f.Geometry.Bound(), true
		} else {
			bound = bound.Union(f.Geometry.Bound())
		}
	}

	if seen {
		s.BBox = bbox(bound)
	}
	return s
}

// Geometry measures a single geometry. A nil geometry yields type "none".
func Geometry(g orb.Geometry) Stats {
	if g == nil {
		return Stats{Type: "none"}
	}

	st := Stats{
		Type:     g.GeoJSONType(),
		Vertices: geo.CountVertices(g),
	}
	if st.Vertices == 0 {
		return st
	}

	st.BBox = bbox(g.Bound())
	st.Centroid, _ = planar.CentroidArea(g)

	switch g.Dimensions() {
	case 1:
		st.Length = orbgeo.Length(g)
	case 2:
		st.Area = orbgeo.Area(g)
	}

	return st
}

func bbox(b orb.Bound) []float64 {
	return []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}

// ErrTooFewFeatures is returned by Distances for fewer than two measurable features.
var ErrTooFewFeatures = errors.New("at least two features with geometry are needed")

// Distance is the great-circle distance between the centroids of two
// features, identified by their 1-based index.
type Distance struct {
	From   int     `json:"from" yaml:"from"`
	To     int     `json:"to" yaml:"to"`
	Meters float64 `json:"meters" yaml:"meters"`
}

// Distances measures every pair of features in document order. Features
// without coordinates are skipped.
func Distances(d *geo.Document) ([]Distance, error) {
	type center struct {
		p     orb.Point
		index int
	}

	var centers []center
	for i, f := range d.Features() {
		if geo.CountVertices(f.Geometry) == 0 {
			continue
		}
		c, _ := planar.CentroidArea(f.Geometry)
		centers = append(centers, center{p: c, index: i + 1})
	}
	if len(centers) < 2 {
		return nil, ErrTooFewFeatures
	}

	out := make([]Distance, 0, len(centers)*(len(centers)-1)/2)
	for i := 0; i < len(centers)-1; i++ {
		for j := i + 1; j < len(centers); j++ {
			out = append(out, Distance{
				From:   centers[i].index,
				To:     centers[j].index,
				Meters: orbgeo.DistanceHaversine(centers[i].p, centers[j].p),
			})
		}
	}
	return out, nil
}
