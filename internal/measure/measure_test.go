package measure

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geoconv/internal/geo"
)

func TestPoint(t *testing.T) {
	st := Geometry(orb.Point{116.397128, 39.909187})

	assert.Equal(t, "Point", st.Type)
	assert.Equal(t, 1, st.Vertices)
	assert.Equal(t, []float64{116.397128, 39.909187, 116.397128, 39.909187}, st.BBox)
	assert.Equal(t, orb.Point{116.397128, 39.909187}, st.Centroid)
	assert.Zero(t, st.Area)
	assert.Zero(t, st.Length)
}

func TestLineLength(t *testing.T) {
	st := Geometry(orb.LineString{{0, 0}, {1, 0}})

	assert.Equal(t, 2, st.Vertices)
	assert.InEpsilon(t, 111319.49, st.Length, 0.01)
	assert.Zero(t, st.Area)
	assert.Equal(t, orb.Point{0.5, 0}, st.Centroid)
}

func TestPolygonArea(t *testing.T) {
	st := Geometry(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}})

	assert.Equal(t, 5, st.Vertices)
	assert.InEpsilon(t, 1.239e10, st.Area, 0.01)
	assert.Zero(t, st.Length)
	assert.InDelta(t, 0.5, st.Centroid[0], 1e-12)
	assert.InDelta(t, 0.5, st.Centroid[1], 1e-12)
	assert.Equal(t, []float64{0, 0, 1, 1}, st.BBox)
}

func TestMissingGeometry(t *testing.T) {
	st := Geometry(nil)
	assert.Equal(t, "none", st.Type)
	assert.Zero(t, st.Vertices)
	assert.Nil(t, st.BBox)
}

func TestDocument(t *testing.T) {
	doc := geo.NewCollectionDocument(
		geojson.NewFeature(orb.Point{2, 3}),
		geojson.NewFeature(nil),
		geojson.NewFeature(orb.LineString{{0, 0}, {1, 0}}),
		geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}),
	)

	s := Document(doc)

	require.Len(t, s.Features, 4)
	for i, st := range s.Features {
		assert.Equal(t, i+1, st.Feature)
	}
	assert.Equal(t, "none", s.Features[1].Type)
	assert.Equal(t, 8, s.Vertices)
	assert.Equal(t, []float64{0, 0, 2, 3}, s.BBox)
	assert.Equal(t, s.Features[2].Length, s.Length)
	assert.Equal(t, s.Features[3].Area, s.Area)
}

func TestBareGeometryDocument(t *testing.T) {
	s := Document(geo.NewGeometryDocument(orb.MultiPoint{{1, 1}, {3, 5}}))

	require.Len(t, s.Features, 1)
	assert.Equal(t, "MultiPoint", s.Features[0].Type)
	assert.Equal(t, []float64{1, 1, 3, 5}, s.BBox)
}

func TestDistances(t *testing.T) {
	doc := geo.NewCollectionDocument(
		geojson.NewFeature(orb.Point{0, 0}),
		geojson.NewFeature(nil),
		geojson.NewFeature(orb.Point{1, 0}),
		geojson.NewFeature(orb.Polygon{{{0, 1}, {2, 1}, {2, 3}, {0, 3}, {0, 1}}}),
	)

	got, err := Distances(doc)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].From)
	assert.Equal(t, 3, got[0].To)
	assert.InEpsilon(t, 111319.49, got[0].Meters, 0.01)

	assert.Equal(t, 1, got[1].From)
	assert.Equal(t, 4, got[1].To)
	assert.Equal(t, 3, got[2].From)
	assert.Equal(t, 4, got[2].To)
	// centroid of the square is (1, 2), straight north of feature 3
	assert.InEpsilon(t, 2*111319.49, got[2].Meters, 0.01)
}

func TestDistancesNeedTwoFeatures(t *testing.T) {
	_, err := Distances(geo.NewGeometryDocument(orb.Point{1, 1}))
	assert.ErrorIs(t, err, ErrTooFewFeatures)

	_, err = Distances(geo.NewCollectionDocument(
		geojson.NewFeature(orb.Point{1, 1}),
		geojson.NewFeature(nil),
	))
	assert.ErrorIs(t, err, ErrTooFewFeatures)
}
