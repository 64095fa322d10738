package pipeline

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geoconv/internal/config"
	"github.com/woozymasta/geoconv/internal/crs"
	"github.com/woozymasta/geoconv/internal/geo"
	"github.com/woozymasta/geoconv/internal/measure"
	"github.com/woozymasta/geoconv/internal/simplify"
	"github.com/woozymasta/geoconv/internal/validate"
)

const feature = `{"type":"Feature","properties":{"name":"A"},"geometry":{"type":"Point","coordinates":[116.397128,39.909187]}}`

func TestToWKT(t *testing.T) {
	out, err := New(nil).ToWKT([]byte(feature))
	require.NoError(t, err)
	assert.Equal(t, "-- Point -- Properties: {\"name\":\"A\"}\nPOINT(116.397128 39.909187)", out)
}

func TestToGeoJSONUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Source = "survey"
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	res, err := New(cfg).WithClock(func() time.Time { return at }).ToGeoJSON("POINT(1 2)")
	require.NoError(t, err)

	props := res.Document.Feature.Properties
	assert.Equal(t, "survey", props[geo.PropSource])
	assert.Equal(t, "2024-05-01T08:30:00.000Z", props[geo.PropCreated])
}

func TestValidateUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PrecisionDigits = 3

	r, err := New(cfg).Validate([]byte(feature))
	require.NoError(t, err)
	assert.Equal(t, validate.StatusWithWarnings, r.Status)

	r, err = New(nil).Validate([]byte(feature))
	require.NoError(t, err)
	assert.Equal(t, validate.StatusValid, r.Status)
}

func TestDecodeErrorsSurface(t *testing.T) {
	p := New(nil)

	_, err := p.Validate([]byte(`{}`))
	assert.ErrorIs(t, err, geo.ErrEmpty)

	_, err = p.ToWKT([]byte(`{"type":"Circle"}`))
	assert.ErrorIs(t, err, geo.ErrUnknownType)

	_, err = p.Measure([]byte(`not json`))
	assert.ErrorIs(t, err, geo.ErrMalformed)
}

func TestSimplifyDefaultTolerance(t *testing.T) {
	line := `{"type":"LineString","coordinates":[[0,0],[1,0.001],[2,0],[3,0.002],[4,0]]}`

	doc, stats, err := New(nil).Simplify([]byte(line), nil)
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {4, 0}}, doc.Geometry)
	assert.Equal(t, 5, stats.Original)

	fine := 0.0001
	doc, _, err = New(nil).Simplify([]byte(line), &fine)
	require.NoError(t, err)
	assert.Len(t, doc.Geometry, 5)

	for _, bad := range []float64{0, -1} {
		_, _, err = New(nil).Simplify([]byte(line), &bad)
		assert.ErrorIs(t, err, simplify.ErrTolerance, "tolerance %v", bad)
	}
}

func TestTransform(t *testing.T) {
	p := New(nil)

	doc, err := p.Transform([]byte(feature), "", "")
	require.NoError(t, err)
	want := crs.Transform(orb.Point{116.397128, 39.909187}, crs.WGS84, crs.GCJ02)
	assert.Equal(t, want, doc.Feature.Geometry)
	assert.Equal(t, "A", doc.Feature.Properties["name"])

	doc, err = p.Transform([]byte(feature), "WGS84", "WGS84")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{116.397128, 39.909187}, doc.Feature.Geometry)

	_, err = p.Transform([]byte(feature), "wgs84", "BD09")
	assert.ErrorIs(t, err, crs.ErrUnknownCRS)
}

func TestMeasure(t *testing.T) {
	s, err := New(nil).Measure([]byte(feature))
	require.NoError(t, err)
	require.Len(t, s.Features, 1)
	assert.Equal(t, "Point", s.Features[0].Type)
}

func TestDistances(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,1]}}]}`

	got, err := New(nil).Distances([]byte(fc))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InEpsilon(t, 111319.49, got[0].Meters, 0.01)

	_, err = New(nil).Distances([]byte(feature))
	assert.ErrorIs(t, err, measure.ErrTooFewFeatures)
}
