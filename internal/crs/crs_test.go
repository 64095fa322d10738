package crs

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geoconv/internal/geo"
)

const tiananmenLng, tiananmenLat = 116.397128, 39.909187

func TestParse(t *testing.T) {
	for _, c := range All {
		got, err := Parse(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	for _, bad := range []string{"wgs84", "Gcj02", "EPSG:4326", ""} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnknownCRS, bad)
	}
}

func TestIdentity(t *testing.T) {
	coords := []orb.Point{{tiananmenLng, tiananmenLat}, {-73.98, 40.75}, {0, 0}, {180, -90}}
	for _, c := range All {
		for _, p := range coords {
			assert.Equal(t, p, Transform(p, c, c))
		}
	}
}

func TestUnsupportedPairKeepsInput(t *testing.T) {
	lng, lat := TransformCoord(tiananmenLng, tiananmenLat, WGS84, CRS("EPSG:3857"))
	assert.Equal(t, tiananmenLng, lng)
	assert.Equal(t, tiananmenLat, lat)
}

func TestOutOfChinaPassthrough(t *testing.T) {
	coords := []orb.Point{
		{-73.985, 40.758},  // New York
		{2.2945, 48.8584},  // Paris
		{72.003, 30},       // just west of the box
		{137.8348, 35},     // just east
		{100, 0.8292},      // just south
		{100, 55.8272},     // just north
		{151.2153, -33.85}, // Sydney
	}
	for _, p := range coords {
		assert.Equal(t, p, Transform(p, WGS84, GCJ02))
		assert.Equal(t, p, Transform(p, GCJ02, WGS84))
	}
}

func TestWGS84ToGCJ02(t *testing.T) {
	lng, lat := TransformCoord(tiananmenLng, tiananmenLat, WGS84, GCJ02)

	assert.InDelta(t, 116.40337155801187, lng, 1e-9)
	assert.InDelta(t, 39.910590435851866, lat, 1e-9)
	assert.InDelta(t, 0.0062, lng-tiananmenLng, 0.0005)
	assert.InDelta(t, 0.0014, lat-tiananmenLat, 0.0005)
}

func TestGCJ02RoundTripResidual(t *testing.T) {
	gLng, gLat := WGS84ToGCJ02(tiananmenLng, tiananmenLat)
	wLng, wLat := GCJ02ToWGS84(gLng, gLat)

	assert.InDelta(t, 116.39712753144045, wLng, 1e-9)
	assert.InDelta(t, 39.90918631157631, wLat, 1e-9)
	// first-order inverse: close, but not exact
	assert.NotEqual(t, tiananmenLng, wLng)
	assert.InDelta(t, tiananmenLng, wLng, 1e-5)
	assert.InDelta(t, tiananmenLat, wLat, 1e-5)
}

func TestBD09(t *testing.T) {
	gLng, gLat := WGS84ToGCJ02(tiananmenLng, tiananmenLat)

	bLng, bLat := GCJ02ToBD09(gLng, gLat)
	assert.InDelta(t, 116.40974372522808, bLng, 1e-9)
	assert.InDelta(t, 39.91693080302473, bLat, 1e-9)

	backLng, backLat := BD09ToGCJ02(bLng, bLat)
	assert.InDelta(t, gLng, backLng, 1e-6)
	assert.InDelta(t, gLat, backLat, 1e-6)
}

func TestComposedConversionsAreExact(t *testing.T) {
	coords := []orb.Point{{tiananmenLng, tiananmenLat}, {121.499763, 31.239666}, {-73.98, 40.75}}
	for _, p := range coords {
		viaGCJ := Transform(p, WGS84, GCJ02)
		bLng, bLat := GCJ02ToBD09(viaGCJ[0], viaGCJ[1])
		assert.Equal(t, orb.Point{bLng, bLat}, Transform(p, WGS84, BD09))

		g := Transform(p, BD09, GCJ02)
		wLng, wLat := GCJ02ToWGS84(g[0], g[1])
		assert.Equal(t, orb.Point{wLng, wLat}, Transform(p, BD09, WGS84))
	}
}

func TestTransformDocument(t *testing.T) {
	ring := orb.Ring{{116.39, 39.90}, {116.40, 39.90}, {116.40, 39.91}, {116.39, 39.90}}
	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["name"] = "square"
	doc := geo.NewCollectionDocument(f, geojson.NewFeature(orb.Point{2.2945, 48.8584}))

	out := TransformDocument(doc, WGS84, GCJ02)

	require.Len(t, out.Collection.Features, 2)
	poly := out.Collection.Features[0].Geometry.(orb.Polygon)
	require.Len(t, poly, 1)
	require.Len(t, poly[0], 4)
	assert.True(t, geo.RingClosed(poly[0]))
	assert.Equal(t, Transform(ring[1], WGS84, GCJ02), poly[0][1])
	assert.Equal(t, "square", out.Collection.Features[0].Properties["name"])
	assert.Equal(t, orb.Point{2.2945, 48.8584}, out.Collection.Features[1].Geometry)

	// input untouched
	assert.Equal(t, orb.Point{116.39, 39.90}, doc.Collection.Features[0].Geometry.(orb.Polygon)[0][0])
}

func TestTransformGeometryCollection(t *testing.T) {
	g := orb.Collection{
		orb.Point{tiananmenLng, tiananmenLat},
		orb.MultiLineString{{{116.3, 39.9}, {116.4, 39.95}}},
	}

	out := TransformGeometry(g, WGS84, BD09).(orb.Collection)

	require.Len(t, out, 2)
	assert.Equal(t, Transform(orb.Point{tiananmenLng, tiananmenLat}, WGS84, BD09), out[0])
	assert.Len(t, out[1].(orb.MultiLineString)[0], 2)
}
