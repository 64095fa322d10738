package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geoconv/internal/geo"
)

func TestMarshalYAMLFollowsGeoJSON(t *testing.T) {
	doc := geo.NewGeometryDocument(orb.Point{1.5, 2})

	data, err := marshal(doc, "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "Point", got["type"])
	assert.Equal(t, []any{1.5, 2}, got["coordinates"])
}

func TestMarshalJSON(t *testing.T) {
	data, err := marshal(geo.NewGeometryDocument(orb.Point{1, 2}), "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, string(data))
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wkt")
	opts.Output = path
	t.Cleanup(func() { opts.Output = "" })

	require.NoError(t, writeOutput([]byte("POINT(1 2)")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "POINT(1 2)", string(data))
}
