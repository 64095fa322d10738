package geo

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property keys written into features created by the pipeline.
const (
	PropID      = "id"
	PropCreated = "created"
	PropSource  = "source"
)

// CreatedLayout is the timestamp format of the "created" property.
const CreatedLayout = "2006-01-02T15:04:05.000Z07:00"

// Metadata describes where a synthesized feature came from.
// ID is 1-based; zero means the feature carries no index.
type Metadata struct {
	Created time.Time
	Source  string
	ID      int
}

// NewFeature wraps g into a feature whose properties hold the metadata.
func NewFeature(g orb.Geometry, m Metadata) *geojson.Feature {
	f := geojson.NewFeature(g)
	if m.ID > 0 {
		f.Properties[PropID] = m.ID
	}
	f.Properties[PropCreated] = m.Created.UTC().Format(CreatedLayout)
	if m.Source != "" {
		f.Properties[PropSource] = m.Source
	}
	return f
}
