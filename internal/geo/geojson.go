// Package geo handles the shared geometry document model and its
// structured (GeoJSON) representation.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"
)

// Geometry and container type names as they appear in the "type" member.
const (
	TypePoint              = "Point"
	TypeLineString         = "LineString"
	TypePolygon            = "Polygon"
	TypeMultiPoint         = "MultiPoint"
	TypeMultiLineString    = "MultiLineString"
	TypeMultiPolygon       = "MultiPolygon"
	TypeGeometryCollection = "GeometryCollection"
	TypeFeature            = "Feature"
	TypeFeatureCollection  = "FeatureCollection"
)

var (
	ErrMalformed       = errors.New("malformed record")
	ErrEmpty           = errors.New("empty object")
	ErrMissingType     = errors.New("missing type member")
	ErrUnknownType     = errors.New("unknown type")
	ErrMissingFeatures = errors.New("FeatureCollection must contain a features array")
	ErrMissingGeometry = errors.New("feature has no valid geometry")
)

// Kind tells which top-level shape a Document carries.
type Kind int

const (
	KindGeometry Kind = iota
	KindFeature
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "Geometry"
	case KindFeature:
		return TypeFeature
	case KindCollection:
		return TypeFeatureCollection
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Document is one pipeline payload: a bare geometry, a single feature,
// or an ordered feature collection. Exactly one of the fields matching Kind is set.
type Document struct {
	Geometry   orb.Geometry
	Feature    *geojson.Feature
	Collection *geojson.FeatureCollection
	Kind       Kind
}

// NewGeometryDocument wraps a bare geometry.
func NewGeometryDocument(g orb.Geometry) *Document {
	return &Document{Kind: KindGeometry, Geometry: g}
}

// NewFeatureDocument wraps a single feature.
func NewFeatureDocument(f *geojson.Feature) *Document {
	return &Document{Kind: KindFeature, Feature: f}
}

// NewCollectionDocument wraps features into a collection, keeping their order.
func NewCollectionDocument(features ...*geojson.Feature) *Document {
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, features...)
	return &Document{Kind: KindCollection, Collection: fc}
}

// IsGeometryType reports whether name is one of the seven geometry tags.
func IsGeometryType(name string) bool {
	switch name {
	case TypePoint, TypeLineString, TypePolygon,
		TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon,
		TypeGeometryCollection:
		return true
	}
	return false
}

// Features returns the features of the document in order.
// A bare geometry is presented as a single feature without properties.
func (d *Document) Features() []*geojson.Feature {
	switch d.Kind {
	case KindFeature:
		return []*geojson.Feature{d.Feature}
	case KindCollection:
		return d.Collection.Features
	default:
		return []*geojson.Feature{geojson.NewFeature(d.Geometry)}
	}
}

// Map builds a new document of the same shape, replacing each feature with
// the result of fn. The receiver is not modified.
func (d *Document) Map(fn func(i int, f *geojson.Feature) *geojson.Feature) *Document {
	switch d.Kind {
	case KindFeature:
		return NewFeatureDocument(fn(0, d.Feature))
	case KindCollection:
		out := make([]*geojson.Feature, 0, len(d.Collection.Features))
		for i, f := range d.Collection.Features {
			out = append(out, fn(i, f))
		}
		doc := NewCollectionDocument(out...)
		doc.Collection.ExtraMembers = d.Collection.ExtraMembers.Clone()
		return doc
	default:
		f := fn(0, geojson.NewFeature(d.Geometry))
		return NewGeometryDocument(f.Geometry)
	}
}

// Clone returns a deep copy of geometries and a shallow copy of property maps.
func (d *Document) Clone() *Document {
	return d.Map(func(_ int, f *geojson.Feature) *geojson.Feature {
		return CloneFeature(f)
	})
}

// CloneFeature copies a feature so that the copy shares no geometry
// or property map with the original.
func CloneFeature(f *geojson.Feature) *geojson.Feature {
	out := geojson.NewFeature(nil)
	out.ID = f.ID
	out.BBox = append(geojson.BBox(nil), f.BBox...)
	if f.Geometry != nil {
		out.Geometry = orb.Clone(f.Geometry)
	}
	out.Properties = f.Properties.Clone()
	if out.Properties == nil {
		out.Properties = geojson.Properties{}
	}
	return out
}

// MarshalJSON encodes the document in its original top-level shape.
func (d *Document) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindFeature:
		return json.Marshal(d.Feature)
	case KindCollection:
		return json.Marshal(d.Collection)
	default:
		return json.Marshal(geojson.NewGeometry(d.Geometry))
	}
}

// Decode parses a structured record. It accepts a bare geometry, a Feature
// or a FeatureCollection and rejects records that cannot be drawn at all.
func Decode(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}
	if len(root.Map()) == 0 {
		return nil, ErrEmpty
	}

	typ := root.Get("type")
	if !typ.Exists() {
		return nil, ErrMissingType
	}

	switch name := typ.String(); {
	case name == TypeFeatureCollection:
		features := root.Get("features")
		if !features.IsArray() {
			return nil, ErrMissingFeatures
		}
		for i, f := range features.Array() {
			if !f.Get("geometry.type").Exists() {
				return nil, fmt.Errorf("feature %d: %w", i+1, ErrMissingGeometry)
			}
		}
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		for _, f := range fc.Features {
			ensureProperties(f)
		}
		return &Document{Kind: KindCollection, Collection: fc}, nil

	case name == TypeFeature:
		if !root.Get("geometry.type").Exists() {
			return nil, ErrMissingGeometry
		}
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		ensureProperties(f)
		return NewFeatureDocument(f), nil

	case IsGeometryType(name):
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return NewGeometryDocument(g.Geometry()), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

func ensureProperties(f *geojson.Feature) {
	if f.Properties == nil {
		f.Properties = geojson.Properties{}
	}
}
