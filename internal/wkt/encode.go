// Package wkt converts geometry documents to and from well-known text,
// one geometry per line with "--" comment lines carrying feature details.
package wkt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orbwkt "github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/geoconv/internal/geo"
)

// CommentPrefix marks lines the parser skips.
const CommentPrefix = "--"

// ErrNoGeometry is returned when a feature to encode has no geometry.
var ErrNoGeometry = errors.New("feature has no geometry")

// Encode renders a document as text. A bare geometry becomes one block
// headed by its type, a feature one block with its properties inline, and a
// collection one numbered block per feature separated by a blank line.
func Encode(d *geo.Document) (string, error) {
	switch d.Kind {
	case geo.KindFeature:
		return encodeFeature(d.Feature, 0)

	case geo.KindCollection:
		blocks := make([]string, 0, len(d.Collection.Features))
		for i, f := range d.Collection.Features {
			block, err := encodeFeature(f, i+1)
			if err != nil {
				return "", fmt.Errorf("feature %d: %w", i+1, err)
			}
			blocks = append(blocks, block)
		}
		return strings.Join(blocks, "\n\n"), nil

	default:
		if d.Geometry == nil {
			return "", ErrNoGeometry
		}
		return CommentPrefix + " " + d.Geometry.GeoJSONType() + "\n" + orbwkt.MarshalString(d.Geometry), nil
	}
}

// encodeFeature writes one feature block; position is 1-based, zero for a
// standalone feature.
func encodeFeature(f *geojson.Feature, position int) (string, error) {
	if f == nil || f.Geometry == nil {
		return "", ErrNoGeometry
	}

	var header strings.Builder
	header.WriteString(CommentPrefix)
	typ := f.Geometry.GeoJSONType()
	if position > 0 {
		fmt.Fprintf(&header, " Feature %d (%s)", position, typ)
	} else {
		header.WriteString(" " + typ)
	}

	if len(f.Properties) > 0 {
		props, err := compactJSON(f.Properties)
		if err != nil {
			return "", fmt.Errorf("encode properties: %w", err)
		}
		header.WriteString(" " + CommentPrefix + " Properties: " + props)
	}

	return header.String() + "\n" + orbwkt.MarshalString(f.Geometry), nil
}

func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encode ends with a newline that would split the comment line
	return strings.TrimRight(buf.String(), "\n"), nil
}
