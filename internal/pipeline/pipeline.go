// Package pipeline binds configuration to the conversion, transform,
// validation, simplification and measuring components. Both binaries
// go through it.
package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/config"
	"github.com/woozymasta/geoconv/internal/crs"
	"github.com/woozymasta/geoconv/internal/geo"
	"github.com/woozymasta/geoconv/internal/measure"
	"github.com/woozymasta/geoconv/internal/simplify"
	"github.com/woozymasta/geoconv/internal/validate"
	"github.com/woozymasta/geoconv/internal/wkt"
)

// Pipeline is safe for concurrent use; it keeps no per-call state.
type Pipeline struct {
	cfg       *config.Config
	parser    wkt.Parser
	validator *validate.Validator
}

// New builds a pipeline from cfg. A nil cfg means the defaults.
func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Pipeline{
		cfg:    cfg,
		parser: wkt.Parser{Source: cfg.Source},
		validator: validate.New(validate.Options{
			MaxDepth:          cfg.MaxDepth,
			PrecisionDigits:   cfg.PrecisionDigits,
			MaxListedFindings: cfg.MaxReportedIssues,
		}),
	}
}

// WithClock returns a copy whose parser stamps features with now.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	c := *p
	c.parser.Now = now
	return &c
}

// Config returns the configuration in use.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// ToWKT converts a structured record to annotated linear notation.
func (p *Pipeline) ToWKT(data []byte) (string, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return "", err
	}
	return wkt.Encode(doc)
}

// ToGeoJSON parses linear notation. Lines that fail are listed in the
// result and do not fail the call unless nothing parsed.
func (p *Pipeline) ToGeoJSON(text string) (*wkt.Result, error) {
	return p.parser.Parse(text)
}

// Validate decodes and checks a structured record.
func (p *Pipeline) Validate(data []byte) (*validate.Report, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}
	return p.validator.Validate(doc), nil
}

// Simplify decodes and simplifies a structured record. A nil tolerance
// selects the configured default.
func (p *Pipeline) Simplify(data []byte, tolerance *float64) (*geo.Document, simplify.Stats, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return nil, simplify.Stats{}, err
	}

	tol := p.cfg.Tolerance
	if tolerance != nil {
		tol = *tolerance
	}

	out, stats, err := simplify.Document(doc, tol)
	if err != nil {
		return nil, stats, err
	}

	log.Info().
		Float64("tolerance", tol).
		Int("original", stats.Original).
		Int("simplified", stats.Simplified).
		Str("reduction", stats.String()).
		Msg("Geometry simplified")

	return out, stats, nil
}

// Transform decodes a structured record and converts its coordinates.
// Empty from or to select the configured defaults.
func (p *Pipeline) Transform(data []byte, from, to string) (*geo.Document, error) {
	src, dst, err := p.pair(from, to)
	if err != nil {
		return nil, err
	}

	doc, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}
	return crs.TransformDocument(doc, src, dst), nil
}

func (p *Pipeline) pair(from, to string) (crs.CRS, crs.CRS, error) {
	src, dst := p.cfg.CRS.From, p.cfg.CRS.To

	var err error
	if from != "" {
		if src, err = crs.Parse(from); err != nil {
			return "", "", err
		}
	}
	if to != "" {
		if dst, err = crs.Parse(to); err != nil {
			return "", "", err
		}
	}
	return src, dst, nil
}

// Measure decodes a structured record and computes its statistics.
func (p *Pipeline) Measure(data []byte) (*measure.Summary, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}
	return measure.Document(doc), nil
}

// Distances decodes a structured record and measures the distance between
// the centroids of every pair of features.
func (p *Pipeline) Distances(data []byte) ([]measure.Distance, error) {
	doc, err := geo.Decode(data)
	if err != nil {
		return nil, err
	}
	return measure.Distances(doc)
}
