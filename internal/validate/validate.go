package validate

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/woozymasta/geoconv/internal/geo"
)

// CodeMissingGeometry is reported for features without any geometry.
const CodeMissingGeometry Code = "missing_geometry"

// Minimum vertex counts.
const (
	MinRingVertices = 4
	MinLineVertices = 2
)

// Options tune a Validator. Zero fields take the defaults.
type Options struct {
	MaxDepth          int // recursion bound of coordinate walks, default 10
	PrecisionDigits   int // fraction digits allowed before a warning, default 10
	MaxListedFindings int // findings listed in the summary, default 5
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = geo.DefaultMaxDepth
	}
	if o.PrecisionDigits <= 0 {
		o.PrecisionDigits = 10
	}
	if o.MaxListedFindings <= 0 {
		o.MaxListedFindings = 5
	}
	return o
}

// Validator runs the checks. It holds no state between runs.
type Validator struct {
	opts Options
}

// New returns a Validator with opts applied over the defaults.
func New(opts Options) *Validator {
	return &Validator{opts: opts.withDefaults()}
}

// Validate runs the checks with default options.
func Validate(d *geo.Document) *Report {
	return New(Options{}).Validate(d)
}

// Validate checks every feature of d. Findings never stop the run.
func (v *Validator) Validate(d *geo.Document) *Report {
	run := &run{opts: v.opts}
	for i, f := range d.Features() {
		run.feature = i + 1
		run.check(f.Geometry)
	}
	return newReport(run.issues, run.warnings, v.opts.MaxListedFindings)
}

type run struct {
	issues   []Finding
	warnings []Finding
	opts     Options
	feature  int
}

func (r *run) issue(code Code, format string, args ...any) {
	r.issues = append(r.issues, Finding{
		Code:    code,
		Feature: r.feature,
		Message: fmt.Sprintf("feature %d: ", r.feature) + fmt.Sprintf(format, args...),
	})
}

func (r *run) warn(code Code, format string, args ...any) {
	r.warnings = append(r.warnings, Finding{
		Code:    code,
		Feature: r.feature,
		Message: fmt.Sprintf("feature %d: ", r.feature) + fmt.Sprintf(format, args...),
	})
}

func (r *run) check(g orb.Geometry) {
	if g == nil {
		r.issue(CodeMissingGeometry, "missing geometry")
		return
	}

	r.checkStructure(g, 0)
	r.checkCoordinates(g)
	r.checkArea(g)
}

// checkStructure covers ring rules, self-intersection and line vertex counts.
func (r *run) checkStructure(g orb.Geometry, depth int) {
	if depth > r.opts.MaxDepth {
		return
	}

	switch g := g.(type) {
	case orb.Polygon:
		r.checkPolygon(g, "polygon")
	case orb.MultiPolygon:
		for i, p := range g {
			r.checkPolygon(p, "polygon "+strconv.Itoa(i+1))
		}
	case orb.LineString:
		r.checkLine(g, "line")
	case orb.MultiLineString:
		for i, ls := range g {
			r.checkLine(ls, "line "+strconv.Itoa(i+1))
		}
	case orb.Collection:
		for _, c := range g {
			r.checkStructure(c, depth+1)
		}
	}
}

func (r *run) checkPolygon(p orb.Polygon, name string) {
	for i, ring := range p {
		switch {
		case len(ring) < MinRingVertices:
			r.issue(CodeInsufficientVertices,
				"%s ring %d has insufficient vertices (%d, need at least %d)",
				name, i+1, len(ring), MinRingVertices)
		case !geo.RingClosed(ring):
			r.issue(CodeRingUnclosed, "%s ring %d is unclosed", name, i+1)
		}
	}

	if selfIntersects(p) {
		r.issue(CodeSelfIntersection, "%s self-intersects", name)
	}
}

func (r *run) checkLine(ls orb.LineString, name string) {
	if len(ls) < MinLineVertices {
		r.issue(CodeInsufficientVertices,
			"%s has insufficient vertices (%d, need at least %d)",
			name, len(ls), MinLineVertices)
	}
}

func (r *run) checkCoordinates(g orb.Geometry) {
	geo.Walk(g, r.opts.MaxDepth, func(p orb.Point) {
		lng, lat := p[0], p[1]

		if !geo.ValidLongitude(lng) {
			r.issue(CodeLongitudeRange, "longitude out of range: %v", lng)
		}
		if !geo.ValidLatitude(lat) {
			r.issue(CodeLatitudeRange, "latitude out of range: %v", lat)
		}

		if geo.FractionDigits(lng) > r.opts.PrecisionDigits {
			r.warn(CodeExcessivePrecision, "longitude precision too high, may affect performance: %v", lng)
		}
		if geo.FractionDigits(lat) > r.opts.PrecisionDigits {
			r.warn(CodeExcessivePrecision, "latitude precision too high, may affect performance: %v", lat)
		}
	})
}

func (r *run) checkArea(g orb.Geometry) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return
	}

	if orbgeo.Area(g) == 0 {
		r.warn(CodeZeroArea, "area is zero, geometry may be degenerate")
	}
}
