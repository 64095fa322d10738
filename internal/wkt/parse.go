package wkt

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/paulmach/orb"
	orbwkt "github.com/paulmach/orb/encoding/wkt"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/geo"
)

// DefaultSource is the source tag of parsed features.
const DefaultSource = "WKT_conversion"

var (
	ErrNoContent     = errors.New("no WKT content")
	ErrNothingParsed = errors.New("no WKT line could be parsed")
	ErrEmptyGeometry = errors.New("empty geometry")
	ErrNonFinite     = errors.New("coordinate is not a finite number")
)

// LineError describes a line the parser could not read.
type LineError struct {
	Err  error
	Text string
	Line int // 1-based among non-comment lines
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result is a parsed document plus the lines dropped on the way.
type Result struct {
	Document *geo.Document
	Dropped  []LineError
}

// Parser turns text into documents. The zero value uses the wall clock and
// DefaultSource.
type Parser struct {
	Now    func() time.Time
	Source string
}

// Parse is Parser{}.Parse.
func Parse(text string) (*Result, error) {
	return Parser{}.Parse(text)
}

// Parse reads one geometry per non-empty, non-comment line. A single line
// yields a feature; several lines yield a collection in which unreadable
// lines are skipped. It fails when no line is left or none can be read.
func (p Parser) Parse(text string) (*Result, error) {
	lines := contentLines(text)
	if len(lines) == 0 {
		return nil, ErrNoContent
	}

	created := p.now()
	source := p.Source
	if source == "" {
		source = DefaultSource
	}

	if len(lines) == 1 {
		g, err := parseLine(lines[0])
		if err != nil {
			return nil, &LineError{Line: 1, Text: lines[0], Err: err}
		}
		f := geo.NewFeature(g, geo.Metadata{Created: created, Source: source})
		return &Result{Document: geo.NewFeatureDocument(f)}, nil
	}

	res := &Result{Document: geo.NewCollectionDocument()}
	for i, line := range lines {
		g, err := parseLine(line)
		if err != nil {
			log.Warn().
				Err(err).
				Int("line", i+1).
				Str("text", line).
				Msg("Skipping unreadable WKT line")
			res.Dropped = append(res.Dropped, LineError{Line: i + 1, Text: line, Err: err})
			continue
		}
		f := geo.NewFeature(g, geo.Metadata{Created: created, Source: source, ID: i + 1})
		res.Document.Collection.Append(f)
	}

	if len(res.Document.Collection.Features) == 0 {
		return res, fmt.Errorf("%w: %d lines failed", ErrNothingParsed, len(res.Dropped))
	}

	return res, nil
}

func (p Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseLine reads a single geometry. Keywords are case-insensitive and an
// EWKT "SRID=n;" prefix is ignored. EMPTY geometries and non-finite
// coordinates are rejected.
func parseLine(line string) (g orb.Geometry, err error) {
	s := strings.ToUpper(strings.TrimSpace(line))
	if strings.HasPrefix(s, "SRID=") {
		if i := strings.IndexByte(s, ';'); i >= 0 {
			s = s[i+1:]
		}
	}
	s = bareMultiPoint(normalize(s))
	if strings.HasSuffix(s, "EMPTY") {
		return nil, ErrEmptyGeometry
	}

	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("malformed geometry: %v", r)
		}
	}()

	g, err = orbwkt.Unmarshal(s)
	if err != nil {
		return nil, err
	}
	if geo.CountVertices(g) == 0 {
		return nil, ErrEmptyGeometry
	}
	if err := checkFinite(g); err != nil {
		return nil, err
	}
	return g, nil
}

func checkFinite(g orb.Geometry) error {
	var bad []float64
	geo.Walk(g, geo.DefaultMaxDepth, func(p orb.Point) {
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				bad = append(bad, v)
			}
		}
	})
	if len(bad) > 0 {
		return fmt.Errorf("%w: %v", ErrNonFinite, bad[0])
	}
	return nil
}

// bareMultiPoint rewrites MULTIPOINT(1 2,3 4) into the parenthesized
// MULTIPOINT((1 2),(3 4)) form. Input must already be normalized.
func bareMultiPoint(s string) string {
	const prefix = "MULTIPOINT("
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return s
	}

	body := s[len(prefix) : len(s)-1]
	if body == "" || strings.ContainsAny(body, "()") {
		return s
	}
	return prefix + "(" + strings.Join(strings.Split(body, ","), "),(") + "))"
}

// normalize collapses whitespace and drops it around brackets and commas,
// giving the compact form that MarshalString produces.
func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && (isDelimiter(s[i-1]) || isDelimiter(s[i+1])) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == ','
}
