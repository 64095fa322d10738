// Package validate checks geometry documents for structural and
// topological problems.
package validate

import (
	"fmt"
	"strings"
)

// Status classifies a validation run.
type Status string

const (
	StatusValid        Status = "valid"
	StatusWithWarnings Status = "valid_with_warnings"
	StatusInvalid      Status = "invalid"
)

// Code identifies the kind of finding.
type Code string

// Hard failures.
const (
	CodeInsufficientVertices Code = "insufficient_vertices"
	CodeRingUnclosed         Code = "ring_unclosed"
	CodeSelfIntersection     Code = "self_intersection"
	CodeLongitudeRange       Code = "longitude_out_of_range"
	CodeLatitudeRange        Code = "latitude_out_of_range"
)

// Advisories.
const (
	CodeExcessivePrecision Code = "excessive_precision"
	CodeZeroArea           Code = "zero_area"
)

// Finding is one Issue or Warning. Feature is the 1-based feature index.
type Finding struct {
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Feature int    `json:"feature" yaml:"feature"`
}

func (f Finding) String() string {
	return f.Message
}

// Report is the result of one validation run. Issues are hard failures,
// Warnings are advisory.
type Report struct {
	Issues   []Finding `json:"issues" yaml:"issues"`
	Warnings []Finding `json:"warnings" yaml:"warnings"`
	Status   Status    `json:"status" yaml:"status"`
	Summary  string    `json:"summary" yaml:"summary"`
}

// Valid reports whether no Issue was found.
func (r *Report) Valid() bool {
	return len(r.Issues) == 0
}

func newReport(issues, warnings []Finding, listLimit int) *Report {
	r := &Report{
		Issues:   issues,
		Warnings: warnings,
	}
	if r.Issues == nil {
		r.Issues = []Finding{}
	}
	if r.Warnings == nil {
		r.Warnings = []Finding{}
	}

	switch {
	case len(issues) > 0:
		r.Status = StatusInvalid
		r.Summary = fmt.Sprintf("found %d issue(s):\n%s", len(issues), listFindings(issues, listLimit))
	case len(warnings) > 0:
		r.Status = StatusWithWarnings
		r.Summary = fmt.Sprintf("geometry is valid with %d warning(s):\n%s", len(warnings), listFindings(warnings, listLimit))
	default:
		r.Status = StatusValid
		r.Summary = "geometry is fully valid"
	}

	return r
}

func listFindings(fs []Finding, limit int) string {
	if limit > 0 && len(fs) > limit {
		fs = fs[:limit]
	}
	lines := make([]string, len(fs))
	for i, f := range fs {
		lines[i] = f.Message
	}
	return strings.Join(lines, "\n")
}
