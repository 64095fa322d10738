// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/examples"
	"github.com/woozymasta/geoconv/internal/simplify"
	"github.com/woozymasta/geoconv/internal/wkt"
)

const (
	contentJSON    = "application/json"
	contentGeoJSON = "application/geo+json"
	contentText    = "text/plain; charset=utf-8"
)

type errorBody struct {
	Error string `json:"error"`
}

// droppedLine is a notation line the parser skipped.
type droppedLine struct {
	Text  string `json:"text"`
	Error string `json:"error"`
	Line  int    `json:"line"`
}

type simplifyBody struct {
	Result    any            `json:"result"`
	Stats     simplify.Stats `json:"stats"`
	Reduction float64        `json:"reduction"`
}

// HandleToWKT converts a structured record to linear notation.
func (s *ServerContext) HandleToWKT(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	text, err := s.Pipeline.ToWKT(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", contentText)
	_, _ = io.WriteString(w, text)
}

// HandleToGeoJSON parses linear notation. Skipped lines are reported in
// the X-Dropped-Lines header and, when nothing parsed, in the error body.
func (s *ServerContext) HandleToGeoJSON(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	res, err := s.Pipeline.ToGeoJSON(string(body))
	if err != nil {
		if res != nil && errors.Is(err, wkt.ErrNothingParsed) {
			writeJSON(w, http.StatusBadRequest, struct {
				Error   string        `json:"error"`
				Dropped []droppedLine `json:"dropped"`
			}{err.Error(), dropped(res.Dropped)})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(res.Dropped) > 0 {
		w.Header().Set("X-Dropped-Lines", strconv.Itoa(len(res.Dropped)))
	}
	writeBody(w, http.StatusOK, contentGeoJSON, res.Document)
}

// HandleValidate responds with the report, also for invalid geometry.
func (s *ServerContext) HandleValidate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	report, err := s.Pipeline.Validate(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleSimplify simplifies with the tolerance query parameter or the
// configured default.
func (s *ServerContext) HandleSimplify(w http.ResponseWriter, r *http.Request) {
	var tolerance *float64
	if v := r.URL.Query().Get("tolerance"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, simplify.ErrTolerance)
			return
		}
		tolerance = &t
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	doc, stats, err := s.Pipeline.Simplify(body, tolerance)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, simplifyBody{Result: doc, Stats: stats, Reduction: stats.Reduction()})
}

// HandleTransform converts coordinates between the from and to systems.
func (s *ServerContext) HandleTransform(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	doc, err := s.Pipeline.Transform(body, q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeBody(w, http.StatusOK, contentGeoJSON, doc)
}

// HandleMeasure responds with per-feature statistics.
func (s *ServerContext) HandleMeasure(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	summary, err := s.Pipeline.Measure(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleDistance responds with centroid distances between every feature pair.
func (s *ServerContext) HandleDistance(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	distances, err := s.Pipeline.Distances(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, distances)
}

// HandleExamplesList serves the example index, optionally filtered by category.
func (s *ServerContext) HandleExamplesList(w http.ResponseWriter, r *http.Request) {
	list := examples.List()
	if c := r.URL.Query().Get("category"); c != "" {
		list = examples.ByCategory(c)
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleExample serves the structured record of one example.
func (s *ServerContext) HandleExample(w http.ResponseWriter, r *http.Request) {
	data, err := examples.Raw(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	w.Header().Set("Content-Type", contentGeoJSON)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeBody(w, status, contentJSON, v)
}

// writeBody marshals v before touching the response, so an encoding
// failure still reaches the client as a 500.
func writeBody(w http.ResponseWriter, status int, contentType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.Header().Set("Content-Type", contentJSON)
		w.WriteHeader(http.StatusInternalServerError)
		data, _ = json.Marshal(errorBody{Error: "encode response: " + err.Error()})
		_, _ = w.Write(append(data, '\n'))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Debug().Err(err).Int("status", status).Msg("Request rejected")
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func dropped(lines []wkt.LineError) []droppedLine {
	out := make([]droppedLine, len(lines))
	for i, l := range lines {
		out[i] = droppedLine{Line: l.Line, Text: l.Text, Error: l.Err.Error()}
	}
	return out
}
