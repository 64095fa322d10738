package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/examples"
	"github.com/woozymasta/geoconv/internal/pipeline"
)

// MaxBodySize caps request bodies.
const MaxBodySize = 8 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Pipeline *pipeline.Pipeline
}

// NewServerContext initializes the context around a pipeline.
func NewServerContext(p *pipeline.Pipeline) *ServerContext {
	cfg := p.Config()
	log.Info().
		Str("source", cfg.Source).
		Float64("tolerance", cfg.Tolerance).
		Str("crs_from", string(cfg.CRS.From)).
		Str("crs_to", string(cfg.CRS.To)).
		Int("examples_count", len(examples.List())).
		Msg("Server context initialized")

	return &ServerContext{Pipeline: p}
}

// Routes registers the API handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/wkt", s.HandleToWKT)
	mux.HandleFunc("POST /api/geojson", s.HandleToGeoJSON)
	mux.HandleFunc("POST /api/validate", s.HandleValidate)
	mux.HandleFunc("POST /api/simplify", s.HandleSimplify)
	mux.HandleFunc("POST /api/transform", s.HandleTransform)
	mux.HandleFunc("POST /api/measure", s.HandleMeasure)
	mux.HandleFunc("POST /api/distance", s.HandleDistance)
	mux.HandleFunc("GET /api/examples", s.HandleExamplesList)
	mux.HandleFunc("GET /api/examples/{id}", s.HandleExample)
	return mux
}
