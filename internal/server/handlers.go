// Package server handles HTTP requests and middleware.
package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/woozymasta/coordparse/internal/geo"
	"github.com/woozymasta/coordparse/internal/parser"

	"github.com/rs/zerolog/log"
)

// ParseResult is the outcome of parsing one coordinate string.
type ParseResult struct {
	Point  *geo.Point `json:"point,omitempty"`
	Input  string     `json:"input"`
	Error  string     `json:"error,omitempty"`
	Kind   string     `json:"kind,omitempty"`
	Values []float64  `json:"values,omitempty"`
	Axes   []string   `json:"axes,omitempty"`
	DMS    []string   `json:"dms,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Input string `json:"input,omitempty"`
}

type distanceResponse struct {
	From   geo.Point `json:"from"`
	To     geo.Point `json:"to"`
	Meters float64   `json:"meters"`
}

// HandleParse parses the q query parameter on GET, or every non-empty
// line of the request body on POST.
func (s *ServerContext) HandleParse(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		input, ok := s.queryInput(w, r, "q")
		if !ok {
			return
		}

		res := s.parse(input)
		status := http.StatusOK
		if res.Error != "" {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, status, res)

	case http.MethodPost:
		s.handleBatch(w, r)

	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func (s *ServerContext) handleBatch(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.Config.BatchLimit) * int64(s.Config.MaxInputLength+2)
	body := http.MaxBytesReader(w, r.Body, limit)
	defer func() { _ = body.Close() }()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), int(limit))

	results := make([]ParseResult, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if len(results) >= s.Config.BatchLimit {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("batch exceeds %d lines", s.Config.BatchLimit),
			})
			return
		}

		if len(line) > s.Config.MaxInputLength {
			results = append(results, ParseResult{
				Input: line,
				Error: fmt.Sprintf("input exceeds %d bytes", s.Config.MaxInputLength),
				Kind:  "length",
			})
			continue
		}

		results = append(results, s.parse(line))
	}

	if err := scanner.Err(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		log.Error().Err(err).Msg("Failed to read batch body")
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read body"})
		return
	}

	log.Debug().Int("lines", len(results)).Msg("Batch parsed")
	s.writeJSON(w, http.StatusOK, results)
}

// HandleGeoJSON renders a coordinate pair as a GeoJSON Point feature.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	input, ok := s.queryInput(w, r, "q")
	if !ok {
		return
	}

	p, coords, err := s.point(input)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: outcome(err), Input: input})
		return
	}

	feature := geo.NewPointFeature(p, map[string]interface{}{
		"input": input,
		"dms":   dmsOf(coords),
	})

	s.writeJSONType(w, http.StatusOK, "application/geo+json", feature)
}

// HandleDistance returns the great-circle distance between the from and to pairs.
func (s *ServerContext) HandleDistance(w http.ResponseWriter, r *http.Request) {
	from, ok := s.queryInput(w, r, "from")
	if !ok {
		return
	}
	to, ok := s.queryInput(w, r, "to")
	if !ok {
		return
	}

	a, _, err := s.point(from)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: outcome(err), Input: from})
		return
	}
	b, _, err := s.point(to)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: outcome(err), Input: to})
		return
	}

	s.writeJSON(w, http.StatusOK, distanceResponse{
		From:   a.Round(s.Config.Precision),
		To:     b.Round(s.Config.Precision),
		Meters: geo.Round(geo.Haversine(a, b), 3),
	})
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the embedded HTML page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if match := r.Header.Get("If-None-Match"); match == s.indexETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", s.indexETag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// parse runs the parser and shapes its outcome for a response.
func (s *ServerContext) parse(input string) ParseResult {
	res := ParseResult{Input: input}

	coords, err := parser.ParseCoordinates(input)
	if err == nil {
		err = geo.CheckFinite(coords)
	}
	observeParse(err)
	if err != nil {
		log.Warn().Err(err).Str("input", input).Msg("Rejected coordinate")
		res.Error = err.Error()
		res.Kind = outcome(err)
		return res
	}

	res.Values = make([]float64, len(coords))
	res.Axes = make([]string, len(coords))
	for i, c := range coords {
		res.Values[i] = geo.Round(c.Value, s.Config.Precision)
		res.Axes[i] = c.Axis.String()
	}
	res.DMS = dmsOf(coords)

	if len(coords) == 2 {
		if p, err := geo.PointFromCoordinates(coords); err == nil {
			p = p.Round(s.Config.Precision)
			res.Point = &p
		}
	}

	return res
}

func (s *ServerContext) point(input string) (geo.Point, []parser.Coordinate, error) {
	coords, err := parser.ParseCoordinates(input)
	observeParse(err)
	if err != nil {
		return geo.Point{}, nil, err
	}

	p, err := geo.PointFromCoordinates(coords)
	if err != nil {
		return geo.Point{}, nil, err
	}

	return p, coords, nil
}

// queryInput reads a required, length limited query parameter.
// It writes the error response itself and reports false on failure.
func (s *ServerContext) queryInput(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	input := strings.TrimSpace(r.URL.Query().Get(name))

	if input == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("missing %s parameter", name)})
		return "", false
	}
	if len(input) > s.Config.MaxInputLength {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("%s exceeds %d bytes", name, s.Config.MaxInputLength),
		})
		return "", false
	}

	return input, true
}

func (s *ServerContext) writeJSON(w http.ResponseWriter, status int, v any) {
	s.writeJSONType(w, status, "application/json", v)
}

func (s *ServerContext) writeJSONType(w http.ResponseWriter, status int, contentType string, v any) {
	if s.Config.CORSOrigin != "" {
		w.Header().Set("Access-Control-Allow-Origin", s.Config.CORSOrigin)
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "failed to encode response"})
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(append(data, '\n'))
}

func dmsOf(coords []parser.Coordinate) []string {
	out := make([]string, len(coords))
	for i, c := range coords {
		out[i] = geo.FormatDMS(c.Value, c.Axis)
	}
	return out
}
