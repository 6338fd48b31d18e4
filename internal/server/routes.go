package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes registers all handlers and wraps them with the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", s.HandleParse)
	mux.HandleFunc("/api/geojson", s.HandleGeoJSON)
	mux.HandleFunc("/api/distance", s.HandleDistance)
	mux.HandleFunc("/favicon.svg", s.HandleFavicon)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(mux)
}
