// Package http exposes the dashboard's presentation boundary: JSON data
// endpoints for the map frontend, export downloads, and the operational
// health/readiness/metrics routes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
	"github.com/couchcryptid/sdoh-dashboard/internal/export"
	"github.com/couchcryptid/sdoh-dashboard/internal/observability"
	"github.com/couchcryptid/sdoh-dashboard/internal/pipeline"
)

// DataFetcher resolves (metric, scope) requests to record lists.
type DataFetcher interface {
	Fetch(ctx context.Context, metric string, scope domain.Scope) ([]domain.Record, error)
	CheckReadiness(ctx context.Context) error
}

// Server serves the dashboard API.
type Server struct {
	httpServer *http.Server
	fetcher    DataFetcher
	catalog    domain.Catalog
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the HTTP server with data, export, and operational routes.
func NewServer(addr string, fetcher DataFetcher, catalog domain.Catalog, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // a cold fetch may wait on the Census API
			IdleTimeout:  60 * time.Second,
		},
		fetcher: fetcher,
		catalog: catalog,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/metrics", s.handleCatalog)
	mux.HandleFunc("GET /api/data/state", s.handleStateData)
	mux.HandleFunc("GET /api/data/county", s.handleCountyData)
	mux.HandleFunc("GET /api/export/csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/export/report", s.handleExportReport)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.fetcher.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleCatalog lists the available metrics in stable order so the frontend
// can build its selector without hardcoding names.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	defs := make([]domain.MetricDefinition, 0, len(s.catalog))
	for _, name := range s.catalog.Names() {
		defs = append(defs, s.catalog[name])
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": defs})
}

// dataResponse carries records plus the polarity flag the frontend needs to
// pick the map's coloring direction.
type dataResponse struct {
	Metric         string       `json:"metric"`
	Scope          domain.Scope `json:"scope"`
	HigherIsBetter bool         `json:"higher_is_better"`
	Records        any          `json:"records"`
}

// stateDatum is a StateRecord enriched with the USPS abbreviation the
// USA-states choropleth layer keys regions by.
type stateDatum struct {
	domain.StateRecord
	Abbrev string `json:"abbrev"`
}

func presentRecords(records []domain.Record) any {
	out := make([]any, 0, len(records))
	for _, r := range records {
		if rec, ok := r.(domain.StateRecord); ok {
			abbrev, _ := domain.StateAbbrev(rec.FIPS)
			out = append(out, stateDatum{StateRecord: rec, Abbrev: abbrev})
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Server) handleStateData(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric parameter is required"})
		return
	}
	s.serveData(w, r, metric, domain.ScopeStates)
}

func (s *Server) handleCountyData(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	state := r.URL.Query().Get("state")
	if metric == "" || state == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric and state parameters are required"})
		return
	}
	s.serveData(w, r, metric, domain.Scope(state))
}

func (s *Server) serveData(w http.ResponseWriter, r *http.Request, metric string, scope domain.Scope) {
	records, def, ok := s.fetchForRequest(w, r, metric, scope)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{
		Metric:         def.Name,
		Scope:          scope.Normalize(),
		HigherIsBetter: def.HigherIsBetter,
		Records:        presentRecords(records),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "csv")
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "pdf")
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, format string) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "metric parameter is required"})
		return
	}
	scope := domain.Scope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = domain.ScopeStates
	}

	records, def, ok := s.fetchForRequest(w, r, metric, scope)
	if !ok {
		return
	}

	var (
		out         []byte
		err         error
		contentType string
	)
	switch format {
	case "csv":
		out, err = export.ToCSV(records)
		contentType = "text/csv"
	case "pdf":
		title := fmt.Sprintf("SDOH Report: %s", def.Name)
		out, err = export.ToPDF(records, def, title, s.clock.Now())
		contentType = "application/pdf"
	}
	if err != nil {
		s.logger.Error("export failed", "format", format, "metric", metric, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.metrics.Exports.WithLabelValues(format).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(def.Name, scope, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// fetchForRequest runs a fetch and maps pipeline errors onto HTTP statuses:
// unknown metric is the caller's mistake (400), an upstream failure is a
// bad gateway (502). Both leave the service usable.
func (s *Server) fetchForRequest(w http.ResponseWriter, r *http.Request, metric string, scope domain.Scope) ([]domain.Record, domain.MetricDefinition, bool) {
	records, err := s.fetcher.Fetch(r.Context(), metric, scope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMetric):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, pipeline.ErrFetchFailed):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream fetch failed, retry later"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return nil, domain.MetricDefinition{}, false
	}

	def, err := s.catalog.Lookup(metric)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, domain.MetricDefinition{}, false
	}
	return records, def, true
}

func exportFilename(metric string, scope domain.Scope, ext string) string {
	slug := strings.ReplaceAll(strings.ToLower(metric), " ", "_")
	level := "states"
	if !scope.IsStates() {
		level = "counties_" + string(scope.Normalize())
	}
	return fmt.Sprintf("sdoh_%s_%s.%s", slug, level, ext)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
