// Package server exposes the thin request/response boundary: submission
// persistence, metrics computation, and report export downloads.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
	"github.com/joelkehle/cvr-benchmark/internal/export"
	"github.com/joelkehle/cvr-benchmark/internal/telemetry"
)

// ResponseStore is the persistence collaborator: one fire-and-forget write
// per submission.
type ResponseStore interface {
	Save(ctx context.Context, in benchmark.Input) (int64, error)
}

// ReportExporter produces the downloadable artifact for a validated input.
type ReportExporter interface {
	ExportPNG(ctx context.Context, in benchmark.Input) (export.Artifact, error)
	ExportPDF(ctx context.Context, in benchmark.Input) (export.Artifact, error)
}

type Server struct {
	log        *zap.Logger
	store      ResponseStore
	exporter   ReportExporter
	benchmarks benchmark.Benchmarks
}

func NewRouter(log *zap.Logger, store ResponseStore, exporter ReportExporter, b benchmark.Benchmarks) http.Handler {
	s := &Server{log: log, store: store, exporter: exporter, benchmarks: b}

	mux := chi.NewRouter()
	mux.Use(requestLogger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/api/responses", s.handleSaveResponse)
	mux.Get("/api/metrics", s.handleMetrics)
	mux.Get("/api/report.pdf", s.handleExport("pdf"))
	mux.Get("/api/report.png", s.handleExport("png"))
	return mux
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// statusForError maps the error taxonomy onto HTTP statuses: contract
// violations are the caller's fault, capture trouble is the render
// backend's, everything else is ours.
func statusForError(err error) int {
	var invalid *benchmark.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var capture *export.CaptureError
	if errors.As(err, &capture) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) handleSaveResponse(w http.ResponseWriter, r *http.Request) {
	var in benchmark.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.store.Save(r.Context(), in)
	if err != nil {
		s.log.Error("save response", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	in, err := inputFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.benchmarks.Compute(in)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := inputFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		start := time.Now()
		var artifact export.Artifact
		switch format {
		case "png":
			artifact, err = s.exporter.ExportPNG(r.Context(), in)
		default:
			artifact, err = s.exporter.ExportPDF(r.Context(), in)
		}
		if err != nil {
			telemetry.Exports.WithLabelValues(format, "error").Inc()
			s.log.Error("export failed", zap.String("format", format), zap.Error(err))
			writeError(w, statusForError(err), err.Error())
			return
		}
		telemetry.Exports.WithLabelValues(format, "ok").Inc()
		telemetry.ExportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Data)
	}
}

func inputFromQuery(r *http.Request) (benchmark.Input, error) {
	q := r.URL.Query()
	traffic, err := strconv.Atoi(q.Get("traffic"))
	if err != nil {
		return benchmark.Input{}, fmt.Errorf("traffic: %w", err)
	}
	conversions, err := strconv.Atoi(q.Get("conversions"))
	if err != nil {
		return benchmark.Input{}, fmt.Errorf("conversions: %w", err)
	}
	value := 0.0
	if raw := q.Get("value"); raw != "" {
		value, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return benchmark.Input{}, fmt.Errorf("value: %w", err)
		}
	}
	return benchmark.Input{
		MonthlyTraffic:     traffic,
		MonthlyConversions: conversions,
		ConversionType:     benchmark.ConversionType(q.Get("type")),
		ConversionValue:    value,
	}, nil
}
