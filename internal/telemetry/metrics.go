// Package telemetry carries the ambient observability stack: structured
// logging, prometheus metrics, and trace export.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResponsesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cvr_responses_saved_total",
			Help: "Total number of submission records persisted",
		},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvr_exports_total",
			Help: "Total number of report exports by format and outcome",
		},
		[]string{"format", "status"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cvr_export_duration_seconds",
			Help: "Duration of report exports in seconds",
		},
		[]string{"format"},
	)

	SectionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvr_section_fallbacks_total",
			Help: "Report sections that degraded to their text fallback",
		},
		[]string{"section"},
	)
)
