// Package export serializes the on-screen benchmark report into a portable
// artifact: a flattened PNG or a paginated PDF with per-section text
// fallback.
package export

import (
	"context"
	"encoding/base64"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
	"github.com/joelkehle/cvr-benchmark/internal/report"
	"github.com/joelkehle/cvr-benchmark/internal/telemetry"
)

const (
	PNGFilename = "conversion-rate-report.png"
	PDFFilename = "conversion-rate-report.pdf"
)

// Artifact is a finished export ready to stream to the caller.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Capturer rasterizes one visual region of a rendered document.
type Capturer interface {
	CaptureRegion(ctx context.Context, htmlDoc, selector string) ([]byte, error)
}

// Screenshotter flattens a whole rendered document into one raster.
type Screenshotter interface {
	CapturePage(ctx context.Context, htmlDoc string) ([]byte, error)
}

// Printer serializes a document to paginated PDF bytes.
type Printer interface {
	PrintToPDF(ctx context.Context, htmlDoc string) ([]byte, error)
}

// state tracks the PDF pipeline's position. Section-level capture failures
// route to the text fallback and never reach stateFailed.
type state int

const (
	stateIdle state = iota
	stateCapturing
	stateEmbedding
	stateTextFallback
	stateFinalizing
	stateSaved
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCapturing:
		return "capturing"
	case stateEmbedding:
		return "embedding"
	case stateTextFallback:
		return "text_fallback"
	case stateFinalizing:
		return "finalizing"
	case stateSaved:
		return "saved"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Exporter recomputes metrics from the raw input and produces the artifact.
// Every call is independent; there is no cross-call state.
type Exporter struct {
	benchmarks benchmark.Benchmarks
	opts       report.Options
	capturer   Capturer
	shot       Screenshotter
	printer    Printer
	log        *zap.Logger
	tracer     trace.Tracer
}

func New(b benchmark.Benchmarks, opts report.Options, backend *Chromium, log *zap.Logger) *Exporter {
	return newExporter(b, opts, backend, backend, backend, log)
}

func newExporter(b benchmark.Benchmarks, opts report.Options, capturer Capturer, shot Screenshotter, printer Printer, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		benchmarks: b,
		opts:       opts,
		capturer:   capturer,
		shot:       shot,
		printer:    printer,
		log:        log,
		tracer:     otel.Tracer("export"),
	}
}

// ExportPNG is the flattened single-image shape: one capture of the report
// root at the fixed logical width. A capture failure aborts the export.
func (e *Exporter) ExportPNG(ctx context.Context, in benchmark.Input) (Artifact, error) {
	ctx, span := e.tracer.Start(ctx, "export.png")
	defer span.End()

	m, err := e.benchmarks.Compute(in)
	if err != nil {
		return Artifact{}, err
	}
	doc, err := report.HTMLDocument(report.Build(m, e.opts))
	if err != nil {
		return Artifact{}, &EncodingError{Err: err}
	}
	img, err := e.shot.CapturePage(ctx, doc)
	if err != nil {
		return Artifact{}, &CaptureError{Section: "report", Err: err}
	}
	if len(img) == 0 {
		return Artifact{}, &EncodingError{Err: errEmptyArtifact}
	}
	return Artifact{Filename: PNGFilename, ContentType: "image/png", Data: img}, nil
}

// ExportPDF is the structured paginated shape. Sections are resolved
// strictly in order: each capturable section is rasterized and embedded, or
// degraded to its text equivalent when the capture fails. Input validation
// happens before any capture is attempted.
func (e *Exporter) ExportPDF(ctx context.Context, in benchmark.Input) (Artifact, error) {
	ctx, span := e.tracer.Start(ctx, "export.pdf")
	defer span.End()

	st := stateIdle
	m, err := e.benchmarks.Compute(in)
	if err != nil {
		return Artifact{}, err
	}
	rep := report.Build(m, e.opts)
	screenDoc, err := report.HTMLDocument(rep)
	if err != nil {
		return Artifact{}, &EncodingError{Err: err}
	}

	rendered := make([]report.RenderedSection, 0, len(rep.Sections))
	for _, s := range rep.Sections {
		rendered = append(rendered, e.resolveSection(ctx, &st, screenDoc, s))
	}

	st = stateFinalizing
	printDoc, err := report.PrintDocument(rep, rendered)
	if err != nil {
		e.log.Error("export failed", zap.String("state", stateFailed.String()), zap.Error(err))
		return Artifact{}, &EncodingError{Err: err}
	}
	pdf, err := e.printer.PrintToPDF(ctx, printDoc)
	if err != nil {
		e.log.Error("export failed", zap.String("state", stateFailed.String()), zap.Error(err))
		return Artifact{}, &EncodingError{Err: err}
	}
	st = stateSaved
	e.log.Debug("export finished", zap.String("state", st.String()), zap.Int("bytes", len(pdf)))
	return Artifact{Filename: PDFFilename, ContentType: "application/pdf", Data: pdf}, nil
}

// resolveSection runs one section through capture-or-fallback. The next
// section's capture does not begin until this one resolves, so output
// ordering always matches section order.
func (e *Exporter) resolveSection(ctx context.Context, st *state, screenDoc string, s report.Section) report.RenderedSection {
	if !s.Capturable {
		return report.RenderedSection{ID: s.ID, Title: s.Title, Markdown: s.Markdown}
	}

	*st = stateCapturing
	ctx, span := e.tracer.Start(ctx, "export.capture",
		trace.WithAttributes(attribute.String("section", s.ID)))
	defer span.End()

	img, err := e.capturer.CaptureRegion(ctx, screenDoc, "#"+s.ID)
	if err != nil || len(img) == 0 {
		*st = stateTextFallback
		telemetry.SectionFallbacks.WithLabelValues(s.ID).Inc()
		e.log.Warn("section capture failed, using text fallback",
			zap.String("section", s.ID), zap.Error(err))
		return report.RenderedSection{ID: s.ID, Title: s.Title, Markdown: s.Fallback}
	}
	*st = stateEmbedding
	return report.RenderedSection{
		ID:           s.ID,
		Title:        s.Title,
		ImageDataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
	}
}
