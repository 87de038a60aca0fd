package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
	"github.com/joelkehle/cvr-benchmark/internal/report"
)

type stubCapturer struct {
	err       error
	selectors []string
}

func (s *stubCapturer) CaptureRegion(_ context.Context, _ string, selector string) ([]byte, error) {
	s.selectors = append(s.selectors, selector)
	if s.err != nil {
		return nil, s.err
	}
	return []byte("png-bytes"), nil
}

type stubShot struct {
	err   error
	calls int
}

func (s *stubShot) CapturePage(context.Context, string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("full-page-png"), nil
}

type stubPrinter struct {
	err     error
	lastDoc string
}

func (s *stubPrinter) PrintToPDF(_ context.Context, htmlDoc string) ([]byte, error) {
	s.lastDoc = htmlDoc
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-fake"), nil
}

var validInput = benchmark.Input{
	MonthlyTraffic:     10000,
	MonthlyConversions: 250,
	ConversionType:     benchmark.Demos,
	ConversionValue:    500,
}

func newTestExporter(capt Capturer, shot Screenshotter, pr Printer) *Exporter {
	return newExporter(benchmark.Default, report.Options{AlwaysShowAverage: true}, capt, shot, pr, nil)
}

func TestExportPDFEmbedsCaptures(t *testing.T) {
	capt := &stubCapturer{}
	pr := &stubPrinter{}
	e := newTestExporter(capt, &stubShot{}, pr)

	artifact, err := e.ExportPDF(context.Background(), validInput)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if artifact.Filename != "conversion-rate-report.pdf" || artifact.ContentType != "application/pdf" {
		t.Errorf("unexpected artifact identity: %+v", artifact)
	}
	if len(artifact.Data) == 0 {
		t.Error("artifact has no data")
	}
	if got := strings.Count(pr.lastDoc, "data:image/png;base64,"); got != 2 {
		t.Errorf("expected 2 embedded captures, found %d", got)
	}
	// Captures run strictly in section order.
	want := []string{"#" + report.SectionComparison, "#" + report.SectionProjection}
	if len(capt.selectors) != 2 || capt.selectors[0] != want[0] || capt.selectors[1] != want[1] {
		t.Errorf("capture order = %v, want %v", capt.selectors, want)
	}
}

func TestExportPDFFallsBackOnCaptureFailure(t *testing.T) {
	capt := &stubCapturer{err: errors.New("region not found")}
	pr := &stubPrinter{}
	e := newTestExporter(capt, &stubShot{}, pr)

	artifact, err := e.ExportPDF(context.Background(), validInput)
	if err != nil {
		t.Fatalf("section capture failures must not abort the export: %v", err)
	}
	if len(artifact.Data) == 0 {
		t.Error("expected a saved document despite failing captures")
	}
	if strings.Contains(pr.lastDoc, "data:image/png") {
		t.Error("no captures should be embedded when every capture fails")
	}
	// The projection section degrades to its tabular monthly breakdown.
	if !strings.Contains(pr.lastDoc, "<table>") {
		t.Errorf("expected text-fallback projection table in:\n%s", pr.lastDoc)
	}
	if !strings.Contains(pr.lastDoc, "Benchmark Comparison") {
		t.Error("expected text-fallback comparison section")
	}
}

func TestExportPDFRejectsInvalidInputBeforeCapture(t *testing.T) {
	capt := &stubCapturer{}
	e := newTestExporter(capt, &stubShot{}, &stubPrinter{})

	_, err := e.ExportPDF(context.Background(), benchmark.Input{MonthlyTraffic: 0, MonthlyConversions: 10, ConversionType: benchmark.Demos})
	var invalid *benchmark.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if len(capt.selectors) != 0 {
		t.Errorf("no capture may be attempted for invalid input, got %v", capt.selectors)
	}
}

func TestExportPDFEncodingFailureIsFatal(t *testing.T) {
	pr := &stubPrinter{err: errors.New("page allocation failed")}
	e := newTestExporter(&stubCapturer{}, &stubShot{}, pr)

	_, err := e.ExportPDF(context.Background(), validInput)
	var enc *EncodingError
	if !errors.As(err, &enc) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
}

func TestExportPNG(t *testing.T) {
	shot := &stubShot{}
	e := newTestExporter(&stubCapturer{}, shot, &stubPrinter{})

	artifact, err := e.ExportPNG(context.Background(), validInput)
	if err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	if artifact.Filename != "conversion-rate-report.png" || artifact.ContentType != "image/png" {
		t.Errorf("unexpected artifact identity: %+v", artifact)
	}
	if shot.calls != 1 {
		t.Errorf("expected exactly one page capture, got %d", shot.calls)
	}
}

func TestExportPNGCaptureFailureAborts(t *testing.T) {
	shot := &stubShot{err: errors.New("render crashed")}
	e := newTestExporter(&stubCapturer{}, shot, &stubPrinter{})

	_, err := e.ExportPNG(context.Background(), validInput)
	var capErr *CaptureError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CaptureError, got %v", err)
	}
}

func TestExportPNGInvalidInput(t *testing.T) {
	shot := &stubShot{}
	e := newTestExporter(&stubCapturer{}, shot, &stubPrinter{})

	_, err := e.ExportPNG(context.Background(), benchmark.Input{MonthlyTraffic: -1, ConversionType: benchmark.Signups})
	var invalid *benchmark.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if shot.calls != 0 {
		t.Error("no capture may be attempted for invalid input")
	}
}
