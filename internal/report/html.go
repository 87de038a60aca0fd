package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const reportCSS = `
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
body{background:#f1f5f9;font-family:-apple-system,'Segoe UI',Helvetica,Arial,sans-serif;color:#0f172a;margin:0;padding:1rem;}
.report-wrap{max-width:1000px;margin:0 auto;}
.report-section{background:#fff;border:1px solid #e2e8f0;border-radius:8px;padding:1rem 1.25rem;margin-bottom:1rem;}
.report-section h2{margin-top:0;font-size:1.25rem;}
.report-section table{width:100% !important;border-collapse:collapse !important;border:1px solid #cbd5e1 !important;font-size:0.8rem !important;}
.report-section th,.report-section td{border:1px solid #cbd5e1 !important;padding:0.35rem 0.45rem !important;text-align:left !important;}
.report-section thead th{background:#f1f5f9 !important;font-weight:700 !important;}
section[data-page-break-before="true"]{break-before:page;page-break-before:always;}
@media print{ @page{size:auto;margin:12mm;} body{background:#fff !important;padding:0;} }
`

// HTMLDocument renders the full on-screen report: every section converted
// through goldmark and wrapped in an anchored <section> so the export
// pipeline can address each visual region by id.
func HTMLDocument(r Report) (string, error) {
	var body strings.Builder
	for _, s := range r.Sections {
		sectionHTML, err := renderMarkdown(s.Markdown)
		if err != nil {
			return "", fmt.Errorf("render section %s: %w", s.ID, err)
		}
		fmt.Fprintf(&body, "<section id=%q class='report-section'>%s</section>", s.ID, sectionHTML)
	}
	return wrapDocument("Conversion Rate Report", body.String()), nil
}

// PrintDocument assembles the paginated export body from resolved sections.
// Embedded captures arrive as data URLs; fallback sections arrive as
// markdown. Every section after the first starts on a fresh page.
func PrintDocument(r Report, rendered []RenderedSection) (string, error) {
	var body strings.Builder
	for i, rs := range rendered {
		breakAttr := ""
		if i > 0 {
			breakAttr = ` data-page-break-before="true"`
		}
		switch {
		case rs.ImageDataURL != "":
			fmt.Fprintf(&body, "<section id=%q class='report-section'%s><h2>%s</h2><img src=%q style='width:%dpx;height:auto;'/></section>",
				rs.ID, breakAttr, html.EscapeString(rs.Title), rs.ImageDataURL, embedWidthPx)
		default:
			sectionHTML, err := renderMarkdown(rs.Markdown)
			if err != nil {
				return "", fmt.Errorf("render section %s: %w", rs.ID, err)
			}
			fmt.Fprintf(&body, "<section id=%q class='report-section'%s>%s</section>", rs.ID, breakAttr, sectionHTML)
		}
	}
	return wrapDocument("Conversion Rate Report", body.String()), nil
}

// RenderedSection is one section after capture resolution: either an
// embedded raster or its markdown text.
type RenderedSection struct {
	ID           string
	Title        string
	ImageDataURL string
	Markdown     string
}

// embedWidthPx is the fixed width captured images are scaled to in the
// print layout; height follows the capture's aspect ratio.
const embedWidthPx = 650

func renderMarkdown(md string) (string, error) {
	var out strings.Builder
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func wrapDocument(title, body string) string {
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<div class='report-wrap'>" + body + "</div>" +
		"</body></html>"
}
