// Package report turns a metrics bundle into the multi-section benchmark
// report: markdown per section, plus the HTML shell the export pipeline
// renders and captures.
package report

import (
	"fmt"
	"strings"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
)

// Section identifiers, in render order.
const (
	SectionSummary     = "summary"
	SectionComparison  = "comparison"
	SectionImprovement = "improvement"
	SectionProjection  = "projection"
)

// Options control presentation choices that vary across report revisions.
type Options struct {
	// AlwaysShowAverage keeps the B2B-average comparison block visible with a
	// signed gap even when the user's rate exceeds the average. When false,
	// the block is suppressed once the average is met.
	AlwaysShowAverage bool
}

// Section is one region of the report. Capturable sections are offered to
// the exporter as visual regions; Fallback holds the text-only equivalent
// used when a capture fails. Non-capturable sections render Markdown
// directly.
type Section struct {
	ID         string
	Title      string
	Markdown   string
	Capturable bool
	Fallback   string
}

// Report is the ordered section sequence for one metrics bundle.
type Report struct {
	Metrics  benchmark.Metrics
	Sections []Section
}

// Build assembles the report sections from a computed bundle.
func Build(m benchmark.Metrics, opts Options) Report {
	return Report{
		Metrics: m,
		Sections: []Section{
			summarySection(m),
			comparisonSection(m, opts),
			improvementSection(m),
			projectionSection(m),
		},
	}
}

func unitLabel(t benchmark.ConversionType) string {
	if t == "" {
		return "conversions"
	}
	return string(t)
}

func summarySection(m benchmark.Metrics) Section {
	var b strings.Builder
	fmt.Fprintf(&b, "## Your Conversion Rate Analysis\n\n")
	fmt.Fprintf(&b, "- Monthly traffic: %d\n", m.Input.MonthlyTraffic)
	fmt.Fprintf(&b, "- Monthly %s: %d\n", unitLabel(m.Input.ConversionType), m.Input.MonthlyConversions)
	fmt.Fprintf(&b, "- Your conversion rate: **%s**\n", benchmark.FormatPercent(m.UserCVR))
	fmt.Fprintf(&b, "- B2B SaaS average: %s\n", benchmark.FormatPercent(m.Benchmarks.B2BAverage))
	fmt.Fprintf(&b, "- Top 25%% companies: %s\n", benchmark.FormatPercent(m.Benchmarks.Top25Percent))
	return Section{ID: SectionSummary, Title: "Your Conversion Rate Analysis", Markdown: b.String()}
}

func comparisonSection(m benchmark.Metrics, opts Options) Section {
	var b strings.Builder
	fmt.Fprintf(&b, "## Benchmark Comparison\n\n")

	showAverage := opts.AlwaysShowAverage || m.ToAverage.Gap < 0
	if showAverage {
		writeComparison(&b, "B2B SaaS Average", "average", m, m.ToAverage)
	}
	writeComparison(&b, "Top 25%", "top performers", m, m.ToTop25)

	if m.ToAverage.Gap >= 0 && m.ToTop25.Gap >= 0 {
		fmt.Fprintf(&b, "Excellent performance: your conversion rate exceeds the top 25%% of B2B SaaS companies.\n")
	}
	md := b.String()
	return Section{
		ID:         SectionComparison,
		Title:      "Benchmark Comparison",
		Markdown:   md,
		Capturable: true,
		Fallback:   md,
	}
}

// writeComparison emits the three-line textual comparison for one benchmark:
// the signed gap, the relative ratio phrase, and the conversions/month delta
// with its pipeline impact when a conversion value is known.
func writeComparison(b *strings.Builder, label, phrase string, m benchmark.Metrics, c benchmark.Comparison) {
	direction := "below"
	if c.Gap >= 0 {
		direction = "above"
	}
	fmt.Fprintf(b, "**Vs. %s (%s)**\n\n", label, benchmark.FormatPercent(c.Benchmark))
	fmt.Fprintf(b, "- Gap: %s\n", benchmark.FormatSignedPercent(c.Gap))
	fmt.Fprintf(b, "- %.0f%% %s %s\n", abs(c.Ratio), direction, phrase)
	if c.ConversionsGap > 0 {
		fmt.Fprintf(b, "- %d more %s/month needed\n", c.ConversionsGap, unitLabel(m.Input.ConversionType))
		if c.MonthlyRevenueGap > 0 {
			fmt.Fprintf(b, "- Pipeline impact: %s/month (%s/year)\n",
				benchmark.FormatCurrency(c.MonthlyRevenueGap), benchmark.FormatCurrency(c.AnnualRevenueGap))
		}
	} else {
		fmt.Fprintf(b, "- Already %d %s/month ahead of this benchmark\n", -c.ConversionsGap, unitLabel(m.Input.ConversionType))
	}
	b.WriteString("\n")
}

func improvementSection(m benchmark.Metrics) Section {
	var b strings.Builder
	fmt.Fprintf(&b, "## 30%% Improvement Scenario\n\n")
	fmt.Fprintf(&b, "Lifting your conversion rate from %s to **%s** would add:\n\n",
		benchmark.FormatPercent(m.UserCVR), benchmark.FormatPercent(m.ProjectedCVR))
	for _, h := range m.Horizons {
		line := fmt.Sprintf("- %d month", h.Months)
		if h.Months > 1 {
			line += "s"
		}
		line += fmt.Sprintf(": %.0f %s", h.AdditionalConversions, unitLabel(m.Input.ConversionType))
		if m.Input.ConversionValue > 0 {
			line += fmt.Sprintf(" (%s)", benchmark.FormatCurrency(h.AdditionalRevenue))
		}
		fmt.Fprintf(&b, "%s\n", line)
	}
	return Section{ID: SectionImprovement, Title: "30% Improvement Scenario", Markdown: b.String()}
}

func projectionSection(m benchmark.Metrics) Section {
	title := "Lead Projection"
	if m.Input.ConversionValue > 0 {
		title = "Revenue Projection"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	fmt.Fprintf(&b, "Cumulative 12-month trajectory: current rate (%s), 30%% increase (%s), and the B2B SaaS average (%s).\n\n",
		benchmark.FormatPercent(m.UserCVR), benchmark.FormatPercent(m.ProjectedCVR), benchmark.FormatPercent(m.Benchmarks.B2BAverage))

	revenue := m.Input.ConversionValue > 0
	if revenue {
		fmt.Fprintf(&b, "| Month | Current | 30%% Increase | B2B Average |\n")
		fmt.Fprintf(&b, "| --- | --- | --- | --- |\n")
		for _, p := range m.Series {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.Month,
				benchmark.FormatCurrency(p.CurrentRevenue),
				benchmark.FormatCurrency(p.ImprovedRevenue),
				benchmark.FormatCurrency(p.BenchmarkRevenue))
		}
	} else {
		fmt.Fprintf(&b, "| Month | Current | 30%% Increase | B2B Average |\n")
		fmt.Fprintf(&b, "| --- | --- | --- | --- |\n")
		for _, p := range m.Series {
			fmt.Fprintf(&b, "| %d | %.0f | %.0f | %.0f |\n", p.Month, p.Current, p.Improved, p.Benchmark)
		}
	}
	md := b.String()
	return Section{
		ID:         SectionProjection,
		Title:      title,
		Markdown:   md,
		Capturable: true,
		Fallback:   md,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
