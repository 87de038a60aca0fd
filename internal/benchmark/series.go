package benchmark

// seriesMonths is the forecast length; the series holds seriesMonths+1
// points so month 0 anchors every path at zero.
const seriesMonths = 12

// SeriesPoint is one month of the cumulative projection trajectory. The
// three paths are the user's current rate, the 30%-improved rate, and the
// B2B average benchmark rate. Conversion-unit and revenue-unit values are
// carried side by side; revenue values stay 0 when the input has no
// per-conversion value, so consumers always see a uniform shape.
type SeriesPoint struct {
	Month            int     `json:"month"`
	Current          float64 `json:"current"`
	Improved         float64 `json:"improved"`
	Benchmark        float64 `json:"benchmark"`
	CurrentRevenue   float64 `json:"current_revenue"`
	ImprovedRevenue  float64 `json:"improved_revenue"`
	BenchmarkRevenue float64 `json:"benchmark_revenue"`
}

// projectionSeries builds the 13-point cumulative trajectory. The benchmark
// path always uses the B2B average, never the top-quartile rate.
func (b Benchmarks) projectionSeries(in Input, userCVR float64) []SeriesPoint {
	traffic := float64(in.MonthlyTraffic)
	improvedCVR := userCVR * improvementFactor

	points := make([]SeriesPoint, 0, seriesMonths+1)
	for month := 0; month <= seriesMonths; month++ {
		p := SeriesPoint{
			Month:     month,
			Current:   userCVR / 100 * traffic * float64(month),
			Improved:  improvedCVR / 100 * traffic * float64(month),
			Benchmark: b.B2BAverage / 100 * traffic * float64(month),
		}
		if in.ConversionValue > 0 {
			p.CurrentRevenue = p.Current * in.ConversionValue
			p.ImprovedRevenue = p.Improved * in.ConversionValue
			p.BenchmarkRevenue = p.Benchmark * in.ConversionValue
		}
		points = append(points, p)
	}
	return points
}
