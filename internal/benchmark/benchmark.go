// Package benchmark computes derived conversion-rate comparison and
// projection metrics against fixed industry reference rates.
package benchmark

import (
	"fmt"
	"math"
)

// ConversionType labels what a conversion represents. It never affects
// arithmetic, only report wording.
type ConversionType string

const (
	Demos   ConversionType = "demos"
	Signups ConversionType = "signups"
)

func (t ConversionType) Valid() bool {
	return t == Demos || t == Signups
}

// Input is the caller-constructed value object the engine consumes.
// ConversionValue of 0 means revenue metrics are suppressed (present in the
// output but held at 0).
type Input struct {
	MonthlyTraffic     int            `json:"monthly_traffic"`
	MonthlyConversions int            `json:"monthly_conversions"`
	ConversionType     ConversionType `json:"conversion_type"`
	ConversionValue    float64        `json:"conversion_value"`
}

// Validate enforces the engine's preconditions. It intentionally does not
// require conversions <= traffic: a rate above 100% is unusual but valid
// output.
func (in Input) Validate() error {
	if in.MonthlyTraffic <= 0 {
		return &InvalidInputError{Field: "monthly_traffic", Reason: "must be positive"}
	}
	if in.MonthlyConversions < 0 {
		return &InvalidInputError{Field: "monthly_conversions", Reason: "must not be negative"}
	}
	if in.ConversionValue < 0 {
		return &InvalidInputError{Field: "conversion_value", Reason: "must not be negative"}
	}
	if math.IsNaN(in.ConversionValue) || math.IsInf(in.ConversionValue, 0) {
		return &InvalidInputError{Field: "conversion_value", Reason: "must be finite"}
	}
	if in.ConversionType != "" && !in.ConversionType.Valid() {
		return &InvalidInputError{Field: "conversion_type", Reason: fmt.Sprintf("unknown type %q", in.ConversionType)}
	}
	return nil
}

// Benchmarks holds the two reference conversion rates, in percent. The
// values are injected configuration so the engine stays testable against
// alternative benchmark sets.
type Benchmarks struct {
	B2BAverage   float64 `json:"b2b_average" mapstructure:"b2b_average"`
	Top25Percent float64 `json:"top_25_percent" mapstructure:"top_25_percent"`
}

// Default carries the published B2B SaaS reference rates.
var Default = Benchmarks{B2BAverage: 2.3, Top25Percent: 5.3}

func (b Benchmarks) Validate() error {
	if b.B2BAverage <= 0 {
		return &InvalidInputError{Field: "b2b_average", Reason: "must be positive"}
	}
	if b.Top25Percent <= b.B2BAverage {
		return &InvalidInputError{Field: "top_25_percent", Reason: "must exceed b2b_average"}
	}
	return nil
}

// Comparison is the full gap analysis against a single benchmark rate.
// Gap and Ratio are signed: positive means the user is above the benchmark.
// ConversionsGap is the rounded conversions/month needed to close the gap
// (negative when the user already exceeds it). Revenue fields are 0 whenever
// the input carried no per-conversion value.
type Comparison struct {
	Benchmark         float64 `json:"benchmark"`
	Gap               float64 `json:"gap"`
	Ratio             float64 `json:"ratio"`
	ConversionsGap    int     `json:"conversions_gap"`
	MonthlyRevenueGap float64 `json:"monthly_revenue_gap"`
	AnnualRevenueGap  float64 `json:"annual_revenue_gap"`
}

// HorizonImpact is the 30%-improvement scenario evaluated at one horizon.
type HorizonImpact struct {
	Months                int     `json:"months"`
	AdditionalConversions float64 `json:"additional_conversions"`
	AdditionalRevenue     float64 `json:"additional_revenue"`
}

// Metrics is the derived bundle, recomputed fresh on every call and never
// persisted.
type Metrics struct {
	Input        Input           `json:"input"`
	Benchmarks   Benchmarks      `json:"benchmarks"`
	UserCVR      float64         `json:"user_cvr"`
	ToAverage    Comparison      `json:"to_average"`
	ToTop25      Comparison      `json:"to_top_25"`
	ProjectedCVR float64         `json:"projected_cvr"`
	Horizons     []HorizonImpact `json:"horizons"`
	Series       []SeriesPoint   `json:"series"`
}

// improvementFactor is the fixed "30% improvement" scenario multiplier.
const improvementFactor = 1.3

var impactHorizons = []int{1, 3, 6, 12}

// Compute derives the full metrics bundle for one input. It is total and
// side-effect free: identical input yields identical output.
func (b Benchmarks) Compute(in Input) (Metrics, error) {
	if err := b.Validate(); err != nil {
		return Metrics{}, err
	}
	if err := in.Validate(); err != nil {
		return Metrics{}, err
	}

	traffic := float64(in.MonthlyTraffic)
	userCVR := float64(in.MonthlyConversions) / traffic * 100

	m := Metrics{
		Input:        in,
		Benchmarks:   b,
		UserCVR:      userCVR,
		ToAverage:    b.compare(b.B2BAverage, userCVR, in),
		ToTop25:      b.compare(b.Top25Percent, userCVR, in),
		ProjectedCVR: userCVR * improvementFactor,
	}

	for _, h := range impactHorizons {
		extra := (m.ProjectedCVR - userCVR) / 100 * traffic * float64(h)
		m.Horizons = append(m.Horizons, HorizonImpact{
			Months:                h,
			AdditionalConversions: extra,
			AdditionalRevenue:     extra * in.ConversionValue,
		})
	}

	m.Series = b.projectionSeries(in, userCVR)
	return m, nil
}

func (b Benchmarks) compare(benchmark, userCVR float64, in Input) Comparison {
	c := Comparison{
		Benchmark: benchmark,
		Gap:       userCVR - benchmark,
		Ratio:     (userCVR - benchmark) / benchmark * 100,
	}
	// Conversion-count deltas round half away from zero. This is the only
	// place fractional conversions become a whole number for display.
	c.ConversionsGap = roundHalfAway(benchmark/100*float64(in.MonthlyTraffic) - float64(in.MonthlyConversions))
	if in.ConversionValue > 0 {
		c.MonthlyRevenueGap = float64(c.ConversionsGap) * in.ConversionValue
		c.AnnualRevenueGap = c.MonthlyRevenueGap * 12
	}
	return c
}

func roundHalfAway(v float64) int {
	return int(math.Round(v))
}
