package benchmark

import (
	"fmt"
	"math"
)

// FormatPercent renders a rate with two decimal places, e.g. "2.50%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedPercent is FormatPercent with an explicit leading sign,
// used for gap figures where the sign carries over/under-performance.
func FormatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatCurrency renders a dollar amount per the report's display policy:
// whole dollars below 1,000, "$NK" at or above 1,000, "$N.NM" at or above
// one million. Negative amounts keep their sign in front of the dollar.
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}
