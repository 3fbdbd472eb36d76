package ui

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders whole dollars with thousands separators: $45,231.
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatCount renders an integer count with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatCompact renders large numbers in SI form rounded to one decimal:
// 1.2k, 3.5M.
func FormatCompact(v float64) string {
	if math.Abs(v) < 1000 {
		return humanize.FormatFloat("#,###.", v)
	}
	// Round at the tenth of the SI unit first so 999,960 becomes 1M, not 1000k.
	exp := 3 * math.Floor(math.Log10(math.Abs(v))/3)
	step := math.Pow(10, exp-1)
	value, prefix := humanize.ComputeSI(math.Round(v/step) * step)
	return humanize.FtoaWithDigits(value, 1) + prefix
}

// FormatPercent renders a percentage with one decimal: 12.5%.
func FormatPercent(v float64) string {
	return humanize.FormatFloat("#,###.#", v) + "%"
}

// FormatDelta renders a signed percentage change with a trend arrow.
func FormatDelta(pct float64) string {
	return fmt.Sprintf("%s %+.1f%%", TrendSymbol(pct), pct)
}
