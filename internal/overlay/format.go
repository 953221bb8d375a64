package overlay

import (
	"math"
	"strconv"

	"github.com/rileyhilliard/statoverlay/internal/stats"
)

// Placeholders rendered in place of a value.
const (
	// Unavailable replaces a statistic its source could not produce.
	Unavailable = "n/a"
	// NonFinite replaces NaN and infinite numbers.
	NonFinite = "nan"
)

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	scaled := v * p
	if math.IsInf(scaled, 0) {
		return v
	}
	r := math.Round(scaled) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// FormatNumber rounds v and prints the shortest decimal form, so 1.000
// prints "1" and 1.2345 at three places prints "1.235".
func FormatNumber(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NonFinite
	}
	return strconv.FormatFloat(Round(v, places), 'f', -1, 64)
}

// formatValue prints a statistic without rounding.
func formatValue(v stats.Value) string {
	if !v.IsFinite() {
		return NonFinite
	}
	return v.String()
}
