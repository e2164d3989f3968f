// Package units converts raw byte counts into display units. The unit is
// chosen by the decimal digit count of the byte value, not by magnitude;
// this reproduces the unit jumps at digit-count boundaries that existing
// dashboards expect (999999999 bytes renders in MB, 1000000000 in GB).
package units

import (
	"math"
	"strconv"
)

const (
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
)

// Scale converts a byte count to a value in MB, GB or TB, rounded to two
// decimals. Fewer than 10 digits selects MB, 10 to 12 GB, 13 or more TB.
func Scale(bytes int64) (float64, string) {
	switch d := digits(bytes); {
	case d >= 13:
		return Round(float64(bytes)/tb, 2), "TB"
	case d >= 10:
		return Round(float64(bytes)/gb, 2), "GB"
	default:
		return Round(float64(bytes)/mb, 2), "MB"
	}
}

// ScalePair converts used and total to a single shared unit chosen by the
// digit count of total, so the pair can be displayed side by side.
func ScalePair(used, total int64) (scaledUsed, scaledTotal float64, unit string) {
	div := float64(mb)
	unit = "MB"
	switch d := digits(total); {
	case d >= 13:
		div, unit = tb, "TB"
	case d >= 10:
		div, unit = gb, "GB"
	}
	return Round(float64(used)/div, 2), Round(float64(total)/div, 2), unit
}

func digits(v int64) int {
	return len(strconv.FormatInt(v, 10))
}

// Round rounds to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Ftoa renders a float for plugin output: whole values keep one trailing
// decimal (90 renders as "90.0"), everything else drops trailing zeros.
func Ftoa(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
