package domain

import (
	"math"
	"strconv"
)

// TickFormat names the label format for a tick set.
type TickFormat string

const (
	// FormatInteger renders ticks without a fractional part.
	FormatInteger TickFormat = "d"
	// FormatFixed2 renders ticks with two decimal places.
	FormatFixed2 TickFormat = ".2f"
)

// Format renders v according to the tick format.
func (f TickFormat) Format(v float64) string {
	switch f {
	case FormatInteger:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	case FormatFixed2:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// FormatAll renders every value with f.
func (f TickFormat) FormatAll(values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = f.Format(v)
	}
	return labels
}

// chooseTickFormat selects integer labels when every tick is a whole number.
func chooseTickFormat(values []float64) TickFormat {
	for _, v := range values {
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return FormatFixed2
		}
	}
	return FormatInteger
}
