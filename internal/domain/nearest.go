package domain

import (
	"math"
	"sort"
)

// Nearest is the point closest to a query time and its index in the series.
type Nearest struct {
	Point Point `json:"point"`
	Index int   `json:"index"`
}

// FindNearest returns the point of series whose DateTime is closest to t.
// series must be sorted ascending by DateTime. It returns false when the series
// has fewer than two points. When t is equidistant from two points the later
// one wins.
func FindNearest(series Series, t int64) (Nearest, bool) {
	if len(series) < 2 {
		return Nearest{}, false
	}

	i := bisectLeft(series, t, 1)
	if i >= len(series) {
		return Nearest{Point: series[i-1], Index: i - 1}, true
	}

	before, after := series[i-1], series[i]
	if t-before.DateTime >= after.DateTime-t {
		return Nearest{Point: after, Index: i}, true
	}
	return Nearest{Point: before, Index: i - 1}, true
}

// bisectLeft returns the first index in [lo, len(series)) whose DateTime is not
// less than t.
func bisectLeft(series Series, t int64, lo int) int {
	if lo >= len(series) {
		return len(series)
	}
	return lo + sort.Search(len(series)-lo, func(k int) bool {
		return series[lo+k].DateTime >= t
	})
}

// FocusPoint returns the point nearest the tooltip focus time. Unlike FindNearest
// it also answers for a single-point series.
func FocusPoint(series Series, focusTime int64) (Nearest, bool) {
	switch len(series) {
	case 0:
		return Nearest{}, false
	case 1:
		return Nearest{Point: series[0], Index: 0}, true
	default:
		return FindNearest(series, focusTime)
	}
}

// FocusLineTop returns the largest finite value across current and compare, the
// height the tooltip focus line extends to. It returns false when neither series
// has a finite value.
func FocusLineTop(current, compare Series) (float64, bool) {
	top := math.Inf(-1)
	for _, s := range []Series{current, compare} {
		for _, v := range s.FiniteValues() {
			top = math.Max(top, v)
		}
	}
	if math.IsInf(top, -1) {
		return 0, false
	}
	return top, true
}
