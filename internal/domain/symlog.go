package domain

import (
	"math"
	"slices"
)

// AdditionalTickMarks fills the gap a symlog scale leaves between zero and the
// smallest linear tick. Starting from the tick closest to zero it halves
// repeatedly and rounds the results to coarse multiples. Anything at or below
// the domain's lower bound is dropped, then the fillers are mirrored when the
// linear ticks include negatives. Fillers come first, followed by the original ticks; the
// result is not sorted. Fillers equal to an existing tick are dropped.
func AdditionalTickMarks(tickValues []float64, domain Domain) []float64 {
	if len(tickValues) == 0 {
		return tickValues
	}

	fillers := halvingTickValues(lowestAbsoluteTick(tickValues))
	fillers = roundTickValues(fillers)
	fillers = ticksAbove(fillers, domain[0])
	fillers = mirrorNegativeTicks(tickValues, fillers)

	out := make([]float64, 0, len(fillers)+len(tickValues))
	for _, f := range fillers {
		if !slices.Contains(tickValues, f) {
			out = append(out, f)
		}
	}
	return append(out, tickValues...)
}

// lowestAbsoluteTick returns the absolute value of the largest negative tick, or
// the smallest tick when none are negative.
func lowestAbsoluteTick(tickValues []float64) float64 {
	highestNegative := math.Inf(-1)
	for _, v := range tickValues {
		if v < 0 && v > highestNegative {
			highestNegative = v
		}
	}
	if !math.IsInf(highestNegative, -1) {
		return math.Abs(highestNegative)
	}
	return slices.Min(tickValues)
}

// halvingTickValues halves v (rounding up) until it is no more than 2, collecting
// each step.
func halvingTickValues(v float64) []float64 {
	var out []float64
	if !isFinite(v) {
		return out
	}
	for v > 2 {
		v = math.Ceil(v / 2)
		out = append(out, v)
	}
	return out
}

// roundTickValues rounds up to multiples of 1000 above 1000, 100 above 100 and 5
// otherwise, removing duplicates while keeping first-seen order.
func roundTickValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		switch {
		case v > 1000:
			v = math.Ceil(v/1000) * 1000
		case v > 100:
			v = math.Ceil(v/100) * 100
		default:
			v = math.Ceil(v/5) * 5
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// ticksAbove keeps the values strictly greater than lo.
func ticksAbove(values []float64, lo float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > lo {
			out = append(out, v)
		}
	}
	return out
}

// mirrorNegativeTicks prepends the negation of every filler when the linear
// ticks include negative values.
func mirrorNegativeTicks(tickValues, fillers []float64) []float64 {
	if !slices.ContainsFunc(tickValues, func(v float64) bool { return v < 0 }) {
		return fillers
	}
	out := make([]float64, 0, 2*len(fillers))
	for _, f := range fillers {
		out = append(out, -f)
	}
	return append(out, fillers...)
}
