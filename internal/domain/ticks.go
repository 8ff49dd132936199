package domain

import "math"

// Thresholds for choosing a 10, 5, 2 or 1 multiple of the base power of ten.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// NiceTicks returns approximately count evenly spaced round values spanning
// [start, stop], matching d3-array's ticks. The values are inclusive of start
// and stop when they fall on a multiple of the step. Reversed bounds produce
// descending ticks.
func NiceTicks(start, stop float64, count int) []float64 {
	if start == stop && count > 0 {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return []float64{}
	}

	var ticks []float64
	if step > 0 {
		lo := math.Ceil(start / step)
		hi := math.Floor(stop / step)
		n := int(math.Ceil(hi - lo + 1))
		ticks = make([]float64, 0, max(n, 0))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))*step)
		}
	} else {
		// Sub-unit step: divide by the inverse to keep values like 0.2 exact.
		inv := -step
		lo := math.Ceil(start * inv)
		hi := math.Floor(stop * inv)
		n := int(math.Ceil(hi - lo + 1))
		ticks = make([]float64, 0, max(n, 0))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))/inv)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// tickIncrement returns the tick step for [start, stop]. Steps of at least one
// are returned as is; smaller steps are returned as the negated inverse, so a
// step of 0.2 comes back as -5.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log(step) / math.Ln10)
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
