package domain

import (
	"math"
	"sort"
	"time"
)

// Window is an inclusive time range in milliseconds since the Unix epoch.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// BrushOffset is how far the brush selection sits inside the full time range:
// Start is measured forward from the range start, End backward from the range end.
type BrushOffset struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// SeriesWindow returns the time range spanned by all non-empty series.
func SeriesWindow(series ...Series) (Window, bool) {
	found := false
	w := Window{Start: math.MaxInt64, End: math.MinInt64}
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		found = true
		w.Start = min(w.Start, s[0].DateTime)
		w.End = max(w.End, s[len(s)-1].DateTime)
	}
	return w, found
}

// VisibleWindow applies a brush offset to the full range. A nil offset leaves
// the range unchanged.
func VisibleWindow(full Window, offset *BrushOffset) Window {
	if offset == nil {
		return full
	}
	return Window{Start: full.Start + offset.Start, End: full.End - offset.End}
}

// OffsetFromSelection converts a brush selection into offsets from the full range.
func OffsetFromSelection(full, selection Window) BrushOffset {
	return BrushOffset{
		Start: selection.Start - full.Start,
		End:   full.End - selection.End,
	}
}

// VisiblePoints returns the sub-slice of series inside w. The result shares
// storage with series.
func VisiblePoints(series Series, w Window) Series {
	lo := sort.Search(len(series), func(i int) bool { return series[i].DateTime >= w.Start })
	hi := sort.Search(len(series), func(i int) bool { return series[i].DateTime > w.End })
	if lo >= hi {
		return Series{}
	}
	return series[lo:hi]
}

// DeltaDays returns the number of whole days from a to b, rounded to the nearest day.
func DeltaDays(a, b time.Time) int {
	const day = 24 * time.Hour
	return int(math.Round(float64(b.Sub(a)) / float64(day)))
}
