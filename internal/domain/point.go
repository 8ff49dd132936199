package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a single observation in a hydrograph series.
type Point struct {
	DateTime   int64    // milliseconds since the Unix epoch
	Value      float64  // NaN marks a gap
	Qualifiers []string // NWIS qualifier codes, e.g. "P", "A", "e"
}

// pointJSON is the wire form. Value is a pointer so that null round-trips as a gap.
type pointJSON struct {
	DateTime   int64    `json:"dateTime"`
	Value      *float64 `json:"value"`
	Qualifiers []string `json:"qualifiers,omitempty"`
}

// MarshalJSON encodes non-finite values as null.
func (p Point) MarshalJSON() ([]byte, error) {
	out := pointJSON{DateTime: p.DateTime, Qualifiers: p.Qualifiers}
	if isFinite(p.Value) {
		v := p.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null or missing value as NaN.
func (p *Point) UnmarshalJSON(data []byte) error {
	var in pointJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.DateTime = in.DateTime
	p.Qualifiers = in.Qualifiers
	if in.Value == nil {
		p.Value = math.NaN()
	} else {
		p.Value = *in.Value
	}
	return nil
}

// Series is a time-ordered sequence of points, ascending by DateTime.
type Series []Point

// Validate reports whether the series is sorted ascending by DateTime.
// Equal timestamps are allowed.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].DateTime < s[i-1].DateTime {
			return fmt.Errorf("%w: point %d at %d precedes point %d at %d",
				ErrUnsortedSeries, i, s[i].DateTime, i-1, s[i-1].DateTime)
		}
	}
	return nil
}

// FiniteValues returns the finite values of the series in order.
func (s Series) FiniteValues() []float64 {
	values := make([]float64, 0, len(s))
	for _, pt := range s {
		if isFinite(pt.Value) {
			values = append(values, pt.Value)
		}
	}
	return values
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
