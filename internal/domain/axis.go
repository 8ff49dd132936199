package domain

import (
	"math"
	"slices"
)

const (
	// paddingRatio is the fraction of the data range added to each end of the Y domain.
	paddingRatio = 0.2

	// yTickCount is the target number of linear ticks.
	yTickCount = 5
)

// DefaultSymlogParameters are the discharge parameters drawn on a symlog scale.
var DefaultSymlogParameters = []string{"00060", "72137"}

// Domain is the [lo, hi] extent of an axis.
type Domain [2]float64

// Lo returns the lower bound.
func (d Domain) Lo() float64 { return d[0] }

// Hi returns the upper bound.
func (d Domain) Hi() float64 { return d[1] }

// Validate reports whether both bounds are finite and ordered.
func (d Domain) Validate() error {
	if !isFinite(d[0]) || !isFinite(d[1]) || d[0] > d[1] {
		return ErrInvalidDomain
	}
	return nil
}

// TickSet holds the Y-axis tick values and their label format.
type TickSet struct {
	TickValues []float64
	TickFormat TickFormat
}

// Labels renders the tick values with the tick format.
func (t TickSet) Labels() []string {
	return t.TickFormat.FormatAll(t.TickValues)
}

// ParameterSet is a set of parameter codes. The zero value is an empty set.
type ParameterSet map[string]struct{}

// NewParameterSet builds a set from the given codes.
func NewParameterSet(codes ...string) ParameterSet {
	s := make(ParameterSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether code is in the set.
func (s ParameterSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the codes in sorted order.
func (s ParameterSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// ExtendDomain pads domain by 20% on each end. When useLogLowerBound is set the
// lower bound is not padded: a non-negative domain gets the nearest power of ten
// at or below domain[0], any other domain keeps domain[0]. Non-negative domains
// never extend below zero.
//
// domain must satisfy lo <= hi; other inputs give unspecified but finite-safe output.
func ExtendDomain(domain Domain, useLogLowerBound bool) Domain {
	lo, hi := domain[0], domain[1]
	nonNegative := lo >= 0 && hi >= 0

	padding := paddingRatio * (hi - lo)
	extLo, extHi := lo-padding, hi+padding

	// log10(0) is -Inf; a zero minimum keeps the padded bound, which clamps to 0 below.
	switch {
	case useLogLowerBound && !nonNegative:
		extLo = lo
	case useLogLowerBound && lo > 0:
		extLo = math.Pow(10, math.Floor(math.Log10(lo)))
	}

	if nonNegative {
		extLo = math.Max(0, extLo)
	}
	return Domain{extLo, extHi}
}

// AxisCalculator computes Y-axis domains and ticks. Symlog lists the parameter
// codes drawn on a symlog scale.
type AxisCalculator struct {
	Symlog ParameterSet
}

// NewAxisCalculator creates a calculator for the given symlog parameter codes.
func NewAxisCalculator(symlog ParameterSet) *AxisCalculator {
	return &AxisCalculator{Symlog: symlog}
}

// IsSymlog reports whether parameterCode is drawn on a symlog scale.
func (c *AxisCalculator) IsSymlog(parameterCode string) bool {
	return c.Symlog.Contains(parameterCode)
}

// YDomain returns the padded Y domain covering every finite value in series.
// Empty series are skipped; with no finite values at all the domain is [0, 1].
func (c *AxisCalculator) YDomain(series []Series, parameterCode string) Domain {
	found := false
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		sLo, sHi, ok := seriesExtent(s)
		if !ok {
			continue
		}
		found = true
		lo = math.Min(lo, sLo)
		hi = math.Max(hi, sHi)
	}

	if !found {
		return Domain{0, 1}
	}
	return ExtendDomain(Domain{lo, hi}, c.IsSymlog(parameterCode))
}

// seriesExtent returns the min and max finite value of s. A series with a single
// distinct value v is widened to span v - v/2 and v + v/2; for v == 0 that
// stays [0, 0].
func seriesExtent(s Series) (float64, float64, bool) {
	values := s.FiniteValues()
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		// v/2 is negative for v < 0, so order the widened pair.
		a, b := lo-lo/2, lo+lo/2
		lo, hi = min(a, b), max(a, b)
	}
	return lo, hi, true
}

// YTicks returns the tick values and label format for domain. Symlog parameters
// get additional ticks between zero and the smallest linear tick; when narrow is
// set and there are more than three of them, only every other tick is kept.
func (c *AxisCalculator) YTicks(domain Domain, parameterCode string, narrow bool) TickSet {
	symlog := c.IsSymlog(parameterCode)

	ticks := NiceTicks(domain[0], domain[1], yTickCount)
	if symlog {
		ticks = AdditionalTickMarks(ticks, domain)
	}

	if symlog && narrow && len(ticks) > 3 {
		ticks = oddIndexed(ticks)
	}

	return TickSet{
		TickValues: ticks,
		TickFormat: chooseTickFormat(ticks),
	}
}

// Axis is the Y domain and ticks for one chart.
type Axis struct {
	Domain Domain
	Ticks  TickSet
	Symlog bool
}

// Axis computes the Y domain and ticks together.
func (c *AxisCalculator) Axis(series []Series, parameterCode string, narrow bool) Axis {
	domain := c.YDomain(series, parameterCode)
	return Axis{
		Domain: domain,
		Ticks:  c.YTicks(domain, parameterCode, narrow),
		Symlog: c.IsSymlog(parameterCode),
	}
}

func oddIndexed(values []float64) []float64 {
	out := make([]float64, 0, len(values)/2)
	for i := 1; i < len(values); i += 2 {
		out = append(out, values[i])
	}
	return out
}
