package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	paramDischarge   = "00060"
	paramTemperature = "00010"
)

func testCalculator() *AxisCalculator {
	return NewAxisCalculator(NewParameterSet(DefaultSymlogParameters...))
}

func values(vs ...float64) Series {
	s := make(Series, len(vs))
	for i, v := range vs {
		s[i] = Point{DateTime: int64(i) * 900_000, Value: v}
	}
	return s
}

func assertDomain(t *testing.T, want, got Domain) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-9, "lower bound")
	assert.InDelta(t, want[1], got[1], 1e-9, "upper bound")
}

func TestExtendDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		log    bool
		want   Domain
	}{
		{"positive linear", Domain{10, 20}, false, Domain{8, 22}},
		{"positive log lower bound", Domain{10, 20}, true, Domain{10, 22}},
		{"log lower bound rounds down to power of ten", Domain{250, 900}, true, Domain{100, 1030}},
		{"fractional minimum", Domain{0.5, 1}, false, Domain{0.4, 1.1}},
		{"padding clamped at zero", Domain{1, 11}, false, Domain{0, 13}},
		{"mixed sign not clamped", Domain{-10, 20}, false, Domain{-16, 26}},
		{"mixed sign log keeps unpadded lower bound", Domain{-10, 20}, true, Domain{-10, 26}},
		{"all negative log keeps unpadded lower bound", Domain{-20, -10}, true, Domain{-20, -8}},
		{"all negative", Domain{-20, -10}, false, Domain{-22, -8}},
		{"zero minimum with log lower bound", Domain{0, 10}, true, Domain{0, 12}},
		{"zero width at zero", Domain{0, 0}, true, Domain{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDomain(t, tt.want, ExtendDomain(tt.domain, tt.log))
		})
	}
}

func TestExtendDomain_Properties(t *testing.T) {
	domains := []Domain{
		{0, 0}, {0, 1}, {1, 1}, {0.001, 0.002}, {3, 7}, {12, 48_000},
		{-5, 5}, {-100, -1}, {-0.5, 0}, {7, 7}, {99.9, 100.1},
	}
	for _, d := range domains {
		for _, log := range []bool{false, true} {
			got := ExtendDomain(d, log)
			assert.LessOrEqual(t, got[0], got[1], "lo <= hi for %v log=%t", d, log)
			assert.GreaterOrEqual(t, got[1], d[1], "hi not shrunk for %v log=%t", d, log)
			if d[0] >= 0 && d[1] >= 0 {
				assert.GreaterOrEqual(t, got[0], 0.0, "non-negative clamp for %v log=%t", d, log)
			}
		}
	}
}

func TestYDomain(t *testing.T) {
	calc := testCalculator()

	t.Run("two single-point series with symlog parameter", func(t *testing.T) {
		got := calc.YDomain([]Series{values(4), values(10)}, paramDischarge)
		// [2,6] and [5,15] merge to [2,15]; symlog lower bound is 10^0.
		assertDomain(t, Domain{1, 17.6}, got)
	})

	t.Run("two single-point series with linear parameter", func(t *testing.T) {
		got := calc.YDomain([]Series{values(4), values(10)}, paramTemperature)
		assertDomain(t, Domain{0, 17.6}, got)
	})

	t.Run("single point widened before padding", func(t *testing.T) {
		got := calc.YDomain([]Series{values(10)}, paramTemperature)
		// [5,15] padded by 2.
		assertDomain(t, Domain{3, 17}, got)
	})

	t.Run("single zero point stays degenerate", func(t *testing.T) {
		got := calc.YDomain([]Series{values(0)}, paramDischarge)
		assert.Equal(t, Domain{0, 0}, got)
	})

	t.Run("empty series falls back to unit domain", func(t *testing.T) {
		assert.Equal(t, Domain{0, 1}, calc.YDomain([]Series{{}}, paramDischarge))
		assert.Equal(t, Domain{0, 1}, calc.YDomain(nil, paramDischarge))
	})

	t.Run("only gaps falls back to unit domain", func(t *testing.T) {
		got := calc.YDomain([]Series{values(math.NaN(), math.Inf(1))}, paramTemperature)
		assert.Equal(t, Domain{0, 1}, got)
	})

	t.Run("non-finite values ignored", func(t *testing.T) {
		s := values(1, math.NaN(), 5, math.Inf(1), math.Inf(-1))
		assertDomain(t, Domain{0.2, 5.8}, calc.YDomain([]Series{s}, paramTemperature))
		assertDomain(t, Domain{1, 5.8}, calc.YDomain([]Series{s}, paramDischarge))
	})

	t.Run("negative symlog values keep unpadded lower bound", func(t *testing.T) {
		got := calc.YDomain([]Series{values(-5, 0, 5)}, paramDischarge)
		assertDomain(t, Domain{-5, 7}, got)
		assertDomain(t, Domain{-7, 7}, calc.YDomain([]Series{values(-5, 0, 5)}, paramTemperature))
	})

	t.Run("single negative point widened in order", func(t *testing.T) {
		got := calc.YDomain([]Series{values(-10)}, paramTemperature)
		// [-15,-5] padded by 2.
		assertDomain(t, Domain{-17, -3}, got)
	})

	t.Run("single negative point merged with positive series", func(t *testing.T) {
		got := calc.YDomain([]Series{values(-10), values(5, 20)}, paramTemperature)
		// [-15,-5] and [5,20] merge to [-15,20], padded by 7.
		assertDomain(t, Domain{-22, 27}, got)
	})

	t.Run("empty series skipped among others", func(t *testing.T) {
		got := calc.YDomain([]Series{{}, values(10, 20), nil}, paramTemperature)
		assertDomain(t, Domain{8, 22}, got)
	})

	t.Run("custom symlog set", func(t *testing.T) {
		custom := NewAxisCalculator(NewParameterSet(paramTemperature))
		got := custom.YDomain([]Series{values(250, 900)}, paramTemperature)
		assertDomain(t, Domain{100, 1030}, got)
		assert.False(t, custom.IsSymlog(paramDischarge))
	})
}

func TestYDomain_Properties(t *testing.T) {
	calc := testCalculator()
	inputs := [][]Series{
		{values(-10)},
		{values(-0.001)},
		{values(-10), values(5, 20)},
		{values(-3), values(-7)},
		{values(4), values(-4)},
		{values(0), values(-2)},
		{values(-100, -1), values(-50)},
		{values(7), values(math.NaN(), 3)},
		{values(-1e6), values(2e6)},
	}
	for _, series := range inputs {
		for _, param := range []string{paramDischarge, paramTemperature} {
			got := calc.YDomain(series, param)
			require.NoError(t, got.Validate(), "domain %v for %v param=%s", got, series, param)
			for _, s := range series {
				for _, v := range s.FiniteValues() {
					assert.GreaterOrEqual(t, v, got[0], "value %v below domain %v param=%s", v, got, param)
					assert.LessOrEqual(t, v, got[1], "value %v above domain %v param=%s", v, got, param)
				}
			}
		}
	}
}

func TestYTicks(t *testing.T) {
	calc := testCalculator()

	tests := []struct {
		name   string
		domain Domain
		param  string
		narrow bool
		want   []float64
		format TickFormat
	}{
		{
			name: "symlog filler duplicating a linear tick is dropped", domain: Domain{1, 17.6},
			param: paramDischarge, want: []float64{5, 10, 15}, format: FormatInteger,
		},
		{
			name: "linear ticks", domain: Domain{0, 17.6},
			param: paramTemperature, want: []float64{0, 5, 10, 15}, format: FormatInteger,
		},
		{
			name: "symlog fillers above the lower bound", domain: Domain{100, 5000},
			param: paramDischarge, want: []float64{500, 300, 200, 1000, 2000, 3000, 4000, 5000}, format: FormatInteger,
		},
		{
			name: "symlog fillers thinned on narrow screens", domain: Domain{100, 5000},
			param: paramDischarge, narrow: true, want: []float64{300, 1000, 3000, 5000}, format: FormatInteger,
		},
		{
			name: "symlog fillers rounded to thousands", domain: Domain{1000, 50000},
			param: paramDischarge, want: []float64{5000, 3000, 2000, 10000, 20000, 30000, 40000, 50000}, format: FormatInteger,
		},
		{
			name: "negative ticks mirror fillers", domain: Domain{-50, 50},
			param: paramDischarge, want: []float64{-10, -5, 10, 5, -40, -20, 0, 20, 40}, format: FormatInteger,
		},
		{
			name: "fractional ticks use two decimals", domain: Domain{0, 1},
			param: paramTemperature, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, format: FormatFixed2,
		},
		{
			name: "narrow flag ignored for linear parameters", domain: Domain{0, 1},
			param: paramTemperature, narrow: true, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, format: FormatFixed2,
		},
		{
			name: "narrow symlog keeps odd indices", domain: Domain{0, 1},
			param: paramDischarge, narrow: true, want: []float64{0.2, 0.6, 1}, format: FormatFixed2,
		},
		{
			name: "zero width domain", domain: Domain{0, 0},
			param: paramDischarge, want: []float64{0}, format: FormatInteger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.YTicks(tt.domain, tt.param, tt.narrow)
			assert.Equal(t, tt.want, got.TickValues)
			assert.Equal(t, tt.format, got.TickFormat)
		})
	}
}

func TestYTicks_NoFillerAtOrBelowLowerBound(t *testing.T) {
	calc := testCalculator()
	domains := []Domain{{1, 17.6}, {100, 5000}, {40, 900}, {3, 60_000}, {-50, 50}, {-30, 100}, {0.5, 12}}

	for _, d := range domains {
		base := NiceTicks(d[0], d[1], yTickCount)
		got := calc.YTicks(d, paramDischarge, false)
		fillers := got.TickValues[:len(got.TickValues)-len(base)]
		assert.Equal(t, base, got.TickValues[len(fillers):], "linear ticks kept at the end for %v", d)
		for _, f := range fillers {
			assert.Greater(t, f, d[0], "filler %v at or below lower bound of %v", f, d)
		}
	}
}

func TestYTicks_Deduplicated(t *testing.T) {
	calc := testCalculator()
	for _, d := range []Domain{{1, 17.6}, {2, 40}, {100, 5000}, {-50, 50}} {
		got := calc.YTicks(d, paramDischarge, false)
		seen := map[float64]bool{}
		for _, v := range got.TickValues {
			assert.False(t, seen[v], "duplicate tick %v for %v", v, d)
			seen[v] = true
		}
	}
}

func TestAxis_Idempotent(t *testing.T) {
	calc := testCalculator()
	series := []Series{values(3, 40, 12, math.NaN(), 800), values(5, 7)}

	first := calc.Axis(series, paramDischarge, true)
	second := calc.Axis(series, paramDischarge, true)

	assert.Equal(t, first, second)
	assert.Equal(t, values(3, 40, 12, math.NaN(), 800)[1], series[0][1], "input not mutated")
	assert.True(t, first.Symlog)
}

func TestAdditionalTickMarks_Helpers(t *testing.T) {
	t.Run("lowest absolute tick prefers negatives", func(t *testing.T) {
		assert.Equal(t, 20.0, lowestAbsoluteTick([]float64{-40, -20, 0, 20}))
		assert.Equal(t, 5.0, lowestAbsoluteTick([]float64{5, 10, 15}))
	})

	t.Run("halving stops at two", func(t *testing.T) {
		assert.Equal(t, []float64{500, 250, 125, 63, 32, 16, 8, 4, 2}, halvingTickValues(1000))
		assert.Empty(t, halvingTickValues(2))
		assert.Empty(t, halvingTickValues(math.Inf(1)))
	})

	t.Run("rounding by magnitude", func(t *testing.T) {
		assert.Equal(t, []float64{2000, 200, 5}, roundTickValues([]float64{1250, 125, 3, 2}))
	})

	t.Run("lower bound filter runs before mirroring", func(t *testing.T) {
		got := AdditionalTickMarks([]float64{-40, -20, 0, 20, 40}, Domain{7, 50})
		assert.Equal(t, []float64{-10, 10, -40, -20, 0, 20, 40}, got)
	})

	t.Run("empty linear ticks", func(t *testing.T) {
		assert.Empty(t, AdditionalTickMarks(nil, Domain{0, 1}))
	})
}

func TestParameterSet(t *testing.T) {
	s := NewParameterSet("72137", "00060", "00060")
	assert.True(t, s.Contains("00060"))
	assert.False(t, s.Contains("00065"))
	assert.Equal(t, []string{"00060", "72137"}, s.Codes())

	var empty ParameterSet
	assert.False(t, empty.Contains("00060"))
}

func TestDomain_Validate(t *testing.T) {
	require.NoError(t, Domain{0, 1}.Validate())
	require.NoError(t, Domain{3, 3}.Validate())
	assert.ErrorIs(t, Domain{2, 1}.Validate(), ErrInvalidDomain)
	assert.ErrorIs(t, Domain{math.NaN(), 1}.Validate(), ErrInvalidDomain)
	assert.ErrorIs(t, Domain{0, math.Inf(1)}.Validate(), ErrInvalidDomain)
}
