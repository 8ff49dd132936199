package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/couchcryptid/hydrograph-axis-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quarterHour = int64(15 * 60 * 1000)

// mockSite describes a synthetic seven-day record: a diurnal cycle of the
// given amplitude around base, with an optional storm peak and gaps.
type mockSite struct {
	siteID    string
	parameter string
	base      float64
	amplitude float64
	peak      float64
	gapEvery  int
}

var mockSites = []mockSite{
	{siteID: "05370000", parameter: "00060", base: 40, amplitude: 5, peak: 2400},
	{siteID: "01646500", parameter: "00060", base: 9000, amplitude: 800, peak: 45000, gapEvery: 97},
	{siteID: "03339000", parameter: "72137", base: 0.4, amplitude: 0.3},
	{siteID: "05331000", parameter: "00065", base: 3.1, amplitude: 0.2, peak: 6.5},
	{siteID: "08158000", parameter: "00010", base: -0.5, amplitude: 2, gapEvery: 11},
	{siteID: "04087000", parameter: "62614", base: 578.6, amplitude: 0.05},
}

func mockSeries(s mockSite, start int64) domain.Series {
	const points = 7 * 24 * 4
	series := make(domain.Series, points)
	for i := range series {
		v := s.base + s.amplitude*math.Sin(2*math.Pi*float64(i)/96)
		if s.peak != 0 && i >= points/2 && i < points/2+24 {
			v += s.peak * math.Sin(math.Pi*float64(i-points/2)/24)
		}
		if s.gapEvery > 0 && i%s.gapEvery == 0 {
			v = math.NaN()
		}
		series[i] = domain.Point{DateTime: start + int64(i)*quarterHour, Value: v, Qualifiers: []string{"P"}}
	}
	return series
}

func TestSnapshotTransformer_WithMockSeries(t *testing.T) {
	transformer := pipeline.NewTransformer(testCalculator(), staticDefaults{}, slog.Default())
	start := baseTime
	yearEarlier := start - 365*24*60*60*1000

	for _, site := range mockSites {
		for _, narrow := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/%s/narrow=%t", site.siteID, site.parameter, narrow), func(t *testing.T) {
				current := mockSeries(site, start)
				compare := mockSeries(mockSite{base: site.base * 0.8, amplitude: site.amplitude, parameter: site.parameter}, yearEarlier)
				focus := start + 3*24*60*60*1000 + 7*60*1000

				snap := domain.SeriesSnapshot{
					SiteID:        site.siteID,
					ParameterCode: site.parameter,
					Narrow:        narrow,
					Series:        domain.SnapshotSeries{Current: current, Compare: compare},
					FocusTimes:    domain.FocusTimes{Current: &focus},
				}
				payload, err := json.Marshal(snap)
				require.NoError(t, err)

				out, err := transformer.Transform(context.Background(), domain.RawEvent{Key: []byte(site.siteID), Value: payload})
				require.NoError(t, err)

				var report domain.AxisReport
				require.NoError(t, json.Unmarshal(out.Value, &report))
				assertReportInvariants(t, report, current, compare)

				require.NotNil(t, report.Focus)
				require.NotNil(t, report.Focus.Current)
				assert.Equal(t, 288, report.Focus.Current.Index, "focus snaps to the nearest quarter hour")
			})
		}
	}
}

func assertReportInvariants(t *testing.T, report domain.AxisReport, series ...domain.Series) {
	t.Helper()

	lo, hi := report.YDomain.Lo(), report.YDomain.Hi()
	require.LessOrEqual(t, lo, hi)
	for _, s := range series {
		for _, v := range s.FiniteValues() {
			assert.GreaterOrEqual(t, v, lo)
			assert.LessOrEqual(t, v, hi)
		}
	}

	allNonNegative := true
	for _, s := range series {
		for _, v := range s.FiniteValues() {
			if v < 0 {
				allNonNegative = false
			}
		}
	}
	if allNonNegative {
		assert.GreaterOrEqual(t, lo, 0.0, "non-negative data never gets a negative domain")
	}

	require.NotEmpty(t, report.TickValues)
	assert.Len(t, report.TickLabels, len(report.TickValues))

	seen := make(map[float64]bool, len(report.TickValues))
	for _, v := range report.TickValues {
		assert.False(t, seen[v], "duplicate tick %v", v)
		seen[v] = true
		assert.GreaterOrEqual(t, v, lo, "ticks stay inside the domain")
		assert.LessOrEqual(t, v, hi, "ticks stay inside the domain")
	}

	if !report.Symlog {
		assert.True(t, slices.IsSorted(report.TickValues), "linear ticks ascend")
	}

	wantFormat := domain.FormatInteger
	for _, v := range report.TickValues {
		if v != math.Trunc(v) {
			wantFormat = domain.FormatFixed2
		}
	}
	assert.Equal(t, wantFormat, report.TickFormat)
}
