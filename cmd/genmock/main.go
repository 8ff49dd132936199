// Command genmock generates synthetic hydrograph snapshot fixtures and the axis
// reports the service produces for them. It runs the real domain package so the
// expected reports match pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -snapshots-out data/mock/snapshots.json \
//	  -reports-out data/mock/axis_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/hydrograph-axis-service/internal/config"
	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

var baseDate = time.Date(2018, time.January, 2, 15, 0, 0, 0, time.UTC)

const (
	quarterHour    = 15 * time.Minute
	pointsPerDay   = 24 * 4
	pointsPerWeek  = 7 * pointsPerDay
	defaultTZ      = "America/Chicago"
	focusOffsetMin = 3*24*60 + 7
)

// siteDef describes a synthetic record: a diurnal cycle of amplitude around
// base, with an optional storm peak mid-week and a gap every gapEvery points.
type siteDef struct {
	siteID    string
	parameter string
	base      float64
	amplitude float64
	peak      float64
	gapEvery  int
	narrow    bool
}

var sites = []siteDef{
	{siteID: "05370000", parameter: "00060", base: 40, amplitude: 5, peak: 2400},
	{siteID: "01646500", parameter: "00060", base: 9000, amplitude: 800, peak: 45000, gapEvery: 97},
	{siteID: "01646500", parameter: "00060", base: 9000, amplitude: 800, peak: 45000, narrow: true},
	{siteID: "03339000", parameter: "72137", base: 0.4, amplitude: 0.3},
	{siteID: "05331000", parameter: "00065", base: 3.1, amplitude: 0.2, peak: 6.5},
	{siteID: "08158000", parameter: "00010", base: -0.5, amplitude: 2, gapEvery: 11},
	{siteID: "04087000", parameter: "62614", base: 578.6, amplitude: 0.05},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	snapshotsOut := flag.String("snapshots-out", "", "output path for the snapshot fixture")
	reportsOut := flag.String("reports-out", "", "output path for the expected axis reports")
	paramsFile := flag.String("parameters", "", "optional YAML parameter catalogue")
	flag.Parse()

	if *snapshotsOut == "" || *reportsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -snapshots-out, -reports-out")
	}

	catalogue, err := config.LoadCatalogue(*paramsFile)
	if err != nil {
		return err
	}
	calc := domain.NewAxisCalculator(catalogue.SymlogParameters())

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(baseDate.Add(7 * 24 * time.Hour)))
	defer domain.SetClock(nil)

	snapshots := make([]domain.SeriesSnapshot, 0, len(sites))
	reports := make([]domain.AxisReport, 0, len(sites))
	for _, s := range sites {
		snap := buildSnapshot(s, catalogue)
		if err := snap.Validate(); err != nil {
			return fmt.Errorf("site %s: %w", s.siteID, err)
		}
		snapshots = append(snapshots, snap)
		reports = append(reports, domain.BuildAxisReport(snap, calc))
	}

	if err := writeJSON(*snapshotsOut, snapshots); err != nil {
		return fmt.Errorf("writing snapshot fixture: %w", err)
	}
	log.Printf("wrote snapshot fixture: %s (%d snapshots)", *snapshotsOut, len(snapshots))

	if err := writeJSON(*reportsOut, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportsOut)

	printStats(reports)
	return nil
}

func buildSnapshot(s siteDef, catalogue *config.Catalogue) domain.SeriesSnapshot {
	start := baseDate.UnixMilli()
	yearEarlier := baseDate.AddDate(-1, 0, 0).UnixMilli()
	focus := start + focusOffsetMin*int64(time.Minute/time.Millisecond)
	compareFocus := yearEarlier + focusOffsetMin*int64(time.Minute/time.Millisecond)

	compare := s
	compare.base *= 0.8
	compare.peak = 0
	compare.gapEvery = 0

	return domain.SeriesSnapshot{
		SiteID:        s.siteID,
		ParameterCode: s.parameter,
		UnitCode:      catalogue.UnitCode(s.parameter),
		Narrow:        s.narrow,
		Series: domain.SnapshotSeries{
			Current: syntheticSeries(s, start),
			Compare: syntheticSeries(compare, yearEarlier),
		},
		FocusTimes: domain.FocusTimes{Current: &focus, Compare: &compareFocus},
		Qualifiers: catalogue.QualifierDescriptions(),
		Timezone:   defaultTZ,
	}
}

func syntheticSeries(s siteDef, start int64) domain.Series {
	step := quarterHour.Milliseconds()
	series := make(domain.Series, pointsPerWeek)
	for i := range series {
		v := s.base + s.amplitude*math.Sin(2*math.Pi*float64(i)/pointsPerDay)
		if s.peak != 0 && i >= pointsPerWeek/2 && i < pointsPerWeek/2+24 {
			v += s.peak * math.Sin(math.Pi*float64(i-pointsPerWeek/2)/24)
		}
		if s.gapEvery > 0 && i%s.gapEvery == 0 {
			v = math.NaN()
		}
		qualifiers := []string{"P"}
		if i < pointsPerDay {
			qualifiers = []string{"A"}
		}
		series[i] = domain.Point{DateTime: start + int64(i)*step, Value: v, Qualifiers: qualifiers}
	}
	return series
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.AxisReport) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	for i := range reports {
		r := &reports[i]
		fmt.Printf("%s/%s symlog=%t domain=[%g, %g] format=%s\n",
			r.SiteID, r.ParameterCode, r.Symlog, r.YDomain.Lo(), r.YDomain.Hi(), r.TickFormat)
		fmt.Printf("  ticks: %s\n", strings.Join(r.TickLabels, " "))
		if r.Focus != nil && r.Focus.Current != nil {
			fmt.Printf("  focus: index=%d label=%q\n", r.Focus.Current.Index, r.Focus.Current.Label)
		}
	}
}
