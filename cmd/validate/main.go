// Command validate checks the mock fixtures written by genmock: every snapshot
// must be chartable, every stored report must match what the domain package
// computes today, and every report must satisfy the axis invariants.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -snapshots data/mock/snapshots.json \
//	  -reports data/mock/axis_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/couchcryptid/hydrograph-axis-service/internal/config"
	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	snapshotsPath := flag.String("snapshots", "", "path to the snapshot fixture")
	reportsPath := flag.String("reports", "", "path to the expected axis reports")
	paramsFile := flag.String("parameters", "", "optional YAML parameter catalogue")
	flag.Parse()

	if *snapshotsPath == "" || *reportsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*snapshotsPath, *reportsPath, *paramsFile); code != 0 {
		os.Exit(code)
	}
}

func run(snapshotsPath, reportsPath, paramsFile string) int {
	// Set a fixed clock matching genmock for ProcessedAt reproducibility.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2018, time.January, 9, 15, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Hydrograph Axis Fixture Validation ===")
	fmt.Println()

	catalogue, err := config.LoadCatalogue(paramsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	calc := domain.NewAxisCalculator(catalogue.SymlogParameters())

	snapshots, err := loadJSON[domain.SeriesSnapshot](snapshotsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load snapshots: %v\n", err)
		return 1
	}
	reports, err := loadJSON[domain.AxisReport](reportsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load reports: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSnapshots(snapshots),
		validateReportParity(snapshots, reports, calc),
		validateAxisInvariants(snapshots, reports),
		validateFocus(snapshots, reports),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d snapshots, %d reports\n", len(snapshots), len(reports))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func label(s domain.SeriesSnapshot, i int) string {
	return fmt.Sprintf("#%d %s/%s", i, s.SiteID, s.ParameterCode)
}

// ── Phase 1: snapshots ──

func validateSnapshots(snapshots []domain.SeriesSnapshot) *phase {
	p := &phase{name: "Phase 1: Snapshot integrity"}
	fmt.Println("Phase 1: Checking snapshots are chartable...")

	if len(snapshots) == 0 {
		p.errorf("fixture has no snapshots")
	}
	for i, s := range snapshots {
		if err := s.Validate(); err != nil {
			p.errorf("%s: %v", label(s, i), err)
		}
		if s.SiteID == "" {
			p.errorf("%s: missing site_id", label(s, i))
		}
		if len(s.Series.Current.FiniteValues()) == 0 {
			p.errorf("%s: current series has no finite values", label(s, i))
		}
	}
	return p
}

// ── Phase 2: parity ──

func validateReportParity(snapshots []domain.SeriesSnapshot, reports []domain.AxisReport, calc *domain.AxisCalculator) *phase {
	p := &phase{name: "Phase 2: Report parity"}
	fmt.Println("Phase 2: Recomputing reports...")

	if len(snapshots) != len(reports) {
		p.errorf("snapshot count %d != report count %d", len(snapshots), len(reports))
		return p
	}
	for i, s := range snapshots {
		want := domain.BuildAxisReport(s, calc)
		if diff := cmp.Diff(want, reports[i], cmpopts.EquateNaNs()); diff != "" {
			p.errorf("%s: stored report differs (-recomputed +stored):\n%s", label(s, i), diff)
		}
	}
	return p
}

// ── Phase 3: axis invariants ──

func validateAxisInvariants(snapshots []domain.SeriesSnapshot, reports []domain.AxisReport) *phase {
	p := &phase{name: "Phase 3: Axis invariants"}
	fmt.Println("Phase 3: Checking axis invariants...")

	for i, r := range reports {
		if i >= len(snapshots) {
			break
		}
		name := label(snapshots[i], i)
		if err := r.YDomain.Validate(); err != nil {
			p.errorf("%s: %v", name, err)
			continue
		}
		lo, hi := r.YDomain.Lo(), r.YDomain.Hi()

		nonNegative := true
		for _, series := range snapshots[i].VisibleSeries() {
			for _, v := range series.FiniteValues() {
				if v < lo || v > hi {
					p.errorf("%s: value %g outside domain [%g, %g]", name, v, lo, hi)
				}
				if v < 0 {
					nonNegative = false
				}
			}
		}
		if nonNegative && lo < 0 {
			p.errorf("%s: non-negative data with negative lower bound %g", name, lo)
		}

		if len(r.TickLabels) != len(r.TickValues) {
			p.errorf("%s: %d labels for %d ticks", name, len(r.TickLabels), len(r.TickValues))
		}
		seen := make(map[float64]bool, len(r.TickValues))
		integral := true
		for _, v := range r.TickValues {
			if seen[v] {
				p.errorf("%s: duplicate tick %g", name, v)
			}
			seen[v] = true
			if v < lo || v > hi {
				p.errorf("%s: tick %g outside domain [%g, %g]", name, v, lo, hi)
			}
			if v != math.Trunc(v) {
				integral = false
			}
		}
		wantFormat := domain.FormatFixed2
		if integral {
			wantFormat = domain.FormatInteger
		}
		if r.TickFormat != wantFormat {
			p.errorf("%s: tick format %q, want %q", name, r.TickFormat, wantFormat)
		}
		if !r.Symlog && !slices.IsSorted(r.TickValues) {
			p.errorf("%s: linear ticks not ascending: %v", name, r.TickValues)
		}
	}
	return p
}

// ── Phase 4: focus ──

func validateFocus(snapshots []domain.SeriesSnapshot, reports []domain.AxisReport) *phase {
	p := &phase{name: "Phase 4: Tooltip focus"}
	fmt.Println("Phase 4: Checking tooltip focus points...")

	for i, r := range reports {
		if i >= len(snapshots) {
			break
		}
		s := snapshots[i]
		name := label(s, i)
		if s.FocusTimes.Current == nil {
			continue
		}
		if r.Focus == nil || r.Focus.Current == nil {
			p.errorf("%s: focus time set but no current focus in report", name)
			continue
		}
		got := r.Focus.Current
		if got.Index < 0 || got.Index >= len(s.Series.Current) {
			p.errorf("%s: focus index %d out of range", name, got.Index)
			continue
		}
		// No other point may be strictly closer to the focus time.
		t := *s.FocusTimes.Current
		best := absDiff(s.Series.Current[got.Index].DateTime, t)
		for j, pt := range s.Series.Current {
			if absDiff(pt.DateTime, t) < best {
				p.errorf("%s: point %d is closer to the focus time than %d", name, j, got.Index)
				break
			}
		}
		if got.Label == "" {
			p.errorf("%s: empty tooltip label", name)
		}
		if r.FocusLineTop == nil {
			p.errorf("%s: focus set but no focus line top", name)
		}
	}
	return p
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
