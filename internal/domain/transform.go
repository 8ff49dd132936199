package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ParseRawEvent deserializes a RawEvent's value into a SeriesSnapshot and checks
// that it can be charted: a parameter code is present and every series is sorted.
func ParseRawEvent(raw RawEvent) (SeriesSnapshot, error) {
	var snap SeriesSnapshot
	if err := json.Unmarshal(raw.Value, &snap); err != nil {
		return SeriesSnapshot{}, fmt.Errorf("parse raw event: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return SeriesSnapshot{}, fmt.Errorf("parse raw event: %w", err)
	}
	return snap, nil
}

// Validate reports whether the snapshot has a parameter code and sorted series.
func (s SeriesSnapshot) Validate() error {
	if strings.TrimSpace(s.ParameterCode) == "" {
		return ErrMissingParameterCode
	}
	named := []struct {
		name   string
		series Series
	}{
		{"current", s.Series.Current},
		{"compare", s.Series.Compare},
		{"median", s.Series.Median},
	}
	for _, n := range named {
		if err := n.series.Validate(); err != nil {
			return fmt.Errorf("%s series: %w", n.name, err)
		}
	}
	return nil
}

// VisibleSeries returns the current, compare and median series trimmed to the
// brush selection. Each series is trimmed against its own time range because the
// compare series sits a year earlier than the others.
func (s SeriesSnapshot) VisibleSeries() []Series {
	all := []Series{s.Series.Current, s.Series.Compare, s.Series.Median}
	if s.BrushOffset == nil {
		return all
	}
	visible := make([]Series, len(all))
	for i, series := range all {
		full, ok := SeriesWindow(series)
		if !ok {
			visible[i] = series
			continue
		}
		visible[i] = VisiblePoints(series, VisibleWindow(full, s.BrushOffset))
	}
	return visible
}

// BuildAxisReport computes the Y axis, tick labels and tooltip focus for snap.
func BuildAxisReport(snap SeriesSnapshot, calc *AxisCalculator) AxisReport {
	axis := calc.Axis(snap.VisibleSeries(), snap.ParameterCode, snap.Narrow)

	report := AxisReport{
		ID:            generateID(snap),
		SiteID:        snap.SiteID,
		ParameterCode: snap.ParameterCode,
		Symlog:        axis.Symlog,
		YDomain:       axis.Domain,
		TickValues:    axis.Ticks.TickValues,
		TickFormat:    axis.Ticks.TickFormat,
		TickLabels:    axis.Ticks.Labels(),
		Focus:         buildFocus(snap),
		ProcessedAt:   clock.Now().UTC(),
	}
	if report.Focus != nil {
		compare := snap.Series.Compare
		if report.Focus.Compare == nil {
			compare = nil
		}
		if top, ok := FocusLineTop(snap.Series.Current, compare); ok {
			report.FocusLineTop = &top
		}
	}
	return report
}

// buildFocus resolves the tooltip points. It returns nil when no focus time is set.
func buildFocus(snap SeriesSnapshot) *FocusReport {
	if snap.FocusTimes.Current == nil && snap.FocusTimes.Compare == nil {
		return nil
	}
	loc := loadLocation(snap.Timezone)

	datum := func(series Series, t *int64) *FocusDatum {
		if t == nil {
			return nil
		}
		n, ok := FocusPoint(series, *t)
		if !ok {
			return nil
		}
		return &FocusDatum{
			Nearest: n,
			Label:   TooltipLabel(n.Point, snap.UnitCode, snap.Qualifiers, loc),
		}
	}

	return &FocusReport{
		Current: datum(snap.Series.Current, snap.FocusTimes.Current),
		Compare: datum(snap.Series.Compare, snap.FocusTimes.Compare),
	}
}

// loadLocation resolves an IANA zone name, falling back to UTC.
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SerializeAxisReport marshals a report into an OutputEvent keyed by its ID.
func SerializeAxisReport(report AxisReport) (OutputEvent, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize axis report: %w", err)
	}
	return OutputEvent{
		Key:   []byte(report.ID),
		Value: data,
		Headers: map[string]string{
			"parameter_code": report.ParameterCode,
			"processed_at":   report.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic ID from the site, parameter and the shape
// of each series. Reprocessing the same snapshot yields the same ID, so the sink
// can be compacted by key.
func generateID(snap SeriesSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%t", snap.SiteID, snap.ParameterCode, snap.Narrow)
	for _, s := range []Series{snap.Series.Current, snap.Series.Compare, snap.Series.Median} {
		if len(s) == 0 {
			b.WriteString("|-")
			continue
		}
		fmt.Fprintf(&b, "|%d:%d:%d", len(s), s[0].DateTime, s[len(s)-1].DateTime)
	}
	if o := snap.BrushOffset; o != nil {
		fmt.Fprintf(&b, "|brush:%d:%d", o.Start, o.End)
	}

	hash := sha256.Sum256([]byte(b.String()))
	short := hex.EncodeToString(hash[:8])
	if snap.SiteID == "" {
		return short
	}
	return snap.SiteID + "-" + snap.ParameterCode + "-" + short
}
