package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SnapshotSeries groups the series drawn on one hydrograph.
type SnapshotSeries struct {
	Current Series `json:"current"`
	Compare Series `json:"compare,omitempty"` // same window, previous year
	Median  Series `json:"median,omitempty"`  // daily median statistics
}

// FocusTimes are the tooltip focus times per series, in milliseconds. The
// compare series has its own time axis, so it carries its own focus time.
type FocusTimes struct {
	Current *int64 `json:"current,omitempty"`
	Compare *int64 `json:"compare,omitempty"`
}

// SeriesSnapshot is the source-topic payload: everything needed to derive the
// Y axis and tooltip for one monitoring location and parameter.
type SeriesSnapshot struct {
	SiteID        string            `json:"site_id"`
	ParameterCode string            `json:"parameter_code"`
	UnitCode      string            `json:"unit_code,omitempty"`
	Narrow        bool              `json:"narrow,omitempty"`
	Series        SnapshotSeries    `json:"series"`
	BrushOffset   *BrushOffset      `json:"brush_offset,omitempty"`
	FocusTimes    FocusTimes        `json:"focus_times,omitempty"`
	Qualifiers    map[string]string `json:"qualifiers,omitempty"` // code -> description
	Timezone      string            `json:"timezone,omitempty"`   // IANA name for tooltip labels
}

// FocusDatum is a tooltip point with its rendered label.
type FocusDatum struct {
	Nearest
	Label string `json:"label"`
}

// FocusReport holds the tooltip points for the current and compare series.
type FocusReport struct {
	Current *FocusDatum `json:"current,omitempty"`
	Compare *FocusDatum `json:"compare,omitempty"`
}

// AxisReport is the computed Y axis and tooltip state for a snapshot.
type AxisReport struct {
	ID            string       `json:"id"`
	SiteID        string       `json:"site_id"`
	ParameterCode string       `json:"parameter_code"`
	Symlog        bool         `json:"symlog"`
	YDomain       Domain       `json:"y_domain"`
	TickValues    []float64    `json:"tick_values"`
	TickFormat    TickFormat   `json:"tick_format"`
	TickLabels    []string     `json:"tick_labels"`
	Focus         *FocusReport `json:"focus,omitempty"`
	FocusLineTop  *float64     `json:"focus_line_top,omitempty"`
	ProcessedAt   time.Time    `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
