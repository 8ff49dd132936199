package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
)

// ParameterDefaults supplies unit codes and qualifier descriptions for
// snapshots that arrive without them.
type ParameterDefaults interface {
	UnitCode(parameterCode string) string
	QualifierDescriptions() map[string]string
}

// SnapshotTransformer implements Transformer by computing an axis report for
// each series snapshot.
type SnapshotTransformer struct {
	calc     *domain.AxisCalculator
	defaults ParameterDefaults
	logger   *slog.Logger
}

// NewTransformer creates a SnapshotTransformer. defaults may be nil.
func NewTransformer(calc *domain.AxisCalculator, defaults ParameterDefaults, logger *slog.Logger) *SnapshotTransformer {
	return &SnapshotTransformer{
		calc:     calc,
		defaults: defaults,
		logger:   logger,
	}
}

func (t *SnapshotTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	snap, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	if t.defaults != nil {
		if snap.UnitCode == "" {
			snap.UnitCode = t.defaults.UnitCode(snap.ParameterCode)
		}
		if snap.Qualifiers == nil {
			snap.Qualifiers = t.defaults.QualifierDescriptions()
		}
	}

	report := domain.BuildAxisReport(snap, t.calc)
	t.logger.Debug("axis report built",
		"id", report.ID,
		"site_id", report.SiteID,
		"parameter_code", report.ParameterCode,
		"symlog", report.Symlog,
		"ticks", len(report.TickValues),
	)
	return domain.SerializeAxisReport(report)
}
