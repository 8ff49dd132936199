package domain

import (
	"strconv"
	"strings"
	"time"
)

// tooltipTimeLayout renders e.g. "Jan 2, 2018, 3:04:05 PM CST".
const tooltipTimeLayout = "Jan 2, 2006, 3:04:05 PM MST"

// TooltipLabel renders the tooltip text for p:
//
//	"10 ft3/s - Jan 2, 2018, 3:00:00 PM CST (Provisional data subject to revision.)"
//
// The value and unit are omitted for gaps and zero values, leaving
// "- <time> (...)". Qualifier codes
// without a description are left out. A nil loc renders in UTC.
func TooltipLabel(p Point, unitCode string, qualifierDescriptions map[string]string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	if isFinite(p.Value) && p.Value != 0 {
		b.WriteString(strconv.FormatFloat(p.Value, 'f', -1, 64))
		if unitCode != "" {
			b.WriteString(" ")
			b.WriteString(unitCode)
		}
		b.WriteString(" ")
	}
	b.WriteString("- ")
	b.WriteString(time.UnixMilli(p.DateTime).In(loc).Format(tooltipTimeLayout))

	descriptions := make([]string, 0, len(p.Qualifiers))
	for _, q := range p.Qualifiers {
		if d, ok := qualifierDescriptions[q]; ok {
			descriptions = append(descriptions, d)
		}
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(descriptions, ", "))
	b.WriteString(")")
	return b.String()
}
