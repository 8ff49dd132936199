// Package domain models hydrograph series and the axis math used to chart them.
//
// # Data Source
//
// Series originate from the USGS National Water Information System (NWIS)
// instantaneous-values service. An upstream collector (or the optional NWIS
// client in adapter/nwis) publishes one SeriesSnapshot per monitoring location
// and parameter: the current period, an optional compare period (same window
// one year earlier) and the daily median statistics, each as a list of points.
//
// # Points
//
//	{"dateTime": 1514926800000, "value": 10, "qualifiers": ["P"]}
//
// dateTime is milliseconds since the Unix epoch. Within a series points are
// sorted ascending by dateTime. A null value marks a gap (equipment malfunction,
// ice, missing record) and decodes to NaN; gaps are skipped by every extent
// computation. Qualifier codes are NWIS codes such as "P" (provisional),
// "A" (approved) and "e" (estimated).
//
// # Parameter Codes
//
// Parameter codes are five-digit NWIS identifiers:
//
//	00060  discharge, cubic feet per second
//	00065  gage height, feet
//	00010  water temperature, degrees Celsius
//	72137  discharge, tidally filtered, cubic feet per second
//
// Discharge spans several orders of magnitude between base flow and flood
// peaks, so its parameters are drawn on a symlog scale. The set of symlog codes
// is configuration (see ParameterSet), not derived from the data.
//
// # Y Axis
//
// The Y domain is the extent of all finite values across the visible series,
// padded by 20% on each end. Non-negative domains are clamped at zero; symlog
// domains use the nearest power of ten at or below the minimum as lower bound.
//
// Ticks follow the d3 "nice" linear tick algorithm with a target of five. On a
// symlog scale the space between zero and the smallest tick is filled by
// repeatedly halving that tick (see AdditionalTickMarks). Filler ticks are
// placed ahead of the linear ticks and are not sorted.
//
// # Tooltip
//
// The tooltip tracks the cursor by mapping the cursor's x position to a time and
// picking the nearest point with FindNearest. Ties between two equidistant
// points resolve to the later point.
package domain
