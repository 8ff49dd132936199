package domain

import "errors"

// Validation errors returned at the service boundaries. The axis and nearest-point
// functions themselves never fail.
var (
	// ErrUnsortedSeries is returned when a series is not ascending by dateTime.
	ErrUnsortedSeries = errors.New("series is not sorted by dateTime")

	// ErrMissingParameterCode is returned when a snapshot has no parameter code.
	ErrMissingParameterCode = errors.New("parameter code is required")

	// ErrInvalidDomain is returned when a domain is non-finite or lo > hi.
	ErrInvalidDomain = errors.New("domain must be finite with lo <= hi")

	// ErrTooFewPoints is returned when a nearest-point lookup gets fewer than two points.
	ErrTooFewPoints = errors.New("at least two points are required")

	// ErrSeriesNotFound is returned by a SeriesFetcher when the upstream has no
	// data for the requested site and parameter.
	ErrSeriesNotFound = errors.New("no series found for site and parameter")
)
