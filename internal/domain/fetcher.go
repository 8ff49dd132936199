package domain

import "context"

// SeriesRequest identifies an instantaneous-values series to fetch.
type SeriesRequest struct {
	SiteID        string
	ParameterCode string
	Period        string // ISO-8601 duration, e.g. "P7D"
}

// FetchedSeries is a series returned by an upstream provider.
type FetchedSeries struct {
	SiteID        string
	SiteName      string
	ParameterCode string
	UnitCode      string
	Points        Series
	Qualifiers    map[string]string // code -> description
}

// SeriesFetcher loads observation series from an upstream data service.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, req SeriesRequest) (FetchedSeries, error)
}
