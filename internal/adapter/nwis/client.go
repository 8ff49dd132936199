// Package nwis fetches instantaneous-values series from the USGS National
// Water Information System.
package nwis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/couchcryptid/hydrograph-axis-service/internal/observability"
)

// DefaultPeriod is the lookback used when a request has no period.
const DefaultPeriod = "P7D"

// Client implements domain.SeriesFetcher using the NWIS IV JSON service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWIS client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchSeries loads the series for one site and parameter. It returns
// domain.ErrSeriesNotFound when the service answers without data.
func (c *Client) FetchSeries(ctx context.Context, req domain.SeriesRequest) (domain.FetchedSeries, error) {
	period := req.Period
	if period == "" {
		period = DefaultPeriod
	}
	params := url.Values{
		"format":      {"json"},
		"sites":       {req.SiteID},
		"parameterCd": {req.ParameterCode},
		"period":      {period},
		"siteStatus":  {"all"},
	}

	start := time.Now()
	result, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.NWISAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.NWISRequests.WithLabelValues("error").Inc()
		c.logger.Warn("nwis request failed", "site_id", req.SiteID, "parameter_code", req.ParameterCode, "error", err)
		return domain.FetchedSeries{}, err
	case len(result.Points) == 0:
		c.metrics.NWISRequests.WithLabelValues("empty").Inc()
		return domain.FetchedSeries{}, fmt.Errorf("site %s parameter %s: %w", req.SiteID, req.ParameterCode, domain.ErrSeriesNotFound)
	default:
		c.metrics.NWISRequests.WithLabelValues("success").Inc()
		c.logger.Debug("nwis series fetched", "site_id", req.SiteID, "parameter_code", req.ParameterCode, "points", len(result.Points))
		return result, nil
	}
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.FetchedSeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.FetchedSeries{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FetchedSeries{}, fmt.Errorf("nwis request: %w", err)
	}
	defer resp.Body.Close()

	// NWIS answers 404 when a site has no data for the parameter.
	if resp.StatusCode == http.StatusNotFound {
		return domain.FetchedSeries{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.FetchedSeries{}, fmt.Errorf("nwis API error: status %d: %s", resp.StatusCode, body)
	}

	var ivResp response
	if err := json.NewDecoder(resp.Body).Decode(&ivResp); err != nil {
		return domain.FetchedSeries{}, fmt.Errorf("decode response: %w", err)
	}
	return convertResponse(ivResp)
}

// convertResponse maps the first time series of an IV response onto the domain.
// Values equal to the variable's noDataValue become gaps.
func convertResponse(r response) (domain.FetchedSeries, error) {
	if len(r.Value.TimeSeries) == 0 {
		return domain.FetchedSeries{}, nil
	}
	ts := r.Value.TimeSeries[0]

	out := domain.FetchedSeries{
		SiteName:   ts.SourceInfo.SiteName,
		UnitCode:   ts.Variable.Unit.UnitCode,
		Qualifiers: make(map[string]string),
	}
	if len(ts.SourceInfo.SiteCode) > 0 {
		out.SiteID = ts.SourceInfo.SiteCode[0].Value
	}
	if len(ts.Variable.VariableCode) > 0 {
		out.ParameterCode = ts.Variable.VariableCode[0].Value
	}
	if len(ts.Values) == 0 {
		return out, nil
	}

	block := ts.Values[0]
	for _, q := range block.Qualifier {
		out.Qualifiers[q.QualifierCode] = q.QualifierDescription
	}

	out.Points = make(domain.Series, 0, len(block.Value))
	for _, v := range block.Value {
		pt, err := convertValue(v, ts.Variable.NoDataValue)
		if err != nil {
			return domain.FetchedSeries{}, err
		}
		out.Points = append(out.Points, pt)
	}
	if err := out.Points.Validate(); err != nil {
		return domain.FetchedSeries{}, fmt.Errorf("nwis series: %w", err)
	}
	return out, nil
}

func convertValue(v value, noData *float64) (domain.Point, error) {
	ts, err := time.Parse(time.RFC3339Nano, v.DateTime)
	if err != nil {
		return domain.Point{}, fmt.Errorf("parse dateTime %q: %w", v.DateTime, err)
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("parse value %q: %w", v.Value, err)
	}
	if noData != nil && f == *noData {
		f = math.NaN()
	}
	return domain.Point{
		DateTime:   ts.UnixMilli(),
		Value:      f,
		Qualifiers: v.Qualifiers,
	}, nil
}

// NWIS IV JSON response types.

type response struct {
	Value struct {
		TimeSeries []timeSeries `json:"timeSeries"`
	} `json:"value"`
}

type timeSeries struct {
	SourceInfo struct {
		SiteName string      `json:"siteName"`
		SiteCode []codeValue `json:"siteCode"`
	} `json:"sourceInfo"`
	Variable struct {
		VariableCode []codeValue `json:"variableCode"`
		Unit         struct {
			UnitCode string `json:"unitCode"`
		} `json:"unit"`
		NoDataValue *float64 `json:"noDataValue"`
	} `json:"variable"`
	Values []valueBlock `json:"values"`
}

type codeValue struct {
	Value string `json:"value"`
}

type valueBlock struct {
	Value     []value     `json:"value"`
	Qualifier []qualifier `json:"qualifier"`
}

type value struct {
	Value      string   `json:"value"`
	Qualifiers []string `json:"qualifiers"`
	DateTime   string   `json:"dateTime"`
}

type qualifier struct {
	QualifierCode        string `json:"qualifierCode"`
	QualifierDescription string `json:"qualifierDescription"`
}
