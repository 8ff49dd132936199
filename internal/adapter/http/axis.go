package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/couchcryptid/hydrograph-axis-service/internal/observability"
)

// maxBodyBytes caps request bodies; a year of 15-minute readings is ~35k points.
const maxBodyBytes = 8 << 20

// AxisHandler serves the axis and nearest-point API.
type AxisHandler struct {
	calc    *domain.AxisCalculator
	fetcher domain.SeriesFetcher // nil disables the site route
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewAxisHandler creates the API handler. Pass a nil fetcher to disable
// GET /v1/sites/{site}/axis.
func NewAxisHandler(calc *domain.AxisCalculator, fetcher domain.SeriesFetcher, metrics *observability.Metrics, logger *slog.Logger) *AxisHandler {
	return &AxisHandler{calc: calc, fetcher: fetcher, metrics: metrics, logger: logger}
}

// Routes returns a router with the API endpoints, to be mounted at /v1:
//   - POST /axis
//   - POST /nearest
//   - GET /sites/{site}/axis (only with a fetcher)
func (h *AxisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.countRequests)

	r.Post("/axis", h.handleAxis)
	r.Post("/nearest", h.handleNearest)
	if h.fetcher != nil {
		r.Get("/sites/{site}/axis", h.handleSiteAxis)
	}
	return r
}

// countRequests records each request by route pattern and status code.
func (h *AxisHandler) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.APIRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

type axisRequest struct {
	ParameterCode string          `json:"parameter_code"`
	Narrow        bool            `json:"narrow"`
	Series        []domain.Series `json:"series"`
}

type axisResponse struct {
	ParameterCode string            `json:"parameter_code"`
	Symlog        bool              `json:"symlog"`
	YDomain       domain.Domain     `json:"y_domain"`
	TickValues    []float64         `json:"tick_values"`
	TickFormat    domain.TickFormat `json:"tick_format"`
	TickLabels    []string          `json:"tick_labels"`
}

type siteAxisResponse struct {
	axisResponse
	SiteID     string `json:"site_id"`
	SiteName   string `json:"site_name,omitempty"`
	UnitCode   string `json:"unit_code,omitempty"`
	PointCount int    `json:"point_count"`
}

type nearestRequest struct {
	Series domain.Series `json:"series"`
	Time   int64         `json:"time"`
}

func (h *AxisHandler) handleAxis(w http.ResponseWriter, r *http.Request) {
	var req axisRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.ParameterCode) == "" {
		writeError(w, http.StatusBadRequest, domain.ErrMissingParameterCode)
		return
	}
	for i, s := range req.Series {
		if err := s.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("series %d: %w", i, err))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.axis(req.Series, req.ParameterCode, req.Narrow))
}

func (h *AxisHandler) handleNearest(w http.ResponseWriter, r *http.Request) {
	var req nearestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Series.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n, ok := domain.FindNearest(req.Series, req.Time)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, domain.ErrTooFewPoints)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *AxisHandler) handleSiteAxis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.SeriesRequest{
		SiteID:        chi.URLParam(r, "site"),
		ParameterCode: q.Get("parameterCd"),
		Period:        q.Get("period"),
	}
	if req.ParameterCode == "" {
		writeError(w, http.StatusBadRequest, domain.ErrMissingParameterCode)
		return
	}
	narrow, _ := strconv.ParseBool(q.Get("narrow"))

	fetched, err := h.fetcher.FetchSeries(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrSeriesNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error("fetch series failed", "site_id", req.SiteID, "parameter_code", req.ParameterCode, "error", err)
		writeError(w, http.StatusBadGateway, errors.New("upstream series fetch failed"))
		return
	}

	writeJSON(w, http.StatusOK, siteAxisResponse{
		axisResponse: h.axis([]domain.Series{fetched.Points}, req.ParameterCode, narrow),
		SiteID:       req.SiteID,
		SiteName:     fetched.SiteName,
		UnitCode:     fetched.UnitCode,
		PointCount:   len(fetched.Points),
	})
}

func (h *AxisHandler) axis(series []domain.Series, parameterCode string, narrow bool) axisResponse {
	a := h.calc.Axis(series, parameterCode, narrow)
	return axisResponse{
		ParameterCode: parameterCode,
		Symlog:        a.Symlog,
		YDomain:       a.Domain,
		TickValues:    a.Ticks.TickValues,
		TickFormat:    a.Ticks.TickFormat,
		TickLabels:    a.Ticks.Labels(),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
