package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

const namespace = "portfolio"

// Metrics holds the prometheus collectors of the API
type Metrics struct {
	pageViews         *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	rateLimitExceeded prometheus.Counter
	logger            zerolog.Logger
}

// New registers the collectors on reg
func New(reg prometheus.Registerer, logger zerolog.Logger) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		pageViews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_views_total",
				Help:      "Total number of page views by category",
			},
			[]string{"category"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		rateLimitExceeded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_exceeded_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// RegisterClientGauge exposes the number of live websocket clients
func RegisterClientGauge(reg prometheus.Registerer, count func() int) {
	promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Number of connected websocket clients",
		},
		func() float64 { return float64(count()) },
	)
}

// TrackPage records a page view
func (m *Metrics) TrackPage(ctx context.Context, category string, workspaceID int32, counts domain.Metrics) {
	m.pageViews.WithLabelValues(category).Inc()
	m.logger.Debug().
		Str("category", category).
		Int32("workspace_id", workspaceID).
		Int("total_accounts", counts.TotalAccounts).
		Int("total_currencies", counts.TotalCurrencies).
		Int("total_operations", counts.TotalOperations).
		Msg("Page viewed")
}

// RateLimited counts a rejected request
func (m *Metrics) RateLimited() {
	m.rateLimitExceeded.Inc()
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
