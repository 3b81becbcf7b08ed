// Package aviationweather fetches official surface reports from the
// aviationweather.gov data API.
package aviationweather

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/observability"
	"github.com/go-resty/resty/v2"
)

const (
	retryCount    = 2
	retryWaitTime = 500 * time.Millisecond
)

// Client implements domain.ReportSource against the aviationweather.gov
// METAR endpoint in raw text format.
type Client struct {
	http    *resty.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates a report client. Transport errors and 5xx responses are
// retried twice.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		http:    newRestyClient(timeout),
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

func newRestyClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "text/plain").
		SetHeader("User-Agent", "flight-weather-etl")
}

// LatestReport returns the most recent report for icao, or "" when the API
// has none.
func (c *Client) LatestReport(ctx context.Context, icao string) (string, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":    strings.ToUpper(icao),
			"format": "raw",
		}).
		Get(c.baseURL)
	c.metrics.ReferenceAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.ReferenceRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("report request %s: %w", icao, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNoContent:
		c.metrics.ReferenceRequests.WithLabelValues("empty").Inc()
		return "", nil
	default:
		c.metrics.ReferenceRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("aviationweather API error: status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}

	report := firstReport(resp.String())
	if report == "" {
		c.metrics.ReferenceRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no current report", "station", icao)
		return "", nil
	}
	c.metrics.ReferenceRequests.WithLabelValues("success").Inc()
	return report, nil
}

// firstReport returns the first non-empty line of a raw-format response.
func firstReport(body string) string {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
